package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/dates"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// ReportFile archivo generado listo para descargar.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase reporte semanal de confirmaciones por sucursal en PDF o XLSX.
type ReportUseCase struct {
	menus         repository.MenuRepository
	branches      repository.BranchRepository
	employees     repository.EmployeeRepository
	confirmations repository.ConfirmationRepository
	settings      *SettingsUseCase
	renderers     map[string]ports.WeeklyReportRenderer
	clock         Clock
	log           *logger.Logger
}

// NewReportUseCase registra los renderizadores por su extensión ("pdf", "xlsx").
func NewReportUseCase(
	menus repository.MenuRepository,
	branches repository.BranchRepository,
	employees repository.EmployeeRepository,
	confirmations repository.ConfirmationRepository,
	settings *SettingsUseCase,
	clock Clock,
	log *logger.Logger,
	renderers ...ports.WeeklyReportRenderer,
) *ReportUseCase {
	byExt := make(map[string]ports.WeeklyReportRenderer, len(renderers))
	for _, r := range renderers {
		byExt[r.Extension()] = r
	}
	return &ReportUseCase{
		menus: menus, branches: branches, employees: employees, confirmations: confirmations,
		settings: settings, renderers: byExt, clock: clock, log: log,
	}
}

// Weekly genera el reporte de la semana en el formato pedido.
func (uc *ReportUseCase) Weekly(ctx context.Context, weekID, format string) (*ReportFile, error) {
	renderer, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, domain.Invalidf("formato de reporte no soportado %q", format)
	}
	report, err := uc.Build(ctx, weekID)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("week_id", weekID).Str("format", renderer.Extension()).Int("bytes", len(data)).Msg("reporte generado")
	return &ReportFile{
		Filename:    "comedor-" + weekID + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// Build arma los datos del reporte: una sección por sucursal y los totales de la semana.
func (uc *ReportUseCase) Build(ctx context.Context, weekID string) (*dto.WeeklyReport, error) {
	monday, err := uc.clock.Monday(weekID)
	if err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	m, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	branches, err := uc.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := uc.confirmations.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	active, err := uc.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	settings := uc.settings.Current()
	days := entity.ConfirmableDays(settings.WorkingDays)

	rosters := make(map[string][]*entity.Employee)
	for _, e := range active {
		rosters[e.BranchID] = append(rosters[e.BranchID], e)
	}
	byBranch := make(map[string]*entity.Confirmation, len(saved))
	for _, c := range saved {
		byBranch[c.BranchID] = c
	}
	names := make(map[string]string, len(branches))
	for _, b := range branches {
		names[b.ID] = b.Name
	}
	// sucursales con confirmaciones pero sin documento de sucursal
	for id := range byBranch {
		if _, ok := names[id]; !ok {
			names[id] = id
		}
	}
	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	report := &dto.WeeklyReport{
		WeekID:      weekID,
		Label:       dates.WeekLabel(monday),
		GeneratedAt: uc.clock.Now(),
		MealCost:    settings.MealCost,
	}
	if m != nil {
		report.MenuStatus = string(m.Status)
	}

	var all []entity.EmployeeDays
	rosterTotal := 0
	for _, id := range ids {
		roster := rosters[id]
		var entries []entity.EmployeeDays
		if c := byBranch[id]; c != nil {
			entries = c.Employees
		}
		all = append(all, entries...)
		rosterTotal += len(roster)
		summary := confirmation.Aggregate(entries, len(roster), settings.WorkingDays, settings.MealCost)
		report.Branches = append(report.Branches, dto.BranchReport{
			BranchID: id,
			Name:     names[id],
			Summary:  toSummaryResponse(summary, settings),
			Rows:     reportRows(roster, byBranch[id], days),
		})
	}
	totals := confirmation.Aggregate(all, rosterTotal, settings.WorkingDays, settings.MealCost)
	report.Totals = toSummaryResponse(totals, settings)
	report.Days = report.Totals.PerDay
	return report, nil
}

func reportRows(roster []*entity.Employee, c *entity.Confirmation, days []entity.Weekday) []dto.ReportRow {
	rows := make([]dto.ReportRow, 0, len(roster))
	for _, e := range roster {
		var confirmed []entity.Weekday
		if c != nil {
			confirmed = c.DaysOf(e.ID)
		}
		row := dto.ReportRow{EmployeeID: e.ID, Name: e.Name, Position: e.Position, Confirmed: make([]bool, len(days))}
		for i, d := range days {
			if containsDay(confirmed, d) {
				row.Confirmed[i] = true
				row.Total++
			}
		}
		rows = append(rows, row)
	}
	return rows
}
