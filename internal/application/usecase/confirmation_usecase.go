package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/dates"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// WarningRosterUnavailable aviso de página cuando la nómina no se pudo leer.
const WarningRosterUnavailable = "ROSTER_UNAVAILABLE"

// ConfirmationUseCase confirmaciones semanales por sucursal. La lista {weekId}_{branchId}
// se sobrescribe completa en cada guardado; gana el último.
type ConfirmationUseCase struct {
	confirmations repository.ConfirmationRepository
	menus         repository.MenuRepository
	employees     repository.EmployeeRepository
	settings      *SettingsUseCase
	evaluator     confirmation.Evaluator
	events        ports.EventPublisher
	encoder       ports.TableEncoder
	clock         Clock
	log           *logger.Logger
}

func NewConfirmationUseCase(
	confirmations repository.ConfirmationRepository,
	menus repository.MenuRepository,
	employees repository.EmployeeRepository,
	settings *SettingsUseCase,
	evaluator confirmation.Evaluator,
	events ports.EventPublisher,
	encoder ports.TableEncoder,
	clock Clock,
	log *logger.Logger,
) *ConfirmationUseCase {
	return &ConfirmationUseCase{
		confirmations: confirmations, menus: menus, employees: employees,
		settings: settings, evaluator: evaluator, events: events, encoder: encoder,
		clock: clock, log: log,
	}
}

// Page estado completo de la pantalla de confirmaciones de una sucursal.
// Si la nómina no se puede leer la página se arma con nómina vacía y un aviso.
func (uc *ConfirmationUseCase) Page(ctx context.Context, scope, branchID, weekID string) (*dto.ConfirmationPageResponse, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, err
	}
	monday, err := uc.clock.Monday(weekID)
	if err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	m, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	saved, err := uc.confirmations.Get(ctx, weekID, branchID)
	if err != nil {
		return nil, err
	}

	page := &dto.ConfirmationPageResponse{
		WeekID:        weekID,
		Label:         dates.WeekLabel(monday),
		BranchID:      branchID,
		Employees:     []dto.EmployeeResponse{},
		Confirmations: []dto.EmployeeDaysDTO{},
	}
	roster, err := uc.employees.ListByBranch(ctx, branchID, true)
	if err != nil {
		uc.log.Warn().Err(err).Str("branch_id", branchID).Msg("no se pudo cargar la nómina; se muestra vacía")
		page.Warnings = append(page.Warnings, WarningRosterUnavailable)
		roster = nil
	}
	for _, e := range roster {
		page.Employees = append(page.Employees, toEmployeeResponse(e))
	}

	now := uc.clock.Now()
	page.Window = windowResponse(weekID, m, uc.evaluator, now)
	page.Editable = page.Window.Editable
	if m != nil {
		page.Menu = toMenuResponse(m, confirmation.WindowState(page.Window.State), uc.clock)
	}

	var entries []entity.EmployeeDays
	if saved != nil {
		entries = saved.Employees
		updated := saved.UpdatedAt
		page.UpdatedAt = &updated
		page.UpdatedBy = saved.UpdatedBy
		for _, e := range saved.Employees {
			page.Confirmations = append(page.Confirmations, toEmployeeDaysDTO(e))
		}
	}
	settings := uc.settings.Current()
	summary := confirmation.Aggregate(entries, len(roster), settings.WorkingDays, settings.MealCost)
	page.Summary = toSummaryResponse(summary, settings)
	page.Days = page.Summary.PerDay
	return page, nil
}

// Preview resumen en vivo de una lista sin guardarla. Los días desconocidos se ignoran.
func (uc *ConfirmationUseCase) Preview(ctx context.Context, scope, branchID, weekID string, in dto.SaveConfirmationsRequest) (*dto.SummaryResponse, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.clock.Monday(weekID); err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	roster, err := uc.employees.ListByBranch(ctx, branchID, true)
	if err != nil {
		return nil, err
	}
	entries := make([]entity.EmployeeDays, 0, len(in.Employees))
	for _, e := range in.Employees {
		days, _ := menu.ParseDays(e.Days)
		entries = append(entries, entity.EmployeeDays{EmployeeID: e.EmployeeID, Days: days})
	}
	settings := uc.settings.Current()
	resp := toSummaryResponse(confirmation.Aggregate(entries, len(roster), settings.WorkingDays, settings.MealCost), settings)
	return &resp, nil
}

// Save reemplaza la lista de la sucursal. Solo con la ventana abierta; cada empleado debe
// pertenecer a la nómina activa de la sucursal y cada día debe ser reconocible.
func (uc *ConfirmationUseCase) Save(ctx context.Context, actorID, scope, branchID, weekID string, in dto.SaveConfirmationsRequest) (*dto.SaveConfirmationsResponse, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.clock.Monday(weekID); err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	m, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if err := uc.checkWindow(m, now); err != nil {
		return nil, err
	}

	roster, err := uc.employees.ListByBranch(ctx, branchID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Employee, len(roster))
	for _, e := range roster {
		byID[e.ID] = e
	}

	settings := uc.settings.Current()
	entries := make([]entity.EmployeeDays, 0, len(in.Employees))
	seen := make(map[string]bool, len(in.Employees))
	for _, e := range in.Employees {
		emp, ok := byID[e.EmployeeID]
		if !ok {
			return nil, domain.Invalidf("el empleado %q no pertenece a la sucursal %q", e.EmployeeID, branchID)
		}
		if seen[e.EmployeeID] {
			return nil, domain.Invalidf("el empleado %q aparece más de una vez", e.EmployeeID)
		}
		seen[e.EmployeeID] = true
		days, invalid := menu.ParseDays(e.Days)
		if len(invalid) > 0 {
			return nil, domain.Invalidf("día desconocido %q para %s", invalid[0], emp.Name)
		}
		for _, d := range days {
			if !entity.IsConfirmable(d, settings.WorkingDays) {
				return nil, domain.Invalidf("%s no es un día confirmable", menu.FormatDayName(string(d)))
			}
		}
		entries = append(entries, entity.EmployeeDays{EmployeeID: emp.ID, Name: emp.Name, Days: days})
	}

	c := &entity.Confirmation{
		ID:        entity.ConfirmationID(weekID, branchID),
		WeekID:    weekID,
		BranchID:  branchID,
		Employees: entries,
		UpdatedBy: actorID,
		UpdatedAt: now,
	}
	if err := uc.confirmations.Save(ctx, c); err != nil {
		return nil, err
	}
	summary := confirmation.Aggregate(entries, len(roster), settings.WorkingDays, settings.MealCost)

	if m != nil {
		if err := uc.refreshMenuStats(ctx, weekID, settings); err != nil {
			uc.log.Warn().Err(err).Str("week_id", weekID).Msg("no se pudieron actualizar las estadísticas del menú")
		}
	}
	if uc.events != nil {
		err := uc.events.Publish(ctx, ports.Event{
			Type:       ports.EventConfirmationSaved,
			WeekID:     weekID,
			BranchID:   branchID,
			ActorID:    actorID,
			OccurredAt: now,
			Payload: map[string]any{
				"confirmed_employees":   summary.ConfirmedEmployees,
				"total_confirmed_slots": summary.TotalSlots,
			},
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("week_id", weekID).Str("branch_id", branchID).Msg("no se pudo publicar el evento")
		}
	}
	uc.log.Info().Str("week_id", weekID).Str("branch_id", branchID).Int("confirmed", summary.ConfirmedEmployees).Msg("confirmaciones guardadas")

	return &dto.SaveConfirmationsResponse{
		ID:        c.ID,
		WeekID:    weekID,
		BranchID:  branchID,
		Summary:   toSummaryResponse(summary, settings),
		UpdatedAt: now,
	}, nil
}

// Daily proyección {date}_{employeeId} de la nómina activa para un día.
func (uc *ConfirmationUseCase) Daily(ctx context.Context, scope, branchID, date string) ([]dto.DailyConfirmationResponse, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, err
	}
	day, err := dates.ParseDate(date, uc.clock.location())
	if err != nil {
		return nil, domain.Invalidf("date: %v", err)
	}
	weekday := entity.Weekdays[(int(day.Weekday())+6)%7]
	saved, err := uc.confirmations.Get(ctx, dates.WeekID(day), branchID)
	if err != nil {
		return nil, err
	}
	roster, err := uc.employees.ListByBranch(ctx, branchID, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyConfirmationResponse, 0, len(roster))
	for _, e := range roster {
		confirmed := false
		if saved != nil {
			confirmed = containsDay(saved.DaysOf(e.ID), weekday)
		}
		out = append(out, dto.DailyConfirmationResponse{
			ID:         entity.DailyConfirmationID(date, e.ID),
			Date:       date,
			EmployeeID: e.ID,
			Name:       e.Name,
			Confirmed:  confirmed,
		})
	}
	return out, nil
}

// ExportCSV confirmaciones de la semana: una fila por empleado con una X por día confirmado.
// Devuelve el contenido y el nombre de archivo sugerido.
func (uc *ConfirmationUseCase) ExportCSV(ctx context.Context, scope, branchID, weekID string) ([]byte, string, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, "", err
	}
	if _, err := uc.clock.Monday(weekID); err != nil {
		return nil, "", domain.Invalidf("%v", err)
	}
	saved, err := uc.confirmations.Get(ctx, weekID, branchID)
	if err != nil {
		return nil, "", err
	}
	roster, err := uc.employees.ListByBranch(ctx, branchID, true)
	if err != nil {
		return nil, "", err
	}
	days := entity.ConfirmableDays(uc.settings.Current().WorkingDays)

	header := []string{"Nombre", "Puesto"}
	for _, d := range days {
		header = append(header, menu.FormatDayName(string(d)))
	}
	header = append(header, "Total")

	row := func(name, position string, confirmed []entity.Weekday) []string {
		r := []string{name, position}
		total := 0
		for _, d := range days {
			if containsDay(confirmed, d) {
				r = append(r, "X")
				total++
			} else {
				r = append(r, "")
			}
		}
		return append(r, fmt.Sprint(total))
	}

	rows := make([][]string, 0, len(roster))
	listed := make(map[string]bool, len(roster))
	for _, e := range roster {
		var confirmed []entity.Weekday
		if saved != nil {
			confirmed = saved.DaysOf(e.ID)
		}
		rows = append(rows, row(e.Name, e.Position, confirmed))
		listed[e.ID] = true
	}
	// empleados ya dados de baja que siguen en la lista guardada
	if saved != nil {
		for _, e := range saved.Employees {
			if !listed[e.EmployeeID] {
				rows = append(rows, row(e.Name, "", e.Days))
			}
		}
	}
	out, err := uc.encoder.Encode(header, rows)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("confirmaciones-%s-%s.csv", weekID, branchID), nil
}

func (uc *ConfirmationUseCase) checkWindow(m *entity.WeeklyMenu, now time.Time) error {
	var start, end *time.Time
	if m != nil {
		start, end = m.ConfirmStart, m.ConfirmEnd
	}
	switch uc.evaluator.Evaluate(now, start, end) {
	case confirmation.WindowOpen:
		return nil
	case confirmation.WindowNotYetOpen:
		return domain.ErrWindowNotOpen
	case confirmation.WindowClosed:
		return domain.ErrWindowClosed
	default:
		return domain.ErrWindowUndefined
	}
}

// refreshMenuStats recalcula los contadores del menú con todas las sucursales.
func (uc *ConfirmationUseCase) refreshMenuStats(ctx context.Context, weekID string, settings entity.Settings) error {
	all, err := uc.confirmations.ListByWeek(ctx, weekID)
	if err != nil {
		return err
	}
	active, err := uc.employees.ListActive(ctx)
	if err != nil {
		return err
	}
	var entries []entity.EmployeeDays
	for _, c := range all {
		entries = append(entries, c.Employees...)
	}
	s := confirmation.Aggregate(entries, len(active), settings.WorkingDays, settings.MealCost)
	return uc.menus.UpdateStats(ctx, weekID, repository.MenuStats{
		TotalEmployees:     len(active),
		ConfirmedEmployees: s.ConfirmedEmployees,
		WasteReduction:     s.EstimatedSavings,
	})
}

func toEmployeeDaysDTO(e entity.EmployeeDays) dto.EmployeeDaysDTO {
	days := make([]string, 0, len(e.Days))
	for _, d := range e.Days {
		days = append(days, string(d))
	}
	return dto.EmployeeDaysDTO{EmployeeID: e.EmployeeID, Name: e.Name, Days: days}
}

func containsDay(days []entity.Weekday, d entity.Weekday) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}
