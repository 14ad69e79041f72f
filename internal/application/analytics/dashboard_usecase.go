// Package analytics contiene el resumen del panel de la semana en curso.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/dates"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// SettingsSource ajustes vigentes.
type SettingsSource interface {
	Current() entity.Settings
}

// DashboardUseCase genera el resumen de la semana en curso.
//
// Las cuatro lecturas (empleados, sucursales, confirmaciones y menú) corren en paralelo;
// si cualquiera falla la llamada completa devuelve domain.ErrDashboard.
type DashboardUseCase struct {
	employees     repository.EmployeeRepository
	branches      repository.BranchRepository
	confirmations repository.ConfirmationRepository
	menus         repository.MenuRepository
	settings      SettingsSource
	evaluator     confirmation.Evaluator
	clock         usecase.Clock
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	employees repository.EmployeeRepository,
	branches repository.BranchRepository,
	confirmations repository.ConfirmationRepository,
	menus repository.MenuRepository,
	settings SettingsSource,
	evaluator confirmation.Evaluator,
	clock usecase.Clock,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		employees: employees, branches: branches, confirmations: confirmations, menus: menus,
		settings: settings, evaluator: evaluator, clock: clock, log: log,
	}
}

// GetSummary resumen de la semana en curso. scope limita las cifras a una sucursal (coordinador).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, scope string) (*dto.DashboardSummaryDTO, error) {
	now := uc.clock.Now()
	monday := dates.GetMonday(now)
	weekID := dates.FormatDate(monday)

	// ── Goroutines para paralelizar las 4 lecturas ───────────────────────────
	type employeesResult struct {
		list []*entity.Employee
		err  error
	}
	type branchesResult struct {
		list []*entity.Branch
		err  error
	}
	type confirmationsResult struct {
		list []*entity.Confirmation
		err  error
	}
	type menuResult struct {
		menu *entity.WeeklyMenu
		err  error
	}

	empCh := make(chan employeesResult, 1)
	branchCh := make(chan branchesResult, 1)
	confCh := make(chan confirmationsResult, 1)
	menuCh := make(chan menuResult, 1)

	go func() {
		var (
			list []*entity.Employee
			err  error
		)
		if scope != "" {
			list, err = uc.employees.ListByBranch(ctx, scope, true)
		} else {
			list, err = uc.employees.ListActive(ctx)
		}
		empCh <- employeesResult{list, err}
	}()
	go func() {
		list, err := uc.branches.List(ctx)
		branchCh <- branchesResult{list, err}
	}()
	go func() {
		list, err := uc.confirmations.ListByWeek(ctx, weekID)
		confCh <- confirmationsResult{list, err}
	}()
	go func() {
		m, err := uc.menus.Get(ctx, weekID)
		menuCh <- menuResult{m, err}
	}()

	emps := <-empCh
	branches := <-branchCh
	confs := <-confCh
	weekMenu := <-menuCh

	for _, load := range []struct {
		name string
		err  error
	}{
		{"empleados", emps.err},
		{"sucursales", branches.err},
		{"confirmaciones", confs.err},
		{"menú", weekMenu.err},
	} {
		if name, err := load.name, load.err; err != nil {
			uc.log.Error().Err(err).Str("week_id", weekID).Str("load", name).Msg("dashboard: lectura fallida")
			return nil, domain.ErrDashboard.WithCause(fmt.Errorf("dashboard: %s: %w", name, err))
		}
	}

	// ── Filtrar por sucursal ─────────────────────────────────────────────────
	branchIDs := make(map[string]bool, len(branches.list))
	for _, b := range branches.list {
		if scope == "" || b.ID == scope {
			branchIDs[b.ID] = true
		}
	}
	if scope != "" {
		branchIDs[scope] = true
	}

	var entries []entity.EmployeeDays
	confirmed := 0
	for _, c := range confs.list {
		if !branchIDs[c.BranchID] {
			continue
		}
		entries = append(entries, c.Employees...)
		confirmed++
	}

	settings := uc.settings.Current()
	summary := confirmation.Aggregate(entries, len(emps.list), settings.WorkingDays, settings.MealCost)

	perDay := make([]dto.DayCountDTO, 0, summary.WorkingDays)
	for _, d := range entity.ConfirmableDays(summary.WorkingDays) {
		perDay = append(perDay, dto.DayCountDTO{Day: string(d), Name: menu.FormatDayName(string(d)), Count: summary.PerDayCount(d)})
	}

	pending := len(branchIDs) - confirmed
	if pending < 0 {
		pending = 0
	}

	// ── Construir DTO ────────────────────────────────────────────────────────
	return &dto.DashboardSummaryDTO{
		WeekID:    weekID,
		WeekLabel: dates.WeekLabel(monday),
		Employees: dto.EmployeeStatsDTO{
			Active:   len(emps.list),
			Branches: len(branchIDs),
		},
		Confirmations: dto.ConfirmationStatsDTO{
			ConfirmedEmployees: summary.ConfirmedEmployees,
			TotalSlots:         summary.TotalSlots,
			BranchesConfirmed:  confirmed,
			BranchesPending:    pending,
			PerDay:             perDay,
			EstimatedSavings:   summary.EstimatedSavings.Round(2),
		},
		Menu:        uc.menuStatus(weekMenu.menu, now),
		GeneratedAt: now,
	}, nil
}

func (uc *DashboardUseCase) menuStatus(m *entity.WeeklyMenu, now time.Time) dto.MenuStatusDTO {
	if m == nil {
		return dto.MenuStatusDTO{WindowState: string(confirmation.WindowUndefined)}
	}
	return dto.MenuStatusDTO{
		Exists:       true,
		Status:       string(m.Status),
		WindowState:  string(uc.evaluator.Evaluate(now, m.ConfirmStart, m.ConfirmEnd)),
		ConfirmStart: m.ConfirmStart,
		ConfirmEnd:   m.ConfirmEnd,
		ItemCount:    m.ItemCount(),
	}
}
