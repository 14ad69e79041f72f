package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/analytics"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// lunes 19/10/2026 09:00
var monday = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

type fixedSettings struct{}

func (fixedSettings) Current() entity.Settings { return entity.DefaultSettings() }

type brokenMenus struct {
	repository.MenuRepository
}

func (brokenMenus) Get(ctx context.Context, weekID string) (*entity.WeeklyMenu, error) {
	return nil, errors.New("timeout")
}

type env struct {
	store         *memory.DocumentStore
	employees     *documents.EmployeeRepo
	branches      *documents.BranchRepo
	confirmations *documents.ConfirmationRepo
	menus         *documents.MenuRepo
}

func newEnv(t *testing.T) env {
	t.Helper()
	store := memory.NewDocumentStore()
	e := env{
		store:         store,
		employees:     documents.NewEmployeeRepository(store),
		branches:      documents.NewBranchRepository(store),
		confirmations: documents.NewConfirmationRepository(store),
		menus:         documents.NewMenuRepository(store),
	}
	ctx := context.Background()
	for _, b := range []string{"centro", "norte", "sur"} {
		require.NoError(t, e.branches.Save(ctx, &entity.Branch{ID: b, Name: b}))
	}
	for i, b := range []string{"centro", "centro", "norte", "sur"} {
		require.NoError(t, e.employees.Save(ctx, &entity.Employee{ID: "emp" + string(rune('1'+i)), Name: "E", BranchID: b, Active: true}))
	}
	require.NoError(t, e.confirmations.Save(ctx, &entity.Confirmation{
		ID: entity.ConfirmationID("2026-10-19", "centro"), WeekID: "2026-10-19", BranchID: "centro",
		Employees: []entity.EmployeeDays{{EmployeeID: "emp1", Days: []entity.Weekday{entity.Lunes, entity.Martes}}},
	}))
	start, end := monday.AddDate(0, 0, -4), monday.AddDate(0, 0, -2)
	require.NoError(t, e.menus.Save(ctx, &entity.WeeklyMenu{
		ID: "2026-10-19", Status: entity.MenuInProgress, ConfirmStart: &start, ConfirmEnd: &end,
		Days: map[entity.Weekday]entity.DayMenu{entity.Lunes: {Items: []entity.MenuItem{{Name: "Pozole"}}}},
	}))
	return e
}

func (e env) useCase(menus repository.MenuRepository) *analytics.DashboardUseCase {
	clock := usecase.Clock{Loc: time.UTC, NowFn: func() time.Time { return monday }}
	return analytics.NewDashboardUseCase(e.employees, e.branches, e.confirmations, menus,
		fixedSettings{}, confirmation.StrictEvaluator{}, clock, logger.Nop())
}

func TestDashboard_Administrador(t *testing.T) {
	e := newEnv(t)
	got, err := e.useCase(e.menus).GetSummary(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", got.WeekID)
	assert.Equal(t, 4, got.Employees.Active)
	assert.Equal(t, 3, got.Employees.Branches)
	assert.Equal(t, 1, got.Confirmations.ConfirmedEmployees)
	assert.Equal(t, 2, got.Confirmations.TotalSlots)
	assert.Equal(t, 1, got.Confirmations.BranchesConfirmed)
	assert.Equal(t, 2, got.Confirmations.BranchesPending)
	// (4*5 - 2) * 50
	assert.Equal(t, "900", got.Confirmations.EstimatedSavings.String())

	assert.True(t, got.Menu.Exists)
	assert.Equal(t, "in-progress", got.Menu.Status)
	assert.Equal(t, "CLOSED", got.Menu.WindowState)
	assert.Equal(t, 1, got.Menu.ItemCount)
}

func TestDashboard_Coordinador(t *testing.T) {
	e := newEnv(t)
	got, err := e.useCase(e.menus).GetSummary(context.Background(), "norte")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Employees.Active)
	assert.Equal(t, 1, got.Employees.Branches)
	assert.Equal(t, 0, got.Confirmations.ConfirmedEmployees)
	assert.Equal(t, 1, got.Confirmations.BranchesPending)
}

func TestDashboard_FallaCualquierLectura(t *testing.T) {
	e := newEnv(t)
	_, err := e.useCase(brokenMenus{e.menus}).GetSummary(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrDashboard))
}

func TestDashboard_SinMenu(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.store.Delete(context.Background(), repository.CollectionWeeklyMenus, "2026-10-19"))
	got, err := e.useCase(e.menus).GetSummary(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, got.Menu.Exists)
	assert.Equal(t, "UNDEFINED", got.Menu.WindowState)
}
