package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
)

func TestMenuRepo_RoundTrip(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := documents.NewMenuRepository(store)
	ctx := context.Background()

	start := time.Date(2026, time.October, 15, 16, 10, 0, 0, time.UTC)
	end := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	m := &entity.WeeklyMenu{
		ID:           "2026-10-19",
		Status:       entity.MenuPublished,
		ConfirmStart: &start,
		ConfirmEnd:   &end,
		Days: map[entity.Weekday]entity.DayMenu{
			entity.Lunes: {Items: []entity.MenuItem{{Name: "Ajiaco", Description: "con pollo"}}},
		},
		WasteReduction: decimal.RequireFromString("120.50"),
	}
	require.NoError(t, repo.Save(ctx, m))

	got, err := repo.Get(ctx, "2026-10-19")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.MenuPublished, got.Status)
	assert.True(t, got.ConfirmStart.Equal(start))
	assert.Len(t, got.Days, 7)
	assert.Equal(t, "Ajiaco", got.Days[entity.Lunes].Items[0].Name)
	assert.NotNil(t, got.Days[entity.Domingo].Items)
	assert.True(t, got.WasteReduction.Equal(decimal.RequireFromString("120.5")))

	missing, err := repo.Get(ctx, "2026-10-26")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMenuRepo_LeeColeccionAntiguaYNormaliza(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "menus", "2026-10-12", map[string]any{
		"days": map[string]any{
			"Miércoles": map[string]any{"items": []any{map[string]any{"name": "Sancocho"}}},
			"LUNES":     map[string]any{"items": []any{}},
		},
	}))

	got, err := documents.NewMenuRepository(store).Get(ctx, "2026-10-12")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.MenuDraft, got.Status)
	assert.Equal(t, "Sancocho", got.Days[entity.Miercoles].Items[0].Name)
	assert.Len(t, got.Days, 7)
}

func TestMenuRepo_ListYUpdateStats(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := documents.NewMenuRepository(store)
	ctx := context.Background()
	for id, st := range map[string]entity.MenuStatus{
		"2026-10-05": entity.MenuCompleted,
		"2026-10-12": entity.MenuPublished,
		"2026-10-19": entity.MenuDraft,
	} {
		require.NoError(t, repo.Save(ctx, &entity.WeeklyMenu{ID: id, Status: st}))
	}

	list, err := repo.List(ctx, []entity.MenuStatus{entity.MenuPublished, entity.MenuDraft}, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-12", list[0].ID)

	require.NoError(t, repo.UpdateStats(ctx, "2026-10-12", repository.MenuStats{
		TotalEmployees: 10, ConfirmedEmployees: 4, WasteReduction: decimal.NewFromInt(1900),
	}))
	got, _ := repo.Get(ctx, "2026-10-12")
	assert.Equal(t, 4, got.ConfirmedEmployees)
	assert.True(t, got.WasteReduction.Equal(decimal.NewFromInt(1900)))
	assert.Equal(t, entity.MenuPublished, got.Status)

	err = repo.UpdateStats(ctx, "2030-01-07", repository.MenuStats{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirmationRepo_NormalizaDiasGuardados(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "confirmations", "2026-10-19_b1", map[string]any{
		"week_id":   "2026-10-19",
		"branch_id": "b1",
		"employees": []any{
			map[string]any{"employee_id": "e1", "name": "Ana", "days": []any{"Miércoles", "lunes", "monday"}},
		},
	}))

	repo := documents.NewConfirmationRepository(store)
	c, err := repo.Get(ctx, "2026-10-19", "b1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, []entity.Weekday{entity.Lunes, entity.Miercoles}, c.DaysOf("e1"))

	list, err := repo.ListByWeek(ctx, "2026-10-19")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepo_GetByEmailSinMayusculas(t *testing.T) {
	store := memory.NewDocumentStore()
	repo := documents.NewUserRepository(store)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &entity.User{ID: "u1", Email: " Ana@Avika.com ", Role: entity.RoleAdmin, Active: true}))

	u, err := repo.GetByEmail(ctx, "ANA@avika.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	admins, err := repo.List(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
	none, err := repo.List(ctx, entity.RoleEmployee)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTxRunner_ConfirmaORevierte(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	branches := documents.NewBranchRepository(store)
	require.NoError(t, branches.Save(ctx, &entity.Branch{ID: "b1", Name: "Centro", EmployeeCount: 2}))

	runner := documents.NewTxRunner(store)
	err := runner.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		b, err := r.Branches.Get(ctx, "b1")
		if err != nil {
			return err
		}
		b.AdjustEmployeeCount(1)
		return r.Branches.Save(ctx, b)
	})
	require.NoError(t, err)
	b, _ := branches.Get(ctx, "b1")
	assert.Equal(t, 3, b.EmployeeCount)

	err = runner.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		_, err := r.Employees.ListActive(ctx)
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrNotSupported))
}

func TestBranchRepo_UpdateDetailsNoTocaContador(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	repo := documents.NewBranchRepository(store)
	require.NoError(t, repo.Save(ctx, &entity.Branch{ID: "b1", Name: "Centro", EmployeeCount: 5, CoordinatorID: "c1"}))

	stale := &entity.Branch{ID: "b1", Name: "Centro Histórico", UpdatedAt: time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.UpdateDetails(ctx, stale))

	b, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Centro Histórico", b.Name)
	assert.Equal(t, 5, b.EmployeeCount)
	assert.Empty(t, b.CoordinatorID)
	assert.True(t, stale.UpdatedAt.Equal(b.UpdatedAt))

	err = repo.UpdateDetails(ctx, &entity.Branch{ID: "nada", Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEmployeeRepo_SaveAllLote(t *testing.T) {
	store := memory.NewDocumentStore()
	ctx := context.Background()
	repo := documents.NewEmployeeRepository(store)

	emps := []*entity.Employee{
		{ID: "e1", Name: "Ana", BranchID: "b1", Active: true},
		{ID: "e2", Name: "Luis", BranchID: "b1", Active: false},
	}
	require.NoError(t, repo.SaveAll(ctx, emps, &entity.Branch{ID: "b1", Name: "Centro", EmployeeCount: 1}))

	active, err := repo.ListByBranch(ctx, "b1", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ana", active[0].Name)

	all, err := repo.ListByBranch(ctx, "b1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	b, _ := documents.NewBranchRepository(store).Get(ctx, "b1")
	assert.Equal(t, 1, b.EmployeeCount)
}
