package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

func TestMenu_CreateNormalizaDias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// cualquier día de la semana sirve como week_start
	m, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: "2026-10-21", Days: fullWeek()})
	require.NoError(t, err)
	assert.Equal(t, nextWeek, m.ID)
	assert.Equal(t, "draft", m.Status)
	assert.Equal(t, "UNDEFINED", m.Window)
	require.Len(t, m.Days, 7)
	assert.Equal(t, "miercoles", m.Days[2].Day)
	assert.Equal(t, "Miércoles", m.Days[2].Name)
	assert.Equal(t, "Mole", m.Days[2].Items[0].Name)
	assert.Empty(t, m.Days[6].Items)

	_, err = f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: nextWeek})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestMenu_CreateDiaDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.menus.Create(context.Background(), "admin-1", dto.CreateMenuRequest{
		WeekStart: nextWeek,
		Days:      map[string][]dto.MenuItemDTO{"monday": {{Name: "Pozole"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMenu_PublishIncompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{
		WeekStart: nextWeek,
		Days: map[string][]dto.MenuItemDTO{
			"lunes": {{Name: "Pozole"}}, "martes": {{Name: "Tacos"}}, "miercoles": {{Name: "Mole"}},
		},
	})
	require.NoError(t, err)

	_, err = f.menus.Publish(ctx, "admin-1", nextWeek)
	require.True(t, errors.Is(err, domain.ErrMenuIncomplete))
	app := domain.AsAppError(err)
	assert.Equal(t, "Jueves, Viernes", app.Params["Days"])
	assert.Empty(t, f.events.types())
}

func TestMenu_PublishAdjuntaVentanaPorDefecto(t *testing.T) {
	f := newFixture(t)
	f.publishedMenu(t, nextWeek)

	m, err := f.menus.Get(context.Background(), nextWeek)
	require.NoError(t, err)
	assert.Equal(t, "published", m.Status)
	require.NotNil(t, m.ConfirmStart)
	require.NotNil(t, m.ConfirmEnd)
	assert.Equal(t, time.Date(2026, time.October, 15, 16, 10, 0, 0, time.UTC), m.ConfirmStart.UTC())
	assert.Equal(t, time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC), m.ConfirmEnd.UTC())
	assert.Equal(t, "OPEN", m.Window)

	assert.Equal(t, []string{ports.EventMenuPublished}, f.events.types())
	assert.Equal(t, []string{nextWeek}, f.notifier.weeks)

	_, err = f.menus.Publish(context.Background(), "admin-1", nextWeek)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "no se publica dos veces")
}

func TestMenu_SetWindowExplicita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: nextWeek})
	require.NoError(t, err)

	start := fridayNoon.Add(2 * time.Hour)
	end := fridayNoon.Add(26 * time.Hour)
	m, err := f.menus.SetWindow(ctx, nextWeek, dto.SetWindowRequest{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "NOT_YET_OPEN", m.Window)

	_, err = f.menus.SetWindow(ctx, nextWeek, dto.SetWindowRequest{Start: &end, End: &start})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.menus.SetWindow(ctx, nextWeek, dto.SetWindowRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMenu_Window(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.menus.Window(ctx, nextWeek)
	require.NoError(t, err)
	assert.Equal(t, "UNDEFINED", w.State)
	assert.Equal(t, "WINDOW_UNDEFINED", w.MessageCode)
	assert.False(t, w.Editable)

	f.publishedMenu(t, nextWeek)
	w, err = f.menus.Window(ctx, nextWeek)
	require.NoError(t, err)
	assert.Equal(t, "OPEN", w.State)
	assert.True(t, w.Editable)
	assert.Empty(t, w.MessageCode)

	_, err = f.menus.Window(ctx, "2026-10-20")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "la clave de semana debe ser lunes")
}

func TestMenu_ArchiveDesdeBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: nextWeek})
	require.NoError(t, err)

	_, err = f.menus.Archive(ctx, "admin-1", nextWeek)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	_, err = f.menus.Archive(ctx, "admin-1", "2026-11-02")
	assert.True(t, errors.Is(err, domain.ErrMenuNotFound))
}

func TestMenu_ArchivadoNoSeEdita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.publishedMenu(t, nextWeek)

	m, err := f.menus.Archive(ctx, "admin-1", nextWeek)
	require.NoError(t, err)
	assert.Equal(t, "archived", m.Status)

	_, err = f.menus.UpdateDay(ctx, nextWeek, "lunes", dto.UpdateDayRequest{Items: []dto.MenuItemDTO{{Name: "Sopa"}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	_, err = f.menus.SetAttendance(ctx, nextWeek, dto.AttendanceRequest{ActualAttendees: 3})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestMenu_AdvanceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.publishedMenu(t, nextWeek)

	n, err := f.menus.AdvanceLifecycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	m, err := f.menuRepo.Get(ctx, nextWeek)
	require.NoError(t, err)
	assert.Equal(t, entity.MenuInProgress, m.Status)

	// sin cambios: no cuenta
	n, err = f.menus.AdvanceLifecycle(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC)
	n, err = f.menus.AdvanceLifecycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	m, err = f.menuRepo.Get(ctx, nextWeek)
	require.NoError(t, err)
	assert.Equal(t, entity.MenuCompleted, m.Status)
}

func TestMenu_UpcomingYList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: thisWeek, Days: fullWeek()})
	require.NoError(t, err)
	f.publishedMenu(t, nextWeek)

	up, err := f.menus.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, up, 1, "el borrador de esta semana no se muestra")
	assert.Equal(t, nextWeek, up[0].ID)

	all, err := f.menus.List(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, nextWeek, all[0].ID, "el más reciente primero")

	drafts, err := f.menus.List(ctx, []string{"draft"}, 0)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, thisWeek, drafts[0].ID)

	_, err = f.menus.List(ctx, []string{"borrado"}, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMenu_UpdateDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: nextWeek})
	require.NoError(t, err)

	m, err := f.menus.UpdateDay(ctx, nextWeek, "Sábado", dto.UpdateDayRequest{Items: []dto.MenuItemDTO{{Name: "Birria"}}})
	require.NoError(t, err)
	assert.Equal(t, "sabado", m.Days[5].Day)
	assert.Equal(t, "Birria", m.Days[5].Items[0].Name)

	_, err = f.menus.UpdateDay(ctx, nextWeek, "saturday", dto.UpdateDayRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
