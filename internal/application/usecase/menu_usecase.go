package usecase

import (
	"context"
	"fmt"
	"strings"
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

// MenuUseCase ciclo de vida del menú semanal: borrador, platos, ventana, publicación y archivo.
type MenuUseCase struct {
	menus     repository.MenuRepository
	settings  *SettingsUseCase
	evaluator confirmation.Evaluator
	events    ports.EventPublisher
	notifier  ports.Notifier
	clock     Clock
	log       *logger.Logger
}

// NewMenuUseCase construye el caso de uso. notifier puede ser nil.
func NewMenuUseCase(
	menus repository.MenuRepository,
	settings *SettingsUseCase,
	evaluator confirmation.Evaluator,
	events ports.EventPublisher,
	notifier ports.Notifier,
	clock Clock,
	log *logger.Logger,
) *MenuUseCase {
	return &MenuUseCase{
		menus: menus, settings: settings, evaluator: evaluator,
		events: events, notifier: notifier, clock: clock, log: log,
	}
}

// Create crea el menú en borrador de la semana que contiene WeekStart.
func (uc *MenuUseCase) Create(ctx context.Context, actorID string, in dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	day, err := dates.ParseDate(in.WeekStart, uc.clock.location())
	if err != nil {
		return nil, domain.Invalidf("week_start: %v", err)
	}
	weekID := dates.WeekID(day)

	existing, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	raw := make(map[string]entity.DayMenu, len(in.Days))
	for key, items := range in.Days {
		if _, ok := menu.ParseWeekday(key); !ok {
			return nil, domain.Invalidf("día desconocido %q", key)
		}
		raw[key] = entity.DayMenu{Items: toMenuItems(items)}
	}

	now := uc.clock.Now()
	m := &entity.WeeklyMenu{
		ID:        weekID,
		Status:    entity.MenuDraft,
		Days:      menu.NormalizeDays(raw),
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("week_id", weekID).Str("actor", actorID).Msg("menú creado")
	return uc.toResponse(m), nil
}

// Get menú de la semana; ErrMenuNotFound si no existe.
func (uc *MenuUseCase) Get(ctx context.Context, weekID string) (*dto.MenuResponse, error) {
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(m), nil
}

// List menús filtrados por estado (vacío = todos), del más reciente al más antiguo.
func (uc *MenuUseCase) List(ctx context.Context, statuses []string, limit int) ([]dto.MenuResponse, error) {
	var filter []entity.MenuStatus
	for _, s := range statuses {
		st := entity.MenuStatus(strings.ToLower(strings.TrimSpace(s)))
		if st == "" {
			continue
		}
		if !entity.ValidMenuStatus(st) {
			return nil, domain.Invalidf("estado desconocido %q", s)
		}
		filter = append(filter, st)
	}
	list, err := uc.menus.List(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuResponse, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, *uc.toResponse(list[i]))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Upcoming menús publicados de la semana en curso y la siguiente.
func (uc *MenuUseCase) Upcoming(ctx context.Context) ([]dto.MenuResponse, error) {
	monday := dates.GetMonday(uc.clock.Now())
	out := []dto.MenuResponse{}
	for _, week := range []time.Time{monday, monday.AddDate(0, 0, 7)} {
		m, err := uc.menus.Get(ctx, dates.FormatDate(week))
		if err != nil {
			return nil, err
		}
		if m == nil || (m.Status != entity.MenuPublished && m.Status != entity.MenuInProgress) {
			continue
		}
		out = append(out, *uc.toResponse(m))
	}
	return out, nil
}

// UpdateDay reemplaza los platos de un día.
func (uc *MenuUseCase) UpdateDay(ctx context.Context, weekID, dayKey string, in dto.UpdateDayRequest) (*dto.MenuResponse, error) {
	day, ok := menu.ParseWeekday(dayKey)
	if !ok {
		return nil, domain.Invalidf("día desconocido %q", dayKey)
	}
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if !m.Editable() {
		return nil, domain.ErrInvalidTransition
	}
	days := make(map[entity.Weekday]entity.DayMenu, len(m.Days))
	for k, v := range m.Days {
		days[k] = v
	}
	days[day] = entity.DayMenu{Items: toMenuItems(in.Items)}
	m.Days = menu.CanonicalDays(days)
	m.UpdatedAt = uc.clock.Now()
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}
	return uc.toResponse(m), nil
}

// SetWindow fija la ventana de confirmación, explícita o derivada de los ajustes.
func (uc *MenuUseCase) SetWindow(ctx context.Context, weekID string, in dto.SetWindowRequest) (*dto.MenuResponse, error) {
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if !m.Editable() {
		return nil, domain.ErrInvalidTransition
	}

	var w confirmation.Window
	if in.UseDefault {
		monday, err := uc.clock.Monday(m.ID)
		if err != nil {
			return nil, domain.Invalidf("%v", err)
		}
		w = confirmation.DefaultWindow(monday, uc.settings.Current())
	} else {
		if in.Start == nil || in.End == nil {
			return nil, domain.Invalidf("start y end son requeridos si no se usa la ventana por defecto")
		}
		w = confirmation.Window{Start: in.Start.In(uc.clock.location()), End: in.End.In(uc.clock.location())}
	}
	if !w.Start.Before(w.End) {
		return nil, domain.Invalidf("la ventana debe abrir antes de cerrar")
	}

	m.ConfirmStart, m.ConfirmEnd = &w.Start, &w.End
	m.UpdatedAt = uc.clock.Now()
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}
	return uc.toResponse(m), nil
}

// Publish publica el menú. Todos los días confirmables deben tener platos; sin ventana
// se adjunta la ventana por defecto.
func (uc *MenuUseCase) Publish(ctx context.Context, actorID, weekID string) (*dto.MenuResponse, error) {
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if m.Status != entity.MenuDraft && m.Status != entity.MenuPending {
		return nil, domain.ErrInvalidTransition
	}
	settings := uc.settings.Current()
	if missing := menu.MissingDays(m, settings.WorkingDays); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, d := range missing {
			names[i] = menu.FormatDayName(string(d))
		}
		return nil, domain.ErrMenuIncomplete.
			WithParams(map[string]any{"Days": strings.Join(names, ", ")}).
			WithCause(fmt.Errorf("faltan platos: %s", strings.Join(names, ", ")))
	}
	if !m.HasWindow() {
		monday, err := uc.clock.Monday(m.ID)
		if err != nil {
			return nil, domain.Invalidf("%v", err)
		}
		w := confirmation.DefaultWindow(monday, settings)
		m.ConfirmStart, m.ConfirmEnd = &w.Start, &w.End
	}

	m.Status = entity.MenuPublished
	m.UpdatedAt = uc.clock.Now()
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}

	uc.publish(ctx, ports.Event{Type: ports.EventMenuPublished, WeekID: m.ID, ActorID: actorID, OccurredAt: m.UpdatedAt})
	if uc.notifier != nil {
		monday, _ := uc.clock.Monday(m.ID)
		if err := uc.notifier.NotifyMenuPublished(ctx, m.ID, dates.WeekLabel(monday)); err != nil {
			uc.log.Warn().Err(err).Str("week_id", m.ID).Msg("no se pudo notificar la publicación")
		}
	}
	uc.log.Info().Str("week_id", m.ID).Str("actor", actorID).Msg("menú publicado")
	return uc.toResponse(m), nil
}

// Archive archiva el menú; no hay borrado de menús.
func (uc *MenuUseCase) Archive(ctx context.Context, actorID, weekID string) (*dto.MenuResponse, error) {
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if m.Status == entity.MenuArchived || m.Status == entity.MenuDraft {
		return nil, domain.ErrInvalidTransition
	}
	m.Status = entity.MenuArchived
	m.UpdatedAt = uc.clock.Now()
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.Event{Type: ports.EventMenuArchived, WeekID: m.ID, ActorID: actorID, OccurredAt: m.UpdatedAt})
	return uc.toResponse(m), nil
}

// SetAttendance registra la asistencia real de la semana.
func (uc *MenuUseCase) SetAttendance(ctx context.Context, weekID string, in dto.AttendanceRequest) (*dto.MenuResponse, error) {
	if in.ActualAttendees < 0 {
		return nil, domain.Invalidf("actual_attendees no puede ser negativo")
	}
	m, err := uc.load(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if m.Status == entity.MenuArchived {
		return nil, domain.ErrInvalidTransition
	}
	m.ActualAttendees = in.ActualAttendees
	m.UpdatedAt = uc.clock.Now()
	if err := uc.menus.Save(ctx, m); err != nil {
		return nil, err
	}
	return uc.toResponse(m), nil
}

// Window estado de la ventana de confirmación de la semana. Sin menú es UNDEFINED.
func (uc *MenuUseCase) Window(ctx context.Context, weekID string) (*dto.WindowResponse, error) {
	if _, err := uc.clock.Monday(weekID); err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	m, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	w := windowResponse(weekID, m, uc.evaluator, uc.clock.Now())
	return &w, nil
}

// AdvanceLifecycle pasa a in-progress los menús publicados con la ventana abierta y a
// completed los de semanas ya transcurridas. Devuelve cuántos cambiaron.
func (uc *MenuUseCase) AdvanceLifecycle(ctx context.Context) (int, error) {
	list, err := uc.menus.List(ctx, []entity.MenuStatus{entity.MenuPending, entity.MenuPublished, entity.MenuInProgress}, 0)
	if err != nil {
		return 0, err
	}
	now := uc.clock.Now()
	changed := 0
	for _, m := range list {
		monday, err := uc.clock.Monday(m.ID)
		if err != nil {
			uc.log.Warn().Str("week_id", m.ID).Msg("menú con clave de semana inválida")
			continue
		}
		next := m.Status
		switch {
		case !now.Before(monday.AddDate(0, 0, 7)):
			next = entity.MenuCompleted
		case m.Status == entity.MenuPublished && uc.evaluator.Evaluate(now, m.ConfirmStart, m.ConfirmEnd) == confirmation.WindowOpen:
			next = entity.MenuInProgress
		}
		if next == m.Status {
			continue
		}
		m.Status = next
		m.UpdatedAt = now
		if err := uc.menus.Save(ctx, m); err != nil {
			return changed, err
		}
		changed++
		uc.log.Info().Str("week_id", m.ID).Str("status", string(next)).Msg("estado del menú actualizado")
	}
	return changed, nil
}

func (uc *MenuUseCase) load(ctx context.Context, weekID string) (*entity.WeeklyMenu, error) {
	if _, err := uc.clock.Monday(weekID); err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	m, err := uc.menus.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMenuNotFound
	}
	return m, nil
}

func (uc *MenuUseCase) publish(ctx context.Context, e ports.Event) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, e); err != nil {
		uc.log.Warn().Err(err).Str("type", e.Type).Str("week_id", e.WeekID).Msg("no se pudo publicar el evento")
	}
}

func (uc *MenuUseCase) toResponse(m *entity.WeeklyMenu) *dto.MenuResponse {
	return toMenuResponse(m, uc.evaluator.Evaluate(uc.clock.Now(), m.ConfirmStart, m.ConfirmEnd), uc.clock)
}
