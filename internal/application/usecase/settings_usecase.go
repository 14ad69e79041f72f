package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/state"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/dates"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// SettingsUseCase ajustes del comedor. El valor vigente vive en un observable que leen
// los demás casos de uso; se siembra desde la configuración si no existe el documento.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	defaults entity.Settings
	live     *state.Observable[entity.Settings]
	clock    Clock
	log      *logger.Logger
}

// NewSettingsUseCase construye el caso de uso con los valores por defecto.
func NewSettingsUseCase(repo repository.SettingsRepository, defaults entity.Settings, clock Clock, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		repo:     repo,
		defaults: defaults,
		live:     state.New(defaults, func(a, b entity.Settings) bool { return a.Equal(b) }),
		clock:    clock,
		log:      log,
	}
}

// DefaultsFromConfig ajustes iniciales a partir de COMEDOR_*.
func DefaultsFromConfig(c config.ComedorConfig) (entity.Settings, error) {
	s := entity.DefaultSettings()
	cost, err := decimal.NewFromString(c.MealCost)
	if err != nil || cost.IsNegative() {
		return s, fmt.Errorf("COMEDOR_MEAL_COST inválido %q", c.MealCost)
	}
	s.MealCost = cost
	s.WorkingDays = normalizeWorkingDays(c.WorkingDays)
	if s.WindowStartHour, s.WindowStartMinute, err = dates.ParseClock(c.WindowStart); err != nil {
		return s, err
	}
	if s.WindowEndHour, s.WindowEndMinute, err = dates.ParseClock(c.WindowEnd); err != nil {
		return s, err
	}
	s.WindowStartOffsetDays = c.WindowStartOffsetDays
	s.WindowEndOffsetDays = c.WindowEndOffsetDays
	return s, nil
}

func normalizeWorkingDays(n int) int {
	if n == entity.WorkingDaysFull {
		return n
	}
	return entity.WorkingDaysShort
}

// Load lee el documento de ajustes; si no existe guarda los valores por defecto.
func (uc *SettingsUseCase) Load(ctx context.Context) (entity.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return entity.Settings{}, err
	}
	if s == nil {
		seed := uc.defaults
		seed.UpdatedAt = uc.clock.Now()
		seed.UpdatedBy = "system"
		if err := uc.repo.Save(ctx, &seed); err != nil {
			return entity.Settings{}, err
		}
		uc.log.Info().Msg("ajustes sembrados desde la configuración")
		s = &seed
	}
	s.WorkingDays = normalizeWorkingDays(s.WorkingDays)
	uc.live.Set(*s)
	return *s, nil
}

// Current ajustes vigentes.
func (uc *SettingsUseCase) Current() entity.Settings { return uc.live.Get() }

// Subscribe avisa de cada cambio efectivo de ajustes.
func (uc *SettingsUseCase) Subscribe(fn func(entity.Settings)) (unsubscribe func()) {
	return uc.live.Subscribe(fn)
}

// Get ajustes vigentes en formato de API.
func (uc *SettingsUseCase) Get(ctx context.Context) dto.SettingsDTO {
	return toSettingsDTO(uc.live.Get())
}

// Update valida y guarda los ajustes.
func (uc *SettingsUseCase) Update(ctx context.Context, actorID string, in dto.SettingsDTO) (dto.SettingsDTO, error) {
	cost, err := decimal.NewFromString(in.MealCost)
	if err != nil || cost.IsNegative() {
		return dto.SettingsDTO{}, domain.Invalidf("meal_cost debe ser un número mayor o igual a 0")
	}
	if in.WorkingDays != entity.WorkingDaysShort && in.WorkingDays != entity.WorkingDaysFull {
		return dto.SettingsDTO{}, domain.Invalidf("working_days debe ser 5 o 7")
	}
	sh, sm, err := dates.ParseClock(in.WindowStart)
	if err != nil {
		return dto.SettingsDTO{}, domain.Invalidf("window_start: %v", err)
	}
	eh, em, err := dates.ParseClock(in.WindowEnd)
	if err != nil {
		return dto.SettingsDTO{}, domain.Invalidf("window_end: %v", err)
	}
	s := entity.Settings{
		MealCost:              cost,
		WorkingDays:           in.WorkingDays,
		WindowStartOffsetDays: in.WindowStartOffsetDays,
		WindowStartHour:       sh,
		WindowStartMinute:     sm,
		WindowEndOffsetDays:   in.WindowEndOffsetDays,
		WindowEndHour:         eh,
		WindowEndMinute:       em,
		UpdatedBy:             actorID,
		UpdatedAt:             uc.clock.Now(),
	}
	// la ventana por defecto debe abrir antes de cerrar
	monday := dates.GetMonday(uc.clock.Now())
	start := dates.AtClock(monday.AddDate(0, 0, -s.WindowStartOffsetDays), sh, sm)
	end := dates.AtClock(monday.AddDate(0, 0, -s.WindowEndOffsetDays), eh, em)
	if !start.Before(end) {
		return dto.SettingsDTO{}, domain.Invalidf("la ventana por defecto abre después de cerrar")
	}

	if err := uc.repo.Save(ctx, &s); err != nil {
		return dto.SettingsDTO{}, err
	}
	if uc.live.Set(s) {
		uc.log.Info().Str("actor", actorID).Int("working_days", s.WorkingDays).Str("meal_cost", s.MealCost.String()).Msg("ajustes actualizados")
	}
	return toSettingsDTO(s), nil
}

func toSettingsDTO(s entity.Settings) dto.SettingsDTO {
	return dto.SettingsDTO{
		MealCost:              s.MealCost.StringFixed(2),
		WorkingDays:           s.WorkingDays,
		WindowStart:           fmt.Sprintf("%02d:%02d", s.WindowStartHour, s.WindowStartMinute),
		WindowEnd:             fmt.Sprintf("%02d:%02d", s.WindowEndHour, s.WindowEndMinute),
		WindowStartOffsetDays: s.WindowStartOffsetDays,
		WindowEndOffsetDays:   s.WindowEndOffsetDays,
		UpdatedAt:             s.UpdatedAt,
		UpdatedBy:             s.UpdatedBy,
	}
}
