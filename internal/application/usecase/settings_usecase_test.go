package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/pkg/config"
)

func TestSettings_LoadSiembraValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	got := f.settings.Get(context.Background())
	assert.Equal(t, "50.00", got.MealCost)
	assert.Equal(t, 5, got.WorkingDays)
	assert.Equal(t, "16:10", got.WindowStart)
	assert.Equal(t, "10:00", got.WindowEnd)
	assert.Equal(t, "system", got.UpdatedBy)
}

func TestSettings_UpdateNotificaSoloCambios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var seen []entity.Settings
	unsubscribe := f.settings.Subscribe(func(s entity.Settings) { seen = append(seen, s) })
	defer unsubscribe()

	in := dto.SettingsDTO{MealCost: "65.5", WorkingDays: 7, WindowStart: "15:00", WindowEnd: "09:30",
		WindowStartOffsetDays: 4, WindowEndOffsetDays: 2}
	_, err := f.settings.Update(ctx, "admin-1", in)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, 7, seen[0].WorkingDays)
	assert.Equal(t, "65.5", f.settings.Current().MealCost.String())

	// mismos valores: no hay aviso
	_, err = f.settings.Update(ctx, "admin-2", in)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestSettings_UpdateValida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := dto.SettingsDTO{MealCost: "50", WorkingDays: 5, WindowStart: "16:10", WindowEnd: "10:00",
		WindowStartOffsetDays: 4, WindowEndOffsetDays: 2}

	cases := map[string]func(*dto.SettingsDTO){
		"costo negativo":         func(d *dto.SettingsDTO) { d.MealCost = "-1" },
		"días laborables 6":      func(d *dto.SettingsDTO) { d.WorkingDays = 6 },
		"hora inválida":          func(d *dto.SettingsDTO) { d.WindowStart = "25:00" },
		"abre después de cerrar": func(d *dto.SettingsDTO) { d.WindowStartOffsetDays = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := f.settings.Update(ctx, "admin-1", in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%v", err)
		})
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	s, err := usecase.DefaultsFromConfig(config.ComedorConfig{
		MealCost: "42.50", WorkingDays: 9, WindowStart: "17:00", WindowEnd: "11:15",
		WindowStartOffsetDays: 3, WindowEndOffsetDays: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "42.5", s.MealCost.String())
	assert.Equal(t, 5, s.WorkingDays, "cualquier valor distinto de 7 cae a 5")
	assert.Equal(t, 17, s.WindowStartHour)
	assert.Equal(t, 15, s.WindowEndMinute)

	_, err = usecase.DefaultsFromConfig(config.ComedorConfig{MealCost: "abc", WindowStart: "16:10", WindowEnd: "10:00"})
	assert.Error(t, err)
}
