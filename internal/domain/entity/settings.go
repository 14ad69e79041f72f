package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID id del único documento de configuración.
const SettingsID = "general"

// Settings parámetros del comedor editables por el administrador.
type Settings struct {
	MealCost              decimal.Decimal `json:"meal_cost"`
	WorkingDays           int             `json:"working_days"`
	WindowStartOffsetDays int             `json:"window_start_offset_days"`
	WindowStartHour       int             `json:"window_start_hour"`
	WindowStartMinute     int             `json:"window_start_minute"`
	WindowEndOffsetDays   int             `json:"window_end_offset_days"`
	WindowEndHour         int             `json:"window_end_hour"`
	WindowEndMinute       int             `json:"window_end_minute"`
	UpdatedBy             string          `json:"updated_by,omitempty"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// DefaultSettings jueves 16:10 a sábado 10:00 antes de la semana, 5 días, costo 50.
func DefaultSettings() Settings {
	return Settings{
		MealCost:              decimal.NewFromInt(50),
		WorkingDays:           WorkingDaysShort,
		WindowStartOffsetDays: 4,
		WindowStartHour:       16,
		WindowStartMinute:     10,
		WindowEndOffsetDays:   2,
		WindowEndHour:         10,
		WindowEndMinute:       0,
	}
}

// Equal compara los parámetros efectivos, ignorando metadatos de auditoría.
func (s Settings) Equal(o Settings) bool {
	return s.MealCost.Equal(o.MealCost) &&
		s.WorkingDays == o.WorkingDays &&
		s.WindowStartOffsetDays == o.WindowStartOffsetDays &&
		s.WindowStartHour == o.WindowStartHour &&
		s.WindowStartMinute == o.WindowStartMinute &&
		s.WindowEndOffsetDays == o.WindowEndOffsetDays &&
		s.WindowEndHour == o.WindowEndHour &&
		s.WindowEndMinute == o.WindowEndMinute
}
