package dto

import "time"

// SettingsDTO ajustes del comedor. MealCost es un decimal en texto; las horas van en HH:MM.
type SettingsDTO struct {
	MealCost              string    `json:"meal_cost" validate:"required,numeric"`
	WorkingDays           int       `json:"working_days" validate:"oneof=5 7"`
	WindowStart           string    `json:"window_start" validate:"required"`
	WindowEnd             string    `json:"window_end" validate:"required"`
	WindowStartOffsetDays int       `json:"window_start_offset_days" validate:"min=0,max=14"`
	WindowEndOffsetDays   int       `json:"window_end_offset_days" validate:"min=0,max=14"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
	UpdatedBy             string    `json:"updated_by,omitempty"`
}
