package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemDTO plato del menú.
type MenuItemDTO struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=300"`
}

// CreateMenuRequest crea el menú en borrador de la semana que contiene WeekStart (YYYY-MM-DD).
// Days acepta claves con o sin tildes ("Miércoles", "miercoles").
type CreateMenuRequest struct {
	WeekStart string                   `json:"week_start" validate:"required"`
	Days      map[string][]MenuItemDTO `json:"days" validate:"omitempty,dive,dive"`
}

// UpdateDayRequest reemplaza los platos de un día.
type UpdateDayRequest struct {
	Items []MenuItemDTO `json:"items" validate:"dive"`
}

// SetWindowRequest ventana de confirmación. Con UseDefault se deriva de los ajustes.
type SetWindowRequest struct {
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
	UseDefault bool       `json:"use_default"`
}

// AttendanceRequest asistencia real registrada por el administrador.
type AttendanceRequest struct {
	ActualAttendees int `json:"actual_attendees" validate:"min=0"`
}

// DayMenuResponse platos de un día con su nombre para mostrar.
type DayMenuResponse struct {
	Day   string        `json:"day"`
	Name  string        `json:"name"`
	Items []MenuItemDTO `json:"items"`
}

// MenuResponse salida de un menú semanal; Days siempre trae los siete días en orden.
type MenuResponse struct {
	ID                 string            `json:"id"`
	Label              string            `json:"label"`
	Status             string            `json:"status"`
	ConfirmStart       *time.Time        `json:"confirm_start,omitempty"`
	ConfirmEnd         *time.Time        `json:"confirm_end,omitempty"`
	Window             string            `json:"window_state"`
	Days               []DayMenuResponse `json:"days"`
	TotalEmployees     int               `json:"total_employees"`
	ConfirmedEmployees int               `json:"confirmed_employees"`
	ActualAttendees    int               `json:"actual_attendees"`
	WasteReduction     decimal.Decimal   `json:"waste_reduction"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// WindowResponse estado de la ventana para quien consulta.
// MessageCode: WINDOW_UNDEFINED, WINDOW_NOT_OPEN, WINDOW_CLOSED o vacío cuando está abierta.
type WindowResponse struct {
	WeekID      string     `json:"week_id"`
	State       string     `json:"state"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Editable    bool       `json:"editable"`
	MessageCode string     `json:"message_code,omitempty"`
	Message     string     `json:"message,omitempty"`
}
