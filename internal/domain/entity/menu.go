package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuStatus estado del ciclo de vida de un menú semanal.
type MenuStatus string

const (
	MenuDraft      MenuStatus = "draft"
	MenuPending    MenuStatus = "pending"
	MenuPublished  MenuStatus = "published"
	MenuInProgress MenuStatus = "in-progress"
	MenuCompleted  MenuStatus = "completed"
	MenuArchived   MenuStatus = "archived"
)

// ValidMenuStatus indica si s es un estado conocido.
func ValidMenuStatus(s MenuStatus) bool {
	switch s {
	case MenuDraft, MenuPending, MenuPublished, MenuInProgress, MenuCompleted, MenuArchived:
		return true
	}
	return false
}

// MenuItem plato del menú de un día.
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DayMenu lista ordenada de platos de un día. Items nunca es nil en un menú normalizado.
type DayMenu struct {
	Items []MenuItem `json:"items"`
}

// WeeklyMenu menú de una semana, identificado por el lunes (YYYY-MM-DD).
type WeeklyMenu struct {
	ID                 string              `json:"id"`
	Status             MenuStatus          `json:"status"`
	ConfirmStart       *time.Time          `json:"confirm_start,omitempty"`
	ConfirmEnd         *time.Time          `json:"confirm_end,omitempty"`
	Days               map[Weekday]DayMenu `json:"days"`
	TotalEmployees     int                 `json:"total_employees"`
	ConfirmedEmployees int                 `json:"confirmed_employees"`
	ActualAttendees    int                 `json:"actual_attendees"`
	WasteReduction     decimal.Decimal     `json:"waste_reduction"`
	CreatedBy          string              `json:"created_by,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// HasWindow indica si el menú tiene ventana de confirmación completa.
func (m *WeeklyMenu) HasWindow() bool {
	return m.ConfirmStart != nil && m.ConfirmEnd != nil
}

// ItemCount total de platos en la semana.
func (m *WeeklyMenu) ItemCount() int {
	n := 0
	for _, d := range m.Days {
		n += len(d.Items)
	}
	return n
}

// Editable indica si el contenido del menú todavía se puede modificar.
func (m *WeeklyMenu) Editable() bool {
	return m.Status != MenuCompleted && m.Status != MenuArchived
}
