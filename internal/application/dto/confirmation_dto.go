package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeDaysDTO días confirmados de un empleado.
type EmployeeDaysDTO struct {
	EmployeeID string   `json:"employee_id" validate:"required"`
	Name       string   `json:"name,omitempty"`
	Days       []string `json:"days"`
}

// SaveConfirmationsRequest lista completa de la sucursal; reemplaza la guardada.
type SaveConfirmationsRequest struct {
	Employees []EmployeeDaysDTO `json:"employees" validate:"dive"`
}

// DayCountDTO confirmaciones de un día.
type DayCountDTO struct {
	Day   string `json:"day"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SummaryResponse resumen vivo de confirmaciones.
type SummaryResponse struct {
	RosterSize         int             `json:"roster_size"`
	WorkingDays        int             `json:"working_days"`
	ConfirmedEmployees int             `json:"confirmed_employees"`
	TotalSlots         int             `json:"total_confirmed_slots"`
	PerDay             []DayCountDTO   `json:"per_day"`
	MealCost           decimal.Decimal `json:"meal_cost"`
	EstimatedSavings   decimal.Decimal `json:"estimated_savings"`
}

// ConfirmationPageResponse todo lo que necesita la pantalla de confirmaciones del coordinador.
type ConfirmationPageResponse struct {
	WeekID        string             `json:"week_id"`
	Label         string             `json:"label"`
	BranchID      string             `json:"branch_id"`
	Menu          *MenuResponse      `json:"menu"`
	Window        WindowResponse     `json:"window"`
	Days          []DayCountDTO      `json:"days"`
	Employees     []EmployeeResponse `json:"employees"`
	Confirmations []EmployeeDaysDTO  `json:"confirmations"`
	Summary       SummaryResponse    `json:"summary"`
	Editable      bool               `json:"editable"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
	UpdatedBy     string             `json:"updated_by,omitempty"`
	// Warnings avisos de carga parcial (ej. la nómina no se pudo leer y se muestra vacía).
	Warnings []string `json:"warnings,omitempty"`
}

// SaveConfirmationsResponse resultado del guardado.
type SaveConfirmationsResponse struct {
	ID        string          `json:"id"`
	WeekID    string          `json:"week_id"`
	BranchID  string          `json:"branch_id"`
	Summary   SummaryResponse `json:"summary"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DailyConfirmationResponse proyección plana {date}_{employeeId}.
type DailyConfirmationResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Confirmed  bool   `json:"confirmed"`
}
