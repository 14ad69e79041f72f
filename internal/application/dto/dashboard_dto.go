package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary para la semana en curso.
// Para un coordinador las cifras se limitan a su sucursal.
type DashboardSummaryDTO struct {
	WeekID        string               `json:"week_id"`
	WeekLabel     string               `json:"week_label"`
	Employees     EmployeeStatsDTO     `json:"employees"`
	Confirmations ConfirmationStatsDTO `json:"confirmations"`
	Menu          MenuStatusDTO        `json:"menu"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// EmployeeStatsDTO conteo de empleados.
type EmployeeStatsDTO struct {
	Active   int `json:"active"`
	Branches int `json:"branches"`
}

// ConfirmationStatsDTO totales de confirmación de la semana.
type ConfirmationStatsDTO struct {
	ConfirmedEmployees int             `json:"confirmed_employees"`
	TotalSlots         int             `json:"total_confirmed_slots"`
	BranchesConfirmed  int             `json:"branches_confirmed"`
	BranchesPending    int             `json:"branches_pending"`
	PerDay             []DayCountDTO   `json:"per_day"`
	EstimatedSavings   decimal.Decimal `json:"estimated_savings"`
}

// MenuStatusDTO estado del menú de la semana.
type MenuStatusDTO struct {
	Exists       bool       `json:"exists"`
	Status       string     `json:"status,omitempty"`
	WindowState  string     `json:"window_state"`
	ConfirmStart *time.Time `json:"confirm_start,omitempty"`
	ConfirmEnd   *time.Time `json:"confirm_end,omitempty"`
	ItemCount    int        `json:"item_count"`
}
