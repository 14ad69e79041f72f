package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyReport datos del reporte semanal que renderizan los generadores PDF y XLSX.
type WeeklyReport struct {
	WeekID      string
	Label       string
	MenuStatus  string
	GeneratedAt time.Time
	MealCost    decimal.Decimal
	Days        []DayCountDTO // días confirmables, en orden
	Branches    []BranchReport
	Totals      SummaryResponse
}

// BranchReport confirmaciones de una sucursal.
type BranchReport struct {
	BranchID string
	Name     string
	Summary  SummaryResponse
	Rows     []ReportRow
}

// ReportRow fila por empleado; Confirmed va alineado con WeeklyReport.Days.
type ReportRow struct {
	EmployeeID string
	Name       string
	Position   string
	Confirmed  []bool
	Total      int
}
