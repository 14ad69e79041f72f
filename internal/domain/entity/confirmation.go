package entity

import "time"

// EmployeeDays días confirmados por un empleado en una semana.
type EmployeeDays struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Days       []Weekday `json:"days"`
}

// Confirmation confirmaciones de una sucursal para una semana. Se sobrescribe completa en cada guardado.
type Confirmation struct {
	ID        string         `json:"id"`
	WeekID    string         `json:"week_id"`
	BranchID  string         `json:"branch_id"`
	Employees []EmployeeDays `json:"employees"`
	UpdatedBy string         `json:"updated_by,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ConfirmationID clave compuesta {weekId}_{branchId}.
func ConfirmationID(weekID, branchID string) string {
	return weekID + "_" + branchID
}

// DaysOf días del empleado; nil si no aparece (equivale a ningún día).
func (c *Confirmation) DaysOf(employeeID string) []Weekday {
	for _, e := range c.Employees {
		if e.EmployeeID == employeeID {
			return e.Days
		}
	}
	return nil
}

// DailyConfirmation proyección plana por fecha y empleado.
type DailyConfirmation struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Confirmed  bool   `json:"confirmed"`
}

// DailyConfirmationID clave {date}_{employeeId}.
func DailyConfirmationID(date, employeeID string) string {
	return date + "_" + employeeID
}
