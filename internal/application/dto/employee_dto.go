package dto

import "time"

// CreateEmployeeRequest alta de empleado. Los coordinadores solo pueden usar su sucursal.
type CreateEmployeeRequest struct {
	Name                string `json:"name" validate:"required,max=150"`
	BranchID            string `json:"branch_id"`
	Position            string `json:"position" validate:"max=120"`
	DietaryRestrictions string `json:"dietary_restrictions" validate:"max=300"`
	Active              *bool  `json:"active"`
}

// UpdateEmployeeRequest cambios parciales de un empleado.
type UpdateEmployeeRequest struct {
	Name                *string `json:"name" validate:"omitempty,max=150"`
	Position            *string `json:"position" validate:"omitempty,max=120"`
	DietaryRestrictions *string `json:"dietary_restrictions" validate:"omitempty,max=300"`
	Active              *bool   `json:"active"`
}

// SetActiveRequest activa o desactiva un empleado.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	BranchID            string    `json:"branch_id"`
	Position            string    `json:"position,omitempty"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ImportRowError fila rechazada en la importación.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resultado de importar una nómina.
type ImportResult struct {
	BranchID string           `json:"branch_id"`
	Imported int              `json:"imported"`
	Active   int              `json:"active"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}
