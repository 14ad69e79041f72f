package entity

import "time"

// Employee comensal de una sucursal.
type Employee struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	BranchID            string    `json:"branch_id"`
	Position            string    `json:"position,omitempty"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	Active              bool      `json:"active"`
	CreatedBy           string    `json:"created_by,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
