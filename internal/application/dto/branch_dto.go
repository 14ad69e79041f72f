package dto

import "time"

// CreateBranchRequest alta de sucursal.
type CreateBranchRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	CoordinatorID string `json:"coordinator_id"`
}

// UpdateBranchRequest cambios parciales de una sucursal.
type UpdateBranchRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=120"`
	CoordinatorID *string `json:"coordinator_id"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EmployeeCount int       `json:"employee_count"`
	CoordinatorID string    `json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
