package dto

import "time"

// CreateUserRequest alta de usuario; la contraseña va al proveedor de autenticación.
// Role acepta alias (administrador, coordinador, empleado).
type CreateUserRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=150"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required"`
	BranchID    string   `json:"branch_id"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest cambios parciales de un usuario.
type UpdateUserRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Role        *string  `json:"role"`
	BranchID    *string  `json:"branch_id"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	BranchID    string    `json:"branch_id,omitempty"`
	Permissions []string  `json:"permissions"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}
