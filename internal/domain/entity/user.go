package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleEmployee    = "employee"
)

// ValidRole indica si r es un rol canónico.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCoordinator || r == RoleEmployee
}

// User usuario del sistema; el ID es el uid del proveedor de autenticación.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	BranchID    string    `json:"branch_id,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	Active      bool      `json:"active"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Credential hash de contraseña del proveedor local, guardado aparte del usuario.
type Credential struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	UpdatedAt    time.Time `json:"updated_at"`
}
