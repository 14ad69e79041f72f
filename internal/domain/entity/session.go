package entity

import "time"

// Session sesión del lado del servidor. Reemplaza el almacenamiento de sesión del navegador.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	BranchID  string    `json:"branch_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CSRFToken string    `json:"csrf_token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired indica si la sesión venció en now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
