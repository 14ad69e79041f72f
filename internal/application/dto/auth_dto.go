package dto

import "time"

// LoginRequest entrada para login con email y contraseña.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionExchangeRequest canjea un ID token de Firebase obtenido en el cliente por una sesión.
type SessionExchangeRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginResponse token de sesión, token CSRF y página inicial del rol.
type LoginResponse struct {
	Token     string       `json:"token"`
	CSRFToken string       `json:"csrf_token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Redirect  string       `json:"redirect"`
	User      UserResponse `json:"user"`
}

// AuthCheckResponse decisión de acceso para una sección (GRANTED, REDIRECT_LOGIN, REDIRECT_OWN_DASHBOARD).
type AuthCheckResponse struct {
	Decision string        `json:"decision"`
	Redirect string        `json:"redirect,omitempty"`
	User     *UserResponse `json:"user,omitempty"`
}

// PasswordResetResponse enlace de restablecimiento generado por el proveedor.
type PasswordResetResponse struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}
