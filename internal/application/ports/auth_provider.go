package ports

import "context"

// AuthIdentity identidad confirmada por el proveedor de autenticación.
type AuthIdentity struct {
	UID   string
	Email string
}

// AuthProvider puerto de salida hacia el proveedor de identidad (local con bcrypt o Firebase Auth).
// Los errores de credenciales se devuelven como domain.ErrInvalidCredentials o con el código
// del proveedor para que el traductor central los convierta en un mensaje amigable.
type AuthProvider interface {
	Name() string
	// SignIn valida email y contraseña.
	SignIn(ctx context.Context, email, password string) (*AuthIdentity, error)
	// VerifyToken valida un ID token emitido por el proveedor (login del lado del cliente).
	VerifyToken(ctx context.Context, idToken string) (*AuthIdentity, error)
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	// SignOut revoca las sesiones del usuario en el proveedor.
	SignOut(ctx context.Context, uid string) error
	// PasswordResetLink genera el enlace de restablecimiento; solo lo usa el administrador.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
