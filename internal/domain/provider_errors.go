package domain

import "strings"

// ProviderError error con el código crudo del proveedor de autenticación o del almacén
// (ej. INVALID_PASSWORD, auth/user-not-found, permission-denied).
type ProviderError struct {
	Provider string
	Code     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Code + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Code
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrInvalidCredentials) sobre un ProviderError.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	app := e.AppError()
	return app.Category == t.Category && app.Code == t.Code
}

// AppError traduce el código del proveedor a la taxonomía de la aplicación.
func (e *ProviderError) AppError() *AppError {
	code := strings.ToUpper(strings.TrimSpace(e.Code))
	// Identity Toolkit agrega detalle: "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled..."
	if i := strings.Index(code, " "); i > 0 {
		code = code[:i]
	}
	if app, ok := providerCodes[code]; ok {
		return app.WithCause(e)
	}
	return NewError(CategoryUnknown, "UNKNOWN", "error inesperado").WithCause(e)
}

var providerCodes = map[string]*AppError{
	"INVALID_PASSWORD":            ErrInvalidCredentials,
	"EMAIL_NOT_FOUND":             ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredentials,
	"INVALID_EMAIL":               ErrInvalidCredentials,
	"INVALID_ID_TOKEN":            ErrSessionExpired,
	"TOKEN_EXPIRED":               ErrSessionExpired,
	"AUTH/WRONG-PASSWORD":         ErrInvalidCredentials,
	"AUTH/USER-NOT-FOUND":         ErrInvalidCredentials,
	"AUTH/INVALID-CREDENTIAL":     ErrInvalidCredentials,
	"AUTH/INVALID-EMAIL":          ErrInvalidCredentials,
	"AUTH/ID-TOKEN-EXPIRED":       ErrSessionExpired,
	"AUTH/ID-TOKEN-REVOKED":       ErrSessionExpired,
	"USER_DISABLED":               ErrUserDisabled,
	"AUTH/USER-DISABLED":          ErrUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
	"AUTH/TOO-MANY-REQUESTS":      ErrTooManyAttempts,
	"EMAIL_EXISTS":                ErrEmailAlreadyExists,
	"AUTH/EMAIL-ALREADY-IN-USE":   ErrEmailAlreadyExists,
	"AUTH/EMAIL-ALREADY-EXISTS":   ErrEmailAlreadyExists,
	"WEAK_PASSWORD":               ErrWeakPassword,
	"AUTH/WEAK-PASSWORD":          ErrWeakPassword,
	"AUTH/NETWORK-REQUEST-FAILED": ErrUnavailable,
	"PERMISSION-DENIED":           ErrForbidden,
	"PERMISSION_DENIED":           ErrForbidden,
	"UNAVAILABLE":                 ErrUnavailable,
	"DEADLINE-EXCEEDED":           ErrUnavailable,
	"NOT-FOUND":                   ErrNotFound,
	"NOT_FOUND":                   ErrNotFound,
	"ALREADY-EXISTS":              ErrDuplicate,
}
