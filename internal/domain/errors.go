package domain

import (
	"errors"
	"fmt"
)

// Category clasifica los errores que observa el cliente.
type Category string

const (
	CategoryValidation Category = "VALIDATION"
	CategoryNetwork    Category = "NETWORK"
	CategoryAuth       Category = "AUTH"
	CategoryPermission Category = "PERMISSION"
	CategoryDatabase   Category = "DATABASE"
	CategoryUI         Category = "UI"
	CategoryBusiness   Category = "BUSINESS"
	CategoryUnknown    Category = "UNKNOWN"
)

// Severity gravedad asociada a un error.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// AppError error de aplicación con categoría, severidad y código estable.
// El código es la llave de traducción del mensaje amigable.
type AppError struct {
	Category Category
	Severity Severity
	Code     string
	Message  string
	// Params datos para la plantilla del mensaje traducido (ej. Days en MENU_INCOMPLETE).
	Params map[string]any
	cause  error
}

// NewError construye un AppError con la severidad por defecto de su categoría.
func NewError(category Category, code, message string) *AppError {
	return &AppError{Category: category, Severity: defaultSeverity(category), Code: code, Message: message}
}

func (e *AppError) Error() string {
	if e.cause != nil && e.cause.Error() != e.Message {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is / errors.As sobre la causa.
func (e *AppError) Unwrap() error { return e.cause }

// Is compara por categoría y código, así las copias de un sentinel siguen siendo ese sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause devuelve una copia que envuelve cause.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

// WithParams devuelve una copia con datos para el mensaje traducido.
func (e *AppError) WithParams(params map[string]any) *AppError {
	cp := *e
	cp.Params = params
	return &cp
}

// WithSeverity devuelve una copia con otra severidad.
func (e *AppError) WithSeverity(s Severity) *AppError {
	cp := *e
	cp.Severity = s
	return &cp
}

func defaultSeverity(c Category) Severity {
	switch c {
	case CategoryValidation, CategoryBusiness:
		return SeverityWarning
	case CategoryDatabase, CategoryNetwork:
		return SeverityCritical
	default:
		return SeverityError
	}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = NewError(CategoryValidation, "NOT_FOUND", "recurso no encontrado")
	ErrInvalidInput       = NewError(CategoryValidation, "VALIDATION", "entrada inválida")
	ErrDuplicate          = NewError(CategoryValidation, "DUPLICATE", "recurso duplicado")
	ErrEmailAlreadyExists = NewError(CategoryValidation, "EMAIL_EXISTS", "el email ya está registrado")
	ErrUserNotFound       = NewError(CategoryAuth, "USER_NOT_FOUND", "usuario no encontrado")
	ErrUnauthorized       = NewError(CategoryAuth, "UNAUTHORIZED", "no autorizado")
	ErrInvalidCredentials = NewError(CategoryAuth, "INVALID_CREDENTIALS", "credenciales inválidas")
	ErrSessionExpired     = NewError(CategoryAuth, "SESSION_EXPIRED", "sesión expirada")
	ErrTooManyAttempts    = NewError(CategoryAuth, "TOO_MANY_ATTEMPTS", "demasiados intentos")
	ErrUserDisabled       = NewError(CategoryAuth, "USER_DISABLED", "usuario deshabilitado")
	ErrWeakPassword       = NewError(CategoryValidation, "WEAK_PASSWORD", "contraseña débil")
	ErrForbidden          = NewError(CategoryPermission, "FORBIDDEN", "acceso denegado")
	ErrCSRF               = NewError(CategoryPermission, "CSRF_INVALID", "token CSRF inválido")
	ErrConflict           = NewError(CategoryBusiness, "CONFLICT", "conflicto con el estado actual")
	ErrMenuNotFound       = NewError(CategoryBusiness, "MENU_NOT_FOUND", "no hay menú para la semana")
	ErrMenuIncomplete     = NewError(CategoryBusiness, "MENU_INCOMPLETE", "el menú está incompleto")
	ErrInvalidTransition  = NewError(CategoryBusiness, "INVALID_STATUS", "transición de estado no permitida")
	ErrWindowUndefined    = NewError(CategoryBusiness, "WINDOW_UNDEFINED", "no hay ventana de confirmación configurada")
	ErrWindowNotOpen      = NewError(CategoryBusiness, "WINDOW_NOT_OPEN", "la ventana de confirmación aún no abre")
	ErrWindowClosed       = NewError(CategoryBusiness, "WINDOW_CLOSED", "la ventana de confirmación está cerrada")
	ErrNotSupported       = NewError(CategoryBusiness, "NOT_SUPPORTED", "operación no soportada por el proveedor")
	ErrUnavailable        = NewError(CategoryNetwork, "BACKEND_UNAVAILABLE", "servicio no disponible")
	ErrDatabase           = NewError(CategoryDatabase, "DATABASE", "error de base de datos")
	ErrDashboard          = NewError(CategoryDatabase, "DASHBOARD_UNAVAILABLE", "no se pudo cargar el panel")
)

// Invalidf error de validación con detalle; errors.Is(err, ErrInvalidInput) es true.
func Invalidf(format string, args ...any) error {
	return &AppError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Code:     ErrInvalidInput.Code,
		Message:  fmt.Sprintf(format, args...),
		cause:    ErrInvalidInput,
	}
}

// DatabaseError envuelve un fallo del almacén documental.
func DatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return err
	}
	return ErrDatabase.WithCause(fmt.Errorf("%s: %w", op, err))
}

// AsAppError extrae el AppError de la cadena; los errores desconocidos se clasifican como UNKNOWN.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return app
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.AppError()
	}
	return NewError(CategoryUnknown, "UNKNOWN", "error inesperado").WithCause(err)
}
