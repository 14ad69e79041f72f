package dto

// ErrorResponse cuerpo de error HTTP. Code es estable (ej. WINDOW_CLOSED); Message ya está traducido.
type ErrorResponse struct {
	Code     string `json:"code"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message"`
	Detail   string `json:"detail,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// RedirectResponse respuesta que indica al cliente a dónde navegar.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// ListResponse envoltura de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la envoltura; nunca devuelve items nil.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
