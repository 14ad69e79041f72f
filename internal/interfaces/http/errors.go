package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// HeaderWarning avisa de lecturas degradadas (ej. nómina no disponible).
const HeaderWarning = "X-Comedor-Warning"

// redirectError error con la ruta a la que debe navegar el cliente.
type redirectError struct {
	err error
	to  string
}

func (e *redirectError) Error() string { return e.err.Error() }
func (e *redirectError) Unwrap() error { return e.err }

func withRedirect(err error, to string) error {
	return &redirectError{err: err, to: to}
}

// StatusFor código HTTP de un AppError.
func StatusFor(app *domain.AppError) int {
	switch app.Code {
	case domain.ErrNotFound.Code, domain.ErrMenuNotFound.Code:
		return fiber.StatusNotFound
	case domain.ErrDuplicate.Code, domain.ErrEmailAlreadyExists.Code,
		domain.ErrConflict.Code, domain.ErrInvalidTransition.Code:
		return fiber.StatusConflict
	case domain.ErrTooManyAttempts.Code:
		return fiber.StatusTooManyRequests
	case domain.ErrUserDisabled.Code:
		return fiber.StatusForbidden
	}
	switch app.Category {
	case domain.CategoryValidation, domain.CategoryUI:
		return fiber.StatusBadRequest
	case domain.CategoryAuth:
		return fiber.StatusUnauthorized
	case domain.CategoryPermission:
		return fiber.StatusForbidden
	case domain.CategoryBusiness:
		return fiber.StatusUnprocessableEntity
	case domain.CategoryNetwork:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler traductor central: cualquier error que devuelva un handler o middleware
// sale como dto.ErrorResponse con el mensaje en el idioma del cliente.
func NewErrorHandler(tr *i18n.Translator, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			app := domain.ErrInvalidInput
			switch {
			case fe.Code == fiber.StatusNotFound:
				app = domain.ErrNotFound
			case fe.Code >= fiber.StatusInternalServerError:
				app = domain.NewError(domain.CategoryUnknown, "UNKNOWN", fe.Message)
			}
			locale := GetLocale(c, tr)
			return c.Status(fe.Code).JSON(dto.ErrorResponse{
				Code:     app.Code,
				Category: string(app.Category),
				Severity: string(app.Severity),
				Message:  tr.Message(locale, app.Code, nil),
				Detail:   fe.Message,
			})
		}

		app := domain.AsAppError(err)
		status := StatusFor(app)
		resp := dto.ErrorResponse{
			Code:     app.Code,
			Category: string(app.Category),
			Severity: string(app.Severity),
			Message:  tr.Message(GetLocale(c, tr), app.Code, app.Params),
		}
		if app.Category == domain.CategoryValidation && app.Message != domain.ErrInvalidInput.Message {
			resp.Detail = app.Message
		}
		var re *redirectError
		switch {
		case errors.As(err, &re):
			resp.Redirect = re.to
		case app.Category == domain.CategoryAuth:
			resp.Redirect = access.LoginPath
		}

		ev := log.Warn()
		switch app.Severity {
		case domain.SeverityError, domain.SeverityCritical:
			ev = log.Error()
		case domain.SeverityInfo:
			ev = log.Info()
		}
		ev.Err(err).
			Str("category", string(app.Category)).
			Str("severity", string(app.Severity)).
			Str("code", app.Code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("error en petición")

		return c.Status(status).JSON(resp)
	}
}
