package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/auth"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// Locals keys de la identidad en Fiber.
const (
	LocalPrincipal = "principal"
	LocalSession   = "session"
	LocalLocale    = "locale"
)

// HeaderCSRF encabezado con el token CSRF de la sesión.
const HeaderCSRF = "X-CSRF-Token"

// authenticator es el contrato mínimo que necesita el middleware. Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Principal, *entity.Session, error)
}

// AuthMiddleware valida el Bearer Token, la sesión del servidor y el usuario, y deja la
// identidad en c.Locals. Cualquier fallo responde 401 con redirección al login.
func AuthMiddleware(a authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		p, sess, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalPrincipal, p)
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// OptionalAuth igual que AuthMiddleware pero sin rechazar la petición: sin sesión válida
// el handler ve una identidad vacía.
func OptionalAuth(a authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, err := bearerToken(c); err == nil {
			if p, sess, err := a.Authenticate(c.UserContext(), token); err == nil {
				c.Locals(LocalPrincipal, p)
				c.Locals(LocalSession, sess)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrUnauthorized
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// RequireRole autoriza por rol (acepta alias). Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 sin identidad, con redirección al login.
//   - 403 con rol distinto, con redirección al panel propio.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		res := access.CheckAny(p, roles...)
		switch res.Decision {
		case access.Granted:
			return c.Next()
		case access.RedirectOwnDashboard:
			return withRedirect(domain.ErrForbidden, res.Redirect)
		default:
			if p == nil {
				return withRedirect(domain.ErrUnauthorized, res.Redirect)
			}
			// identidad válida con un rol que no existe
			return withRedirect(domain.ErrForbidden, res.Redirect)
		}
	}
}

// CSRFMiddleware exige X-CSRF-Token en las peticiones que modifican estado.
func CSRFMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if err := auth.VerifyCSRF(GetSession(c), c.Get(HeaderCSRF)); err != nil {
			return err
		}
		return c.Next()
	}
}

// Locale resuelve el idioma de los mensajes a partir de Accept-Language.
func Locale(tr *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := tr.Match(c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(LocalLocale, locale)
		c.Set(fiber.HeaderContentLanguage, locale)
		return c.Next()
	}
}

// RequestLogger registra cada petición con su estado final y latencia. Los errores de la
// cadena pasan por el ErrorHandler aquí para registrar el estado real.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		ev := log.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid")).
			Msg("petición")
		return nil
	}
}

// GetPrincipal identidad verificada (nil sin sesión).
func GetPrincipal(c *fiber.Ctx) *access.Principal {
	p, _ := c.Locals(LocalPrincipal).(*access.Principal)
	return p
}

// GetSession sesión del servidor de la petición (nil sin sesión).
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.UserID
	}
	return ""
}

// GetRole rol canónico vigente del usuario.
func GetRole(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}

// GetLocale idioma resuelto por Locale; sin el middleware se calcula al vuelo.
func GetLocale(c *fiber.Ctx, tr *i18n.Translator) string {
	if l, ok := c.Locals(LocalLocale).(string); ok && l != "" {
		return l
	}
	return tr.Match(c.Get(fiber.HeaderAcceptLanguage))
}

// scopeOf sucursal a la que se limita la petición: vacío para el administrador, la propia
// para un coordinador. Un coordinador sin sucursal no ve nada.
func scopeOf(c *fiber.Ctx) (string, error) {
	p := GetPrincipal(c)
	if p == nil {
		return "", domain.ErrUnauthorized
	}
	switch p.Role {
	case entity.RoleAdmin:
		return "", nil
	case entity.RoleCoordinator:
		if p.BranchID == "" {
			return "", domain.ErrForbidden
		}
		return p.BranchID, nil
	default:
		return "", withRedirect(domain.ErrForbidden, access.DashboardFor(p.Role))
	}
}
