package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Comedor-api/internal/interfaces/http"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCSRF = "csrf-de-prueba"

// fakeAuth acepta tokens "tok-<rol>" y rechaza cualquier otro como sesión expirada.
type fakeAuth struct{}

func (fakeAuth) Authenticate(ctx context.Context, token string) (*access.Principal, *entity.Session, error) {
	role, ok := strings.CutPrefix(token, "tok-")
	if !ok {
		return nil, nil, domain.ErrSessionExpired
	}
	p := &access.Principal{UserID: "u-" + role, Role: role, SessionID: "s-" + role}
	if role == entity.RoleCoordinator {
		p.BranchID = "centro"
	}
	return p, &entity.Session{ID: p.SessionID, UserID: p.UserID, Role: role, CSRFToken: testCSRF}, nil
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New("es")
	require.NoError(t, err)
	return tr
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - CSRFMiddleware en las escrituras
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, allowedRoles ...string) *fiber.App {
	tr := newTranslator(t)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(tr, logger.Nop())})
	handler := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":   true,
			"role": apphttp.GetRole(c),
			"uid":  apphttp.GetUserID(c),
		})
	}
	chain := []fiber.Handler{apphttp.Locale(tr), apphttp.AuthMiddleware(fakeAuth{}), apphttp.CSRFMiddleware(), apphttp.RequireRole(allowedRoles...)}
	app.Get("/protected", append(chain, handler)...)
	app.Post("/protected", append(chain, handler)...)
	return app
}

// tokenForRole encabezado Authorization para el rol indicado.
func tokenForRole(role string) string {
	return "Bearer tok-" + role
}

// doRequest lanza una petición a /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, method, authHeader string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, tokenForRole("admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "u-admin", body["uid"])
}

func TestRequireRole_AliasDelRolRequerido(t *testing.T) {
	app := buildTestApp(t, "Administrador", "coordinador")
	resp := doRequest(t, app, http.MethodGet, tokenForRole("coordinator"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "los alias se normalizan antes de comparar")
}

func TestRequireRole_CoordinadorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, tokenForRole("coordinator"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "/coordinador/dashboard.html", body["redirect"], "se redirige al panel propio")
}

func TestRequireRole_RolDesconocido_Retorna403AlLogin(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, tokenForRole("cocinero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, access.LoginPath, decodeMap(t, resp)["redirect"])
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Equal(t, access.LoginPath, body["redirect"])
	assert.Equal(t, "Inicia sesión para continuar.", body["message"])
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decodeMap(t, resp)["code"])
}

func TestRequireRole_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, "tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CSRF e idioma
// ──────────────────────────────────────────────────────────────────────────────

func TestCSRF_EscrituraSinToken_Retorna403(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodPost, tokenForRole("admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CSRF_INVALID", decodeMap(t, resp)["code"])
}

func TestCSRF_TokenIncorrecto_Retorna403(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodPost, tokenForRole("admin"), apphttp.HeaderCSRF, "otro")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCSRF_TokenCorrecto_Pasa(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodPost, tokenForRole("admin"), apphttp.HeaderCSRF, testCSRF)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCSRF_LecturasNoLoExigen(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, tokenForRole("admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLocale_MensajeEnIngles(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, http.MethodGet, "", "Accept-Language", "en-US,en;q=0.9")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "en", resp.Header.Get("Content-Language"))
	assert.Equal(t, "Please sign in to continue.", decodeMap(t, resp)["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ErrorHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_TraduceConParametros(t *testing.T) {
	tr := newTranslator(t)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(tr, logger.Nop())})
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.ErrMenuIncomplete.WithParams(map[string]any{"Days": "Jueves, Viernes"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "BUSINESS", body["category"])
	assert.Contains(t, body["message"], "Jueves, Viernes")
}

func TestErrorHandler_ErrorDesconocido_Retorna500(t *testing.T) {
	tr := newTranslator(t)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(tr, logger.Nop())})
	app.Get("/", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "UNKNOWN", body["code"])
	assert.Equal(t, "Ocurrió un error inesperado.", body["message"])
}

func TestErrorHandler_RutaInexistente_Retorna404(t *testing.T) {
	tr := newTranslator(t)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(tr, logger.Nop())})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, resp)["code"])
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  *domain.AppError
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrEmailAlreadyExists, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrWindowClosed, http.StatusUnprocessableEntity},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrUserDisabled, http.StatusForbidden},
		{domain.ErrCSRF, http.StatusForbidden},
		{domain.ErrUnavailable, http.StatusServiceUnavailable},
		{domain.ErrDatabase, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apphttp.StatusFor(tc.err), tc.err.Code)
	}
}
