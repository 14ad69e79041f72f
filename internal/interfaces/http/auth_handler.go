package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/auth"
	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/domain"
)

// AuthHandler maneja login, canje de token, verificación de acceso y logout.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Session godoc
// @Summary      Canjear ID token de Firebase por una sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionExchangeRequest  true  "id_token"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/session [post]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	var in dto.SessionExchangeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Exchange(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Decidir el acceso a una sección
// @Description  GRANTED, REDIRECT_LOGIN o REDIRECT_OWN_DASHBOARD. Sin sesión responde REDIRECT_LOGIN.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  false  "Roles requeridos separados por coma"
// @Success      200   {object}  dto.AuthCheckResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(h.uc.Check(GetPrincipal(c), c.Query("role")))
}

// Me godoc
// @Summary      Perfil del usuario de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return domain.ErrUnauthorized
	}
	out, err := h.uc.Me(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Siempre responde con la redirección al login, aunque la sesión ya no sea válida.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RedirectResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var sessionID, userID string
	if p := GetPrincipal(c); p != nil {
		sessionID, userID = p.SessionID, p.UserID
	}
	return c.JSON(h.uc.Logout(c.UserContext(), sessionID, userID))
}
