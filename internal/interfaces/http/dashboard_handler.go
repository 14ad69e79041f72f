package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Comedor-api/internal/application/analytics"
)

// DashboardHandler maneja el panel de la semana en curso.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve empleados activos, confirmaciones, ahorro estimado y estado del menú
// de la semana en curso.
// GET /api/dashboard/summary
//
// Para un coordinador las cifras se limitan a su sucursal. Si alguna de las lecturas
// concurrentes falla, la llamada completa responde DASHBOARD_UNAVAILABLE.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	summary, err := h.uc.GetSummary(c.UserContext(), scope)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
