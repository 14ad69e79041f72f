package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
)

// ConfirmationHandler confirmaciones semanales de la sucursal. El coordinador opera sobre
// su sucursal; el administrador indica branch_id en la query.
type ConfirmationHandler struct {
	uc *usecase.ConfirmationUseCase
	tr *i18n.Translator
}

// NewConfirmationHandler construye el handler.
func NewConfirmationHandler(uc *usecase.ConfirmationUseCase, tr *i18n.Translator) *ConfirmationHandler {
	return &ConfirmationHandler{uc: uc, tr: tr}
}

// Page godoc
// @Summary      Estado de la pantalla de confirmaciones
// @Description  Menú, ventana, nómina activa, lista guardada, resumen y si se puede editar.
// @Tags         confirmations
// @Security     Bearer
// @Produce      json
// @Param        weekId     path   string  true   "Semana"
// @Param        branch_id  query  string  false  "Sucursal (solo administrador)"
// @Success      200        {object}  dto.ConfirmationPageResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/confirmations/{weekId} [get]
func (h *ConfirmationHandler) Page(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Page(c.UserContext(), scope, c.Query("branch_id"), c.Params("weekId"))
	if err != nil {
		return err
	}
	localizeWindow(c, h.tr, &out.Window)
	if len(out.Warnings) > 0 {
		c.Set(HeaderWarning, strings.Join(out.Warnings, ","))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Vista previa del resumen
// @Description  Calcula el resumen de la lista enviada sin guardarla.
// @Tags         confirmations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        weekId     path   string                        true   "Semana"
// @Param        branch_id  query  string                        false  "Sucursal (solo administrador)"
// @Param        body       body   dto.SaveConfirmationsRequest  true   "Lista de empleados y días"
// @Success      200        {object}  dto.SummaryResponse
// @Router       /api/confirmations/{weekId}/summary [post]
func (h *ConfirmationHandler) Summary(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	var in dto.SaveConfirmationsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Preview(c.UserContext(), scope, c.Query("branch_id"), c.Params("weekId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar confirmaciones
// @Description  Reemplaza la lista completa de la sucursal. Solo con la ventana abierta.
// @Tags         confirmations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        weekId     path   string                        true   "Semana"
// @Param        branch_id  query  string                        false  "Sucursal (solo administrador)"
// @Param        body       body   dto.SaveConfirmationsRequest  true   "Lista de empleados y días"
// @Success      200        {object}  dto.SaveConfirmationsResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      422        {object}  dto.ErrorResponse
// @Router       /api/confirmations/{weekId} [put]
func (h *ConfirmationHandler) Save(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	var in dto.SaveConfirmationsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetUserID(c), scope, c.Query("branch_id"), c.Params("weekId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Confirmaciones de un día
// @Tags         confirmations
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  true   "Fecha (YYYY-MM-DD)"
// @Param        branch_id  query  string  false  "Sucursal (solo administrador)"
// @Success      200        {object}  dto.ListResponse[dto.DailyConfirmationResponse]
// @Router       /api/confirmations/daily [get]
func (h *ConfirmationHandler) Daily(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Daily(c.UserContext(), scope, c.Query("branch_id"), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewList(out))
}

// Export godoc
// @Summary      Exportar confirmaciones de la semana a CSV
// @Tags         confirmations
// @Security     Bearer
// @Produce      text/csv
// @Param        weekId     path   string  true   "Semana"
// @Param        branch_id  query  string  false  "Sucursal (solo administrador)"
// @Success      200        {file}  file
// @Router       /api/confirmations/{weekId}/export.csv [get]
func (h *ConfirmationHandler) Export(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	data, filename, err := h.uc.ExportCSV(c.UserContext(), scope, c.Query("branch_id"), c.Params("weekId"))
	if err != nil {
		return err
	}
	return sendFile(c, filename, csvContentType, data)
}

const csvContentType = "text/csv; charset=utf-8"

func sendFile(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
