package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
)

// ReportHandler descarga del reporte semanal.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Weekly godoc
// @Summary      Reporte semanal de confirmaciones
// @Description  El formato sale de la extensión: /api/reports/weeks/2026-10-19.pdf o .xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        file  path  string  true  "Semana con extensión"
// @Success      200   {file}  file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/weeks/{file} [get]
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	name := c.Params("file")
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return domain.Invalidf("se espera {semana}.pdf o {semana}.xlsx")
	}
	out, err := h.uc.Weekly(c.UserContext(), name[:dot], name[dot+1:])
	if err != nil {
		return err
	}
	return sendFile(c, out.Filename, out.ContentType, out.Data)
}
