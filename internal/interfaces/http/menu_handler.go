package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
)

// MenuHandler maneja los menús semanales y su ventana de confirmación.
type MenuHandler struct {
	uc *usecase.MenuUseCase
	tr *i18n.Translator
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase, tr *i18n.Translator) *MenuHandler {
	return &MenuHandler{uc: uc, tr: tr}
}

// List godoc
// @Summary      Listar menús
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estados separados por coma (draft, pending, published, in-progress, completed, archived)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.ListResponse[dto.MenuResponse]
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	var statuses []string
	if s := c.Query("status"); s != "" {
		statuses = strings.Split(s, ",")
	}
	out, err := h.uc.List(c.UserContext(), statuses, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewList(out))
}

// Upcoming godoc
// @Summary      Menús publicados de esta semana y la siguiente
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.MenuResponse]
// @Router       /api/menus/upcoming [get]
func (h *MenuHandler) Upcoming(c *fiber.Ctx) error {
	out, err := h.uc.Upcoming(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener el menú de una semana
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        weekId  path  string  true  "Lunes de la semana (YYYY-MM-DD)"
// @Success      200     {object}  dto.MenuResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/menus/{weekId} [get]
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("weekId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear menú en borrador
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "Semana y platos por día"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDay godoc
// @Summary      Reemplazar los platos de un día
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        weekId  path  string                true  "Semana"
// @Param        day     path  string                true  "Día (lunes, Miércoles, ...)"
// @Param        body    body  dto.UpdateDayRequest  true  "Platos"
// @Success      200     {object}  dto.MenuResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/menus/{weekId}/days/{day} [put]
func (h *MenuHandler) UpdateDay(c *fiber.Ctx) error {
	var in dto.UpdateDayRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateDay(c.UserContext(), c.Params("weekId"), c.Params("day"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetWindow godoc
// @Summary      Definir la ventana de confirmación
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        weekId  path  string                true  "Semana"
// @Param        body    body  dto.SetWindowRequest  true  "Inicio y fin, o use_default"
// @Success      200     {object}  dto.MenuResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/menus/{weekId}/window [put]
func (h *MenuHandler) SetWindow(c *fiber.Ctx) error {
	var in dto.SetWindowRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetWindow(c.UserContext(), c.Params("weekId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Window godoc
// @Summary      Estado de la ventana de confirmación
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        weekId  path  string  true  "Semana"
// @Success      200     {object}  dto.WindowResponse
// @Router       /api/menus/{weekId}/window [get]
func (h *MenuHandler) Window(c *fiber.Ctx) error {
	out, err := h.uc.Window(c.UserContext(), c.Params("weekId"))
	if err != nil {
		return err
	}
	localizeWindow(c, h.tr, out)
	return c.JSON(out)
}

// Publish godoc
// @Summary      Publicar el menú
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        weekId  path  string  true  "Semana"
// @Success      200     {object}  dto.MenuResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/menus/{weekId}/publish [post]
func (h *MenuHandler) Publish(c *fiber.Ctx) error {
	out, err := h.uc.Publish(c.UserContext(), GetUserID(c), c.Params("weekId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar el menú
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        weekId  path  string  true  "Semana"
// @Success      200     {object}  dto.MenuResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/menus/{weekId}/archive [post]
func (h *MenuHandler) Archive(c *fiber.Ctx) error {
	out, err := h.uc.Archive(c.UserContext(), GetUserID(c), c.Params("weekId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Attendance godoc
// @Summary      Registrar la asistencia real
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        weekId  path  string                 true  "Semana"
// @Param        body    body  dto.AttendanceRequest  true  "actual_attendees"
// @Success      200     {object}  dto.MenuResponse
// @Router       /api/menus/{weekId}/attendance [put]
func (h *MenuHandler) Attendance(c *fiber.Ctx) error {
	var in dto.AttendanceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetAttendance(c.UserContext(), c.Params("weekId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// localizeWindow completa el mensaje de la ventana en el idioma del cliente.
func localizeWindow(c *fiber.Ctx, tr *i18n.Translator, w *dto.WindowResponse) {
	if w == nil || w.MessageCode == "" {
		return
	}
	w.Message = tr.Message(GetLocale(c, tr), w.MessageCode, nil)
}
