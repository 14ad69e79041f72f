package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// WarningEmployeesUnavailable la lista de empleados no se pudo leer y se respondió vacía.
const WarningEmployeesUnavailable = "EMPLOYEES_UNAVAILABLE"

// maxImportSize tamaño máximo del archivo de nómina.
const maxImportSize = 5 << 20

// EmployeeHandler maneja la nómina de empleados (protegido).
type EmployeeHandler struct {
	uc  *usecase.EmployeeUseCase
	log *logger.Logger
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar empleados
// @Description  Si la lectura falla responde una lista vacía con el encabezado X-Comedor-Warning.
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (el coordinador solo ve la suya)"
// @Param        active     query  bool    false  "Solo activos"
// @Success      200        {object}  dto.ListResponse[dto.EmployeeResponse]
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), scope, c.Query("branch_id"), c.QueryBool("active", false))
	if err != nil {
		if !errors.Is(err, domain.ErrDatabase) {
			return err
		}
		h.log.Warn().Err(err).Str("branch_id", c.Query("branch_id")).Msg("listar empleados: se responde vacío")
		c.Set(HeaderWarning, WarningEmployeesUnavailable)
		out = nil
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	var in dto.CreateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), scope, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	var in dto.UpdateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del empleado"
// @Param        body  body  dto.SetActiveRequest  true  "active"
// @Success      200   {object}  dto.EmployeeResponse
// @Router       /api/employees/{id}/active [patch]
func (h *EmployeeHandler) SetActive(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	var in dto.SetActiveRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetActive(c.UserContext(), scope, c.Params("id"), *in.Active)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar nómina (xlsx o csv)
// @Tags         employees
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Archivo .xlsx o .csv"
// @Param        branch_id  formData  string  false  "Sucursal (solo administrador)"
// @Success      200        {object}  dto.ImportResult
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/employees/import [post]
func (h *EmployeeHandler) Import(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.Invalidf("file es requerido")
	}
	if fh.Size > maxImportSize {
		return domain.Invalidf("el archivo supera %d MB", maxImportSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Invalidf("no se pudo leer el archivo")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Invalidf("no se pudo leer el archivo")
	}
	branchID := c.FormValue("branch_id", c.Query("branch_id"))
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), scope, branchID, fh.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar empleados a CSV
// @Tags         employees
// @Security     Bearer
// @Produce      text/csv
// @Param        branch_id  query  string  false  "Sucursal (solo administrador)"
// @Success      200        {file}  file
// @Router       /api/employees/export.csv [get]
func (h *EmployeeHandler) Export(c *fiber.Ctx) error {
	scope, err := scopeOf(c)
	if err != nil {
		return err
	}
	data, filename, err := h.uc.ExportCSV(c.UserContext(), scope, c.Query("branch_id"))
	if err != nil {
		return err
	}
	return sendFile(c, filename, csvContentType, data)
}
