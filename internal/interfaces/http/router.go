package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Comedor-api/internal/application/analytics"
	"github.com/jhoicas/Comedor-api/internal/application/auth"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	MenuUC         *usecase.MenuUseCase
	ConfirmationUC *usecase.ConfirmationUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	BranchUC       *usecase.BranchUseCase
	UserUC         *usecase.UserUseCase
	SettingsUC     *usecase.SettingsUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ReportUC       *usecase.ReportUseCase
	Translator     *i18n.Translator
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	const (
		admin       = entity.RoleAdmin
		coordinator = entity.RoleCoordinator
		employee    = entity.RoleEmployee
	)
	api := app.Group("/api", Locale(deps.Translator))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/session", authHandler.Session)
	authGroup.Get("/check", OptionalAuth(deps.AuthUC), authHandler.Check)
	authGroup.Post("/logout", OptionalAuth(deps.AuthUC), authHandler.Logout)

	// Rutas protegidas: token + sesión + usuario activo; CSRF en escrituras
	protected := api.Group("/", AuthMiddleware(deps.AuthUC), CSRFMiddleware())
	protected.Get("/auth/me", authHandler.Me)

	// Menús
	menuHandler := NewMenuHandler(deps.MenuUC, deps.Translator)
	menus := protected.Group("/menus")
	menus.Get("/", RequireRole(admin), menuHandler.List)
	menus.Post("/", RequireRole(admin), menuHandler.Create)
	menus.Get("/upcoming", RequireRole(admin, coordinator, employee), menuHandler.Upcoming)
	menus.Get("/:weekId", RequireRole(admin, coordinator, employee), menuHandler.Get)
	menus.Get("/:weekId/window", RequireRole(admin, coordinator, employee), menuHandler.Window)
	menus.Put("/:weekId/days/:day", RequireRole(admin), menuHandler.UpdateDay)
	menus.Put("/:weekId/window", RequireRole(admin), menuHandler.SetWindow)
	menus.Post("/:weekId/publish", RequireRole(admin), menuHandler.Publish)
	menus.Post("/:weekId/archive", RequireRole(admin), menuHandler.Archive)
	menus.Put("/:weekId/attendance", RequireRole(admin), menuHandler.Attendance)

	// Confirmaciones
	confirmationHandler := NewConfirmationHandler(deps.ConfirmationUC, deps.Translator)
	confirmations := protected.Group("/confirmations", RequireRole(coordinator, admin))
	confirmations.Get("/daily", confirmationHandler.Daily)
	confirmations.Get("/:weekId/export.csv", confirmationHandler.Export)
	confirmations.Get("/:weekId", confirmationHandler.Page)
	confirmations.Post("/:weekId/summary", confirmationHandler.Summary)
	confirmations.Put("/:weekId", confirmationHandler.Save)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.Log)
	employees := protected.Group("/employees", RequireRole(admin, coordinator))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/export.csv", employeeHandler.Export)
	employees.Post("/import", employeeHandler.Import)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Patch("/:id/active", employeeHandler.SetActive)
	employees.Delete("/:id", employeeHandler.Delete)

	// Sucursales (el coordinador solo consulta la suya)
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := protected.Group("/branches")
	branches.Get("/", RequireRole(admin, coordinator), branchHandler.List)
	branches.Post("/", RequireRole(admin), branchHandler.Create)
	branches.Get("/:id", RequireRole(admin, coordinator), branchHandler.GetByID)
	branches.Put("/:id", RequireRole(admin), branchHandler.Update)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(admin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/password-reset", userHandler.PasswordReset)

	// Ajustes
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", RequireRole(admin, coordinator), settingsHandler.Get)
	protected.Put("/settings", RequireRole(admin), settingsHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", RequireRole(admin, coordinator), dashboardHandler.GetSummary)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/weeks/:file", RequireRole(admin), reportHandler.Weekly)
}
