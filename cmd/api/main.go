package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Comedor-api/docs"
	appanalytics "github.com/jhoicas/Comedor-api/internal/application/analytics"
	"github.com/jhoicas/Comedor-api/internal/application/auth"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/bootstrap"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/Comedor-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/Comedor-api/internal/interfaces/http"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/i18n"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("auth", cfg.Auth.Provider).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria inválida")
	}
	clock := usecase.SystemClock(loc)

	ctx := context.Background()
	infra, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backends")
	}
	defer infra.Close()

	menuRepo := documents.NewMenuRepository(infra.Store)
	employeeRepo := documents.NewEmployeeRepository(infra.Store)
	branchRepo := documents.NewBranchRepository(infra.Store)
	confirmationRepo := documents.NewConfirmationRepository(infra.Store)
	userRepo := documents.NewUserRepository(infra.Store)
	settingsRepo := documents.NewSettingsRepository(infra.Store)

	provider, err := infra.AuthProvider(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de identidad")
	}
	notifier, err := infra.Notifier(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("notificador FCM")
	}
	publisher, err := events.New(ctx, cfg, infra.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("publicador de eventos")
	}
	defer publisher.Close()

	translator, err := i18n.New(cfg.App.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogos de mensajes")
	}

	defaults, err := usecase.DefaultsFromConfig(cfg.Comedor)
	if err != nil {
		log.Fatal().Err(err).Msg("ajustes por defecto")
	}
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, defaults, clock, log.Named("settings"))
	if _, err := settingsUC.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar ajustes")
	}
	settingsLog := log.Named("settings")
	unsubscribe := settingsUC.Subscribe(func(s entity.Settings) {
		settingsLog.Info().
			Str("meal_cost", s.MealCost.StringFixed(2)).
			Int("working_days", s.WorkingDays).
			Str("updated_by", s.UpdatedBy).
			Msg("ajustes actualizados")
	})
	defer unsubscribe()

	evaluator := newEvaluator(log)
	csv := spreadsheet.CSVEncoder{}

	menuUC := usecase.NewMenuUseCase(menuRepo, settingsUC, evaluator, publisher, notifier, clock, log.Named("menus"))
	confirmationUC := usecase.NewConfirmationUseCase(confirmationRepo, menuRepo, employeeRepo, settingsUC,
		evaluator, publisher, csv, clock, log.Named("confirmations"))
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, branchRepo, documents.NewTxRunner(infra.Store),
		spreadsheet.RosterParser{}, csv, clock, log.Named("employees"))
	branchUC := usecase.NewBranchUseCase(branchRepo, userRepo, clock, log.Named("branches"))
	userUC := usecase.NewUserUseCase(userRepo, branchRepo, provider, clock, log.Named("users"))
	dashboardUC := appanalytics.NewDashboardUseCase(employeeRepo, branchRepo, confirmationRepo, menuRepo,
		settingsUC, evaluator, clock, log.Named("dashboard"))
	reportUC := usecase.NewReportUseCase(menuRepo, branchRepo, employeeRepo, confirmationRepo, settingsUC, clock,
		log.Named("reports"), infrapdf.NewMarotoReportRenderer(), spreadsheet.XLSXReportRenderer{})
	authUC := auth.NewAuthUseCase(provider, userRepo, infra.SessionStore(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: time.Duration(cfg.Session.TTLMinutes) * time.Minute,
	}, nil, log.Named("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 << 20,
		ErrorHandler: httpRouter.NewErrorHandler(translator, log.Named("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Accept-Language, Authorization, " + httpRouter.HeaderCSRF,
		ExposeHeaders: "Content-Disposition, " + httpRouter.HeaderWarning,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comedor Grupo Avika API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		MenuUC:         menuUC,
		ConfirmationUC: confirmationUC,
		EmployeeUC:     employeeUC,
		BranchUC:       branchUC,
		UserUC:         userUC,
		SettingsUC:     settingsUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		Translator:     translator,
		Log:            log.Named("http"),
	})

	bgCtx, stopBackground := context.WithCancel(ctx)
	go runArchiver(bgCtx, menuUC, time.Duration(cfg.Comedor.ArchiveIntervalMin)*time.Minute, log.Named("archiver"))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runArchiver avanza el ciclo de vida de los menús al arrancar y luego cada interval.
func runArchiver(ctx context.Context, menus *usecase.MenuUseCase, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	tick := func() {
		n, err := menus.AdvanceLifecycle(ctx)
		if err != nil {
			log.Error().Err(err).Msg("avanzar ciclo de vida de menús")
			return
		}
		if n > 0 {
			log.Info().Int("menus", n).Msg("menús actualizados")
		}
	}
	tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
