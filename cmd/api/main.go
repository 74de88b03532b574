package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Fichajes-api/internal/application/attendance"
	"github.com/jhoicas/Fichajes-api/internal/application/auth"
	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/application/report"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/Fichajes-api/internal/infrastructure/excel"
	infrageo "github.com/jhoicas/Fichajes-api/internal/infrastructure/geo"
	infrapdf "github.com/jhoicas/Fichajes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Fichajes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Fichajes-api/internal/infrastructure/redisbus"
	httpRouter "github.com/jhoicas/Fichajes-api/internal/interfaces/http"
	"github.com/jhoicas/Fichajes-api/pkg/config"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	workerRepo := postgres.NewWorkerRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	sessionRepo := postgres.NewAttendanceRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin él los cambios no se publican pero todo lo demás
	// funciona igual.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Redis.Addr != "" {
		redisPub, err := redisbus.NewPublisher(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, eventos desactivados")
		} else {
			defer redisPub.Close()
			publisher = redisPub
		}
	}

	var geoProvider attendance.GeoProvider
	if cfg.Geo.BaseURL != "" {
		geoProvider = infrageo.NewProvider(cfg.Geo)
	}

	policy := attendance.Policy{
		RequireGPS:          cfg.Attendance.RequireGPS,
		ForgottenCutoffHour: cfg.Attendance.ForgottenCutoffHour,
		AllowMultiProject:   cfg.Attendance.AllowMultiProject,
	}

	attendanceUC := attendance.NewUseCase(
		txRunner, sessionRepo, workerRepo, projectRepo,
		geoProvider, publisher, policy, log,
	)
	authUC := auth.NewUseCase(workerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	workerUC := usecase.NewWorkerUseCase(workerRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, workerRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, publisher, log)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, publisher, log)
	documentUC := usecase.NewDocumentUseCase(documentRepo)

	formatter := report.NewFormatter(cfg.Report.Separator, cfg.Attendance.PrecisionDigits)
	reportUC := report.NewUseCase(
		sessionRepo, workerRepo, projectRepo, taskRepo, documentRepo,
		formatter,
		infraexcel.NewTimesheetGenerator(formatter),
		infrapdf.NewMarotoTimesheetGenerator(formatter),
	)
	dashboardUC := usecase.NewDashboardUseCase(
		sessionRepo, workerRepo, projectRepo, taskRepo, inventoryRepo,
		cfg.Attendance.ForgottenCutoffHour, cfg.Attendance.PrecisionDigits, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		WorkerUC:       workerUC,
		ProjectUC:      projectUC,
		AttendanceUC:   attendanceUC,
		TaskUC:         taskUC,
		InventoryUC:    inventoryUC,
		DocumentUC:     documentUC,
		ReportUC:       reportUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
		HoursPrecision: cfg.Attendance.PrecisionDigits,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
