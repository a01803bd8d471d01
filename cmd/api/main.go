package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/factory-api/internal/application/activity"
	appanalytics "github.com/jhoicas/factory-api/internal/application/analytics"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/inventory"
	"github.com/jhoicas/factory-api/internal/application/orders"
	"github.com/jhoicas/factory-api/internal/application/purchasing"
	"github.com/jhoicas/factory-api/internal/application/reports"
	"github.com/jhoicas/factory-api/internal/application/seed"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	infrapdf "github.com/jhoicas/factory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/factory-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/factory-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/factory-api/internal/interfaces/http"
	"github.com/jhoicas/factory-api/pkg/config"
	"github.com/jhoicas/factory-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{AppName: cfg.App.Name})
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	repos := postgres.NewRepositories(pool)
	txRunner := postgres.NewTxRunner(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	generator := identifier.NewGenerator()

	authUC := auth.NewAuthUseCase(repos, txRunner, generator, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seeder := seed.NewSeeder(authUC, txRunner, generator, log)
	if err := seeder.EnsureDefaultUsers(ctx, seed.Passwords{
		Admin:   cfg.Bootstrap.AdminPassword,
		Manager: cfg.Bootstrap.ManagerPassword,
	}); err != nil {
		log.Fatal().Err(err).Msg("usuarios por defecto")
	}

	ledger := inventory.NewStockLedger(txRunner)
	renderers := map[string]reports.Renderer{
		dto.ReportFormatPDF:  infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		dto.ReportFormatXLSX: infraxlsx.NewExcelRenderer(),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Factory API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          usecase.NewUserUseCase(repos, txRunner),
		OrderUC:         orders.NewOrderUseCase(repos, txRunner, generator, log),
		ItemUC:          inventory.NewItemUseCase(repos, txRunner, ledger, generator),
		MaterialUC:      inventory.NewMaterialUseCase(repos, txRunner, ledger, generator),
		PurchaseOrderUC: purchasing.NewPurchaseOrderUseCase(repos, txRunner, generator),
		ActivityUC:      activity.NewQueryUseCase(repos.Activity),
		Recorder:        activity.NewRecorder(repos.Activity, log),
		DashboardUC:     appanalytics.NewDashboardUseCase(analyticsRepo, repos.Activity),
		LookupUC:        appanalytics.NewLookupUseCase(analyticsRepo),
		ReportUC:        reports.NewReportUseCase(repos, renderers),
		Seeder:          seeder,
		Ping:            func(ctx context.Context) error { return postgres.Ping(ctx, pool) },
		AppName:         cfg.App.Name,
		JWTSecret:       cfg.JWT.Secret,
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
