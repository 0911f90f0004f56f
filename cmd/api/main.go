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

	appanalytics "github.com/jhoicas/epi-estoque/internal/application/analytics"
	"github.com/jhoicas/epi-estoque/internal/application/inventory"
	"github.com/jhoicas/epi-estoque/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/epi-estoque/internal/interfaces/http"
	"github.com/jhoicas/epi-estoque/pkg/config"
	"github.com/jhoicas/epi-estoque/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	inflowRepo := postgres.NewInflowRepository(pool)
	outflowRepo := postgres.NewOutflowRepository(pool, cfg.Ledger.CanceledStatus)
	personRepo := postgres.NewPersonRepository(pool)

	stockUC := inventory.NewStockUseCase(materialRepo, inflowRepo, outflowRepo, log, cfg.Ledger.QueryTimeout)
	dashboardUC := appanalytics.NewDashboardUseCase(materialRepo, inflowRepo, outflowRepo, personRepo, log, appanalytics.Options{
		TopMaterials: cfg.Ledger.TopMaterials,
		QueryTimeout: cfg.Ledger.QueryTimeout,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Ledger.QueryTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "EPI Estoque API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		StockUC:     stockUC,
		DashboardUC: dashboardUC,
		Ready:       postgres.Readiness(pool),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
