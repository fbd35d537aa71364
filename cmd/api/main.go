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

	"github.com/jhoicas/taller-api/internal/application/analytics"
	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/application/ledger"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/seed"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner      ports.TxRunner
		analyticsRepo repository.AnalyticsRepository
	)
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		if _, err := seed.Run(ctx, store, seed.Options{
			AdminPassword:  cfg.Seed.AdminPassword,
			MasterPassword: cfg.Seed.MasterPassword,
			SampleData:     cfg.Seed.SampleData,
		}, nil); err != nil {
			log.Fatal().Err(err).Msg("seed del store en memoria")
		}
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		txRunner, analyticsRepo = store, store
	default:
		if cfg.DB.AutoMigrate {
			version, err := postgres.Migrate(cfg.DB.ConnectionString())
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Uint("version", version).Msg("esquema al día")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
	}

	authUC := auth.NewAuthUseCase(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	receiptUC := billing.NewReceiptUseCase(txRunner, infrapdf.NewReceiptGenerator(), cfg.App.Name, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (sólo si existe el swagger.json generado)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Taller API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		OrderUC:     ledger.NewOrderUseCase(txRunner, nil),
		WorkUC:      ledger.NewWorkUseCase(txRunner, nil),
		PartUC:      ledger.NewPartUseCase(txRunner, nil),
		ExpenseUC:   ledger.NewExpenseUseCase(txRunner, nil),
		CommentUC:   ledger.NewCommentUseCase(txRunner, nil),
		AuditUC:     appaudit.NewUseCase(txRunner),
		ReceiptUC:   receiptUC,
		UserUC:      usecase.NewUserUseCase(txRunner, nil),
		ServiceUC:   usecase.NewServiceUseCase(txRunner, nil),
		AnalyticsUC: analytics.NewUseCase(analyticsRepo, nil),
		JWTSecret:   cfg.JWT.Secret,
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
