package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/application/auth"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	infranotify "github.com/jhoicas/Maquila-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Maquila-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Maquila-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Maquila-api/internal/interfaces/http"
	"github.com/jhoicas/Maquila-api/pkg/config"
	"github.com/jhoicas/Maquila-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "aplicar migraciones y salir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.Migrate || *migrateOnly {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if *migrateOnly {
			return
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	taxRate, err := decimal.NewFromString(cfg.Maquila.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Maquila.DefaultTaxRate).Msg("MAQUILA_DEFAULT_TAX_RATE inválido")
	}
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("APP_TIMEZONE inválido")
	}

	notifier, err := infranotify.New(ctx, cfg.Notify, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Notify.Driver).Msg("canal de notificaciones")
	}
	defer notifier.Close()

	// Lecturas y bitácora sobre el pool; las escrituras van por TxRunner.
	repos := postgres.NewRepos(pool, pool)
	txRunner := postgres.NewTxRunner(pool)
	emitter := audit.NewEmitter(repos.Activity, log.Zerolog())

	core := maquila.NewCore(repos, txRunner, emitter, notifier, maquila.Settings{
		OrderPrefix:              cfg.Maquila.OrderPrefix,
		InvoicePrefix:            cfg.Maquila.InvoicePrefix,
		DefaultTaxRate:           taxRate,
		RequireProductionQuality: cfg.Maquila.RequireProductionQuality,
		Location:                 loc,
	}, log.Zerolog())

	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, emitter, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Maquila API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    maquila.NewCompanyUseCase(core),
		UserUC:       maquila.NewUserUseCase(core),
		ClientUC:     maquila.NewClientUseCase(core),
		OrderUC:      maquila.NewOrderUseCase(core),
		ToastingUC:   maquila.NewToastingUseCase(core),
		ProductionUC: maquila.NewProductionUseCase(core),
		InvoiceUC:    maquila.NewInvoiceUseCase(core, infrapdf.NewMarotoPDFGenerator()),
		ActivityUC:   maquila.NewActivityUseCase(core),
		JWTSecret:    cfg.JWT.Secret,
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
