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
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/stockmaster-api/docs"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/seed"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	infraai "github.com/jhoicas/stockmaster-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Msg("starting application")

	// Prices go over the wire as JSON numbers, as the web client expects.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, zl)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer backend.Close()

	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, zl)
	productUC := usecase.NewProductUseCase(backend.Products, backend.TxRunner, spreadsheet.NewProductCodec(), zl)
	operationUC := inventory.NewOperationUseCase(backend.TxRunner, backend.Operations, backend.Products, zl)
	movementUC := inventory.NewStockMovementUseCase(backend.Movements)
	replenishmentUC := inventory.NewReplenishmentUseCase(backend.Products)

	llm := infraai.NewFromConfig(cfg.AI)
	insightsUC := usecase.NewInsightsUseCase(llm, replenishmentUC)

	if cfg.Admin.Enabled() {
		if _, err := authUC.SeedAdmin(ctx, cfg.Admin.FullName, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Error().Err(err).Msg("seed admin user")
		}
	}
	if cfg.Seed {
		if _, err := seed.Demo(ctx, backend.TxRunner, zl); err != nil {
			log.Error().Err(err).Msg("seed demo data")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(zl),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(zl))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.ClientOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockMaster API",
	}))

	var pinger httpRouter.Pinger
	if backend.Pinger != nil {
		pinger = backend.Pinger
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       productUC,
		OperationUC:     operationUC,
		MovementUC:      movementUC,
		ReplenishmentUC: replenishmentUC,
		InsightsUC:      insightsUC,
		Slips:           infrapdf.NewSlipGenerator(cfg.App.Name),
		Health:          httpRouter.NewHealthHandler(backend.Driver, pinger),
		JWTSecret:       cfg.JWT.Secret,
		Cookie: httpRouter.CookieOptions{
			Secure: cfg.Cookie.Secure,
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
