package main

import (
	"fmt"
	"io"
	"log/slog"

	"fakturierung-local/config"
	"fakturierung-local/controllers"
	"fakturierung-local/database"
	"fakturierung-local/metrics"
	"fakturierung-local/middlewares"
	"fakturierung-local/repository"
	"fakturierung-local/routes"
	"fakturierung-local/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// openStore picks the key/value backend named by STORE_DRIVER. The returned
// closer releases its connection.
func openStore(cfg config.Config) (database.Store, io.Closer, error) {
	switch cfg.StoreDriver {
	case "memory":
		return database.NewMemoryStore(), io.NopCloser(nil), nil
	case "redis":
		s, err := database.NewRedisStore(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		db, err := database.Connect(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database handle: %w", err)
		}
		return database.NewGormStore(db), sqlDB, nil
	}
}

// run serves the API until the listener fails. The store is closed on every
// return path.
func run(cfg config.Config, logger *slog.Logger) error {
	store, closer, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer closer.Close()

	app := newApp(cfg, store, logger)
	logger.Info("API server starting",
		slog.String("port", cfg.Port),
		slog.String("store", cfg.StoreDriver),
	)
	return app.Listen(":" + cfg.Port)
}

// newApp builds the Fiber application around a store.
func newApp(cfg config.Config, store database.Store, logger *slog.Logger) *fiber.App {
	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler:          middlewares.ErrorHandler(logger),
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
	})

	app.Use(metrics.Middleware())

	// ---- Panics become 500s (registered after metrics so they are counted)
	app.Use(recover.New())

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
		}))
	}

	// ---- Routes
	sessions := database.NewSessionStore(store, logger)
	auth := services.NewAuthService(repository.NewUserRepository(store, logger), sessions, logger)
	invoices := controllers.NewInvoiceController(repository.NewInvoiceRepository(store, logger))
	routes.Register(app, auth, invoices)

	return app
}
