package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/planloop/planloop-backend/internal/config"
	"github.com/planloop/planloop-backend/internal/database"
	"github.com/planloop/planloop-backend/internal/handlers"
	"github.com/planloop/planloop-backend/internal/logging"
	"github.com/planloop/planloop-backend/internal/middleware"
	"github.com/planloop/planloop-backend/internal/modules"
	"github.com/planloop/planloop-backend/internal/modules/daily"
	"github.com/planloop/planloop-backend/internal/modules/ledger"
	"github.com/planloop/planloop-backend/internal/modules/milestones"
	"github.com/planloop/planloop-backend/internal/modules/queries"
	"github.com/planloop/planloop-backend/internal/modules/todos"
	"github.com/planloop/planloop-backend/internal/modules/vocabulary"
	"github.com/planloop/planloop-backend/internal/routes"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Collection modules
	mods := []modules.Module{
		daily.New(),
		todos.New(),
		vocabulary.New(),
		milestones.New(),
		queries.New(),
		ledger.New(),
	}

	// Migrate module models
	for _, m := range mods {
		if models := m.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(models))
		}
	}

	healthHandler := handlers.NewHealthHandler(database.DB)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, healthHandler, mods)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
