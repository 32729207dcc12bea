package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/adapters/cache"
	"rentwise-portal/internal/adapters/http/handlers"
	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/adapters/http/routes"
	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/logger"

	_ "rentwise-portal/docs" // Swagger docs
)

// @title Rentwise Portal API
// @version 1.0
// @description Session, bid, tour and onboarding endpoints of the rental marketplace portal

// @BasePath /api/v1

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description The rw_session cookie set by /auth/callback.

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup flushes logs and closes the database
func run() (err error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return err
	}

	appLog, closer, err := logger.New(logger.Config{
		Level:         cfg.Log.Level,
		JSON:          cfg.IsProd(),
		UseColor:      cfg.IsDev(),
		FluentEnabled: cfg.Log.FluentEnabled,
		FluentHost:    cfg.Log.FluentHost,
		FluentPort:    cfg.Log.FluentPort,
		FluentLevel:   cfg.Log.FluentLevel,
		TagPrefix:     cfg.AppName,
	})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	defer closer.Close()
	defer func() {
		if err != nil {
			appLog.Error("server exited", "error", err)
		}
	}()
	slog.SetDefault(appLog)

	// Connect to database
	db, err := config.ConnectDatabase(cfg, appLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	appLog.Info("database migration completed")

	checks := map[string]handlers.Check{
		"database": func(context.Context) error { return config.HealthCheck() },
	}

	// Listing cache is optional
	var listings cache.Cache = cache.Nop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Redis.URL, cfg.AppName+":")
		if err != nil {
			appLog.Warn("redis unavailable, listing cache disabled", "error", err)
		} else {
			listings = redisCache
			checks["redis"] = redisCache.Ping
			appLog.Info("listing cache enabled", "ttl", cfg.Redis.TTL)
		}
	}
	defer listings.Close()

	market := marketapi.NewClient(cfg.MarketAPI.BaseURL, cfg.MarketAPI.Timeout)
	svc := routes.NewServices(cfg, db, market, listings)

	// Purge expired sessions and abandoned role selections
	cronService, err := services.NewCronService(cfg.Session.PurgeSchedule, appLog, svc.PurgeJobs())
	if err != nil {
		return fmt.Errorf("schedule purge jobs: %w", err)
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: middleware.CustomErrorHandler,
		// room for ten documents at the per-file limit
		BodyLimit: 10*services.MaxDocumentSize + 1<<20,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, appLog)

	// Setup routes
	routes.Setup(app, svc, cfg, checks)

	// Graceful shutdown
	go gracefulShutdown(app, appLog)

	appLog.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode, "market_api", cfg.MarketAPI.BaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("server stopped gracefully")
}
