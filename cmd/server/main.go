package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/bolokisan/fieldforce-backend/internal/cache"
	"github.com/bolokisan/fieldforce-backend/internal/config"
	"github.com/bolokisan/fieldforce-backend/internal/database"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/handlers"
	"github.com/bolokisan/fieldforce-backend/internal/logging"
	"github.com/bolokisan/fieldforce-backend/internal/middleware"
	"github.com/bolokisan/fieldforce-backend/internal/routes"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/bolokisan/fieldforce-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.BootstrapSecret == "" {
		slog.Error("BOOTSTRAP_RBM_SECRET environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
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

	// Object storage
	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		slog.Error("object storage init failed", "error", err)
		os.Exit(1)
	}

	// Redis (optional; YouTube response cache degrades to pass-through)
	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed, caching disabled", "error", err)
		}
	}

	// Services
	counterService := services.NewCounterService(database.DB)
	if err := counterService.EnsureCounters(); err != nil {
		slog.Error("counter seed failed", "error", err)
		os.Exit(1)
	}
	mediaService := services.NewMediaService(store)
	userService := services.NewUserService(database.DB, counterService)
	authService := services.NewAuthService(database.DB, cfg)
	hierarchyService := services.NewHierarchyService(database.DB, mediaService)
	accessPolicy := services.NewAccessPolicy(database.DB, hierarchyService)
	activityService := services.NewActivityService(database.DB, mediaService, accessPolicy)
	planService := services.NewPlanService(database.DB, accessPolicy)
	portfolioService := services.NewPortfolioService(database.DB, mediaService)
	analyticsService := services.NewAnalyticsService(database.DB, hierarchyService)
	youtubeService := services.NewYouTubeService(cfg, cacheClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, hierarchyService, cfg)
	activityHandler := handlers.NewActivityHandler(activityService, userService)
	planHandler := handlers.NewPlanHandler(planService, userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	uploadHandler := handlers.NewUploadHandler(mediaService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	youtubeHandler := handlers.NewYouTubeHandler(youtubeService)
	adminHandler := handlers.NewAdminHandler(hierarchyService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
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
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, userHandler, activityHandler, planHandler, portfolioHandler,
		uploadHandler, analyticsHandler, youtubeHandler, adminHandler, healthHandler)

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

	if cacheClient != nil {
		if err := cacheClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

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

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= 500 {
		slog.Error("unhandled request error",
			"status", code,
			"path", c.Path(),
			"method", c.Method(),
			"error", err,
		)
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
