package routes

import (
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/config"
	"github.com/bolokisan/fieldforce-backend/internal/handlers"
	"github.com/bolokisan/fieldforce-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	activityHandler *handlers.ActivityHandler,
	planHandler *handlers.PlanHandler,
	portfolioHandler *handlers.PortfolioHandler,
	uploadHandler *handlers.UploadHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	youtubeHandler *handlers.YouTubeHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/bootstrap-rbm", userHandler.Bootstrap)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Profile
	api.Get("/users/me", middleware.JWTProtected(cfg), userHandler.Me)
	api.Put("/users/me", middleware.JWTProtected(cfg), userHandler.UpdateMe)

	// Hierarchy
	api.Post("/users", middleware.JWTProtected(cfg), userHandler.Create)
	api.Get("/users/team", middleware.JWTProtected(cfg), userHandler.Team)

	// Activities
	api.Post("/activities", middleware.JWTProtected(cfg), activityHandler.Create)
	api.Get("/activities", middleware.JWTProtected(cfg), activityHandler.List)

	// Daily plans
	api.Post("/dailyplans", middleware.JWTProtected(cfg), planHandler.Create)
	api.Get("/dailyplans", middleware.JWTProtected(cfg), planHandler.List)
	api.Delete("/dailyplans/:id", middleware.JWTProtected(cfg), planHandler.Delete)

	// Portfolio reads are open to every authenticated user
	api.Get("/portfolios", middleware.JWTProtected(cfg), portfolioHandler.List)

	// Uploads and the image proxy
	api.Post("/uploads/presign", middleware.JWTProtected(cfg), uploadHandler.Presign)
	api.Get("/images/*", middleware.JWTProtected(cfg), uploadHandler.Image)

	// Analytics
	api.Get("/analytics/team-stats", middleware.JWTProtected(cfg), analyticsHandler.TeamStats)

	// YouTube pass-through
	api.Get("/youtube/videos", middleware.JWTProtected(cfg), youtubeHandler.Videos)

	// RBM-only management surface
	rbm := api.Group("", middleware.JWTProtected(cfg), middleware.RBMOnly(db))
	rbm.Delete("/users/:id", userHandler.Delete)
	rbm.Put("/activities/:id", activityHandler.Update)
	rbm.Delete("/activities/:id", activityHandler.Delete)
	rbm.Post("/portfolios", portfolioHandler.Create)
	rbm.Put("/portfolios/:id", portfolioHandler.Update)
	rbm.Delete("/portfolios/:id", portfolioHandler.Delete)
	rbm.Post("/admin/cleanup-orphans", adminHandler.CleanupOrphans)
}
