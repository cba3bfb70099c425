package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/greenstrikas/platform/internal/auth"
	"github.com/greenstrikas/platform/internal/handlers"
	"github.com/greenstrikas/platform/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	demoHandler *handlers.DemoHandler,
	sessions *auth.SessionManager,
) {
	// Rate limiting config for lifecycle endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - the account lifecycle session boundary
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/verify-email", authHandler.VerifyEmail)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/request-password-reset", authHandler.RequestPasswordReset)
		r.Post("/auth/reset-password", authHandler.ResetPassword)
	})

	// Protected routes - dashboard content, session token required
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessions))

		r.Get("/projects", demoHandler.ListProjects)
		r.Get("/ledger/transactions", demoHandler.ListTransactions)
		r.Get("/insights", demoHandler.ListInsights)
		r.Get("/metrics", demoHandler.ListMetrics)
	})
}
