package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscare/complaint-service/internal/api/http/handlers"
	"github.com/campuscare/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-security", cfg.Auth.VerifySecurity)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	complaints := app.Group("/complaints", cfg.AuthMiddleware.Handle)
	complaints.Post("/", cfg.Complaints.Create)
	complaints.Get("/", cfg.Complaints.ListOwn)

	admin := complaints.Group("", auth.RequireAdmin())
	admin.Get("/admin", cfg.Complaints.ListAll)
	admin.Patch("/:id/status", cfg.Complaints.UpdateStatus)
}
