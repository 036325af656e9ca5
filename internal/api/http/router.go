package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/issue-dashboard/internal/auth"
	"github.com/spec-kit/issue-dashboard/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Issues         *handlers.IssuesHandler
	Workers        *handlers.WorkersHandler
	Session        *handlers.SessionHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/users/register", cfg.Users.Register)
	api.Post("/users/login", cfg.Users.Login)

	// The navigation guard must answer for anonymous sessions too, so
	// authentication is optional here.
	api.Post("/session/navigate", cfg.AuthMiddleware.HandleOptional, cfg.Session.Navigate)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/users/logout", cfg.Users.Logout)
	protected.Get("/users", cfg.Users.List)
	protected.Get("/users/:id", cfg.Users.Get)

	protected.Get("/issues", cfg.Issues.List)
	protected.Get("/issues/:id", cfg.Issues.Get)
	protected.Get("/workers", cfg.Workers.List)
	protected.Get("/statistics", cfg.Stats.Summary)

	managerOnly := protected.Group("", auth.RequireRole(domain.RoleManager))
	managerOnly.Post("/issues", cfg.Issues.Create)
	managerOnly.Put("/issues/:id", cfg.Issues.Update)
	managerOnly.Put("/issues/:id/assign/:workerId", cfg.Issues.Assign)
	managerOnly.Delete("/issues/:id", cfg.Issues.Delete)
	managerOnly.Post("/workers", cfg.Workers.Create)

	// Any authenticated role may resolve; workers close out their own
	// assignments from the worker panel.
	protected.Put("/issues/:id/resolve", cfg.Issues.Resolve)
}
