package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/department-enricher/internal/api/http/handlers"
	"github.com/spec-kit/department-enricher/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Enrich         *handlers.EnrichHandler
	Departments    *handlers.DepartmentHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	app.Post("/auth/token", cfg.Auth.Token)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle)
	v1.Post("/enrich", cfg.Enrich.Enrich)
	v1.Get("/runs", cfg.Enrich.ListRuns)
	v1.Get("/unknown-codes", cfg.Enrich.ListUnknownCodes)
	v1.Get("/departments", cfg.Departments.List)
	v1.Get("/departments/:code", cfg.Departments.Get)
}
