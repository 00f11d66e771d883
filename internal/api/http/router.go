package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-agent/internal/api/http/handlers"
	"github.com/spec-kit/support-agent/internal/auth"
	"github.com/spec-kit/support-agent/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Assist         *handlers.AssistHandler
	Priority       *handlers.PriorityHandler
	Directory      *handlers.DirectoryHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Token)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle,
		auth.RequireSubject(domain.SubjectTypeOperator, domain.SubjectTypeService))

	v1.Get("/metrics", cfg.Health.Metrics)
	v1.Post("/assist", cfg.Assist.Assist)
	v1.Post("/priority", cfg.Priority.Determine)
	v1.Get("/docs/search", cfg.Directory.SearchDocs)
	v1.Get("/users/:id", cfg.Directory.GetUser)

	v1.Post("/tickets", cfg.Tickets.CreateTicket)
	v1.Get("/tickets", cfg.Tickets.ListTickets)
	v1.Delete("/tickets", cfg.Tickets.ClearTickets)
	v1.Get("/tickets/:id", cfg.Tickets.GetTicket)
}
