package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-console/internal/api/http/handlers"
	"github.com/spec-kit/ticket-console/internal/auth"
	"github.com/spec-kit/ticket-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authn := cfg.AuthMiddleware.Handle

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", authn, cfg.Users.Me)

	userGroup := app.Group("/user", authn)
	userGroup.Get("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)

	categoryGroup := app.Group("/issue/category", authn)
	categoryGroup.Get("/issue-categories", auth.RequireRole(), cfg.Categories.List)
	categoryGroup.Post("/issue-categories", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Create)
	categoryGroup.Put("/update-category/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Update)
	categoryGroup.Delete("/delete-category/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Delete)

	ticketGroup := app.Group("/tickets", authn)
	ticketGroup.Post("/tickets", auth.RequireRole(domain.RoleCustomer), cfg.Tickets.Create)
	ticketGroup.Get("/tickets", auth.RequireRole(domain.RoleCustomer), cfg.Tickets.ListMine)
}
