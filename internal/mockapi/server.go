// Package mockapi assembles the reference backend: the fiber application
// serving the ticketing API the console talks to.
package mockapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-console/internal/api/http"
	"github.com/spec-kit/ticket-console/internal/api/http/handlers"
	"github.com/spec-kit/ticket-console/internal/auth"
	"github.com/spec-kit/ticket-console/internal/config"
	"github.com/spec-kit/ticket-console/internal/observability"
	"github.com/spec-kit/ticket-console/internal/persistence"
	"github.com/spec-kit/ticket-console/internal/repository"
	"github.com/spec-kit/ticket-console/internal/service"
)

// Options configures New. A nil Store selects the in-memory repositories.
type Options struct {
	Config   config.Config
	Store    *repository.Store
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Postgres *persistence.Postgres
	Redis    *redis.Client
}

// Server is an assembled backend.
type Server struct {
	App     *fiber.App
	Auth    *service.AuthService
	Store   *repository.Store
	Metrics *observability.Metrics
	logger  *zap.Logger
}

// New wires repositories, services, handlers and routes into a fiber app.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	store := opts.Store
	if store == nil {
		store = repository.NewMemoryStore()
	}

	authService := service.NewAuthService(opts.Config.Auth, store.Users)
	categoryService := service.NewCategoryService(store.Categories)
	ticketService := service.NewTicketService(store.Tickets, store.Categories)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store.Users)

	app := fiber.New(fiber.Config{
		AppName:               opts.Config.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(opts.Config.App.Name, opts.Config.App.Version, opts.Postgres, opts.Redis),
		Users:          handlers.NewUsersHandler(authService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	return &Server{App: app, Auth: authService, Store: store, Metrics: metrics, logger: logger}
}

// SeedAdmin creates the configured admin account when an email and
// password are set.
func (s *Server) SeedAdmin(ctx context.Context, cfg config.MockAPIConfig) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	admin, err := s.Auth.SeedAdmin(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	s.logger.Info("admin account ready", zap.Int("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
