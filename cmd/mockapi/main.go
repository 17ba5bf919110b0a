package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/config"
	"github.com/spec-kit/ticket-console/internal/mockapi"
	"github.com/spec-kit/ticket-console/internal/observability"
	"github.com/spec-kit/ticket-console/internal/persistence"
	"github.com/spec-kit/ticket-console/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, "stdout")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repository.NewMemoryStore()
	pg, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
	switch {
	case errors.Is(err, persistence.ErrNoDSN):
		logger.Info("POSTGRES_DSN not set; using in-memory store")
	case err != nil:
		logger.Fatal("failed to connect postgres", zap.Error(err))
	default:
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, repository.Migrations(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresStore(pg.Pool)
	}

	var rdb *redis.Client
	if cfg.Session.Store == config.SessionStoreRedis {
		rdb, err = persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable; continuing without it", zap.Error(err))
		} else {
			defer rdb.Close()
		}
	}

	server := mockapi.New(mockapi.Options{
		Config:   *cfg,
		Store:    store,
		Logger:   logger,
		Postgres: pg,
		Redis:    rdb,
	})
	if err := server.SeedAdmin(ctx, cfg.MockAPI); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	go func() {
		logger.Info("reference backend listening", zap.String("addr", cfg.MockAPI.Addr()))
		if err := server.App.Listen(cfg.MockAPI.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.App.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
