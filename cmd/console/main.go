// console is the interactive operator console. It signs a user in under a
// chosen role, verifies that role against the backend and opens the
// matching dashboard. The TUI owns the terminal, so logs go to a file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/config"
	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/observability"
	"github.com/spec-kit/ticket-console/internal/persistence"
	"github.com/spec-kit/ticket-console/internal/service"
	"github.com/spec-kit/ticket-console/internal/session"
	"github.com/spec-kit/ticket-console/internal/tui"
	"github.com/spec-kit/ticket-console/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.API.BaseURL, "api-url", cfg.API.BaseURL, "backend base URL")
	flagSet.IntVar(&cfg.API.RequestTimeoutSeconds, "timeout", cfg.API.RequestTimeoutSeconds, "per-request timeout in seconds (0 uses the transport default)")
	flagSet.StringVar(&cfg.Session.Store, "session-store", cfg.Session.Store, "where the token is kept: file or redis")
	flagSet.StringVar(&cfg.Session.FilePath, "session-file", cfg.Session.FilePath, "token file for the file session store")
	flagSet.StringVar(&cfg.Logger.Output, "log-output", cfg.Logger.Output, "log destination (default: console.log next to the session file)")
	flagSet.StringVar(&cfg.Logger.Level, "log-level", cfg.Logger.Level, "log level")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	logDir := filepath.Dir(cfg.Session.FilePath)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, filepath.Join(logDir, "console.log"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openTokenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	audit := service.NewAuditService(dispatcher, logger, 0)
	worker.StartAuditWorker(audit)

	sessions := session.NewManager(store, dispatcher, logger)
	client := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Tokens:  sessions,
		Timeout: cfg.API.RequestTimeout(),
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	})

	model := tui.NewModel(tui.Options{
		Resolver: session.NewResolver(client, sessions, logger),
		Console: console.Deps{
			Client:     client,
			Dispatcher: dispatcher,
			Sessions:   sessions,
			Logger:     logger,
		},
		Activity:      audit,
		Logger:        logger,
		ActionTimeout: actionTimeout(cfg.API),
	})

	logger.Info("console starting", zap.String("api", cfg.API.BaseURL), zap.String("session_store", cfg.Session.Store))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func openTokenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.TokenStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, cfg.Session.RedisKey), func() { _ = rdb.Close() }, nil
	case config.SessionStoreFile:
		return session.NewFileStore(cfg.Session.FilePath), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("invalid session store %q: want %q or %q", cfg.Session.Store, config.SessionStoreFile, config.SessionStoreRedis)
	}
}

// actionTimeout bounds a whole action, which may span two requests (login
// then identity lookup).
func actionTimeout(api config.APIConfig) time.Duration {
	if api.RequestTimeout() == 0 {
		return 0
	}
	return 2 * api.RequestTimeout()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Support ticket operator console.

Pick a role, sign in, and manage users, issue categories and tickets
from the dashboard that role opens. A token from a previous run is
reused until the backend rejects it.

Usage:
  console [flags]

Flags:
%s`, flagSet.FlagUsages())
}
