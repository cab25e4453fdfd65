// The taskverse worker sweeps tasks for due-date reminders and logs the
// notifications. Deduplication is per process; a restart starts a fresh
// sweep, matching how reminder toasts behave per session.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/config"
	"github.com/taskverse/taskverse/internal/infrastructure/persistence/postgres"
	"github.com/taskverse/taskverse/internal/reminder"
	"github.com/taskverse/taskverse/pkg/observability"
)

const serviceName = "taskverse-worker"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTelemetry, err := observability.Setup(ctx, serviceName, "1.0.0", cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown telemetry", "error", err)
		}
	}()

	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
		DSN:            cfg.PostgresURL,
		MaxConns:       cfg.PostgresMaxConn,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	slog.InfoContext(ctx, "starting reminder worker", "interval", cfg.ReminderInterval)

	watcher := reminder.NewWatcher(store, reminder.LogNotifier{}, clock.System{}, cfg.ReminderInterval)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("reminder watcher failed: %w", err)
	}
	return nil
}
