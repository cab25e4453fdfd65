// The taskverse server serves the task management API: tasks with search and
// statistics, workspaces, notes, schedules, templates, AI tag suggestion and
// account export.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/taskverse/taskverse/internal/ai"
	"github.com/taskverse/taskverse/internal/application/export"
	"github.com/taskverse/taskverse/internal/application/note"
	"github.com/taskverse/taskverse/internal/application/schedule"
	"github.com/taskverse/taskverse/internal/application/task"
	"github.com/taskverse/taskverse/internal/application/template"
	"github.com/taskverse/taskverse/internal/application/workspace"
	"github.com/taskverse/taskverse/internal/auth"
	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/config"
	httpserver "github.com/taskverse/taskverse/internal/infrastructure/http"
	"github.com/taskverse/taskverse/internal/infrastructure/http/handler"
	"github.com/taskverse/taskverse/internal/infrastructure/persistence/postgres"
	"github.com/taskverse/taskverse/internal/storage/fs"
	"github.com/taskverse/taskverse/internal/storage/gcs"
	"github.com/taskverse/taskverse/pkg/observability"
)

const serviceName = "taskverse-server"

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

	slog.InfoContext(ctx, "starting taskverse server", "env", cfg.Env)

	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
		DSN:            cfg.PostgresURL,
		MaxConns:       cfg.PostgresMaxConn,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	slog.InfoContext(ctx, "storage initialized", "url", maskPassword(cfg.PostgresURL))

	blobStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	clk := clock.System{}
	taskService := task.NewService(store, clk)
	workspaceService := workspace.NewService(store, clk)
	noteService := note.NewService(store, clk)
	scheduleService := schedule.NewService(store)
	templateService := template.NewService(store, clk)
	exportService := export.NewService(blobStore, store, store, store, clk)
	tagClient := ai.NewClient(ai.Config{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	})

	api := handler.NewAPI(taskService, workspaceService, noteService,
		scheduleService, templateService, exportService, tagClient)

	server := httpserver.NewAPIServer(api.Routes(), auth.NewVerifier(cfg.AuthSecret), httpserver.ServerConfig{
		Port:         cfg.HTTPPort,
		MaxBodyBytes: cfg.MaxBodyBytes,
		CORSOrigins:  splitOrigins(cfg.CORSOrigins),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// newBlobStore picks the export backend from config: local filesystem for
// development, GCS for production.
func newBlobStore(ctx context.Context, cfg *config.Config) (export.BlobStore, error) {
	switch cfg.StorageType {
	case "gcs":
		return gcs.NewStore(ctx, cfg.GCSBucket)
	default:
		return fs.NewStore(cfg.FSDir)
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// maskPassword hides credentials in a connection URL for logging.
func maskPassword(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "<unparseable>"
	}
	if _, has := u.User.Password(); has {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
