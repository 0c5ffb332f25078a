// Package main implements the entry point for the tasktrack API server,
// a minimal task-tracking HTTP service backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/dmcphee/tasktrack/internal/config"
	"github.com/dmcphee/tasktrack/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start tasktrack: %v", err)
	}
}

// run loads configuration, wires up application dependencies, and serves
// HTTP until the process receives a shutdown signal.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"api_prefix", cfg.Server.APIPrefix)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app := newApplication(cfg, appLogger, db)
	defer app.cleanup()

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
