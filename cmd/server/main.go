// Package main implements the entry point for the Wordway API server,
// which tracks vocabulary learning progress with a Leitner scheduler and
// serves quiz review and flashcard sessions over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run database migrations and exit (up, down, status)",
	)
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "wordway-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application together and either runs
// the requested migration command or starts the HTTP server.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database connection", "error", err)
			}
		}()
		return runMigrations(db, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		// The application owns db cleanup only once construction succeeds.
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return app.Run(ctx)
}
