// Package main implements the entry point for the tutor API server,
// which turns course text into AI-generated summaries, explanations,
// and practice exercises for registered students.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/AymanChabbaki/tutor-MVP/internal/config"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run database migrations (up, down, status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations", "Directory containing goose migration files")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database connection", "error", err)
		}
	}()

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, *migrationsDir, appLogger); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName)

	return cfg, appLogger, nil
}
