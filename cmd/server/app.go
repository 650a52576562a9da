package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AymanChabbaki/tutor-MVP/internal/config"
	"github.com/AymanChabbaki/tutor-MVP/internal/generation"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/gemini"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/postgres"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
	"github.com/AymanChabbaki/tutor-MVP/internal/service/auth"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	sessionStore    store.SessionStore
	collectionStore store.CollectionStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	generator         generation.Generator
	userService       service.UserService
	studyService      service.StudyService
	sessionService    service.SessionService
	collectionService service.CollectionService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.sessionStore = postgres.NewPostgresSessionStore(db)
	app.collectionStore = postgres.NewPostgresCollectionStore(db)

	// Content generator
	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize content generator: %w", err)
	}
	logger.Info("Content generator initialized", "model", cfg.LLM.ModelName)

	// Services
	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		db,
		logger,
	)

	app.studyService, err = service.NewStudyService(app.generator, app.sessionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	app.sessionService = service.NewSessionService(app.sessionStore, app.collectionStore, logger)
	app.collectionService = service.NewCollectionService(app.collectionStore, app.sessionStore, logger)

	return app, nil
}

// cleanup releases resources held by the application before shutdown.
func (app *application) cleanup() {
	app.logger.Debug("running application cleanup")
}
