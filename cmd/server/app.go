package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wordway/wordway-api/internal/config"
	"github.com/wordway/wordway-api/internal/domain/leitner"
	"github.com/wordway/wordway-api/internal/generation"
	"github.com/wordway/wordway-api/internal/platform/gemini"
	"github.com/wordway/wordway-api/internal/platform/postgres"
	"github.com/wordway/wordway-api/internal/service/auth"
	"github.com/wordway/wordway-api/internal/service/flashcard"
	"github.com/wordway/wordway-api/internal/service/review"
	"github.com/wordway/wordway-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore            store.UserStore
	wordStore            store.WordStore
	progressStore        store.ProgressStore
	sessionStore         store.ReviewSessionStore
	attemptStore         store.AttemptStore
	learningSessionStore store.LearningSessionStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.DistractorGenerator
	leitnerService   leitner.Service
	reviewService    review.ReviewService
	flashcardService flashcard.Service
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

	bcryptCost := cfg.Auth.BCryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost)
	app.wordStore = postgres.NewPostgresWordStore(db)
	app.progressStore = postgres.NewPostgresProgressStore(db)
	app.sessionStore = postgres.NewPostgresReviewSessionStore(db)
	app.attemptStore = postgres.NewPostgresAttemptStore(db)
	app.learningSessionStore = postgres.NewPostgresLearningSessionStore(db)

	// The distractor generator is optional. Without an API key the session
	// builder falls back to sampled glosses and placeholders.
	if cfg.Generation.GeminiAPIKey != "" {
		app.generator, err = gemini.NewGeminiGenerator(ctx, logger, cfg.Generation)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize distractor generator: %w", err)
		}
		logger.Info("Distractor generator initialized", "model", cfg.Generation.ModelName)
	} else {
		logger.Info("No Gemini API key configured, distractor generation disabled")
	}

	app.leitnerService = leitner.NewDefaultService()

	app.reviewService = review.NewReviewService(
		db,
		app.wordStore,
		app.progressStore,
		app.sessionStore,
		app.attemptStore,
		app.leitnerService,
		app.generator,
		logger,
		nil,
	)

	app.flashcardService = flashcard.NewService(
		db,
		app.learningSessionStore,
		app.wordStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
