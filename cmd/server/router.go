package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordway/wordway-api/internal/api"
	apiMiddleware "github.com/wordway/wordway-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.flashcardService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Quiz review endpoints
			r.Get("/review/words", reviewHandler.GetReviewWords)
			r.Post("/review/sessions", reviewHandler.CreateSession)
			r.Post("/review/sessions/{id}/attempts", reviewHandler.StartAttempt)
			r.Post("/attempts/{id}/answers", reviewHandler.SubmitAnswer)
			r.Post("/attempts/{id}/finalize", reviewHandler.FinalizeAttempt)

			// Flashcard session endpoints
			r.Post("/flashcards", flashcardHandler.Start)
			r.Get("/flashcards", flashcardHandler.ListActive)
			r.Get("/flashcards/{id}", flashcardHandler.Get)
			r.Delete("/flashcards/{id}", flashcardHandler.Cancel)
			r.Post("/flashcards/{id}/pause", flashcardHandler.Pause)
			r.Post("/flashcards/{id}/resume", flashcardHandler.Resume)
			r.Post("/flashcards/{id}/answers", flashcardHandler.RecordAnswer)
			r.Post("/flashcards/{id}/complete", flashcardHandler.Complete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
