package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/api/shared"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/redact"
	"github.com/wordway/wordway-api/internal/service/flashcard"
)

// StartFlashcardsRequest represents the request body for starting a
// flashcard session
type StartFlashcardsRequest struct {
	WordIDs []string `json:"word_ids" validate:"required,min=1,dive,uuid"`
}

// FlashcardAnswerRequest represents the request body for answering one
// flashcard
type FlashcardAnswerRequest struct {
	WordID       string `json:"word_id"        validate:"required,uuid"`
	Answer       string `json:"answer"         validate:"required,oneof=CORRECT WRONG SKIP"`
	TimeSpentSec int    `json:"time_spent_sec" validate:"gte=0"`
}

// FlashcardSessionResponse represents a flashcard session
type FlashcardSessionResponse struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	TargetWords  int        `json:"target_words"`
	ActualWords  int        `json:"actual_words"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	SkipCount    int        `json:"skip_count"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FlashcardHandler handles flashcard session HTTP requests
type FlashcardHandler struct {
	flashcardService flashcard.Service
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(flashcardService flashcard.Service, log *slog.Logger) *FlashcardHandler {
	if flashcardService == nil {
		panic("flashcardService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           log.With(slog.String("component", "flashcard_handler")),
	}
}

// Start handles POST /flashcards requests
func (h *FlashcardHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req StartFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	wordIDs := make([]uuid.UUID, len(req.WordIDs))
	for i, raw := range req.WordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
			return
		}
		wordIDs[i] = id
	}

	session, err := h.flashcardService.Start(r.Context(), userID, wordIDs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("flashcard session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, learningSessionToResponse(session))
}

// ListActive handles GET /flashcards requests
func (h *FlashcardHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	sessions, err := h.flashcardService.ListActive(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]FlashcardSessionResponse, len(sessions))
	for i, session := range sessions {
		response[i] = learningSessionToResponse(session)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /flashcards/{id} requests
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	session, err := h.flashcardService.Get(r.Context(), userID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, learningSessionToResponse(session))
}

// Pause handles POST /flashcards/{id}/pause requests
func (h *FlashcardHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.flashcardService.Pause)
}

// Resume handles POST /flashcards/{id}/resume requests
func (h *FlashcardHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.flashcardService.Resume)
}

// RecordAnswer handles POST /flashcards/{id}/answers requests
func (h *FlashcardHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req FlashcardAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	session, err := h.flashcardService.RecordAnswer(
		r.Context(),
		userID,
		sessionID,
		wordID,
		domain.AnswerType(req.Answer),
		req.TimeSpentSec,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("flashcard answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.String("answer", req.Answer))
	shared.RespondWithJSON(w, r, http.StatusOK, learningSessionToResponse(session))
}

// Complete handles POST /flashcards/{id}/complete requests
func (h *FlashcardHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	summary, err := h.flashcardService.Complete(r.Context(), userID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("flashcard session completed",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Cancel handles DELETE /flashcards/{id} requests
func (h *FlashcardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.flashcardService.Cancel(r.Context(), userID, sessionID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyTransition runs a pause/resume style state change and writes the
// updated session.
func (h *FlashcardHandler) applyTransition(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.LearningSession, error),
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	session, err := transition(r.Context(), userID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, learningSessionToResponse(session))
}

// learningSessionToResponse converts a domain.LearningSession to its client
// view.
func learningSessionToResponse(session *domain.LearningSession) FlashcardSessionResponse {
	return FlashcardSessionResponse{
		ID:           session.ID.String(),
		Status:       string(session.Status),
		TargetWords:  session.TargetWords,
		ActualWords:  session.ActualWords,
		CorrectCount: session.CorrectCount,
		WrongCount:   session.WrongCount,
		SkipCount:    session.SkipCount,
		ExpiresAt:    session.ExpiresAt,
		CompletedAt:  session.CompletedAt,
		CreatedAt:    session.CreatedAt,
	}
}
