package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/api/shared"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/redact"
	"github.com/wordway/wordway-api/internal/service/review"
)

// WordResponse represents the response data for a vocabulary word
type WordResponse struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Phonetic     string   `json:"phonetic,omitempty"`
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
	Level        string   `json:"level,omitempty"`
	Meanings     []string `json:"meanings"`
}

// QuestionResponse represents one quiz question as shown to the client.
// Correct answers are never serialized; scoring happens server side.
type QuestionResponse struct {
	ID           string   `json:"id"`
	Position     int      `json:"position"`
	Type         string   `json:"type"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`       // Multiple choice only
	ShownMeaning string   `json:"shown_meaning,omitempty"` // True/false only
	Clue         string   `json:"clue,omitempty"`          // Fill-in-blank only
}

// SessionResponse represents a generated review session
type SessionResponse struct {
	ID            string             `json:"id"`
	ItemCount     int                `json:"item_count"`
	TimeLimitSec  int                `json:"time_limit_sec"`
	PassThreshold float64            `json:"pass_threshold"`
	CreatedAt     time.Time          `json:"created_at"`
	Questions     []QuestionResponse `json:"questions"`
}

// AttemptResponse represents an open attempt
type AttemptResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
}

// SubmitAnswerRequest represents the request body for answering a question
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	Answer     string `json:"answer"`
}

// AnswerResponse represents the outcome of a single answered question
type AnswerResponse struct {
	QuestionID string `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
	ScoreDelta int    `json:"score_delta"`
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.ReviewService, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// GetReviewWords handles GET /review/words requests. An optional ?limit=
// query parameter caps the number of words returned.
func (h *ReviewHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := domain.MaxSessionWords
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	words, err := h.reviewService.SelectReviewWords(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]WordResponse, len(words))
	for i, word := range words {
		response[i] = wordToResponse(word)
	}

	log.Debug("review words selected",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateSessionRequest represents the request body for generating a session
type CreateSessionRequest struct {
	// WordIDs optionally pins the session to specific words. When empty the
	// due-word selection picks them.
	WordIDs []string `json:"word_ids"`
}

// CreateSession handles POST /review/sessions requests
func (h *ReviewHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	wordIDs := make([]uuid.UUID, 0, len(req.WordIDs))
	for _, raw := range req.WordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
			return
		}
		wordIDs = append(wordIDs, id)
	}

	session, err := h.reviewService.BuildReviewSession(r.Context(), userID, wordIDs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review session created",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("item_count", session.ItemCount))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// StartAttempt handles POST /review/sessions/{id}/attempts requests
func (h *ReviewHandler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	attempt, err := h.reviewService.StartAttempt(r.Context(), userID, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("attempt started",
		slog.String("user_id", userID.String()),
		slog.String("attempt_id", attempt.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, attemptToResponse(attempt))
}

// SubmitAnswer handles POST /attempts/{id}/answers requests
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, attemptID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	result, err := h.reviewService.SubmitAnswer(r.Context(), userID, attemptID, questionID, req.Answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("answer submitted",
		slog.String("attempt_id", attemptID.String()),
		slog.String("question_id", questionID.String()),
		slog.Bool("correct", result.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		QuestionID: result.QuestionID.String(),
		IsCorrect:  result.IsCorrect,
		ScoreDelta: result.ScoreDelta,
	})
}

// FinalizeAttempt handles POST /attempts/{id}/finalize requests
func (h *ReviewHandler) FinalizeAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, attemptID, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	summary, err := h.reviewService.FinalizeAttempt(r.Context(), userID, attemptID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("attempt finalized",
		slog.String("user_id", userID.String()),
		slog.String("attempt_id", attemptID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the auth middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserAndPathID extracts the authenticated user ID and a UUID path
// parameter, writing an error response and returning false if either is
// missing or malformed.
func requireUserAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	raw := chi.URLParam(r, paramName)
	pathID, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// wordToResponse converts a domain.Word to a WordResponse
func wordToResponse(word *domain.Word) WordResponse {
	meanings := make([]string, len(word.Glosses))
	for i, gloss := range word.Glosses {
		meanings[i] = gloss.Meaning
	}

	return WordResponse{
		ID:           word.ID.String(),
		Text:         word.Text,
		Phonetic:     word.Phonetic,
		PartOfSpeech: word.PartOfSpeech,
		Level:        word.Level,
		Meanings:     meanings,
	}
}

// sessionToResponse converts a domain.ReviewSession to a SessionResponse,
// stripping everything that would give the answers away.
func sessionToResponse(session *domain.ReviewSession) SessionResponse {
	questions := make([]QuestionResponse, len(session.Questions))
	for i := range session.Questions {
		questions[i] = questionToResponse(&session.Questions[i])
	}

	return SessionResponse{
		ID:            session.ID.String(),
		ItemCount:     session.ItemCount,
		TimeLimitSec:  session.TimeLimitSec,
		PassThreshold: session.PassThreshold,
		CreatedAt:     session.CreatedAt,
		Questions:     questions,
	}
}

// questionToResponse converts one question to its client view.
func questionToResponse(q *domain.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:       q.ID.String(),
		Position: q.Position,
		Type:     string(q.Type),
	}

	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		resp.Prompt = q.MultipleChoice.Prompt
		resp.Options = q.MultipleChoice.Options
	case domain.QuestionTypeTrueFalse:
		resp.Prompt = q.TrueFalse.Prompt
		resp.ShownMeaning = q.TrueFalse.ShownMeaning
	case domain.QuestionTypeFillInBlank:
		resp.Prompt = q.FillInBlank.Prompt
		resp.Clue = q.FillInBlank.Clue
	}

	return resp
}

// attemptToResponse converts a domain.Attempt to an AttemptResponse
func attemptToResponse(attempt *domain.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:        attempt.ID.String(),
		SessionID: attempt.SessionID.String(),
		StartedAt: attempt.StartedAt,
		Score:     attempt.Score,
		MaxScore:  attempt.MaxScore,
	}
}
