package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wordway/wordway-api/internal/api"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/service/flashcard"
)

// MockFlashcardService is a mock implementation of the flashcard.Service
// interface
type MockFlashcardService struct {
	mock.Mock
}

func (m *MockFlashcardService) Start(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) (*domain.LearningSession, error) {
	args := m.Called(ctx, userID, wordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) ListActive(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.LearningSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) Pause(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) Resume(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) RecordAnswer(
	ctx context.Context,
	userID, sessionID, wordID uuid.UUID,
	answer domain.AnswerType,
	timeSpentSec int,
) (*domain.LearningSession, error) {
	args := m.Called(ctx, userID, sessionID, wordID, answer, timeSpentSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningSession), args.Error(1)
}

func (m *MockFlashcardService) Complete(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*flashcard.SessionSummary, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flashcard.SessionSummary), args.Error(1)
}

func (m *MockFlashcardService) Cancel(ctx context.Context, userID, sessionID uuid.UUID) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func newFlashcardRouter(svc *MockFlashcardService) chi.Router {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewFlashcardHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/flashcards", handler.Start)
	r.Get("/flashcards", handler.ListActive)
	r.Get("/flashcards/{id}", handler.Get)
	r.Post("/flashcards/{id}/pause", handler.Pause)
	r.Post("/flashcards/{id}/resume", handler.Resume)
	r.Post("/flashcards/{id}/answers", handler.RecordAnswer)
	r.Post("/flashcards/{id}/complete", handler.Complete)
	r.Delete("/flashcards/{id}", handler.Cancel)
	return r
}

func newLearningSession(t *testing.T, userID uuid.UUID, wordIDs []uuid.UUID) *domain.LearningSession {
	t.Helper()
	session, err := domain.NewLearningSession(userID, wordIDs)
	require.NoError(t, err)
	return session
}

func TestFlashcardStart(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("starts a session", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		wordID := uuid.New()
		session := newLearningSession(t, userID, []uuid.UUID{wordID})
		svc.On("Start", mock.Anything, userID, []uuid.UUID{wordID}).Return(session, nil)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards", userID,
			api.StartFlashcardsRequest{WordIDs: []string{wordID.String()}}))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.FlashcardSessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, string(domain.LearningSessionActive), resp.Status)
		assert.Equal(t, 1, resp.TargetWords)
	})

	t.Run("rejects empty word list", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards", userID,
			api.StartFlashcardsRequest{WordIDs: []string{}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFlashcardAnswer(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	sessionID := uuid.New()
	wordID := uuid.New()

	t.Run("records an answer", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		session := newLearningSession(t, userID, []uuid.UUID{wordID})
		session.CorrectCount = 1
		session.ActualWords = 1
		svc.On("RecordAnswer", mock.Anything, userID, sessionID, wordID, domain.AnswerCorrect, 4).
			Return(session, nil)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/answers", userID,
			api.FlashcardAnswerRequest{WordID: wordID.String(), Answer: "CORRECT", TimeSpentSec: 4}))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.FlashcardSessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp.CorrectCount)
	})

	t.Run("rejects unknown answer type", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/answers", userID,
			api.FlashcardAnswerRequest{WordID: wordID.String(), Answer: "MAYBE"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already answered maps to 409", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		svc.On("RecordAnswer", mock.Anything, userID, sessionID, wordID, domain.AnswerCorrect, 0).
			Return(nil, domain.ErrSessionVocabularyAnswered)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/answers", userID,
			api.FlashcardAnswerRequest{WordID: wordID.String(), Answer: "CORRECT"}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFlashcardLifecycleEndpoints(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("pause returns the updated session", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		session := newLearningSession(t, userID, []uuid.UUID{uuid.New()})
		session.Status = domain.LearningSessionPaused
		svc.On("Pause", mock.Anything, userID, sessionID).Return(session, nil)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/pause", userID, nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.FlashcardSessionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, string(domain.LearningSessionPaused), resp.Status)
	})

	t.Run("resume on expired session maps to 409", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		svc.On("Resume", mock.Anything, userID, sessionID).
			Return(nil, domain.ErrLearningSessionExpired)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/resume", userID, nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("complete returns the summary", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		svc.On("Complete", mock.Anything, userID, sessionID).
			Return(&flashcard.SessionSummary{
				SessionID:    sessionID,
				CorrectCount: 2,
				ActualWords:  2,
				Badges:       []string{"Perfect Score", "No Skip Challenge"},
			}, nil)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodPost, "/flashcards/"+sessionID.String()+"/complete", userID, nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp flashcard.SessionSummary
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Badges, "Perfect Score")
	})

	t.Run("cancel returns no content", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		svc.On("Cancel", mock.Anything, userID, sessionID).Return(nil)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodDelete, "/flashcards/"+sessionID.String(), userID, nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("foreign session maps to 403", func(t *testing.T) {
		t.Parallel()
		svc := new(MockFlashcardService)
		svc.On("Get", mock.Anything, userID, sessionID).
			Return(nil, flashcard.ErrSessionNotOwned)

		w := httptest.NewRecorder()
		newFlashcardRouter(svc).ServeHTTP(w, authedRequest(
			http.MethodGet, "/flashcards/"+sessionID.String(), userID, nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
