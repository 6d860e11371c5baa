package flashcard

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// flashcardServiceImpl implements the Service interface.
type flashcardServiceImpl struct {
	db           *sql.DB
	sessionStore store.LearningSessionStore
	wordStore    store.WordStore
	logger       *slog.Logger
}

// Ensure flashcardServiceImpl implements Service
var _ Service = (*flashcardServiceImpl)(nil)

// NewService creates a new flashcard Service with the given dependencies.
func NewService(
	db *sql.DB,
	sessionStore store.LearningSessionStore,
	wordStore store.WordStore,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "flashcard_service"))

	return &flashcardServiceImpl{
		db:           db,
		sessionStore: sessionStore,
		wordStore:    wordStore,
		logger:       log,
	}
}

// Start implements Service.Start.
func (s *flashcardServiceImpl) Start(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) (*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(wordIDs) == 0 {
		return nil, domain.ErrLearningSessionNoWords
	}

	// Reject unknown words up front so a session never references a word
	// that cannot be shown.
	if _, err := s.wordStore.GetByIDs(ctx, wordIDs); err != nil {
		return nil, fmt.Errorf("failed to verify session words: %w", err)
	}

	session, err := domain.NewLearningSession(userID, wordIDs)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).Create(ctx, session)
	})
	if err != nil {
		log.Error("failed to persist learning session",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewStartSessionError("failed to persist session", err)
	}

	log.Debug("learning session started",
		slog.String("session_id", session.ID.String()),
		slog.Int("target_words", session.TargetWords))

	return session, nil
}

// Get implements Service.Get.
func (s *flashcardServiceImpl) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	return s.loadOwned(ctx, userID, sessionID)
}

// ListActive implements Service.ListActive.
func (s *flashcardServiceImpl) ListActive(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.sessionStore.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	now := time.Now().UTC()
	live := sessions[:0]
	for _, session := range sessions {
		if session.ExpiredBy(now) {
			if err := s.expire(ctx, session, now); err != nil {
				log.Warn("failed to expire stale session",
					slog.String("session_id", session.ID.String()),
					slog.String("error", err.Error()))
			}
			continue
		}
		live = append(live, session)
	}

	return live, nil
}

// Pause implements Service.Pause.
func (s *flashcardServiceImpl) Pause(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	return s.transition(ctx, userID, sessionID, func(session *domain.LearningSession, now time.Time) error {
		return session.Pause(now)
	})
}

// Resume implements Service.Resume.
func (s *flashcardServiceImpl) Resume(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	return s.transition(ctx, userID, sessionID, func(session *domain.LearningSession, now time.Time) error {
		return session.Resume(now)
	})
}

// RecordAnswer implements Service.RecordAnswer.
func (s *flashcardServiceImpl) RecordAnswer(
	ctx context.Context,
	userID, sessionID, wordID uuid.UUID,
	answer domain.AnswerType,
	timeSpentSec int,
) (*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.transition(ctx, userID, sessionID, func(session *domain.LearningSession, now time.Time) error {
		if err := session.RecordAnswer(wordID, answer, timeSpentSec, now); err != nil {
			return err
		}
		// Answering counts as activity.
		session.ExpiresAt = now.Add(domain.SessionExtension)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("flashcard answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.String("answer", string(answer)))

	return session, nil
}

// Complete implements Service.Complete.
func (s *flashcardServiceImpl) Complete(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*SessionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.transition(ctx, userID, sessionID, func(session *domain.LearningSession, now time.Time) error {
		return session.Complete(now)
	})
	if err != nil {
		return nil, err
	}

	summary := summarizeSession(session)

	log.Debug("learning session completed",
		slog.String("session_id", sessionID.String()),
		slog.Int("correct", summary.CorrectCount),
		slog.Int("answered", summary.ActualWords))

	return summary, nil
}

// Cancel implements Service.Cancel.
func (s *flashcardServiceImpl) Cancel(ctx context.Context, userID, sessionID uuid.UUID) error {
	_, err := s.transition(ctx, userID, sessionID, func(session *domain.LearningSession, now time.Time) error {
		return session.Cancel(now)
	})
	return err
}

// loadOwned fetches the session, checks ownership, and runs the lazy expiry
// check. A session found past its deadline is persisted as EXPIRED before it
// is returned.
func (s *flashcardServiceImpl) loadOwned(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.UserID != userID {
		log.Warn("user does not own learning session",
			slog.String("user_id", userID.String()),
			slog.String("session_id", sessionID.String()))
		return nil, ErrSessionNotOwned
	}

	now := time.Now().UTC()
	if !session.Terminal() && session.ExpiredBy(now) {
		if err := s.expire(ctx, session, now); err != nil {
			return nil, NewUpdateSessionError("failed to expire session", err)
		}
	}

	return session, nil
}

// transition applies a state change under the lazy expiry check and
// persists the result.
func (s *flashcardServiceImpl) transition(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	apply func(session *domain.LearningSession, now time.Time) error,
) (*domain.LearningSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := apply(session, now); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).Update(ctx, session)
	})
	if err != nil {
		return nil, NewUpdateSessionError("failed to persist session", err)
	}

	return session, nil
}

// expire marks the session EXPIRED and persists it.
func (s *flashcardServiceImpl) expire(
	ctx context.Context,
	session *domain.LearningSession,
	now time.Time,
) error {
	if err := session.Expire(now); err != nil {
		return err
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).Update(ctx, session)
	})
}
