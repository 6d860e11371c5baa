package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/domain/leitner"
	"github.com/wordway/wordway-api/internal/generation"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db             *sql.DB
	wordStore      store.WordStore
	progressStore  store.ProgressStore
	sessionStore   store.ReviewSessionStore
	attemptStore   store.AttemptStore
	leitnerService leitner.Service
	builder        *sessionBuilder
	logger         *slog.Logger
}

// NewReviewService creates a new ReviewService implementation. The generator
// may be nil, in which case the builder pads missing distractors with
// placeholders only. A nil rng seeds one from the clock; tests inject a
// fixed seed for deterministic shuffles.
func NewReviewService(
	db *sql.DB,
	wordStore store.WordStore,
	progressStore store.ProgressStore,
	sessionStore store.ReviewSessionStore,
	attemptStore store.AttemptStore,
	leitnerService leitner.Service,
	generator generation.DistractorGenerator,
	log *slog.Logger,
	rng *rand.Rand,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}
	if leitnerService == nil {
		panic("leitnerService cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "review_service"))

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &reviewServiceImpl{
		db:             db,
		wordStore:      wordStore,
		progressStore:  progressStore,
		sessionStore:   sessionStore,
		attemptStore:   attemptStore,
		leitnerService: leitnerService,
		builder:        newSessionBuilder(wordStore, generator, log, rng),
		logger:         log,
	}
}

// BuildReviewSession implements ReviewService.BuildReviewSession.
func (s *reviewServiceImpl) BuildReviewSession(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) (*domain.ReviewSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var words []*domain.Word
	var err error

	if len(wordIDs) == 0 {
		words, err = s.SelectReviewWords(ctx, userID, domain.MaxSessionWords)
		if err != nil {
			return nil, err
		}
	} else {
		if len(wordIDs) > domain.MaxSessionWords {
			wordIDs = wordIDs[:domain.MaxSessionWords]
		}
		words, err = s.wordStore.GetByIDs(ctx, wordIDs)
		if err != nil {
			return nil, NewBuildSessionError("failed to load words", err)
		}
	}

	if len(words) == 0 {
		return nil, ErrNoWordsAvailable
	}

	session, err := s.builder.Build(ctx, userID, words)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).Create(ctx, session)
	})
	if err != nil {
		log.Error("failed to persist review session",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewBuildSessionError("failed to persist session", err)
	}

	log.Debug("review session created",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("item_count", session.ItemCount))

	return session, nil
}

// StartAttempt implements ReviewService.StartAttempt.
func (s *reviewServiceImpl) StartAttempt(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.Attempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.UserID != userID {
		log.Warn("user does not own session",
			slog.String("user_id", userID.String()),
			slog.String("session_id", sessionID.String()))
		return nil, ErrSessionNotOwned
	}

	attempt, err := domain.NewAttempt(userID, sessionID, session.ItemCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	if err := s.attemptStore.Create(ctx, attempt); err != nil {
		log.Error("failed to persist attempt",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist attempt: %w", err)
	}

	return attempt, nil
}

// SubmitAnswer implements ReviewService.SubmitAnswer. The question result
// and the Leitner progress update are one logical unit of work; neither is
// written without the other.
func (s *reviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID, attemptID, questionID uuid.UUID,
	rawAnswer string,
) (*domain.QuestionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempt, err := s.attemptStore.GetByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}

	if attempt.UserID != userID {
		log.Warn("user does not own attempt",
			slog.String("user_id", userID.String()),
			slog.String("attempt_id", attemptID.String()))
		return nil, ErrAttemptNotOwned
	}

	if attempt.Finalized() {
		return nil, ErrAttemptFinalized
	}

	session, err := s.sessionStore.GetByID(ctx, attempt.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	question := session.QuestionByID(questionID)
	if question == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrQuestionNotFound, questionID)
	}

	correct := evaluateAnswer(question, rawAnswer)

	result, err := domain.NewQuestionResult(attemptID, questionID, question.WordID, correct, rawAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to create question result: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		attempts := s.attemptStore.WithTx(tx)
		progresses := s.progressStore.WithTx(tx)

		if err := attempts.CreateResult(ctx, result); err != nil {
			return err
		}

		if err := s.recordProgress(ctx, progresses, userID, question.WordID, correct); err != nil {
			return err
		}

		attempt.Score += result.ScoreDelta
		attempt.UpdatedAt = time.Now().UTC()
		return attempts.Update(ctx, attempt)
	})
	if err != nil {
		if errors.Is(err, store.ErrResultExists) {
			return nil, ErrQuestionAnswered
		}
		log.Error("failed to record answer",
			slog.String("attempt_id", attemptID.String()),
			slog.String("question_id", questionID.String()),
			slog.String("error", err.Error()))
		return nil, NewSubmitAnswerError("failed to record answer", err)
	}

	log.Debug("answer recorded",
		slog.String("attempt_id", attemptID.String()),
		slog.String("question_id", questionID.String()),
		slog.Bool("correct", correct))

	return result, nil
}

// recordProgress feeds one review outcome into the Leitner tracker,
// creating the progress row on first exposure.
func (s *reviewServiceImpl) recordProgress(
	ctx context.Context,
	progresses store.ProgressStore,
	userID, wordID uuid.UUID,
	correct bool,
) error {
	now := time.Now().UTC()

	progress, err := progresses.Get(ctx, userID, wordID)
	firstExposure := false
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			return fmt.Errorf("failed to load progress: %w", err)
		}
		progress, err = s.leitnerService.FirstExposure(userID, wordID)
		if err != nil {
			return fmt.Errorf("failed to create progress: %w", err)
		}
		firstExposure = true
	}

	updated, err := s.leitnerService.RecordOutcome(progress, correct, now)
	if err != nil {
		return fmt.Errorf("failed to compute progress transition: %w", err)
	}

	if firstExposure {
		if err := progresses.Create(ctx, updated); err != nil {
			return fmt.Errorf("failed to create progress: %w", err)
		}
		return nil
	}

	if err := progresses.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// FinalizeAttempt implements ReviewService.FinalizeAttempt.
func (s *reviewServiceImpl) FinalizeAttempt(
	ctx context.Context,
	userID, attemptID uuid.UUID,
) (*AttemptSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempt, err := s.attemptStore.GetByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}

	if attempt.UserID != userID {
		return nil, ErrAttemptNotOwned
	}

	results, err := s.attemptStore.ListResults(ctx, attemptID)
	if err != nil {
		return nil, NewFinalizeAttemptError("failed to load results", err)
	}

	if !attempt.Finalized() {
		now := time.Now().UTC()
		attempt.SubmittedAt = &now
		attempt.Score = 0
		for _, r := range results {
			attempt.Score += r.ScoreDelta
		}
		attempt.UpdatedAt = now

		if err := s.attemptStore.Update(ctx, attempt); err != nil {
			return nil, NewFinalizeAttemptError("failed to close attempt", err)
		}
	}

	summary := summarizeAttempt(attempt, results)

	log.Debug("attempt finalized",
		slog.String("attempt_id", attemptID.String()),
		slog.Int("total_correct", summary.TotalCorrect),
		slog.Int("total_questions", summary.TotalQuestions))

	return summary, nil
}
