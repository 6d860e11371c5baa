package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// PostgresReviewSessionStore implements the store.ReviewSessionStore
// interface using PostgreSQL. Question payloads are stored as JSONB; the
// format-specific struct is selected by the question type on load.
type PostgresReviewSessionStore struct {
	db store.DBTX
}

// NewPostgresReviewSessionStore creates a new PostgresReviewSessionStore.
func NewPostgresReviewSessionStore(db store.DBTX) *PostgresReviewSessionStore {
	return &PostgresReviewSessionStore{db: db}
}

// Ensure PostgresReviewSessionStore implements store.ReviewSessionStore
var _ store.ReviewSessionStore = (*PostgresReviewSessionStore)(nil)

// WithTx returns a ReviewSessionStore bound to the given transaction.
func (s *PostgresReviewSessionStore) WithTx(tx *sql.Tx) store.ReviewSessionStore {
	return &PostgresReviewSessionStore{db: tx}
}

// Create saves a review session and all of its questions.
// Callers run this inside a transaction when atomicity matters.
func (s *PostgresReviewSessionStore) Create(
	ctx context.Context,
	session *domain.ReviewSession,
) error {
	log := logger.FromContext(ctx)

	sessionQuery := `
		INSERT INTO review_sessions
			(id, user_id, item_count, time_limit_sec, pass_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, sessionQuery,
		session.ID,
		session.UserID,
		session.ItemCount,
		session.TimeLimitSec,
		session.PassThreshold,
		session.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create review session", "session_id", session.ID, "error", err)
		return MapError(err)
	}

	questionQuery := `
		INSERT INTO questions (id, session_id, word_id, position, type, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range session.Questions {
		q := &session.Questions[i]

		payload, err := marshalQuestionPayload(q)
		if err != nil {
			return err
		}

		_, err = s.db.ExecContext(ctx, questionQuery,
			q.ID,
			q.SessionID,
			q.WordID,
			q.Position,
			q.Type,
			payload,
		)
		if err != nil {
			log.Error("failed to create question",
				"session_id", session.ID,
				"question_id", q.ID,
				"error", err)
			return MapError(err)
		}
	}

	return nil
}

// GetByID retrieves a review session with its questions in position order.
func (s *PostgresReviewSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ReviewSession, error) {
	log := logger.FromContext(ctx)

	sessionQuery := `
		SELECT id, user_id, item_count, time_limit_sec, pass_threshold, created_at
		FROM review_sessions
		WHERE id = $1
	`

	var session domain.ReviewSession
	err := s.db.QueryRowContext(ctx, sessionQuery, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ItemCount,
		&session.TimeLimitSec,
		&session.PassThreshold,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err, store.ErrSessionNotFound)
	}

	questionQuery := `
		SELECT id, session_id, word_id, position, type, payload
		FROM questions
		WHERE session_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, questionQuery, id)
	if err != nil {
		log.Error("failed to query session questions", "session_id", id, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var q domain.Question
		var payload []byte

		if err := rows.Scan(&q.ID, &q.SessionID, &q.WordID, &q.Position, &q.Type, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}

		if err := unmarshalQuestionPayload(&q, payload); err != nil {
			return nil, err
		}

		session.Questions = append(session.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return &session, nil
}

// marshalQuestionPayload serializes the one payload matching the question's
// type.
func marshalQuestionPayload(q *domain.Question) ([]byte, error) {
	var payload any
	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		payload = q.MultipleChoice
	case domain.QuestionTypeTrueFalse:
		payload = q.TrueFalse
	case domain.QuestionTypeFillInBlank:
		payload = q.FillInBlank
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", store.ErrInvalidEntity, q.Type)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question payload: %w", err)
	}
	return data, nil
}

// unmarshalQuestionPayload deserializes the stored payload into the struct
// matching the question's type.
func unmarshalQuestionPayload(q *domain.Question, data []byte) error {
	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		q.MultipleChoice = &domain.MultipleChoicePayload{}
		return unmarshalPayload(q.ID, data, q.MultipleChoice)
	case domain.QuestionTypeTrueFalse:
		q.TrueFalse = &domain.TrueFalsePayload{}
		return unmarshalPayload(q.ID, data, q.TrueFalse)
	case domain.QuestionTypeFillInBlank:
		q.FillInBlank = &domain.FillInBlankPayload{}
		return unmarshalPayload(q.ID, data, q.FillInBlank)
	default:
		return fmt.Errorf("%w: unknown question type %q", store.ErrInvalidEntity, q.Type)
	}
}

func unmarshalPayload(questionID uuid.UUID, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal payload for question %s: %w", questionID, err)
	}
	return nil
}
