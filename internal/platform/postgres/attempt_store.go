package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// PostgresAttemptStore implements the store.AttemptStore interface using
// PostgreSQL. Question results live in their own append-only table; a
// unique constraint on (attempt_id, question_id) backs the answer-once rule.
type PostgresAttemptStore struct {
	db store.DBTX
}

// NewPostgresAttemptStore creates a new PostgresAttemptStore.
func NewPostgresAttemptStore(db store.DBTX) *PostgresAttemptStore {
	return &PostgresAttemptStore{db: db}
}

// Ensure PostgresAttemptStore implements store.AttemptStore
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// WithTx returns an AttemptStore bound to the given transaction.
func (s *PostgresAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &PostgresAttemptStore{db: tx}
}

// Create saves a new attempt.
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.Attempt) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO attempts
			(id, session_id, user_id, started_at, submitted_at, score, max_score,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.SessionID,
		attempt.UserID,
		attempt.StartedAt,
		attempt.SubmittedAt,
		attempt.Score,
		attempt.MaxScore,
		attempt.CreatedAt,
		attempt.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create attempt", "attempt_id", attempt.ID, "error", err)
		return MapError(err)
	}

	return nil
}

// GetByID retrieves an attempt by ID.
func (s *PostgresAttemptStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attempt, error) {
	query := `
		SELECT id, session_id, user_id, started_at, submitted_at, score, max_score,
			created_at, updated_at
		FROM attempts
		WHERE id = $1
	`

	var a domain.Attempt
	var submitted sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.SessionID,
		&a.UserID,
		&a.StartedAt,
		&submitted,
		&a.Score,
		&a.MaxScore,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err, store.ErrAttemptNotFound)
	}

	if submitted.Valid {
		t := submitted.Time
		a.SubmittedAt = &t
	}

	return &a, nil
}

// Update overwrites an attempt's score and submit time.
func (s *PostgresAttemptStore) Update(ctx context.Context, attempt *domain.Attempt) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE attempts
		SET score = $1, submitted_at = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		attempt.Score,
		attempt.SubmittedAt,
		attempt.UpdatedAt,
		attempt.ID,
	)
	if err != nil {
		log.Error("failed to update attempt", "attempt_id", attempt.ID, "error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrAttemptNotFound)
}

// CreateResult appends a question result to an attempt. Returns
// store.ErrResultExists when the question was already answered.
func (s *PostgresAttemptStore) CreateResult(
	ctx context.Context,
	result *domain.QuestionResult,
) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO question_results
			(id, attempt_id, question_id, word_id, is_correct, score_delta,
			 user_answer, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		result.ID,
		result.AttemptID,
		result.QuestionID,
		result.WordID,
		result.IsCorrect,
		result.ScoreDelta,
		result.UserAnswer,
		result.AnsweredAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrResultExists)
		}
		log.Error("failed to create question result",
			"attempt_id", result.AttemptID,
			"question_id", result.QuestionID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListResults returns an attempt's results in the order they were recorded.
func (s *PostgresAttemptStore) ListResults(
	ctx context.Context,
	attemptID uuid.UUID,
) ([]*domain.QuestionResult, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, attempt_id, question_id, word_id, is_correct, score_delta,
			user_answer, answered_at
		FROM question_results
		WHERE attempt_id = $1
		ORDER BY answered_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, attemptID)
	if err != nil {
		log.Error("failed to list question results", "attempt_id", attemptID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var results []*domain.QuestionResult
	for rows.Next() {
		var r domain.QuestionResult
		err := rows.Scan(
			&r.ID,
			&r.AttemptID,
			&r.QuestionID,
			&r.WordID,
			&r.IsCorrect,
			&r.ScoreDelta,
			&r.UserAnswer,
			&r.AnsweredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question result row: %w", err)
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question result rows: %w", err)
	}

	return results, nil
}
