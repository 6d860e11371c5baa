package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface using
// PostgreSQL. LastReviewedAt maps to a nullable column; the zero time on the
// domain side means "never reviewed".
type PostgresProgressStore struct {
	db store.DBTX
}

// NewPostgresProgressStore creates a new PostgresProgressStore.
func NewPostgresProgressStore(db store.DBTX) *PostgresProgressStore {
	return &PostgresProgressStore{db: db}
}

// Ensure PostgresProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx returns a ProgressStore bound to the given transaction.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx}
}

const progressColumns = `user_id, word_id, box, streak, wrong_count, status,
		last_reviewed_at, next_review_at, first_learned_at, created_at, updated_at`

// Get retrieves the progress for a (user, word) pair.
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.Progress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1 AND word_id = $2
	`

	row := s.db.QueryRowContext(ctx, query, userID, wordID)
	progress, err := scanProgress(row)
	if err != nil {
		return nil, mapNotFound(err, store.ErrProgressNotFound)
	}

	return progress, nil
}

// Create saves a first-exposure progress row.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.WordID,
		progress.Box,
		progress.Streak,
		progress.WrongCount,
		progress.Status,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewAt,
		progress.FirstLearnedAt,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create progress",
			"user_id", progress.UserID,
			"word_id", progress.WordID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// Update overwrites an existing progress row. Last write wins; concurrent
// sessions reviewing the same word do not version-check.
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE progress
		SET box = $1, streak = $2, wrong_count = $3, status = $4,
			last_reviewed_at = $5, next_review_at = $6, updated_at = $7
		WHERE user_id = $8 AND word_id = $9
	`

	result, err := s.db.ExecContext(ctx, query,
		progress.Box,
		progress.Streak,
		progress.WrongCount,
		progress.Status,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewAt,
		time.Now().UTC(),
		progress.UserID,
		progress.WordID,
	)
	if err != nil {
		log.Error("failed to update progress",
			"user_id", progress.UserID,
			"word_id", progress.WordID,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProgressNotFound)
}

// ListByUser returns all progress rows for a user, most urgent first.
func (s *PostgresProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Progress, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
		ORDER BY next_review_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list progress", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var list []*domain.Progress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		list = append(list, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}

	return list, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*domain.Progress, error) {
	var p domain.Progress
	var lastReviewed sql.NullTime

	err := row.Scan(
		&p.UserID,
		&p.WordID,
		&p.Box,
		&p.Streak,
		&p.WrongCount,
		&p.Status,
		&lastReviewed,
		&p.NextReviewAt,
		&p.FirstLearnedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		p.LastReviewedAt = lastReviewed.Time
	}

	return &p, nil
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
