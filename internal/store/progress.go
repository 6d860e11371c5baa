package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// ProgressStore defines the interface for progress persistence. Progress
// rows are keyed by (user, word); they are created on first exposure and
// updated on every review, never deleted.
//
// Concurrent sessions for the same user may target the same row; writes
// are last-write-wins (no optimistic versioning).
type ProgressStore interface {
	// Get retrieves the progress for a (user, word) pair.
	// Returns ErrProgressNotFound if no row exists.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.Progress, error)

	// Create saves a first-exposure progress row.
	Create(ctx context.Context, progress *domain.Progress) error

	// Update overwrites an existing progress row.
	// Returns ErrProgressNotFound if no row exists.
	Update(ctx context.Context, progress *domain.Progress) error

	// ListByUser returns all progress rows for a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)

	// WithTx returns a ProgressStore bound to the given transaction.
	// The result write and the progress update of one answered question
	// must share a transaction; use this with store.RunInTransaction.
	WithTx(tx *sql.Tx) ProgressStore
}
