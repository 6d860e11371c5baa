package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// AttemptStore defines the interface for attempt and question result
// persistence. Results are append-only, one per question, recorded in
// submission order.
type AttemptStore interface {
	// Create saves a new attempt.
	Create(ctx context.Context, attempt *domain.Attempt) error

	// GetByID retrieves an attempt by its unique ID.
	// Returns ErrAttemptNotFound if the attempt does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attempt, error)

	// Update overwrites an attempt's score and submit time.
	// Returns ErrAttemptNotFound if the attempt does not exist.
	Update(ctx context.Context, attempt *domain.Attempt) error

	// CreateResult appends a question result to an attempt. Returns
	// ErrResultExists if the question was already answered in this attempt.
	CreateResult(ctx context.Context, result *domain.QuestionResult) error

	// ListResults returns an attempt's results in the order they were
	// recorded.
	ListResults(ctx context.Context, attemptID uuid.UUID) ([]*domain.QuestionResult, error)

	// WithTx returns an AttemptStore bound to the given transaction.
	// CreateResult and the matching progress update must share a
	// transaction; use this with store.RunInTransaction.
	WithTx(tx *sql.Tx) AttemptStore
}
