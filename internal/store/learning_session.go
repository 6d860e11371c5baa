package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// LearningSessionStore defines the interface for learning session
// persistence. A session's vocabulary rows are saved and loaded together
// with the session itself.
type LearningSessionStore interface {
	// Create saves a new learning session and its vocabulary rows
	// atomically.
	Create(ctx context.Context, session *domain.LearningSession) error

	// GetByID retrieves a learning session with its vocabulary.
	// Returns ErrLearningSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningSession, error)

	// Update overwrites a session's status, counters, expiry, and any
	// changed vocabulary rows. Returns ErrLearningSessionNotFound if the
	// session does not exist.
	Update(ctx context.Context, session *domain.LearningSession) error

	// ListActiveByUser returns the user's sessions whose stored status is
	// ACTIVE or PAUSED, most recent first. Callers are responsible for
	// lazily expiring any whose deadline has passed.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LearningSession, error)

	// WithTx returns a LearningSessionStore bound to the given transaction.
	WithTx(tx *sql.Tx) LearningSessionStore
}
