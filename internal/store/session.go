package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// ReviewSessionStore defines the interface for review session persistence.
// Sessions and their questions are written once at build time and are
// immutable afterwards.
type ReviewSessionStore interface {
	// Create saves a session together with all its questions. Callers wrap
	// this in a transaction via WithTx so both commit together.
	Create(ctx context.Context, session *domain.ReviewSession) error

	// GetByID retrieves a session with its questions in position order.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewSession, error)

	// WithTx returns a ReviewSessionStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewSessionStore
}
