package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user. The store hashes the user's plaintext
	// password before insert and clears it from the struct.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email. The returned user carries the
	// hashed password for credential verification.
	// Returns ErrUserNotFound if no user has the given email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
