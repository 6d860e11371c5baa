package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// WordStore defines the read-only interface to the word reference data.
// Words and glosses are owned by the dictionary side of the platform;
// the review core never writes them.
type WordStore interface {
	// GetByID retrieves a word, glosses included, by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByIDs retrieves the words for the given IDs, preserving the input
	// order. Returns ErrWordNotFound if any ID is unknown.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error)

	// SampleGlosses returns up to count random glosses usable as
	// distractors, excluding every gloss of the given word. It may return
	// fewer than requested; callers handle the shortfall.
	SampleGlosses(ctx context.Context, excludeWordID uuid.UUID, count int) ([]domain.Gloss, error)
}
