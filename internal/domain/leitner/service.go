package leitner

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("progress cannot be nil")
)

// Service defines the interface for Leitner scheduling operations.
type Service interface {
	// RecordOutcome computes new progress from a review outcome.
	RecordOutcome(
		progress *domain.Progress,
		correct bool,
		now time.Time,
	) (*domain.Progress, error)

	// FirstExposure creates progress for a word the user has never seen.
	FirstExposure(userID, wordID uuid.UUID) (*domain.Progress, error)

	// IsDue reports whether the word should be reviewed at the given time.
	IsDue(progress *domain.Progress, now time.Time) bool
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new Leitner service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new Leitner service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// RecordOutcome implements the Service interface for box transitions.
func (s *defaultService) RecordOutcome(
	progress *domain.Progress,
	correct bool,
	now time.Time,
) (*domain.Progress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return calculateNextProgress(progress, correct, now, s.params), nil
}

// FirstExposure implements the Service interface for new words.
func (s *defaultService) FirstExposure(userID, wordID uuid.UUID) (*domain.Progress, error) {
	return domain.NewProgress(userID, wordID)
}

// IsDue implements the Service interface. A word is due once its scheduled
// review time has passed; words without a schedule are never due.
func (s *defaultService) IsDue(progress *domain.Progress, now time.Time) bool {
	if progress == nil || progress.NextReviewAt.IsZero() {
		return false
	}
	return now.After(progress.NextReviewAt)
}
