package flashcard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// Service drives flashcard learning sessions: a self-paced walk over a
// fixed word list with pause, resume, and a 30-minute inactivity timeout.
// Expiry is enforced lazily: every accessor checks the deadline before
// acting, and a session found past it is moved to EXPIRED on the spot.
type Service interface {
	// Start opens a new active session over the given words. The words must
	// all exist.
	//
	// Returns:
	//   - (*domain.LearningSession, nil): The persisted session
	//   - (nil, domain.ErrLearningSessionNoWords): If wordIDs is empty
	//   - (nil, error): Any other error, including store.ErrWordNotFound
	Start(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (*domain.LearningSession, error)

	// Get returns the session after the lazy expiry check.
	//
	// Returns:
	//   - (*domain.LearningSession, nil): The session, possibly just expired
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	//   - (nil, error): Any other error
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.LearningSession, error)

	// ListActive returns the user's ACTIVE and PAUSED sessions, expiring
	// any whose deadline has passed; expired ones are not returned.
	ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.LearningSession, error)

	// Pause transitions an active session to PAUSED. The expiry deadline
	// keeps running while paused.
	//
	// Returns:
	//   - (*domain.LearningSession, nil): The updated session
	//   - (nil, domain.ErrInvalidStateTransition): If the session is not
	//     active, including when the lazy check just expired it
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	Pause(ctx context.Context, userID, sessionID uuid.UUID) (*domain.LearningSession, error)

	// Resume transitions a paused or active session back to ACTIVE and
	// extends the expiry deadline.
	//
	// Returns:
	//   - (*domain.LearningSession, nil): The updated session
	//   - (nil, domain.ErrLearningSessionExpired): If the deadline passed
	//   - (nil, domain.ErrInvalidStateTransition): If the session is terminal
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	Resume(ctx context.Context, userID, sessionID uuid.UUID) (*domain.LearningSession, error)

	// RecordAnswer stores the answer for one session word. Each word may be
	// answered at most once; answering extends the expiry deadline.
	//
	// Returns:
	//   - (*domain.LearningSession, nil): The session with updated counters
	//   - (nil, domain.ErrSessionVocabularyAnswered): Word already answered
	//   - (nil, domain.ErrSessionVocabularyNotListed): Word not in session
	//   - (nil, domain.ErrInvalidStateTransition): Session not active
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	RecordAnswer(
		ctx context.Context,
		userID, sessionID, wordID uuid.UUID,
		answer domain.AnswerType,
		timeSpentSec int,
	) (*domain.LearningSession, error)

	// Complete closes the session and returns its summary with any earned
	// badges.
	//
	// Returns:
	//   - (*SessionSummary, nil): Counters, duration, and badges
	//   - (nil, domain.ErrInvalidStateTransition): If the session is
	//     terminal, including when the lazy check just expired it
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	Complete(ctx context.Context, userID, sessionID uuid.UUID) (*SessionSummary, error)

	// Cancel abandons the session without a summary.
	Cancel(ctx context.Context, userID, sessionID uuid.UUID) error
}

// Common error types for the flashcard service
var (
	// ErrSessionNotOwned indicates that the session belongs to another user.
	ErrSessionNotOwned = errors.New("unauthorized access: session not owned by user")
)

// ServiceError wraps errors from the flashcard service with additional
// context, the same shape the review service uses.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError returns a new ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "start_session", Message: message, Err: err}
}

// NewUpdateSessionError returns a new ServiceError for the update_session operation.
func NewUpdateSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "update_session", Message: message, Err: err}
}

// NewCompleteSessionError returns a new ServiceError for the complete_session operation.
func NewCompleteSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "complete_session", Message: message, Err: err}
}
