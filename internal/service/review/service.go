package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wordway/wordway-api/internal/domain"
)

// ReviewService drives the review flow end to end: picking due words,
// generating a quiz session, scoring answers one at a time, and folding the
// recorded results into a final summary.
type ReviewService interface {
	// SelectReviewWords returns up to limit words the user should review
	// next, using the tiered due-word selection.
	//
	// Returns:
	//   - ([]*domain.Word, nil): The selected words, most urgent first
	//   - (nil, ErrNoWordsAvailable): If the user has nothing to review
	//   - (nil, error): Any other error, typically from the database
	SelectReviewWords(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Word, error)

	// BuildReviewSession generates and persists a mixed-format quiz over the
	// given words. With an empty wordIDs list the due-word selection picks
	// the words instead.
	//
	// Returns:
	//   - (*domain.ReviewSession, nil): The persisted session with questions
	//   - (nil, ErrNoWordsAvailable): If there are no words to quiz over;
	//     no session is persisted in that case
	//   - (nil, error): Any other error
	BuildReviewSession(
		ctx context.Context,
		userID uuid.UUID,
		wordIDs []uuid.UUID,
	) (*domain.ReviewSession, error)

	// StartAttempt opens a scored pass through an existing session.
	//
	// Returns:
	//   - (*domain.Attempt, nil): The new attempt
	//   - (nil, ErrSessionNotOwned): If the session belongs to another user
	//   - (nil, error): Any other error, including store.ErrSessionNotFound
	StartAttempt(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Attempt, error)

	// SubmitAnswer scores one question of an open attempt. The result write
	// and the Leitner progress update commit in a single transaction.
	//
	// Returns:
	//   - (*domain.QuestionResult, nil): The recorded result
	//   - (nil, ErrAttemptFinalized): If the attempt was already submitted
	//   - (nil, ErrQuestionAnswered): If this question already has a result
	//   - (nil, ErrAttemptNotOwned): If the attempt belongs to another user
	//   - (nil, error): Any other error, including store.ErrQuestionNotFound
	//
	// An empty answer is scored incorrect; it is never an error.
	SubmitAnswer(
		ctx context.Context,
		userID, attemptID, questionID uuid.UUID,
		rawAnswer string,
	) (*domain.QuestionResult, error)

	// FinalizeAttempt closes an attempt and returns its summary. The first
	// call stamps the submit time and final score; repeated calls recompute
	// the same summary from the recorded results without double counting.
	//
	// Returns:
	//   - (*AttemptSummary, nil): Totals, word lists, duration, and badges
	//   - (nil, ErrAttemptNotOwned): If the attempt belongs to another user
	//   - (nil, error): Any other error, including store.ErrAttemptNotFound
	FinalizeAttempt(ctx context.Context, userID, attemptID uuid.UUID) (*AttemptSummary, error)
}

// Common error types for ReviewService
var (
	// ErrNoWordsAvailable indicates that the user has no words to review;
	// session creation must not proceed.
	ErrNoWordsAvailable = errors.New("no words available for review")

	// ErrAttemptFinalized indicates a submission against an already
	// finalized attempt.
	ErrAttemptFinalized = errors.New("attempt already finalized")

	// ErrQuestionAnswered indicates a repeated answer for the same question
	// within one attempt.
	ErrQuestionAnswered = errors.New("question already answered in this attempt")

	// ErrSessionNotOwned indicates that the session belongs to another user.
	ErrSessionNotOwned = errors.New("unauthorized access: session not owned by user")

	// ErrAttemptNotOwned indicates that the attempt belongs to another user.
	ErrAttemptNotOwned = errors.New("unauthorized access: attempt not owned by user")
)

// ServiceError wraps errors from the review service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "build_session")
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

// NewSelectWordsError returns a new ServiceError for the select_words operation.
func NewSelectWordsError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "select_words", Message: message, Err: err}
}

// NewBuildSessionError returns a new ServiceError for the build_session operation.
func NewBuildSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "build_session", Message: message, Err: err}
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_answer", Message: message, Err: err}
}

// NewFinalizeAttemptError returns a new ServiceError for the finalize_attempt operation.
func NewFinalizeAttemptError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "finalize_attempt", Message: message, Err: err}
}
