package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/service/auth"
	"github.com/wordway/wordway-api/internal/service/flashcard"
	"github.com/wordway/wordway-api/internal/service/review"
	"github.com/wordway/wordway-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrSessionNotOwned),
		errors.Is(err, review.ErrAttemptNotOwned),
		errors.Is(err, flashcard.ErrSessionNotOwned):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, review.ErrAttemptFinalized),
		errors.Is(err, review.ErrQuestionAnswered),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrSessionVocabularyAnswered):
		return http.StatusConflict

	// Nothing to review: the request is well formed but cannot be served
	case errors.Is(err, review.ErrNoWordsAvailable):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidAnswerType),
		errors.Is(err, domain.ErrSessionVocabularyNotListed),
		errors.Is(err, domain.ErrLearningSessionNoWords):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, review.ErrSessionNotOwned),
		errors.Is(err, flashcard.ErrSessionNotOwned):
		return "You do not own this session"

	case errors.Is(err, review.ErrAttemptNotOwned):
		return "You do not own this attempt"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, store.ErrLearningSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, store.ErrAttemptNotFound):
		return "Attempt not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Progress not found"

	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, review.ErrAttemptFinalized):
		return "Attempt already finalized"

	case errors.Is(err, review.ErrQuestionAnswered):
		return "Question already answered"

	case errors.Is(err, domain.ErrSessionVocabularyAnswered):
		return "Word already answered in this session"

	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "Session is not in a valid state for this operation"

	// Unprocessable
	case errors.Is(err, review.ErrNoWordsAvailable):
		return "No words available for review"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidAnswerType):
		return "Invalid answer type"

	case errors.Is(err, domain.ErrSessionVocabularyNotListed):
		return "Word is not part of this session"

	case errors.Is(err, domain.ErrLearningSessionNoWords):
		return "Session must target at least one word"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Validator messages look like:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
