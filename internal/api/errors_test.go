package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordway/wordway-api/internal/api"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/service/auth"
	"github.com/wordway/wordway-api/internal/service/flashcard"
	"github.com/wordway/wordway-api/internal/service/review"
	"github.com/wordway/wordway-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"session not owned", review.ErrSessionNotOwned, http.StatusForbidden},
		{"attempt not owned", review.ErrAttemptNotOwned, http.StatusForbidden},
		{"flashcard session not owned", flashcard.ErrSessionNotOwned, http.StatusForbidden},
		{"word not found", store.ErrWordNotFound, http.StatusNotFound},
		{"attempt not found", store.ErrAttemptNotFound, http.StatusNotFound},
		{
			"wrapped question not found",
			fmt.Errorf("%w: abc", store.ErrQuestionNotFound),
			http.StatusNotFound,
		},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"attempt finalized", review.ErrAttemptFinalized, http.StatusConflict},
		{"question answered", review.ErrQuestionAnswered, http.StatusConflict},
		{"invalid transition", domain.ErrInvalidStateTransition, http.StatusConflict},
		{"session expired", domain.ErrLearningSessionExpired, http.StatusConflict},
		{"word already answered", domain.ErrSessionVocabularyAnswered, http.StatusConflict},
		{"no words available", review.ErrNoWordsAvailable, http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"word not in session", domain.ErrSessionVocabularyNotListed, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"session not owned", review.ErrSessionNotOwned, "You do not own this session"},
		{"word not found", store.ErrWordNotFound, "Word not found"},
		{"no words", review.ErrNoWordsAvailable, "No words available for review"},
		{"attempt finalized", review.ErrAttemptFinalized, "Attempt already finalized"},
		{
			"wrapped service error stays sanitized",
			review.NewSubmitAnswerError("db exploded at 10.0.0.1", errors.New("connection refused")),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", api.SanitizeValidationError(err))

	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("boom")))
}
