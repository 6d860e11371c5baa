package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewProgress(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()
	wordID := uuid.New()

	progress, err := NewProgress(userID, wordID)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if progress.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, progress.UserID)
	}

	if progress.WordID != wordID {
		t.Errorf("Expected word ID %s, got %s", wordID, progress.WordID)
	}

	if progress.Box != MinBox {
		t.Errorf("Expected box %d, got %d", MinBox, progress.Box)
	}

	if progress.Streak != 0 || progress.WrongCount != 0 {
		t.Error("Expected zero streak and wrong count on first exposure")
	}

	if progress.Status != ProgressStatusLearning {
		t.Errorf("Expected status %s, got %s", ProgressStatusLearning, progress.Status)
	}

	if !progress.LastReviewedAt.IsZero() {
		t.Error("Expected zero LastReviewedAt on first exposure")
	}

	// New words come due after one day.
	wantDue := progress.FirstLearnedAt.AddDate(0, 0, 1)
	if !progress.NextReviewAt.Equal(wantDue) {
		t.Errorf("Expected next review at %v, got %v", wantDue, progress.NextReviewAt)
	}

	// Test invalid user ID
	_, err = NewProgress(uuid.Nil, wordID)
	if err != ErrEmptyProgressUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressUserID, err)
	}

	// Test invalid word ID
	_, err = NewProgress(userID, uuid.Nil)
	if err != ErrEmptyProgressWordID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressWordID, err)
	}
}

func TestProgressValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Progress {
		return &Progress{
			UserID:       uuid.New(),
			WordID:       uuid.New(),
			Box:          3,
			Streak:       2,
			WrongCount:   1,
			Status:       ProgressStatusReviewing,
			NextReviewAt: time.Now().UTC(),
		}
	}

	testCases := []struct {
		name     string
		mutate   func(p *Progress)
		expected error
	}{
		{
			name:     "valid progress passes",
			mutate:   func(p *Progress) {},
			expected: nil,
		},
		{
			name:     "box below range fails",
			mutate:   func(p *Progress) { p.Box = 0 },
			expected: ErrInvalidBox,
		},
		{
			name:     "box above range fails",
			mutate:   func(p *Progress) { p.Box = 6 },
			expected: ErrInvalidBox,
		},
		{
			name:     "negative streak fails",
			mutate:   func(p *Progress) { p.Streak = -1 },
			expected: ErrNegativeStreak,
		},
		{
			name:     "negative wrong count fails",
			mutate:   func(p *Progress) { p.WrongCount = -1 },
			expected: ErrNegativeWrongCount,
		},
		{
			name:     "unknown status fails",
			mutate:   func(p *Progress) { p.Status = "FORGOTTEN" },
			expected: ErrInvalidProgressState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			progress := valid()
			tc.mutate(progress)

			if err := progress.Validate(); err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}
