package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAttempt(t *testing.T) {
	t.Parallel() // Enable parallel execution

	attempt, err := NewAttempt(uuid.New(), uuid.New(), 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if attempt.MaxScore != 7*PointsPerQuestion {
		t.Errorf("Expected max score %d, got %d", 7*PointsPerQuestion, attempt.MaxScore)
	}

	if attempt.Score != 0 {
		t.Errorf("Expected zero initial score, got %d", attempt.Score)
	}

	if attempt.Finalized() {
		t.Error("Expected new attempt not to be finalized")
	}

	if attempt.StartedAt.IsZero() {
		t.Error("Expected non-zero start time")
	}

	_, err = NewAttempt(uuid.Nil, uuid.New(), 7)
	if err != ErrAttemptUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrAttemptUserIDEmpty, err)
	}
}

func TestNewQuestionResult(t *testing.T) {
	t.Parallel()

	result, err := NewQuestionResult(uuid.New(), uuid.New(), uuid.New(), true, "2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.ScoreDelta != PointsPerQuestion {
		t.Errorf("Expected score delta %d, got %d", PointsPerQuestion, result.ScoreDelta)
	}

	if result.AnsweredAt.IsZero() {
		t.Error("Expected non-zero answered time")
	}

	wrong, err := NewQuestionResult(uuid.New(), uuid.New(), uuid.New(), false, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if wrong.ScoreDelta != 0 {
		t.Errorf("Expected zero score delta for wrong answer, got %d", wrong.ScoreDelta)
	}

	_, err = NewQuestionResult(uuid.Nil, uuid.New(), uuid.New(), true, "2")
	if err != ErrResultAttemptEmpty {
		t.Errorf("Expected error %v, got %v", ErrResultAttemptEmpty, err)
	}
}
