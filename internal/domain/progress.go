package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressStatus represents the learning state of a word for a user.
type ProgressStatus string

// Possible progress status values
const (
	ProgressStatusNew       ProgressStatus = "NEW"
	ProgressStatusLearning  ProgressStatus = "LEARNING"
	ProgressStatusReviewing ProgressStatus = "REVIEWING"
	ProgressStatusMastered  ProgressStatus = "MASTERED"
	ProgressStatusDifficult ProgressStatus = "DIFFICULT"
)

// Leitner box bounds. Boxes outside this range are invalid everywhere.
const (
	MinBox = 1
	MaxBox = 5
)

// Common validation errors for Progress
var (
	ErrEmptyProgressUserID  = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressWordID  = errors.New("progress word ID cannot be empty")
	ErrInvalidBox           = errors.New("box must be between 1 and 5")
	ErrNegativeStreak       = errors.New("streak cannot be negative")
	ErrNegativeWrongCount   = errors.New("wrong count cannot be negative")
	ErrInvalidProgressState = errors.New("invalid progress status")
)

// Progress tracks a user's memory strength for a specific word using a
// five-box Leitner scheme. One row exists per (user, word) pair; it is
// created on first exposure and mutated only through the leitner service.
type Progress struct {
	UserID         uuid.UUID      `json:"user_id"`
	WordID         uuid.UUID      `json:"word_id"`
	Box            int            `json:"box"`         // Leitner box 1..5
	Streak         int            `json:"streak"`      // Consecutive correct answers
	WrongCount     int            `json:"wrong_count"` // Lifetime incorrect answers
	Status         ProgressStatus `json:"status"`
	LastReviewedAt time.Time      `json:"last_reviewed_at"` // Zero until first review
	NextReviewAt   time.Time      `json:"next_review_at"`
	FirstLearnedAt time.Time      `json:"first_learned_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewProgress creates progress for a user's first exposure to a word.
// New words start in box 1 and come due after one day.
func NewProgress(userID, wordID uuid.UUID) (*Progress, error) {
	now := time.Now().UTC()
	progress := &Progress{
		UserID:         userID,
		WordID:         wordID,
		Box:            MinBox,
		Streak:         0,
		WrongCount:     0,
		Status:         ProgressStatusLearning,
		LastReviewedAt: time.Time{}, // Zero time
		NextReviewAt:   now.AddDate(0, 0, 1),
		FirstLearnedAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the Progress has valid data.
// Returns an error if any field fails validation.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}

	if p.Box < MinBox || p.Box > MaxBox {
		return ErrInvalidBox
	}

	if p.Streak < 0 {
		return ErrNegativeStreak
	}

	if p.WrongCount < 0 {
		return ErrNegativeWrongCount
	}

	if !isValidProgressStatus(p.Status) {
		return ErrInvalidProgressState
	}

	return nil
}

// isValidProgressStatus checks if the given status is a valid ProgressStatus.
func isValidProgressStatus(status ProgressStatus) bool {
	switch status {
	case ProgressStatusNew, ProgressStatusLearning, ProgressStatusReviewing,
		ProgressStatusMastered, ProgressStatusDifficult:
		return true
	default:
		return false
	}
}

// Note: the box-transition logic lives in the leitner package, which follows
// immutability principles by returning new Progress instances rather than
// modifying existing ones.
