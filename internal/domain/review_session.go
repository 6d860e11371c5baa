package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review session defaults. A session never contains more than
// MaxSessionWords questions.
const (
	MaxSessionWords         = 15
	DefaultTimeLimitSec     = 600
	DefaultPassThreshold    = 0.6
	QuestionsPerFormatLimit = 5
)

// ReviewSession-specific validation errors
var (
	ErrSessionIDEmpty       = errors.New("review session ID cannot be empty")
	ErrSessionUserIDEmpty   = errors.New("review session user ID cannot be empty")
	ErrSessionNoQuestions   = errors.New("review session must contain at least one question")
	ErrInvalidPassThreshold = errors.New("pass threshold must be between 0 and 1")
)

// ReviewSession is a generated quiz: an ordered, mixed-format list of
// questions. Sessions are immutable once created; only attempts and their
// results accumulate against them.
type ReviewSession struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Questions     []Question `json:"questions"`
	ItemCount     int        `json:"item_count"` // Actual number of generated questions
	TimeLimitSec  int        `json:"time_limit_sec"`
	PassThreshold float64    `json:"pass_threshold"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewReviewSession creates an empty review session shell for the given user.
// The builder appends questions and then seals the item count.
func NewReviewSession(userID uuid.UUID) *ReviewSession {
	return &ReviewSession{
		ID:            uuid.New(),
		UserID:        userID,
		TimeLimitSec:  DefaultTimeLimitSec,
		PassThreshold: DefaultPassThreshold,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate checks if the ReviewSession has valid data.
// Returns an error if any field fails validation.
func (s *ReviewSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	if len(s.Questions) == 0 || s.ItemCount == 0 {
		return ErrSessionNoQuestions
	}

	if s.PassThreshold < 0 || s.PassThreshold > 1 {
		return ErrInvalidPassThreshold
	}

	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// QuestionByID returns the session question with the given ID, or nil.
func (s *ReviewSession) QuestionByID(id uuid.UUID) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
