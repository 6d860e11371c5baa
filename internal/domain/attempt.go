package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PointsPerQuestion is the score value of a single correct answer.
const PointsPerQuestion = 1

// Attempt-specific validation errors
var (
	ErrAttemptIDEmpty        = errors.New("attempt ID cannot be empty")
	ErrAttemptSessionEmpty   = errors.New("attempt session ID cannot be empty")
	ErrAttemptUserIDEmpty    = errors.New("attempt user ID cannot be empty")
	ErrResultIDEmpty         = errors.New("question result ID cannot be empty")
	ErrResultAttemptEmpty    = errors.New("question result attempt ID cannot be empty")
	ErrResultQuestionEmpty   = errors.New("question result question ID cannot be empty")
	ErrResultWordEmpty       = errors.New("question result word ID cannot be empty")
	ErrNegativeAttemptScore  = errors.New("attempt score cannot be negative")
	ErrAttemptScoreOverflow  = errors.New("attempt score cannot exceed max score")
	ErrAttemptNotFinalizable = errors.New("attempt has no submit time")
)

// Attempt is one user's scored pass through a review session. Question
// results append to it in submission order; SubmittedAt is stamped on
// finalization.
type Attempt struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	UserID      uuid.UUID  `json:"user_id"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"` // Nil until finalized
	Score       int        `json:"score"`
	MaxScore    int        `json:"max_score"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAttempt starts a new attempt for the given session. The max score is
// fixed up front from the session's item count.
func NewAttempt(userID, sessionID uuid.UUID, itemCount int) (*Attempt, error) {
	now := time.Now().UTC()
	attempt := &Attempt{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		StartedAt: now,
		Score:     0,
		MaxScore:  itemCount * PointsPerQuestion,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the Attempt has valid data.
// Returns an error if any field fails validation.
func (a *Attempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}

	if a.SessionID == uuid.Nil {
		return ErrAttemptSessionEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.Score < 0 {
		return ErrNegativeAttemptScore
	}

	if a.MaxScore > 0 && a.Score > a.MaxScore {
		return ErrAttemptScoreOverflow
	}

	return nil
}

// Finalized reports whether the attempt has already been submitted.
func (a *Attempt) Finalized() bool {
	return a.SubmittedAt != nil
}

// QuestionResult records the outcome of one answered question within an
// attempt. Results are append-only: one per question, never rewritten.
type QuestionResult struct {
	ID         uuid.UUID `json:"id"`
	AttemptID  uuid.UUID `json:"attempt_id"`
	QuestionID uuid.UUID `json:"question_id"`
	WordID     uuid.UUID `json:"word_id"`
	IsCorrect  bool      `json:"is_correct"`
	ScoreDelta int       `json:"score_delta"`
	UserAnswer string    `json:"user_answer"` // Raw answer as submitted
	AnsweredAt time.Time `json:"answered_at"`
}

// NewQuestionResult records the outcome of a single answered question.
func NewQuestionResult(
	attemptID, questionID, wordID uuid.UUID,
	isCorrect bool,
	userAnswer string,
) (*QuestionResult, error) {
	scoreDelta := 0
	if isCorrect {
		scoreDelta = PointsPerQuestion
	}

	result := &QuestionResult{
		ID:         uuid.New(),
		AttemptID:  attemptID,
		QuestionID: questionID,
		WordID:     wordID,
		IsCorrect:  isCorrect,
		ScoreDelta: scoreDelta,
		UserAnswer: userAnswer,
		AnsweredAt: time.Now().UTC(),
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks if the QuestionResult has valid data.
// Returns an error if any field fails validation.
func (r *QuestionResult) Validate() error {
	if r.ID == uuid.Nil {
		return ErrResultIDEmpty
	}

	if r.AttemptID == uuid.Nil {
		return ErrResultAttemptEmpty
	}

	if r.QuestionID == uuid.Nil {
		return ErrResultQuestionEmpty
	}

	if r.WordID == uuid.Nil {
		return ErrResultWordEmpty
	}

	return nil
}
