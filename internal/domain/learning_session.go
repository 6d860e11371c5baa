package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LearningSessionStatus represents the lifecycle state of a flashcard
// session.
type LearningSessionStatus string

// Possible learning session status values. COMPLETED, EXPIRED and CANCELLED
// are terminal.
const (
	LearningSessionActive    LearningSessionStatus = "ACTIVE"
	LearningSessionPaused    LearningSessionStatus = "PAUSED"
	LearningSessionCompleted LearningSessionStatus = "COMPLETED"
	LearningSessionExpired   LearningSessionStatus = "EXPIRED"
	LearningSessionCancelled LearningSessionStatus = "CANCELLED"
)

// AnswerType classifies a flashcard answer.
type AnswerType string

// Possible flashcard answer values
const (
	AnswerCorrect AnswerType = "CORRECT"
	AnswerWrong   AnswerType = "WRONG"
	AnswerSkip    AnswerType = "SKIP"
)

// SessionExtension is how far resume pushes the expiry forward.
const SessionExtension = 30 * time.Minute

// LearningSession-specific errors
var (
	ErrLearningSessionIDEmpty     = errors.New("learning session ID cannot be empty")
	ErrLearningSessionUserEmpty   = errors.New("learning session user ID cannot be empty")
	ErrLearningSessionNoWords     = errors.New("learning session must target at least one word")
	ErrInvalidSessionStatus       = errors.New("invalid learning session status")
	ErrInvalidAnswerType          = errors.New("invalid answer type")
	ErrInvalidStateTransition     = errors.New("invalid learning session state transition")
	ErrLearningSessionExpired     = fmt.Errorf("%w: session expired", ErrInvalidStateTransition)
	ErrSessionVocabularyAnswered  = errors.New("session word already answered")
	ErrSessionVocabularyNotListed = errors.New("word is not part of this session")
)

// LearningSession is the lightweight flashcard sibling of a review session.
// It walks a fixed list of words and counts correct/wrong/skip answers.
// Expiry is checked lazily on access, never by a background timer.
type LearningSession struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	TargetWords    int                   `json:"target_words"`
	ActualWords    int                   `json:"actual_words"`
	CorrectCount   int                   `json:"correct_count"`
	WrongCount     int                   `json:"wrong_count"`
	SkipCount      int                   `json:"skip_count"`
	Status         LearningSessionStatus `json:"status"`
	ExpiresAt      time.Time             `json:"expires_at"`
	LastActivityAt time.Time             `json:"last_activity_at"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	Vocabulary []SessionVocabulary `json:"vocabulary"`
}

// SessionVocabulary is one word slot of a learning session, answered at
// most once.
type SessionVocabulary struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    uuid.UUID  `json:"session_id"`
	WordID       uuid.UUID  `json:"word_id"`
	Position     int        `json:"position"`
	Answer       AnswerType `json:"answer,omitempty"` // Empty until answered
	TimeSpentSec int        `json:"time_spent_sec"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}

// NewLearningSession starts an active flashcard session over the given
// words, expiring after SessionExtension of inactivity.
func NewLearningSession(userID uuid.UUID, wordIDs []uuid.UUID) (*LearningSession, error) {
	if len(wordIDs) == 0 {
		return nil, ErrLearningSessionNoWords
	}

	now := time.Now().UTC()
	session := &LearningSession{
		ID:             uuid.New(),
		UserID:         userID,
		TargetWords:    len(wordIDs),
		Status:         LearningSessionActive,
		ExpiresAt:      now.Add(SessionExtension),
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	session.Vocabulary = make([]SessionVocabulary, 0, len(wordIDs))
	for i, wordID := range wordIDs {
		session.Vocabulary = append(session.Vocabulary, SessionVocabulary{
			ID:        uuid.New(),
			SessionID: session.ID,
			WordID:    wordID,
			Position:  i,
		})
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the LearningSession has valid data.
// Returns an error if any field fails validation.
func (s *LearningSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrLearningSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrLearningSessionUserEmpty
	}

	if s.TargetWords <= 0 {
		return ErrLearningSessionNoWords
	}

	if !isValidLearningSessionStatus(s.Status) {
		return ErrInvalidSessionStatus
	}

	return nil
}

// Terminal reports whether the session is in a terminal state.
func (s *LearningSession) Terminal() bool {
	switch s.Status {
	case LearningSessionCompleted, LearningSessionExpired, LearningSessionCancelled:
		return true
	default:
		return false
	}
}

// ExpiredBy reports whether the session's expiry deadline has passed.
// This is a pure time check; it does not change the status.
func (s *LearningSession) ExpiredBy(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Pause transitions ACTIVE → PAUSED.
func (s *LearningSession) Pause(now time.Time) error {
	if s.Status != LearningSessionActive {
		return fmt.Errorf("%w: cannot pause %s session", ErrInvalidStateTransition, s.Status)
	}

	s.Status = LearningSessionPaused
	s.LastActivityAt = now
	s.UpdatedAt = now
	return nil
}

// Resume transitions back to ACTIVE and extends the expiry deadline.
// It is rejected on terminal sessions and on sessions whose deadline has
// already passed.
func (s *LearningSession) Resume(now time.Time) error {
	if s.Status != LearningSessionActive && s.Status != LearningSessionPaused {
		return fmt.Errorf("%w: cannot resume %s session", ErrInvalidStateTransition, s.Status)
	}

	if s.ExpiredBy(now) {
		return ErrLearningSessionExpired
	}

	s.Status = LearningSessionActive
	s.ExpiresAt = now.Add(SessionExtension)
	s.LastActivityAt = now
	s.UpdatedAt = now
	return nil
}

// RecordAnswer stores the answer for one session word and bumps the
// matching counter. Each word may be answered at most once.
func (s *LearningSession) RecordAnswer(
	wordID uuid.UUID,
	answer AnswerType,
	timeSpentSec int,
	now time.Time,
) error {
	if s.Status != LearningSessionActive {
		return fmt.Errorf(
			"%w: cannot record answer on %s session",
			ErrInvalidStateTransition,
			s.Status,
		)
	}

	if !isValidAnswerType(answer) {
		return ErrInvalidAnswerType
	}

	entry := s.vocabularyEntry(wordID)
	if entry == nil {
		return ErrSessionVocabularyNotListed
	}
	if entry.Answer != "" {
		return ErrSessionVocabularyAnswered
	}

	answeredAt := now
	entry.Answer = answer
	entry.TimeSpentSec = timeSpentSec
	entry.AnsweredAt = &answeredAt

	switch answer {
	case AnswerCorrect:
		s.CorrectCount++
	case AnswerWrong:
		s.WrongCount++
	case AnswerSkip:
		s.SkipCount++
	}

	s.ActualWords++
	s.LastActivityAt = now
	s.UpdatedAt = now
	return nil
}

// Complete transitions to COMPLETED and stamps the completion time.
func (s *LearningSession) Complete(now time.Time) error {
	if s.Status != LearningSessionActive && s.Status != LearningSessionPaused {
		return fmt.Errorf("%w: cannot complete %s session", ErrInvalidStateTransition, s.Status)
	}

	completedAt := now
	s.Status = LearningSessionCompleted
	s.CompletedAt = &completedAt
	s.LastActivityAt = now
	s.UpdatedAt = now
	return nil
}

// Cancel transitions to CANCELLED.
func (s *LearningSession) Cancel(now time.Time) error {
	if s.Terminal() {
		return fmt.Errorf("%w: cannot cancel %s session", ErrInvalidStateTransition, s.Status)
	}

	s.Status = LearningSessionCancelled
	s.LastActivityAt = now
	s.UpdatedAt = now
	return nil
}

// Expire transitions to EXPIRED. It is driven by a lazy timeout check on
// access and must never fire on a COMPLETED or CANCELLED session.
func (s *LearningSession) Expire(now time.Time) error {
	if s.Terminal() {
		return fmt.Errorf("%w: cannot expire %s session", ErrInvalidStateTransition, s.Status)
	}

	s.Status = LearningSessionExpired
	s.UpdatedAt = now
	return nil
}

// vocabularyEntry returns the vocabulary slot for wordID, or nil.
func (s *LearningSession) vocabularyEntry(wordID uuid.UUID) *SessionVocabulary {
	for i := range s.Vocabulary {
		if s.Vocabulary[i].WordID == wordID {
			return &s.Vocabulary[i]
		}
	}
	return nil
}

// isValidLearningSessionStatus checks if the given status is valid.
func isValidLearningSessionStatus(status LearningSessionStatus) bool {
	switch status {
	case LearningSessionActive, LearningSessionPaused, LearningSessionCompleted,
		LearningSessionExpired, LearningSessionCancelled:
		return true
	default:
		return false
	}
}

// isValidAnswerType checks if the given answer type is valid.
func isValidAnswerType(answer AnswerType) bool {
	switch answer {
	case AnswerCorrect, AnswerWrong, AnswerSkip:
		return true
	default:
		return false
	}
}
