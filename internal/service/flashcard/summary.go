package flashcard

import (
	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/service/review"
)

// SessionSummary is the aggregate outcome of one completed flashcard
// session.
type SessionSummary struct {
	SessionID    uuid.UUID `json:"session_id"`
	TargetWords  int       `json:"target_words"`
	ActualWords  int       `json:"actual_words"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	SkipCount    int       `json:"skip_count"`
	DurationSec  int       `json:"duration_sec"`
	Badges       []string  `json:"badges"`
}

// summarizeSession folds the session counters into a summary. Accuracy is
// measured against all answered words, so skips count against the accuracy
// badges as well as the no-skip one.
func summarizeSession(session *domain.LearningSession) *SessionSummary {
	summary := &SessionSummary{
		SessionID:    session.ID,
		TargetWords:  session.TargetWords,
		ActualWords:  session.ActualWords,
		CorrectCount: session.CorrectCount,
		WrongCount:   session.WrongCount,
		SkipCount:    session.SkipCount,
	}

	if session.CompletedAt != nil {
		summary.DurationSec = int(session.CompletedAt.Sub(session.CreatedAt).Seconds())
	}

	summary.Badges = review.ComputeBadges(
		session.CorrectCount,
		session.ActualWords,
		summary.DurationSec,
		session.ActualWords,
		session.SkipCount,
		true,
	)

	return summary
}
