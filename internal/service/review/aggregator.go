package review

import (
	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
)

// Achievement badge names. Badges are purely derived from an attempt's
// results; awarding one has no state effect.
const (
	BadgePerfectScore    = "Perfect Score"
	BadgeExcellent       = "Excellent"
	BadgeGoodJob         = "Good Job"
	BadgeSpeedLearner    = "Speed Learner"
	BadgeNoSkipChallenge = "No Skip Challenge"
)

// Accuracy bands and the speed threshold behind the badges.
const (
	excellentThreshold = 0.90
	goodJobThreshold   = 0.75

	// speedSecondsPerWord is the average answer time below which the
	// Speed Learner badge is awarded.
	speedSecondsPerWord = 10
)

// AttemptSummary is the aggregate outcome of one finalized attempt.
type AttemptSummary struct {
	AttemptID       uuid.UUID   `json:"attempt_id"`
	TotalCorrect    int         `json:"total_correct"`
	TotalQuestions  int         `json:"total_questions"`
	Score           int         `json:"score"`
	MaxScore        int         `json:"max_score"`
	MasteredWords   []uuid.UUID `json:"mastered_words"`    // Words answered correctly
	NeedReviewWords []uuid.UUID `json:"need_review_words"` // The rest
	DurationSec     int         `json:"duration_sec"`
	Badges          []string    `json:"badges"`
}

// summarizeAttempt folds the recorded results into a summary. It reads only
// from its arguments, so repeated finalization recomputes identical output.
func summarizeAttempt(attempt *domain.Attempt, results []*domain.QuestionResult) *AttemptSummary {
	summary := &AttemptSummary{
		AttemptID:       attempt.ID,
		TotalQuestions:  len(results),
		MaxScore:        attempt.MaxScore,
		MasteredWords:   []uuid.UUID{},
		NeedReviewWords: []uuid.UUID{},
	}

	for _, r := range results {
		if r.IsCorrect {
			summary.TotalCorrect++
			summary.Score += r.ScoreDelta
			summary.MasteredWords = append(summary.MasteredWords, r.WordID)
		} else {
			summary.NeedReviewWords = append(summary.NeedReviewWords, r.WordID)
		}
	}

	if attempt.SubmittedAt != nil {
		summary.DurationSec = int(attempt.SubmittedAt.Sub(attempt.StartedAt).Seconds())
	}

	summary.Badges = ComputeBadges(
		summary.TotalCorrect,
		summary.TotalQuestions,
		summary.DurationSec,
		summary.TotalQuestions,
		0,
		false,
	)

	return summary
}

// ComputeBadges derives the badge list for a finished session. The accuracy
// bands are exclusive: a perfect run earns Perfect Score but not Excellent.
// skipCount and the flashcard flag only matter for flashcard-mode sessions,
// which share this logic.
func ComputeBadges(
	correct, total int,
	durationSec, wordCount int,
	skipCount int,
	flashcard bool,
) []string {
	badges := []string{}

	if total > 0 {
		accuracy := float64(correct) / float64(total)
		switch {
		case accuracy == 1.0:
			badges = append(badges, BadgePerfectScore)
		case accuracy >= excellentThreshold:
			badges = append(badges, BadgeExcellent)
		case accuracy >= goodJobThreshold:
			badges = append(badges, BadgeGoodJob)
		}
	}

	if wordCount > 0 && durationSec > 0 {
		if float64(durationSec)/float64(wordCount) < speedSecondsPerWord {
			badges = append(badges, BadgeSpeedLearner)
		}
	}

	if flashcard && skipCount == 0 && total > 0 {
		badges = append(badges, BadgeNoSkipChallenge)
	}

	return badges
}
