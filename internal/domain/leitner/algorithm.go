package leitner

import (
	"time"

	"github.com/wordway/wordway-api/internal/domain"
)

// calculateNewBox determines the next box for a review outcome.
//
// A correct answer promotes the word one box, capped at the top box. An
// incorrect answer resets it all the way to box 1. The hard reset (rather
// than a one-box demotion) is the canonical rule here: a forgotten word
// restarts its schedule from the shortest interval.
func calculateNewBox(currentBox int, correct bool) int {
	if !correct {
		return domain.MinBox
	}

	newBox := currentBox + 1
	if newBox > domain.MaxBox {
		newBox = domain.MaxBox
	}
	return newBox
}

// calculateNewStatus derives the progress status from the post-transition
// box and wrong count.
//
// Correct answers move a word to REVIEWING, or MASTERED once it reaches
// params.MasteredBox. Incorrect answers move it to LEARNING, or DIFFICULT
// once the lifetime wrong count reaches params.DifficultThreshold.
func calculateNewStatus(newBox, wrongCount int, correct bool, params *Params) domain.ProgressStatus {
	if correct {
		if newBox >= params.MasteredBox {
			return domain.ProgressStatusMastered
		}
		return domain.ProgressStatusReviewing
	}

	if wrongCount >= params.DifficultThreshold {
		return domain.ProgressStatusDifficult
	}
	return domain.ProgressStatusLearning
}

// calculateNextReviewDate determines when the word should next be reviewed.
//
// After a correct answer the interval is looked up from the new box's
// schedule. After an incorrect answer the word comes back after the short
// wrong-answer interval regardless of box.
func calculateNextReviewDate(newBox int, correct bool, now time.Time, params *Params) time.Time {
	days := params.WrongIntervalDays
	if correct {
		if d, ok := params.BoxIntervals[newBox]; ok {
			days = d
		}
	}

	return now.AddDate(0, 0, days)
}

// calculateNextProgress creates a new Progress with updated values based on
// the review outcome.
//
// The transition is a pure function of (box, correct): no retries, no
// randomness. It follows the immutable update pattern - instead of
// modifying the existing progress, it creates and returns a new one.
func calculateNextProgress(
	progress *domain.Progress,
	correct bool,
	now time.Time,
	params *Params,
) *domain.Progress {
	newProgress := &domain.Progress{
		UserID:         progress.UserID,
		WordID:         progress.WordID,
		Box:            progress.Box,
		Streak:         progress.Streak,
		WrongCount:     progress.WrongCount,
		Status:         progress.Status,
		LastReviewedAt: progress.LastReviewedAt,
		NextReviewAt:   progress.NextReviewAt,
		FirstLearnedAt: progress.FirstLearnedAt,
		CreatedAt:      progress.CreatedAt,
		UpdatedAt:      progress.UpdatedAt,
	}

	if correct {
		newProgress.Streak++
	} else {
		newProgress.Streak = 0
		newProgress.WrongCount++
	}

	newProgress.Box = calculateNewBox(progress.Box, correct)
	newProgress.Status = calculateNewStatus(
		newProgress.Box,
		newProgress.WrongCount,
		correct,
		params,
	)
	newProgress.NextReviewAt = calculateNextReviewDate(newProgress.Box, correct, now, params)
	newProgress.LastReviewedAt = now
	newProgress.UpdatedAt = now

	return newProgress
}
