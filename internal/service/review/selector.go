package review

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/platform/logger"
)

// Priority score weights. Overdue words dominate, then lifetime mistakes,
// then low memory strength, then staleness.
const (
	overdueWeight    = 10
	wrongCountWeight = 5
	lowBoxWeight     = 2
)

// Tier bounds for the "recently learned" fallback.
const (
	recentMinBox = 2
	recentMaxBox = 4
)

// SelectReviewWords implements ReviewService.SelectReviewWords using a
// tiered fallback: urgent words first, recently learned words when nothing
// is urgent, ErrNoWordsAvailable when the user has neither.
func (s *reviewServiceImpl) SelectReviewWords(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 || limit > domain.MaxSessionWords {
		limit = domain.MaxSessionWords
	}

	progressList, err := s.progressStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewSelectWordsError("failed to list progress", err)
	}

	now := time.Now().UTC()

	selected := s.selectUrgent(progressList, now, limit)
	tier := "urgent"
	if len(selected) == 0 {
		selected = selectRecentlyLearned(progressList, limit)
		tier = "recent"
	}
	if len(selected) == 0 {
		log.Debug("no words available for review", slog.String("user_id", userID.String()))
		return nil, ErrNoWordsAvailable
	}

	wordIDs := make([]uuid.UUID, len(selected))
	for i, p := range selected {
		wordIDs[i] = p.WordID
	}

	words, err := s.wordStore.GetByIDs(ctx, wordIDs)
	if err != nil {
		return nil, NewSelectWordsError("failed to load selected words", err)
	}

	log.Debug("review words selected",
		slog.String("user_id", userID.String()),
		slog.String("tier", tier),
		slog.Int("count", len(words)))

	return words, nil
}

// selectUrgent returns the tier-1 picks: words that are due, scheduled for
// today, or still in box 1, ranked by priority score descending.
func (s *reviewServiceImpl) selectUrgent(
	progressList []*domain.Progress,
	now time.Time,
	limit int,
) []*domain.Progress {
	var urgent []*domain.Progress
	for _, p := range progressList {
		if s.leitnerService.IsDue(p, now) || sameCalendarDay(p.NextReviewAt, now) || p.Box == domain.MinBox {
			urgent = append(urgent, p)
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool {
		return priorityScore(urgent[i], now) > priorityScore(urgent[j], now)
	})

	if len(urgent) > limit {
		urgent = urgent[:limit]
	}
	return urgent
}

// selectRecentlyLearned returns the tier-2 picks: words in the middle boxes,
// most recently reviewed first. Used only when nothing is urgent.
func selectRecentlyLearned(progressList []*domain.Progress, limit int) []*domain.Progress {
	var recent []*domain.Progress
	for _, p := range progressList {
		if p.Box >= recentMinBox && p.Box <= recentMaxBox {
			recent = append(recent, p)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastReviewedAt.After(recent[j].LastReviewedAt)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// priorityScore ranks urgency. Higher scores surface first.
func priorityScore(p *domain.Progress, now time.Time) int {
	score := wrongCountWeight*p.WrongCount + lowBoxWeight*(domain.MaxBox+1-p.Box)

	if overdue := wholeDays(p.NextReviewAt, now); overdue > 0 {
		score += overdueWeight * overdue
	}

	// Words never reviewed contribute nothing for staleness.
	if !p.LastReviewedAt.IsZero() {
		if stale := wholeDays(p.LastReviewedAt, now); stale > 0 {
			score += stale
		}
	}

	return score
}

// wholeDays returns the number of full days from t to now; zero or negative
// when t has not passed yet.
func wholeDays(t, now time.Time) int {
	if t.IsZero() || !now.After(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}

// sameCalendarDay reports whether both times fall on the same UTC date.
func sameCalendarDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
