package review

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
)

func TestBucketSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, wantMC, wantTF, wantFIB int
	}{
		{n: 0, wantMC: 0, wantTF: 0, wantFIB: 0},
		{n: 1, wantMC: 1, wantTF: 0, wantFIB: 0},
		{n: 3, wantMC: 3, wantTF: 0, wantFIB: 0},
		{n: 5, wantMC: 5, wantTF: 0, wantFIB: 0},
		{n: 7, wantMC: 5, wantTF: 2, wantFIB: 0},
		{n: 10, wantMC: 5, wantTF: 5, wantFIB: 0},
		{n: 12, wantMC: 5, wantTF: 5, wantFIB: 2},
		{n: 15, wantMC: 5, wantTF: 5, wantFIB: 5},
	}

	for _, tt := range tests {
		mc, tf, fib := bucketSplit(tt.n)
		if mc != tt.wantMC || tf != tt.wantTF || fib != tt.wantFIB {
			t.Errorf("bucketSplit(%d) = (%d, %d, %d), want (%d, %d, %d)",
				tt.n, mc, tf, fib, tt.wantMC, tt.wantTF, tt.wantFIB)
		}
		if mc+tf+fib != min(tt.n, domain.MaxSessionWords) {
			t.Errorf("bucketSplit(%d) buckets are not disjoint over the input", tt.n)
		}
	}
}

func mustMC(t *testing.T, options []string, correctIndex int) *domain.Question {
	t.Helper()
	q, err := domain.NewMultipleChoiceQuestion(
		uuid.New(), uuid.New(), 0, "Choose the correct meaning", options, correctIndex)
	if err != nil {
		t.Fatalf("failed to build question: %v", err)
	}
	return q
}

func TestEvaluateAnswerMultipleChoice(t *testing.T) {
	t.Parallel()

	q := mustMC(t, []string{"alpha", "beta", "gamma", "delta"}, 2)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{name: "correct index", answer: "2", want: true},
		{name: "wrong index", answer: "0", want: false},
		{name: "out of range index", answer: "9", want: false},
		{name: "correct text fallback", answer: "gamma", want: true},
		{name: "correct text mixed case", answer: "GaMmA", want: true},
		{name: "wrong text", answer: "beta", want: false},
		{name: "empty answer", answer: "", want: false},
		{name: "whitespace answer", answer: "   ", want: false},
	}

	for _, tt := range tests {
		if got := evaluateAnswer(q, tt.answer); got != tt.want {
			t.Errorf("%s: evaluateAnswer(%q) = %v, want %v", tt.name, tt.answer, got, tt.want)
		}
	}
}

func TestEvaluateAnswerTrueFalse(t *testing.T) {
	t.Parallel()

	qTrue, err := domain.NewTrueFalseQuestion(
		uuid.New(), uuid.New(), 0, "prompt", "a meaning", true)
	if err != nil {
		t.Fatalf("failed to build question: %v", err)
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "TRUE", want: true},
		{answer: "true", want: true},
		{answer: "True", want: true},
		{answer: "FALSE", want: false},
		{answer: "yes", want: false},
		{answer: "", want: false},
	}

	for _, tt := range tests {
		if got := evaluateAnswer(qTrue, tt.answer); got != tt.want {
			t.Errorf("evaluateAnswer(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestEvaluateAnswerFillInBlank(t *testing.T) {
	t.Parallel()

	q, err := domain.NewFillInBlankQuestion(
		uuid.New(), uuid.New(), 0, "prompt", "clue", "Serendipity")
	if err != nil {
		t.Fatalf("failed to build question: %v", err)
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "Serendipity", want: true},
		{answer: "serendipity", want: true},
		{answer: "  SERENDIPITY  ", want: true},
		{answer: "serendipitous", want: false},
		{answer: "", want: false},
	}

	for _, tt := range tests {
		if got := evaluateAnswer(q, tt.answer); got != tt.want {
			t.Errorf("evaluateAnswer(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestComputeBadges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		correct     int
		total       int
		durationSec int
		wordCount   int
		skipCount   int
		flashcard   bool
		want        []string
	}{
		{
			name:    "perfect score excludes excellent",
			correct: 5, total: 5, durationSec: 100, wordCount: 5,
			want: []string{BadgePerfectScore},
		},
		{
			name:    "excellent band",
			correct: 9, total: 10, durationSec: 200, wordCount: 10,
			want: []string{BadgeExcellent},
		},
		{
			name:    "good job band",
			correct: 8, total: 10, durationSec: 200, wordCount: 10,
			want: []string{BadgeGoodJob},
		},
		{
			name:    "below all bands",
			correct: 5, total: 10, durationSec: 200, wordCount: 10,
			want: []string{},
		},
		{
			name:    "speed learner stacks with accuracy badge",
			correct: 5, total: 5, durationSec: 20, wordCount: 5,
			want: []string{BadgePerfectScore, BadgeSpeedLearner},
		},
		{
			name:    "no skip challenge for flashcard runs",
			correct: 3, total: 4, durationSec: 200, wordCount: 4, skipCount: 0, flashcard: true,
			want: []string{BadgeGoodJob, BadgeNoSkipChallenge},
		},
		{
			name:    "skips forfeit the challenge",
			correct: 3, total: 4, durationSec: 200, wordCount: 4, skipCount: 1, flashcard: true,
			want: []string{BadgeGoodJob},
		},
		{
			name: "empty attempt earns nothing",
			want: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeBadges(tt.correct, tt.total, tt.durationSec, tt.wordCount, tt.skipCount, tt.flashcard)
			if len(got) != len(tt.want) {
				t.Fatalf("ComputeBadges() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ComputeBadges() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPriorityScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	overdue := &domain.Progress{
		Box:            2,
		WrongCount:     1,
		NextReviewAt:   now.AddDate(0, 0, -3),
		LastReviewedAt: now.AddDate(0, 0, -5),
	}
	// 10*3 overdue + 5*1 wrong + 2*(6-2) box + 5 stale
	if got, want := priorityScore(overdue, now), 48; got != want {
		t.Errorf("priorityScore(overdue) = %d, want %d", got, want)
	}

	neverReviewed := &domain.Progress{
		Box:          1,
		NextReviewAt: now.AddDate(0, 0, 1),
	}
	// Only the low-box term applies: 2*(6-1)
	if got, want := priorityScore(neverReviewed, now), 10; got != want {
		t.Errorf("priorityScore(neverReviewed) = %d, want %d", got, want)
	}
}
