package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordway/wordway-api/internal/domain"
)

func TestSummarizeAttempt(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	attempt, err := domain.NewAttempt(userID, sessionID, 3)
	require.NoError(t, err)
	attempt.StartedAt = time.Now().UTC().Add(-25 * time.Second)
	submitted := time.Now().UTC()
	attempt.SubmittedAt = &submitted

	rightWord := uuid.New()
	wrongWord := uuid.New()
	results := []*domain.QuestionResult{
		{ID: uuid.New(), AttemptID: attempt.ID, QuestionID: uuid.New(),
			WordID: rightWord, IsCorrect: true, ScoreDelta: domain.PointsPerQuestion},
		{ID: uuid.New(), AttemptID: attempt.ID, QuestionID: uuid.New(),
			WordID: wrongWord, IsCorrect: false},
		{ID: uuid.New(), AttemptID: attempt.ID, QuestionID: uuid.New(),
			WordID: uuid.New(), IsCorrect: true, ScoreDelta: domain.PointsPerQuestion},
	}

	summary := summarizeAttempt(attempt, results)

	assert.Equal(t, attempt.ID, summary.AttemptID)
	assert.Equal(t, 2, summary.TotalCorrect)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.Equal(t, 2, summary.Score)
	assert.Equal(t, attempt.MaxScore, summary.MaxScore)
	assert.Contains(t, summary.MasteredWords, rightWord)
	assert.Equal(t, []uuid.UUID{wrongWord}, summary.NeedReviewWords)
	assert.InDelta(t, 25, summary.DurationSec, 1)

	// 2/3 accuracy earns no band, but the pace is under ten seconds per
	// question.
	assert.Equal(t, []string{BadgeSpeedLearner}, summary.Badges)

	// Summaries are pure functions of the attempt and its results.
	again := summarizeAttempt(attempt, results)
	assert.Equal(t, summary, again)
}

func TestSummarizeAttemptUnsubmitted(t *testing.T) {
	t.Parallel()

	attempt, err := domain.NewAttempt(uuid.New(), uuid.New(), 2)
	require.NoError(t, err)

	summary := summarizeAttempt(attempt, nil)

	assert.Equal(t, 0, summary.TotalQuestions)
	assert.Equal(t, 0, summary.DurationSec)
	assert.Empty(t, summary.Badges)
	assert.Empty(t, summary.MasteredWords)
	assert.Empty(t, summary.NeedReviewWords)
}
