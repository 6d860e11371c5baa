package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/generation"
	"github.com/wordway/wordway-api/internal/platform/logger"
	"github.com/wordway/wordway-api/internal/store"
)

// distractorsPerQuestion is how many wrong options a multiple-choice
// question carries next to the single correct one.
const distractorsPerQuestion = domain.OptionCount - 1

// placeholderMeanings pad multiple-choice options when neither the word
// store nor the generator can supply enough real distractors. Degraded
// mode, logged but never an error.
var placeholderMeanings = []string{
	"related meaning",
	"similar concept",
	"alternate sense",
}

// sessionBuilder turns a word list into an ordered, mixed-format quiz.
// The word list is consumed in order and split into disjoint buckets:
// multiple-choice first, then true/false, then fill-in-blank, each capped
// at QuestionsPerFormatLimit.
type sessionBuilder struct {
	wordStore store.WordStore
	generator generation.DistractorGenerator // may be nil
	logger    *slog.Logger

	// rng drives option shuffling and the true/false coin flip. Guarded by
	// mu since sessions may build concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

func newSessionBuilder(
	wordStore store.WordStore,
	generator generation.DistractorGenerator,
	log *slog.Logger,
	rng *rand.Rand,
) *sessionBuilder {
	return &sessionBuilder{
		wordStore: wordStore,
		generator: generator,
		logger:    log,
		rng:       rng,
	}
}

// bucketSplit computes the disjoint format buckets for n input words:
// mc = min(5, n), tf = min(5, n-5), fib = min(5, n-10).
func bucketSplit(n int) (mc, tf, fib int) {
	limit := domain.QuestionsPerFormatLimit
	mc = min(limit, n)
	tf = min(limit, max(0, n-limit))
	fib = min(limit, max(0, n-2*limit))
	return mc, tf, fib
}

// Build generates a review session over the given words. The session is not
// persisted here; the caller owns the write.
func (b *sessionBuilder) Build(
	ctx context.Context,
	userID uuid.UUID,
	words []*domain.Word,
) (*domain.ReviewSession, error) {
	if len(words) == 0 {
		return nil, ErrNoWordsAvailable
	}
	if len(words) > domain.MaxSessionWords {
		words = words[:domain.MaxSessionWords]
	}

	session := domain.NewReviewSession(userID)

	mc, tf, fib := bucketSplit(len(words))
	position := 0

	for _, word := range words[:mc] {
		q, err := b.buildMultipleChoice(ctx, session.ID, word, position)
		if err != nil {
			return nil, err
		}
		session.Questions = append(session.Questions, *q)
		position++
	}

	for _, word := range words[mc : mc+tf] {
		q, err := b.buildTrueFalse(ctx, session.ID, word, position)
		if err != nil {
			return nil, err
		}
		session.Questions = append(session.Questions, *q)
		position++
	}

	for _, word := range words[mc+tf : mc+tf+fib] {
		q, err := buildFillInBlank(session.ID, word, position)
		if err != nil {
			return nil, err
		}
		session.Questions = append(session.Questions, *q)
		position++
	}

	session.ItemCount = len(session.Questions)

	if err := session.Validate(); err != nil {
		return nil, NewBuildSessionError("generated session invalid", err)
	}

	return session, nil
}

// buildMultipleChoice constructs one multiple-choice question: the word's
// primary gloss plus three distractors, shuffled, with the correct index
// tracked through the shuffle.
func (b *sessionBuilder) buildMultipleChoice(
	ctx context.Context,
	sessionID uuid.UUID,
	word *domain.Word,
	position int,
) (*domain.Question, error) {
	correct := word.PrimaryGloss().Meaning
	distractors := b.gatherDistractors(ctx, word, correct)

	options := append([]string{correct}, distractors...)

	b.mu.Lock()
	perm := b.rng.Perm(len(options))
	b.mu.Unlock()

	shuffled := make([]string, len(options))
	correctIndex := 0
	for from, to := range perm {
		shuffled[to] = options[from]
		if from == 0 {
			correctIndex = to
		}
	}

	prompt := fmt.Sprintf("Choose the correct meaning of %q", word.Text)
	return domain.NewMultipleChoiceQuestion(sessionID, word.ID, position, prompt, shuffled, correctIndex)
}

// buildTrueFalse constructs one true/false question: a uniform coin flip
// between showing the real gloss (answer TRUE) and a sampled wrong one
// (answer FALSE). Without a wrong gloss to show, the TRUE variant is used.
func (b *sessionBuilder) buildTrueFalse(
	ctx context.Context,
	sessionID uuid.UUID,
	word *domain.Word,
	position int,
) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)
	correct := word.PrimaryGloss().Meaning

	b.mu.Lock()
	showTrue := b.rng.Intn(2) == 0
	b.mu.Unlock()

	shownMeaning := correct
	answer := true

	if !showTrue {
		sampled, err := b.wordStore.SampleGlosses(ctx, word.ID, 1)
		if err != nil || len(sampled) == 0 {
			log.Warn("no wrong gloss available for true/false, using true variant",
				slog.String("word_id", word.ID.String()))
		} else {
			shownMeaning = sampled[0].Meaning
			answer = false
		}
	}

	prompt := fmt.Sprintf("Does %q mean: %s?", word.Text, shownMeaning)
	return domain.NewTrueFalseQuestion(sessionID, word.ID, position, prompt, shownMeaning, answer)
}

// buildFillInBlank constructs one fill-in-blank question: the gloss and
// phonetic transcription as clues, the surface form as the expected answer.
func buildFillInBlank(
	sessionID uuid.UUID,
	word *domain.Word,
	position int,
) (*domain.Question, error) {
	gloss := word.PrimaryGloss()

	prompt := fmt.Sprintf("Type the word meaning: %s", gloss.Meaning)
	clue := word.Phonetic
	return domain.NewFillInBlankQuestion(sessionID, word.ID, position, prompt, clue, word.Text)
}

// gatherDistractors collects three wrong options for a multiple-choice
// question. Real glosses come first; the generator fills gaps when
// configured; fixed placeholders cover whatever remains.
func (b *sessionBuilder) gatherDistractors(
	ctx context.Context,
	word *domain.Word,
	correct string,
) []string {
	log := logger.FromContextOrDefault(ctx, b.logger)

	distractors := make([]string, 0, distractorsPerQuestion)
	seen := map[string]bool{normalizeOption(correct): true}

	add := func(meaning string) {
		key := normalizeOption(meaning)
		if key == "" || seen[key] || len(distractors) >= distractorsPerQuestion {
			return
		}
		seen[key] = true
		distractors = append(distractors, meaning)
	}

	sampled, err := b.wordStore.SampleGlosses(ctx, word.ID, distractorsPerQuestion+2)
	if err != nil {
		log.Warn("distractor sampling failed",
			slog.String("word_id", word.ID.String()),
			slog.String("error", err.Error()))
	}
	for _, g := range sampled {
		add(g.Meaning)
	}

	if len(distractors) < distractorsPerQuestion && b.generator != nil {
		generated, err := b.generator.GenerateDistractors(
			ctx, word, distractorsPerQuestion-len(distractors))
		if err != nil {
			log.Warn("distractor generation failed",
				slog.String("word_id", word.ID.String()),
				slog.String("error", err.Error()))
		}
		for _, meaning := range generated {
			add(meaning)
		}
	}

	if shortfall := distractorsPerQuestion - len(distractors); shortfall > 0 {
		log.Warn("padding distractors with placeholders",
			slog.String("word_id", word.ID.String()),
			slog.Int("real", len(distractors)),
			slog.Int("placeholders", shortfall))
		for _, placeholder := range placeholderMeanings {
			add(placeholder)
		}
	}

	return distractors
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
