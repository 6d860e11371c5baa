package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/wordway/wordway-api/internal/config"
	"github.com/wordway/wordway-api/internal/domain"
	"github.com/wordway/wordway-api/internal/generation"
)

// maxDistractorsPerCall bounds a single generation request.
const maxDistractorsPerCall = 3

// promptFormat asks for strict JSON so the response parses without
// post-processing. The word's own meanings are listed so the model avoids
// producing near-synonyms of the correct answer.
const promptFormat = `You are helping build a vocabulary quiz.
Generate exactly %d plausible but INCORRECT short meanings (distractors) for
the word %q. The real meanings are: %s. Each distractor must be a brief
dictionary-style gloss in the same language as the real meanings, and must
not be a synonym of any real meaning.
Respond with JSON only, in the form: {"distractors": ["...", "..."]}`

// responseSchema mirrors the JSON shape requested by promptFormat.
type responseSchema struct {
	Distractors []string `json:"distractors"`
}

// GeminiGenerator implements the generation.DistractorGenerator interface
// using Google's Gemini API.
type GeminiGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure GeminiGenerator implements generation.DistractorGenerator
var _ generation.DistractorGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new GeminiGenerator from the generation
// configuration. It fails when the API key or model name is missing; callers
// that want generation to be optional check the config before constructing.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GenerationConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateDistractors implements generation.DistractorGenerator. It asks the
// model for plausible wrong meanings and parses the JSON reply. The result
// may contain fewer entries than requested.
func (g *GeminiGenerator) GenerateDistractors(
	ctx context.Context,
	word *domain.Word,
	count int,
) ([]string, error) {
	if word == nil {
		return nil, fmt.Errorf("%w: word cannot be nil", generation.ErrGenerationFailed)
	}
	if count <= 0 {
		return nil, nil
	}
	if count > maxDistractorsPerCall {
		count = maxDistractorsPerCall
	}

	meanings := make([]string, 0, len(word.Glosses))
	for _, gloss := range word.Glosses {
		meanings = append(meanings, gloss.Meaning)
	}

	prompt := fmt.Sprintf(promptFormat, count, word.Text, strings.Join(meanings, "; "))

	g.logger.DebugContext(ctx, "requesting distractors",
		slog.String("word_id", word.ID.String()),
		slog.Int("count", count))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: safety filter triggered", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(resp.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed responseSchema
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	distractors := make([]string, 0, count)
	for _, d := range parsed.Distractors {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		distractors = append(distractors, d)
		if len(distractors) == count {
			break
		}
	}

	g.logger.DebugContext(ctx, "distractors generated",
		slog.String("word_id", word.ID.String()),
		slog.Int("returned", len(distractors)))

	return distractors, nil
}
