package generation

import (
	"context"

	"github.com/wordway/wordway-api/internal/domain"
)

// DistractorGenerator defines the interface for generating plausible wrong
// answers for multiple-choice questions. This interface serves as a boundary
// between the application core and external AI/LLM services; the session
// builder only consults it when the word store cannot supply enough real
// glosses.
type DistractorGenerator interface {
	// GenerateDistractors produces up to count plausible but incorrect
	// meanings for the given word. It may return fewer than requested;
	// callers pad the shortfall with generic placeholders.
	GenerateDistractors(ctx context.Context, word *domain.Word, count int) ([]string, error)
}
