package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordTextEmpty is returned when a word's surface form is empty.
	ErrWordTextEmpty = errors.New("word text cannot be empty")

	// ErrWordNoGlosses is returned when a word carries no glosses at all.
	ErrWordNoGlosses = errors.New("word must have at least one gloss")

	// ErrGlossMeaningEmpty is returned when a gloss has no meaning text.
	ErrGlossMeaningEmpty = errors.New("gloss meaning cannot be empty")
)

// Word represents a single vocabulary entry. Words are immutable reference
// data owned by the word store; the review core only ever reads them.
type Word struct {
	ID           uuid.UUID `json:"id"`
	Text         string    `json:"text"`
	Phonetic     string    `json:"phonetic,omitempty"`
	PartOfSpeech string    `json:"part_of_speech,omitempty"`
	Level        string    `json:"level,omitempty"` // CEFR-like level (A1..C2)
	Glosses      []Gloss   `json:"glosses"`
}

// Gloss is a short localized meaning attached to a word, optionally with a
// longer definition. Glosses are ordered by Position within their word.
type Gloss struct {
	ID         uuid.UUID `json:"id"`
	WordID     uuid.UUID `json:"word_id"`
	Meaning    string    `json:"meaning"`
	Definition string    `json:"definition,omitempty"`
	Position   int       `json:"position"`
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.Text == "" {
		return ErrWordTextEmpty
	}

	if len(w.Glosses) == 0 {
		return ErrWordNoGlosses
	}

	for _, g := range w.Glosses {
		if g.Meaning == "" {
			return ErrGlossMeaningEmpty
		}
	}

	return nil
}

// PrimaryGloss returns the word's first gloss in position order.
// Callers must only invoke it on a validated word.
func (w *Word) PrimaryGloss() Gloss {
	best := w.Glosses[0]
	for _, g := range w.Glosses[1:] {
		if g.Position < best.Position {
			best = g
		}
	}
	return best
}
