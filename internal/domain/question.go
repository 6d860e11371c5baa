package domain

import (
	"errors"

	"github.com/google/uuid"
)

// QuestionType tags the variant of a quiz question.
type QuestionType string

// The three supported question formats. The set is closed: evaluation and
// rendering both switch exhaustively on the tag.
const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeFillInBlank    QuestionType = "FILL_IN_BLANK"
)

// OptionCount is the fixed number of options in a multiple-choice question.
const OptionCount = 4

// Question-specific validation errors
var (
	ErrQuestionIDEmpty        = errors.New("question ID cannot be empty")
	ErrQuestionSessionEmpty   = errors.New("question session ID cannot be empty")
	ErrQuestionWordEmpty      = errors.New("question word ID cannot be empty")
	ErrInvalidQuestionType    = errors.New("invalid question type")
	ErrMissingQuestionPayload = errors.New("question payload does not match its type")
	ErrInvalidOptionCount     = errors.New("multiple-choice question must have exactly 4 options")
	ErrInvalidCorrectIndex    = errors.New("correct index out of option range")
)

// MultipleChoicePayload holds the data of a multiple-choice question:
// a prompt, four shuffled options, and the post-shuffle index of the
// correct one.
type MultipleChoicePayload struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// TrueFalsePayload holds the data of a true/false question: the word shown
// together with a meaning that is either its real gloss or a sampled wrong
// one. Answer is the expected response.
type TrueFalsePayload struct {
	Prompt       string `json:"prompt"`
	ShownMeaning string `json:"shown_meaning"`
	Answer       bool   `json:"answer"`
}

// FillInBlankPayload holds the data of a fill-in-the-blank question: the
// prompt shows the phonetic transcription and gloss as clues, and the
// expected answer is the word's surface form.
type FillInBlankPayload struct {
	Prompt      string `json:"prompt"`
	Clue        string `json:"clue,omitempty"`
	CorrectWord string `json:"correct_word"`
}

// Question is one item of a review session. It is a tagged union over the
// three question formats: exactly one payload pointer is set, matching Type.
// Questions belong to exactly one session and are ordered by Position.
type Question struct {
	ID        uuid.UUID    `json:"id"`
	SessionID uuid.UUID    `json:"session_id"`
	WordID    uuid.UUID    `json:"word_id"`
	Position  int          `json:"position"`
	Type      QuestionType `json:"type"`

	MultipleChoice *MultipleChoicePayload `json:"multiple_choice,omitempty"`
	TrueFalse      *TrueFalsePayload      `json:"true_false,omitempty"`
	FillInBlank    *FillInBlankPayload    `json:"fill_in_blank,omitempty"`
}

// NewMultipleChoiceQuestion creates a multiple-choice question for the given
// session and word. Options must already be shuffled; correctIndex is the
// post-shuffle position of the correct option.
func NewMultipleChoiceQuestion(
	sessionID, wordID uuid.UUID,
	position int,
	prompt string,
	options []string,
	correctIndex int,
) (*Question, error) {
	q := &Question{
		ID:        uuid.New(),
		SessionID: sessionID,
		WordID:    wordID,
		Position:  position,
		Type:      QuestionTypeMultipleChoice,
		MultipleChoice: &MultipleChoicePayload{
			Prompt:       prompt,
			Options:      options,
			CorrectIndex: correctIndex,
		},
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// NewTrueFalseQuestion creates a true/false question showing the given
// meaning next to the word; answer is the expected response.
func NewTrueFalseQuestion(
	sessionID, wordID uuid.UUID,
	position int,
	prompt, shownMeaning string,
	answer bool,
) (*Question, error) {
	q := &Question{
		ID:        uuid.New(),
		SessionID: sessionID,
		WordID:    wordID,
		Position:  position,
		Type:      QuestionTypeTrueFalse,
		TrueFalse: &TrueFalsePayload{
			Prompt:       prompt,
			ShownMeaning: shownMeaning,
			Answer:       answer,
		},
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// NewFillInBlankQuestion creates a fill-in-the-blank question whose expected
// answer is the word's surface form.
func NewFillInBlankQuestion(
	sessionID, wordID uuid.UUID,
	position int,
	prompt, clue, correctWord string,
) (*Question, error) {
	q := &Question{
		ID:        uuid.New(),
		SessionID: sessionID,
		WordID:    wordID,
		Position:  position,
		Type:      QuestionTypeFillInBlank,
		FillInBlank: &FillInBlankPayload{
			Prompt:      prompt,
			Clue:        clue,
			CorrectWord: correctWord,
		},
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the Question has valid data, including that exactly
// the payload matching the type tag is present.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if q.SessionID == uuid.Nil {
		return ErrQuestionSessionEmpty
	}

	if q.WordID == uuid.Nil {
		return ErrQuestionWordEmpty
	}

	switch q.Type {
	case QuestionTypeMultipleChoice:
		if q.MultipleChoice == nil || q.TrueFalse != nil || q.FillInBlank != nil {
			return ErrMissingQuestionPayload
		}
		if len(q.MultipleChoice.Options) != OptionCount {
			return ErrInvalidOptionCount
		}
		if q.MultipleChoice.CorrectIndex < 0 ||
			q.MultipleChoice.CorrectIndex >= len(q.MultipleChoice.Options) {
			return ErrInvalidCorrectIndex
		}
	case QuestionTypeTrueFalse:
		if q.TrueFalse == nil || q.MultipleChoice != nil || q.FillInBlank != nil {
			return ErrMissingQuestionPayload
		}
	case QuestionTypeFillInBlank:
		if q.FillInBlank == nil || q.MultipleChoice != nil || q.TrueFalse != nil {
			return ErrMissingQuestionPayload
		}
	default:
		return ErrInvalidQuestionType
	}

	return nil
}

// CorrectAnswerText returns the canonical text of the correct answer for
// display and for the evaluator's text-compare compatibility path.
func (q *Question) CorrectAnswerText() string {
	switch q.Type {
	case QuestionTypeMultipleChoice:
		return q.MultipleChoice.Options[q.MultipleChoice.CorrectIndex]
	case QuestionTypeTrueFalse:
		if q.TrueFalse.Answer {
			return "TRUE"
		}
		return "FALSE"
	case QuestionTypeFillInBlank:
		return q.FillInBlank.CorrectWord
	default:
		return ""
	}
}
