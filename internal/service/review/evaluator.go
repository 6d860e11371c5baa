package review

import (
	"strconv"
	"strings"

	"github.com/wordway/wordway-api/internal/domain"
)

// evaluateAnswer scores a raw submitted answer against a question. An empty
// answer is always incorrect, never an error.
//
// Format rules:
//   - multiple-choice: the answer parses as the option index; if parsing
//     fails, fall back to a case-insensitive compare against the correct
//     option's text (compatibility path for older clients).
//   - true/false: case-insensitive TRUE / FALSE compare.
//   - fill-in-blank: trimmed, case-insensitive compare with the word's
//     surface form.
func evaluateAnswer(q *domain.Question, rawAnswer string) bool {
	answer := strings.TrimSpace(rawAnswer)
	if answer == "" {
		return false
	}

	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		payload := q.MultipleChoice
		if index, err := strconv.Atoi(answer); err == nil {
			return index == payload.CorrectIndex
		}
		return strings.EqualFold(answer, payload.Options[payload.CorrectIndex])

	case domain.QuestionTypeTrueFalse:
		expected := "FALSE"
		if q.TrueFalse.Answer {
			expected = "TRUE"
		}
		return strings.EqualFold(answer, expected)

	case domain.QuestionTypeFillInBlank:
		return strings.EqualFold(answer, strings.TrimSpace(q.FillInBlank.CorrectWord))

	default:
		return false
	}
}
