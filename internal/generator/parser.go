package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

type GeneratedQuestion struct {
	Question        string            `json:"question"`
	Choices         []GeneratedChoice `json:"choices"`
	CorrectAnswerID string            `json:"correct_answer_id"`
	Explanation     string            `json:"explanation"`
}

type GeneratedChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes a model response into a question, tolerating the
// code fences models sometimes wrap JSON in despite instructions.
func ParseResponse(responseBody string) (*GeneratedQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var question GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &question); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestion(&question); err != nil {
		return nil, err
	}

	return &question, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var expectedChoiceIDs = []string{"A", "B", "C", "D"}

func validateQuestion(q *GeneratedQuestion) error {
	var errs []string

	if q.Question == "" {
		errs = append(errs, "empty question text")
	}
	if len(q.Choices) != len(expectedChoiceIDs) {
		errs = append(errs, fmt.Sprintf("expected %d choices, got %d", len(expectedChoiceIDs), len(q.Choices)))
	} else {
		for i, c := range q.Choices {
			if c.ID != expectedChoiceIDs[i] {
				errs = append(errs, fmt.Sprintf("choice %d has id %q, expected %q", i, c.ID, expectedChoiceIDs[i]))
			}
			if c.Text == "" {
				errs = append(errs, fmt.Sprintf("choice %s has empty text", c.ID))
			}
		}
	}

	correctFound := false
	for _, id := range expectedChoiceIDs {
		if q.CorrectAnswerID == id {
			correctFound = true
			break
		}
	}
	if !correctFound {
		errs = append(errs, fmt.Sprintf("correct_answer_id %q is not one of A-D", q.CorrectAnswerID))
	}
	if q.Explanation == "" {
		errs = append(errs, "empty explanation")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
