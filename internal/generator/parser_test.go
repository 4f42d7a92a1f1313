package generator

import (
	"context"
	"strings"
	"testing"
)

const validResponse = `{
	"question": "What is the limit of (1 + 1/n)^n as n approaches infinity?",
	"choices": [
		{"id": "A", "text": "1"},
		{"id": "B", "text": "e"},
		{"id": "C", "text": "pi"},
		{"id": "D", "text": "infinity"}
	],
	"correct_answer_id": "B",
	"explanation": "This is the classic limit definition of e."
}`

func TestParseResponse(t *testing.T) {
	q, err := ParseResponse(validResponse)
	if err != nil {
		t.Fatalf("ParseResponse returned error: %v", err)
	}
	if q.CorrectAnswerID != "B" {
		t.Errorf("correct_answer_id = %q, want B", q.CorrectAnswerID)
	}
	if len(q.Choices) != 4 {
		t.Errorf("got %d choices, want 4", len(q.Choices))
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	q, err := ParseResponse(fenced)
	if err != nil {
		t.Fatalf("ParseResponse with fences returned error: %v", err)
	}
	if q.Question == "" {
		t.Error("question text is empty after fence stripping")
	}

	bareFence := "```\n" + validResponse + "\n```"
	if _, err := ParseResponse(bareFence); err != nil {
		t.Fatalf("ParseResponse with bare fences returned error: %v", err)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse("here is your question: what is 2+2?"); err == nil {
		t.Error("ParseResponse should reject non-JSON responses")
	}
}

func TestParseResponseValidation(t *testing.T) {
	threeChoices := `{
		"question": "Pick one.",
		"choices": [
			{"id": "A", "text": "first"},
			{"id": "B", "text": "second"},
			{"id": "C", "text": "third"}
		],
		"correct_answer_id": "A",
		"explanation": "ok"
	}`

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"only three choices", threeChoices, "choices"},
		{
			"correct answer not a choice",
			strings.Replace(validResponse, `"correct_answer_id": "B"`, `"correct_answer_id": "E"`, 1),
			"correct_answer_id",
		},
		{
			"empty explanation",
			strings.Replace(validResponse, "This is the classic limit definition of e.", "", 1),
			"explanation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.input)
			if err == nil {
				t.Fatal("ParseResponse should have failed validation")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMockClientProducesValidQuestion(t *testing.T) {
	resp, err := NewMockClient().Generate(context.Background(), "", "")
	if err != nil {
		t.Fatalf("mock Generate returned error: %v", err)
	}
	if _, err := ParseResponse(resp.Content); err != nil {
		t.Errorf("mock response failed to parse: %v", err)
	}
}
