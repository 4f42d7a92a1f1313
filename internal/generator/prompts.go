package generator

import (
	"fmt"

	"github.com/studyloop/backend/internal/models"
)

func QuestionSystemPrompt() string {
	return `You are an expert tutor who writes multiple-choice practice questions.
You always respond with a single JSON object and nothing else: no prose,
no markdown fences, no commentary. The object has exactly these fields:

{
  "question": "the question text",
  "choices": [
    {"id": "A", "text": "..."},
    {"id": "B", "text": "..."},
    {"id": "C", "text": "..."},
    {"id": "D", "text": "..."}
  ],
  "correct_answer_id": "A",
  "explanation": "why the correct choice is correct"
}

Exactly four choices labeled A through D, exactly one of which is correct.
Wrong choices must be plausible, not jokes. The explanation should be
two or three sentences.`
}

var difficultyGuidance = map[models.Difficulty]string{
	models.DifficultyEasy:   "a foundational question testing the basic definition or the most common case",
	models.DifficultyMedium: "a question requiring the learner to apply the concept to a short concrete scenario",
	models.DifficultyHard:   "a challenging question involving an edge case, a multi-step application, or a subtle distinction",
}

func BuildQuestionPrompt(topicName string, difficulty models.Difficulty) string {
	guidance, ok := difficultyGuidance[difficulty]
	if !ok {
		guidance = difficultyGuidance[models.DifficultyMedium]
	}
	return fmt.Sprintf("Write one %s-difficulty multiple-choice question on the topic %q: %s.",
		difficulty, topicName, guidance)
}
