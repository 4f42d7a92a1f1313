package questions

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/studyloop/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveQuestion(q *models.Question) error {
	choicesJSON, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("marshal choices: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO questions (learner_id, topic_id, difficulty, question, choices,
			correct_answer_id, explanation, model)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING question_id, created_at`,
		q.LearnerID, q.TopicID, q.Difficulty, q.Question, choicesJSON,
		q.CorrectAnswerID, q.Explanation, q.Model,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// GetQuestion returns (nil, nil) when no question with that id exists for
// the learner.
func (s *Store) GetQuestion(learnerID int64, questionID string) (*models.Question, error) {
	var q models.Question
	var choicesJSON []byte

	err := s.db.QueryRow(`
		SELECT question_id, learner_id, topic_id, difficulty, question, choices,
			correct_answer_id, explanation, model, answered, created_at
		FROM questions
		WHERE question_id = $1 AND learner_id = $2`,
		questionID, learnerID,
	).Scan(&q.ID, &q.LearnerID, &q.TopicID, &q.Difficulty, &q.Question, &choicesJSON,
		&q.CorrectAnswerID, &q.Explanation, &q.Model, &q.Answered, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	if err := json.Unmarshal(choicesJSON, &q.Choices); err != nil {
		return nil, fmt.Errorf("unmarshal choices: %w", err)
	}
	return &q, nil
}

func (s *Store) MarkAnswered(questionID string) error {
	_, err := s.db.Exec(`UPDATE questions SET answered = TRUE WHERE question_id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("mark answered: %w", err)
	}
	return nil
}
