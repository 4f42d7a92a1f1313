package models

import "time"

// Question is a generated practice question served to a learner. The
// correct answer and explanation are stored but omitted from the JSON
// payload until the learner answers.
type Question struct {
	ID              string     `json:"question_id"`
	LearnerID       int64      `json:"learner_id"`
	TopicID         string     `json:"topic_id"`
	Difficulty      Difficulty `json:"difficulty"`
	Question        string     `json:"question"`
	Choices         []Choice   `json:"choices"`
	CorrectAnswerID string     `json:"-"`
	Explanation     string     `json:"-"`
	Model           string     `json:"-"`
	Answered        bool       `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type SubmitAnswerRequest struct {
	AnswerID string `json:"answer_id"`
}

type SubmitAnswerResponse struct {
	Correct         bool           `json:"correct"`
	CorrectAnswerID string         `json:"correct_answer_id"`
	Explanation     string         `json:"explanation"`
	Progress        *TopicProgress `json:"progress"`
	NextDifficulty  Difficulty     `json:"next_difficulty"`
	XPAwarded       int            `json:"xp_awarded"`
	CurrentStreak   int            `json:"current_streak"`
}

type NextQuestionResponse struct {
	Question  *Question `json:"question"`
	TopicName string    `json:"topic_name"`
}
