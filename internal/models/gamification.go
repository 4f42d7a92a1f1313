package models

import "time"

type LearnerGamification struct {
	LearnerID              int64      `json:"learner_id"`
	TotalXP                int64      `json:"total_xp"`
	CurrentStreak          int        `json:"current_streak"`
	LongestStreak          int        `json:"longest_streak"`
	LastActiveDate         *time.Time `json:"last_active_date,omitempty"`
	QuestionsAnsweredTotal int        `json:"questions_answered_total"`
	QuestionsCorrectTotal  int        `json:"questions_correct_total"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}
