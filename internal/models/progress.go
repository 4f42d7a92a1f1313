package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TopicProgress is the per-(learner, topic) scheduling state. One row per
// pair; mutated only by the scheduler's RecordAnswer path.
type TopicProgress struct {
	LearnerID      int64      `json:"learner_id"`
	TopicID        string     `json:"topic_id"`
	Attempts       int        `json:"attempts"`
	Correct        int        `json:"correct"`
	Mastery        float64    `json:"mastery"`
	StreakCorrect  int        `json:"streak_correct"`
	StreakWrong    int        `json:"streak_wrong"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
	NextReview     *time.Time `json:"next_review,omitempty"`
	EasinessFactor float64    `json:"easiness_factor"`
	IntervalDays   int        `json:"interval_days"`
	ReviewCount    int        `json:"review_count"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AttemptRecord is one append-only history entry, written atomically with
// the progress row it belongs to.
type AttemptRecord struct {
	LearnerID     int64     `json:"learner_id"`
	TopicID       string    `json:"topic_id"`
	Correct       bool      `json:"correct"`
	MasteryAtTime float64   `json:"mastery_at_time"`
	Retention     float64   `json:"retention"`
	Timestamp     time.Time `json:"timestamp"`
}

// TopicPriority pairs a topic with its composite review-priority score.
type TopicPriority struct {
	TopicID string  `json:"topic_id"`
	Score   float64 `json:"score"`
}

// TopicProgressDetail is a progress row plus its recent attempt history,
// returned by the full state dump endpoint.
type TopicProgressDetail struct {
	TopicProgress
	History []AttemptRecord `json:"attempt_history"`
}

// ── API Request/Response Types ────────────────────────────

type RecordAnswerRequest struct {
	TopicID string `json:"topic_id"`
	Correct bool   `json:"correct"`
}

type RecordAnswerResponse struct {
	Progress       *TopicProgress `json:"progress"`
	NextDifficulty Difficulty     `json:"next_difficulty"`
}

type NextTopicResponse struct {
	TopicID string `json:"topic_id"`
}

type VelocityResponse struct {
	TopicID  string  `json:"topic_id"`
	Velocity float64 `json:"velocity"`
}

type DifficultyResponse struct {
	TopicID    string     `json:"topic_id"`
	Difficulty Difficulty `json:"difficulty"`
}

// ProgressReport aggregates a learner's progress across all topics.
type ProgressReport struct {
	TotalAttempts     int     `json:"total_attempts"`
	TotalCorrect      int     `json:"total_correct"`
	OverallAccuracy   float64 `json:"overall_accuracy"`
	TopicsMastered    int     `json:"topics_mastered"`
	TopicsInProgress  int     `json:"topics_in_progress"`
	TopicsStruggling  int     `json:"topics_struggling"`
	TopicsTracked     int     `json:"topics_tracked"`
}

// ForgettingCurve projects retention over time for charting.
type ForgettingCurve struct {
	Topics     []TopicCurve `json:"topics"`
	TimeLabels []string     `json:"time_labels"`
}

type TopicCurve struct {
	TopicID   string    `json:"topic_id"`
	Name      string    `json:"name"`
	Retention []float64 `json:"retention_data"`
}
