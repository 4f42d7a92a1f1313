package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studyloop/backend/internal/models"
)

// ProgressStore persists per-(learner, topic) scheduling state and the
// append-only attempt history. SaveAttempt must write the progress row and
// the history record in one transaction: both land or neither does.
type ProgressStore interface {
	// GetProgress returns (nil, nil) when no row exists for the pair.
	GetProgress(learnerID int64, topicID string) (*models.TopicProgress, error)
	ListProgress(learnerID int64) ([]models.TopicProgress, error)
	// SeedProgress inserts zeroed rows for the given topics, skipping pairs
	// that already exist.
	SeedProgress(learnerID int64, topicIDs []string) error
	SaveAttempt(ctx context.Context, p *models.TopicProgress, a *models.AttemptRecord) error
	// DeleteProgress removes all state and history for the learner.
	DeleteProgress(learnerID int64) error
	// RecentAttempts returns up to limit records, most recent first.
	RecentAttempts(learnerID int64, topicID string, limit int) ([]models.AttemptRecord, error)
	// TopicsDue returns topic IDs whose next_review is set and has passed.
	TopicsDue(learnerID int64, now time.Time) ([]string, error)
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const progressCols = `learner_id, topic_id, attempts, correct, mastery,
	        streak_correct, streak_wrong, last_reviewed, next_review,
	        easiness_factor, interval_days, review_count, updated_at`

func (s *Store) GetProgress(learnerID int64, topicID string) (*models.TopicProgress, error) {
	var p models.TopicProgress
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM learner_progress WHERE learner_id = $1 AND topic_id = $2`, progressCols),
		learnerID, topicID,
	).Scan(&p.LearnerID, &p.TopicID, &p.Attempts, &p.Correct, &p.Mastery,
		&p.StreakCorrect, &p.StreakWrong, &p.LastReviewed, &p.NextReview,
		&p.EasinessFactor, &p.IntervalDays, &p.ReviewCount, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

func (s *Store) ListProgress(learnerID int64) ([]models.TopicProgress, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM learner_progress WHERE learner_id = $1 ORDER BY topic_id`, progressCols),
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var progress []models.TopicProgress
	for rows.Next() {
		var p models.TopicProgress
		if err := rows.Scan(&p.LearnerID, &p.TopicID, &p.Attempts, &p.Correct, &p.Mastery,
			&p.StreakCorrect, &p.StreakWrong, &p.LastReviewed, &p.NextReview,
			&p.EasinessFactor, &p.IntervalDays, &p.ReviewCount, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

func (s *Store) SeedProgress(learnerID int64, topicIDs []string) error {
	for _, topicID := range topicIDs {
		_, err := s.db.Exec(
			`INSERT INTO learner_progress (learner_id, topic_id, easiness_factor)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (learner_id, topic_id) DO NOTHING`,
			learnerID, topicID, InitialEasiness,
		)
		if err != nil {
			return fmt.Errorf("seed progress for %s: %w", topicID, err)
		}
	}
	return nil
}

func (s *Store) SaveAttempt(ctx context.Context, p *models.TopicProgress, a *models.AttemptRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO learner_progress
		 (learner_id, topic_id, attempts, correct, mastery, streak_correct, streak_wrong,
		  last_reviewed, next_review, easiness_factor, interval_days, review_count, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		 ON CONFLICT (learner_id, topic_id) DO UPDATE SET
		    attempts = $3, correct = $4, mastery = $5,
		    streak_correct = $6, streak_wrong = $7,
		    last_reviewed = $8, next_review = $9,
		    easiness_factor = $10, interval_days = $11, review_count = $12,
		    updated_at = NOW()`,
		p.LearnerID, p.TopicID, p.Attempts, p.Correct, p.Mastery,
		p.StreakCorrect, p.StreakWrong, p.LastReviewed, p.NextReview,
		p.EasinessFactor, p.IntervalDays, p.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO attempt_history (learner_id, topic_id, correct, mastery_at_time, retention, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.LearnerID, a.TopicID, a.Correct, a.MasteryAtTime, a.Retention, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	return tx.Commit()
}

func (s *Store) DeleteProgress(learnerID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM learner_progress WHERE learner_id = $1`, learnerID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attempt_history WHERE learner_id = $1`, learnerID); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return tx.Commit()
}

func (s *Store) RecentAttempts(learnerID int64, topicID string, limit int) ([]models.AttemptRecord, error) {
	rows, err := s.db.Query(
		`SELECT learner_id, topic_id, correct, mastery_at_time, retention, attempted_at
		 FROM attempt_history
		 WHERE learner_id = $1 AND topic_id = $2
		 ORDER BY attempted_at DESC LIMIT $3`,
		learnerID, topicID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.AttemptRecord
	for rows.Next() {
		var a models.AttemptRecord
		if err := rows.Scan(&a.LearnerID, &a.TopicID, &a.Correct, &a.MasteryAtTime,
			&a.Retention, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *Store) TopicsDue(learnerID int64, now time.Time) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT topic_id FROM learner_progress
		 WHERE learner_id = $1 AND next_review IS NOT NULL AND next_review <= $2
		 ORDER BY next_review`,
		learnerID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("topics due: %w", err)
	}
	defer rows.Close()

	var topicIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan topic id: %w", err)
		}
		topicIDs = append(topicIDs, id)
	}
	return topicIDs, rows.Err()
}
