package gamification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/studyloop/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetOrCreate loads the learner's gamification row, inserting a zeroed one
// on first touch.
func (s *Store) GetOrCreate(learnerID int64) (*models.LearnerGamification, error) {
	g, err := s.get(learnerID)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}

	_, err = s.db.Exec(`
		INSERT INTO learner_gamification (learner_id)
		VALUES ($1)
		ON CONFLICT (learner_id) DO NOTHING`,
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("create gamification row: %w", err)
	}
	return s.get(learnerID)
}

func (s *Store) get(learnerID int64) (*models.LearnerGamification, error) {
	var g models.LearnerGamification
	err := s.db.QueryRow(`
		SELECT learner_id, total_xp, current_streak, longest_streak, last_active_date,
			questions_answered_total, questions_correct_total, created_at, updated_at
		FROM learner_gamification
		WHERE learner_id = $1`,
		learnerID,
	).Scan(&g.LearnerID, &g.TotalXP, &g.CurrentStreak, &g.LongestStreak, &g.LastActiveDate,
		&g.QuestionsAnsweredTotal, &g.QuestionsCorrectTotal, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get gamification: %w", err)
	}
	return &g, nil
}

func (s *Store) Update(g *models.LearnerGamification) error {
	_, err := s.db.Exec(`
		UPDATE learner_gamification
		SET total_xp = $2, current_streak = $3, longest_streak = $4, last_active_date = $5,
			questions_answered_total = $6, questions_correct_total = $7, updated_at = NOW()
		WHERE learner_id = $1`,
		g.LearnerID, g.TotalXP, g.CurrentStreak, g.LongestStreak, g.LastActiveDate,
		g.QuestionsAnsweredTotal, g.QuestionsCorrectTotal,
	)
	if err != nil {
		return fmt.Errorf("update gamification: %w", err)
	}
	return nil
}

func (s *Store) LogXPEvent(learnerID int64, amount int, reason string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO xp_events (learner_id, amount, reason, awarded_at)
		VALUES ($1, $2, $3, $4)`,
		learnerID, amount, reason, at,
	)
	if err != nil {
		return fmt.Errorf("log xp event: %w", err)
	}
	return nil
}
