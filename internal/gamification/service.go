package gamification

import (
	"fmt"
	"time"

	"github.com/studyloop/backend/internal/models"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// RecordAnswerOutcome updates the learner's streak, counters, and XP for one
// answered question. Returns the XP awarded and the current daily streak.
func (s *Service) RecordAnswerOutcome(learnerID int64, correct bool, difficulty models.Difficulty, mastery float64) (int, int, error) {
	g, err := s.store.GetOrCreate(learnerID)
	if err != nil {
		return 0, 0, err
	}

	now := s.now()
	updateStreak(g, now)

	g.QuestionsAnsweredTotal++
	if correct {
		g.QuestionsCorrectTotal++
	}

	xp := ApplyStreakMultiplier(AnswerXP(correct, difficulty, mastery), g.CurrentStreak)
	g.TotalXP += int64(xp)

	if err := s.store.Update(g); err != nil {
		return 0, 0, err
	}

	reason := fmt.Sprintf("answer_%s", difficulty)
	if !correct {
		reason = "answer_wrong"
	}
	if err := s.store.LogXPEvent(learnerID, xp, reason, now); err != nil {
		return 0, 0, err
	}

	return xp, g.CurrentStreak, nil
}

func (s *Service) Summary(learnerID int64) (*models.LearnerGamification, error) {
	return s.store.GetOrCreate(learnerID)
}

// updateStreak advances the daily streak: same calendar day keeps it,
// consecutive days extend it, a gap resets it to 1.
func updateStreak(g *models.LearnerGamification, now time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)

	if g.LastActiveDate == nil {
		g.CurrentStreak = 1
	} else {
		last := g.LastActiveDate.UTC().Truncate(24 * time.Hour)
		switch int(today.Sub(last).Hours() / 24) {
		case 0:
			// Already active today.
		case 1:
			g.CurrentStreak++
		default:
			g.CurrentStreak = 1
		}
	}

	if g.CurrentStreak > g.LongestStreak {
		g.LongestStreak = g.CurrentStreak
	}
	g.LastActiveDate = &today
}
