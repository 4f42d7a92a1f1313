package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/studyloop/backend/internal/models"
)

// Weights of the composite priority score.
const (
	masteryWeight    = 0.4
	urgencyWeight    = 0.3
	forgettingWeight = 0.3

	// Topics never attempted always outrank everything else.
	unattemptedScore = 100.0

	maxUrgency     = 2.0
	dueSoonUrgency = 0.5
)

// RankTopics scores every progress row and returns the topics sorted by
// score, highest first. Recomputed from scratch on every call; nothing is
// cached. Ordering among equal scores is unspecified.
func RankTopics(progress []models.TopicProgress, now time.Time) ([]models.TopicPriority, error) {
	ranked := make([]models.TopicPriority, 0, len(progress))
	for i := range progress {
		score, err := scoreTopic(&progress[i], now)
		if err != nil {
			return nil, fmt.Errorf("score topic %s: %w", progress[i].TopicID, err)
		}
		ranked = append(ranked, models.TopicPriority{TopicID: progress[i].TopicID, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked, nil
}

// scoreTopic combines the mastery gap, schedule urgency, and forgetting-curve
// decay into a single priority value.
func scoreTopic(p *models.TopicProgress, now time.Time) (float64, error) {
	if p.Attempts == 0 {
		return unattemptedScore, nil
	}

	masteryFactor := 1.0 - p.Mastery
	urgency := urgencyFactor(p.NextReview, now)

	retention, err := ComputeRetention(p.LastReviewed, p.Mastery, now)
	if err != nil {
		return 0, err
	}
	forgettingFactor := 1.0 - retention

	return masteryFactor*masteryWeight + urgency*urgencyWeight + forgettingFactor*forgettingWeight, nil
}

// urgencyFactor grades how pressing the scheduled review is: overdue reviews
// scale with how late they are (capped at maxUrgency), reviews due within a
// day get a fixed nudge, and anything further out contributes nothing.
// An unscheduled topic gets the same nudge as one due soon.
func urgencyFactor(nextReview *time.Time, now time.Time) float64 {
	if nextReview == nil {
		return dueSoonUrgency
	}

	untilHours := nextReview.Sub(now).Hours()
	switch {
	case untilHours < 0:
		return math.Min(maxUrgency, -untilHours/24.0)
	case untilHours < 24:
		return dueSoonUrgency
	default:
		return 0.0
	}
}
