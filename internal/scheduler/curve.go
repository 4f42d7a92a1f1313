package scheduler

import (
	"fmt"
	"math"
	"time"
)

// Memory strength in hours: 24h at mastery 0, up to 720h at mastery 1.
const (
	minStrengthHours  = 24.0
	strengthSpanHours = 696.0
)

// ComputeRetention estimates how much of a topic the learner still recalls,
// using the Ebbinghaus forgetting curve retention = e^(-t/S). Higher mastery
// means a larger memory strength S and slower forgetting. A topic that has
// never been reviewed has nothing to forget yet and returns 1.
func ComputeRetention(lastReviewed *time.Time, mastery float64, now time.Time) (float64, error) {
	if lastReviewed == nil {
		return 1.0, nil
	}
	if mastery < 0 || mastery > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidMastery, mastery)
	}

	elapsedHours := now.Sub(*lastReviewed).Hours()
	strength := minStrengthHours + mastery*strengthSpanHours

	retention := math.Exp(-elapsedHours / strength)
	return clamp01(retention), nil
}

// ProjectRetention returns what retention would be a number of hours from a
// review, given the mastery at that review. Used for forgetting-curve charts.
func ProjectRetention(mastery float64, hoursAhead float64) float64 {
	strength := minStrengthHours + mastery*strengthSpanHours
	return clamp01(math.Exp(-hoursAhead / strength))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
