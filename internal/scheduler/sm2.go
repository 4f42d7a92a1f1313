package scheduler

import (
	"fmt"
	"math"
)

// Easiness factor bounds from SM-2.
const (
	MinEasiness     = 1.3
	MaxEasiness     = 2.5
	InitialEasiness = 2.5
)

// Recall outcomes collapse to two points on the 0-5 SM-2 quality scale:
// a correct answer counts as good recall, a wrong answer as failed recall.
const (
	QualityCorrect = 4
	QualityWrong   = 1
)

// UpdateEasiness applies the SM-2 easiness update
// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)) and clamps the result
// to [MinEasiness, MaxEasiness].
func UpdateEasiness(ef float64, quality int) float64 {
	q := float64(quality)
	ef += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return clampEasiness(ef)
}

// ComputeInterval returns the next review interval in days and the updated
// successful-review count. Failed recall (quality < 3) resets the schedule
// to a one-day interval and a zero review count.
func ComputeInterval(ef float64, reviewCount, quality int) (intervalDays, newReviewCount int, err error) {
	if quality < 0 || quality > 5 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	if quality < 3 {
		return 1, 0, nil
	}

	switch reviewCount {
	case 0:
		intervalDays = 1
	case 1:
		intervalDays = 6
	default:
		intervalDays = int(math.Round(float64(reviewCount) * clampEasiness(ef)))
	}
	return intervalDays, reviewCount + 1, nil
}

func clampEasiness(ef float64) float64 {
	if ef < MinEasiness {
		return MinEasiness
	}
	if ef > MaxEasiness {
		return MaxEasiness
	}
	return ef
}
