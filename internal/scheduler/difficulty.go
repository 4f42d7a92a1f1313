package scheduler

import "github.com/studyloop/backend/internal/models"

// TargetDifficulty maps a learner's per-topic state to the tier the next
// question should be served at. The struggling override is checked before
// everything else: three wrong in a row drops to easy regardless of mastery.
func TargetDifficulty(p *models.TopicProgress) models.Difficulty {
	if p == nil || p.Attempts == 0 {
		return models.DifficultyEasy
	}

	if p.StreakWrong >= 3 {
		return models.DifficultyEasy
	}
	if p.StreakCorrect >= 5 && p.Mastery > 0.7 {
		return models.DifficultyHard
	}

	switch {
	case p.Mastery < 0.3:
		return models.DifficultyEasy
	case p.Mastery < 0.6:
		return models.DifficultyMedium
	case p.Mastery < 0.85:
		if p.StreakCorrect < 3 {
			return models.DifficultyMedium
		}
		return models.DifficultyHard
	default:
		return models.DifficultyHard
	}
}
