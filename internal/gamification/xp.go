package gamification

import "github.com/studyloop/backend/internal/models"

// XP rules: a correct answer earns base XP for its difficulty tier plus a
// bonus that shrinks as the topic is mastered, then a daily-streak
// multiplier. Wrong answers earn a small consolation amount.

const (
	wrongAnswerXP  = 1
	masteryBonusXP = 4
)

var baseXP = map[models.Difficulty]int{
	models.DifficultyEasy:   5,
	models.DifficultyMedium: 10,
	models.DifficultyHard:   16,
}

func BaseXP(difficulty models.Difficulty) int {
	if xp, ok := baseXP[difficulty]; ok {
		return xp
	}
	return baseXP[models.DifficultyMedium]
}

// AnswerXP computes pre-multiplier XP for one answer. The mastery-gap bonus
// rewards progress on weak topics more than review of strong ones.
func AnswerXP(correct bool, difficulty models.Difficulty, mastery float64) int {
	if !correct {
		return wrongAnswerXP
	}
	bonus := int(float64(masteryBonusXP) * (1.0 - mastery))
	if bonus < 0 {
		bonus = 0
	}
	return BaseXP(difficulty) + bonus
}

// StreakMultiplier maps a daily streak to an XP multiplier.
func StreakMultiplier(streakDays int) float64 {
	switch {
	case streakDays >= 30:
		return 2.0
	case streakDays >= 14:
		return 1.5
	case streakDays >= 7:
		return 1.25
	case streakDays >= 3:
		return 1.1
	default:
		return 1.0
	}
}

func ApplyStreakMultiplier(xp int, streakDays int) int {
	return int(float64(xp) * StreakMultiplier(streakDays))
}
