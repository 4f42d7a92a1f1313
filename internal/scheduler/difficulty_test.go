package scheduler

import (
	"testing"

	"github.com/studyloop/backend/internal/models"
)

func TestTargetDifficulty(t *testing.T) {
	tests := []struct {
		name string
		p    *models.TopicProgress
		want models.Difficulty
	}{
		{"nil state", nil, models.DifficultyEasy},
		{"never attempted", &models.TopicProgress{}, models.DifficultyEasy},
		{
			"struggling override beats high mastery",
			&models.TopicProgress{Attempts: 10, Mastery: 0.9, StreakWrong: 3},
			models.DifficultyEasy,
		},
		{
			"hot streak override",
			&models.TopicProgress{Attempts: 10, Mastery: 0.75, StreakCorrect: 5},
			models.DifficultyHard,
		},
		{
			"hot streak needs high mastery",
			&models.TopicProgress{Attempts: 10, Mastery: 0.5, StreakCorrect: 6},
			models.DifficultyMedium,
		},
		{
			"low mastery",
			&models.TopicProgress{Attempts: 5, Mastery: 0.2, StreakWrong: 1},
			models.DifficultyEasy,
		},
		{
			"middle mastery",
			&models.TopicProgress{Attempts: 5, Mastery: 0.45, StreakCorrect: 1},
			models.DifficultyMedium,
		},
		{
			"upper band with short streak",
			&models.TopicProgress{Attempts: 8, Mastery: 0.7, StreakCorrect: 2},
			models.DifficultyMedium,
		},
		{
			"upper band with streak of three",
			&models.TopicProgress{Attempts: 8, Mastery: 0.7, StreakCorrect: 3},
			models.DifficultyHard,
		},
		{
			"high mastery",
			&models.TopicProgress{Attempts: 20, Mastery: 0.9, StreakCorrect: 1},
			models.DifficultyHard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetDifficulty(tt.p); got != tt.want {
				t.Errorf("TargetDifficulty(%+v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}
