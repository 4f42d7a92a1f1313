package gamification

import (
	"testing"
	"time"

	"github.com/studyloop/backend/internal/models"
)

func TestAnswerXP(t *testing.T) {
	tests := []struct {
		name       string
		correct    bool
		difficulty models.Difficulty
		mastery    float64
		want       int
	}{
		{"wrong answer consolation", false, models.DifficultyHard, 0.0, 1},
		{"easy question on weak topic", true, models.DifficultyEasy, 0.0, 9},
		{"medium question half mastered", true, models.DifficultyMedium, 0.5, 12},
		{"hard question fully mastered", true, models.DifficultyHard, 1.0, 16},
		{"unknown tier falls back to medium", true, models.Difficulty("extreme"), 1.0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnswerXP(tt.correct, tt.difficulty, tt.mastery)
			if got != tt.want {
				t.Errorf("AnswerXP(%v, %q, %v) = %d, want %d",
					tt.correct, tt.difficulty, tt.mastery, got, tt.want)
			}
		})
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{2, 1.0},
		{3, 1.1},
		{7, 1.25},
		{14, 1.5},
		{30, 2.0},
		{365, 2.0},
	}

	for _, tt := range tests {
		if got := StreakMultiplier(tt.days); got != tt.want {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestApplyStreakMultiplier(t *testing.T) {
	if got := ApplyStreakMultiplier(10, 7); got != 12 {
		t.Errorf("ApplyStreakMultiplier(10, 7) = %d, want 12", got)
	}
	if got := ApplyStreakMultiplier(10, 0); got != 10 {
		t.Errorf("ApplyStreakMultiplier(10, 0) = %d, want 10", got)
	}
}

func TestUpdateStreak(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 8, n, 10, 0, 0, 0, time.UTC)
	}

	g := &models.LearnerGamification{}

	updateStreak(g, day(1))
	if g.CurrentStreak != 1 || g.LongestStreak != 1 {
		t.Fatalf("first activity streak = %d/%d, want 1/1", g.CurrentStreak, g.LongestStreak)
	}

	// Same day does not extend.
	updateStreak(g, day(1).Add(5*time.Hour))
	if g.CurrentStreak != 1 {
		t.Errorf("same-day streak = %d, want 1", g.CurrentStreak)
	}

	// Consecutive days extend.
	updateStreak(g, day(2))
	updateStreak(g, day(3))
	if g.CurrentStreak != 3 || g.LongestStreak != 3 {
		t.Errorf("streak after 3 consecutive days = %d/%d, want 3/3", g.CurrentStreak, g.LongestStreak)
	}

	// A gap resets the current streak but keeps the longest.
	updateStreak(g, day(10))
	if g.CurrentStreak != 1 {
		t.Errorf("streak after gap = %d, want 1", g.CurrentStreak)
	}
	if g.LongestStreak != 3 {
		t.Errorf("longest streak after gap = %d, want 3", g.LongestStreak)
	}
}
