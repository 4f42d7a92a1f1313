package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/studyloop/backend/internal/models"
)

func TestRankTopicsUnattemptedFirst(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)
	next := now.Add(48 * time.Hour)

	progress := []models.TopicProgress{
		{TopicID: "algebra", Attempts: 5, Mastery: 0.1, LastReviewed: &last, NextReview: &next},
		{TopicID: "geometry"},
	}

	ranked, err := RankTopics(progress, now)
	if err != nil {
		t.Fatalf("RankTopics returned error: %v", err)
	}
	if ranked[0].TopicID != "geometry" {
		t.Errorf("ranked[0] = %q, want unattempted topic geometry", ranked[0].TopicID)
	}
	if ranked[0].Score != 100.0 {
		t.Errorf("unattempted score = %v, want 100.0", ranked[0].Score)
	}
}

func TestRankTopicsOverdueBeatsScheduled(t *testing.T) {
	now := time.Now()
	last := now.Add(-2 * time.Hour)
	overdue := now.Add(-36 * time.Hour)
	upcoming := now.Add(72 * time.Hour)

	progress := []models.TopicProgress{
		{TopicID: "on-track", Attempts: 5, Mastery: 0.5, LastReviewed: &last, NextReview: &upcoming},
		{TopicID: "late", Attempts: 5, Mastery: 0.5, LastReviewed: &last, NextReview: &overdue},
	}

	ranked, err := RankTopics(progress, now)
	if err != nil {
		t.Fatalf("RankTopics returned error: %v", err)
	}
	if ranked[0].TopicID != "late" {
		t.Errorf("ranked[0] = %q, want the overdue topic", ranked[0].TopicID)
	}
}

func TestRankTopicsUrgencyCapped(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)
	lateBy3d := now.Add(-72 * time.Hour)
	lateBy30d := now.Add(-720 * time.Hour)

	progress := []models.TopicProgress{
		{TopicID: "a", Attempts: 5, Mastery: 0.5, LastReviewed: &last, NextReview: &lateBy3d},
		{TopicID: "b", Attempts: 5, Mastery: 0.5, LastReviewed: &last, NextReview: &lateBy30d},
	}

	ranked, err := RankTopics(progress, now)
	if err != nil {
		t.Fatalf("RankTopics returned error: %v", err)
	}
	if math.Abs(ranked[0].Score-ranked[1].Score) > 1e-9 {
		t.Errorf("scores %v and %v should be equal once urgency is capped", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankTopicsSortedDescending(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)

	var progress []models.TopicProgress
	for i, mastery := range []float64{0.9, 0.2, 0.6, 0.4} {
		next := now.Add(time.Duration(36+i) * time.Hour)
		progress = append(progress, models.TopicProgress{
			TopicID:      string(rune('a' + i)),
			Attempts:     5,
			Mastery:      mastery,
			LastReviewed: &last,
			NextReview:   &next,
		})
	}

	ranked, err := RankTopics(progress, now)
	if err != nil {
		t.Fatalf("RankTopics returned error: %v", err)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranked[%d].Score = %v exceeds ranked[%d].Score = %v", i, ranked[i].Score, i-1, ranked[i-1].Score)
		}
	}
}

func TestRankTopicsEmpty(t *testing.T) {
	ranked, err := RankTopics(nil, time.Now())
	if err != nil {
		t.Fatalf("RankTopics(nil) returned error: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("RankTopics(nil) returned %d entries, want 0", len(ranked))
	}
}

func TestUrgencyFactor(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		next *time.Time
		want float64
	}{
		{"unscheduled", nil, dueSoonUrgency},
		{"due in two days", timePtr(now.Add(48 * time.Hour)), 0.0},
		{"due within a day", timePtr(now.Add(6 * time.Hour)), dueSoonUrgency},
		{"overdue by a day", timePtr(now.Add(-24 * time.Hour)), 1.0},
		{"overdue past the cap", timePtr(now.Add(-10 * 24 * time.Hour)), maxUrgency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := urgencyFactor(tt.next, now)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("urgencyFactor(%v) = %v, want %v", tt.next, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
