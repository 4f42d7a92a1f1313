package scheduler

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestComputeRetentionNeverReviewed(t *testing.T) {
	got, err := ComputeRetention(nil, 0.5, time.Now())
	if err != nil {
		t.Fatalf("ComputeRetention(nil, 0.5) returned error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("ComputeRetention(nil, 0.5) = %v, want 1.0", got)
	}
}

func TestComputeRetentionInvalidMastery(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)
	for _, mastery := range []float64{-0.01, 1.01, 5.0} {
		_, err := ComputeRetention(&last, mastery, now)
		if !errors.Is(err, ErrInvalidMastery) {
			t.Errorf("ComputeRetention(mastery=%v) error = %v, want ErrInvalidMastery", mastery, err)
		}
	}
}

func TestComputeRetentionDecay(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		mastery float64
		want    float64
	}{
		{"no time elapsed", 0, 0.5, 1.0},
		{"one strength at zero mastery", 24 * time.Hour, 0.0, math.Exp(-1)},
		{"one strength at full mastery", 720 * time.Hour, 1.0, math.Exp(-1)},
		{"one day at half mastery", 24 * time.Hour, 0.5, math.Exp(-24.0 / 372.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := now.Add(-tt.elapsed)
			got, err := ComputeRetention(&last, tt.mastery, now)
			if err != nil {
				t.Fatalf("ComputeRetention returned error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeRetention(elapsed=%v, mastery=%v) = %v, want %v",
					tt.elapsed, tt.mastery, got, tt.want)
			}
		})
	}
}

func TestComputeRetentionMasterySlowsForgetting(t *testing.T) {
	now := time.Now()
	last := now.Add(-48 * time.Hour)

	weak, err := ComputeRetention(&last, 0.1, now)
	if err != nil {
		t.Fatal(err)
	}
	strong, err := ComputeRetention(&last, 0.9, now)
	if err != nil {
		t.Fatal(err)
	}
	if strong <= weak {
		t.Errorf("retention at mastery 0.9 (%v) should exceed retention at mastery 0.1 (%v)", strong, weak)
	}
}

func TestProjectRetention(t *testing.T) {
	if got := ProjectRetention(0.5, 0); got != 1.0 {
		t.Errorf("ProjectRetention(0.5, 0) = %v, want 1.0", got)
	}

	prev := 1.0
	for _, hours := range []float64{24, 72, 168, 720} {
		got := ProjectRetention(0.5, hours)
		if got >= prev {
			t.Errorf("ProjectRetention(0.5, %v) = %v, want strictly less than %v", hours, got, prev)
		}
		prev = got
	}
}
