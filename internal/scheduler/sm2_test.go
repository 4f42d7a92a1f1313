package scheduler

import (
	"errors"
	"math"
	"testing"
)

func TestUpdateEasiness(t *testing.T) {
	tests := []struct {
		name    string
		ef      float64
		quality int
		want    float64
	}{
		{"correct answer keeps max EF", 2.5, 4, 2.5},
		{"wrong answer drops EF", 2.5, 1, 1.96},
		{"wrong answer clamps at floor", 1.3, 1, 1.3},
		{"perfect recall raises EF", 2.0, 5, 2.1},
		{"raise clamps at ceiling", 2.45, 5, 2.5},
		{"hesitant recall drops EF", 2.0, 3, 1.86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateEasiness(tt.ef, tt.quality)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("UpdateEasiness(%v, %d) = %v, want %v", tt.ef, tt.quality, got, tt.want)
			}
		})
	}
}

func TestComputeInterval(t *testing.T) {
	tests := []struct {
		name        string
		ef          float64
		reviewCount int
		quality     int
		wantDays    int
		wantCount   int
	}{
		{"first successful review", 2.5, 0, 4, 1, 1},
		{"second successful review", 2.5, 1, 4, 6, 2},
		{"third review scales with EF", 2.5, 2, 4, 5, 3},
		{"fourth review rounds", 1.96, 3, 4, 6, 4},
		{"failed recall resets", 2.5, 5, 1, 1, 0},
		{"EF below floor is clamped", 1.0, 2, 4, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, count, err := ComputeInterval(tt.ef, tt.reviewCount, tt.quality)
			if err != nil {
				t.Fatalf("ComputeInterval(%v, %d, %d) returned error: %v", tt.ef, tt.reviewCount, tt.quality, err)
			}
			if days != tt.wantDays || count != tt.wantCount {
				t.Errorf("ComputeInterval(%v, %d, %d) = (%d, %d), want (%d, %d)",
					tt.ef, tt.reviewCount, tt.quality, days, count, tt.wantDays, tt.wantCount)
			}
		})
	}
}

func TestComputeIntervalInvalidQuality(t *testing.T) {
	for _, quality := range []int{-1, 6, 100} {
		_, _, err := ComputeInterval(2.5, 0, quality)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("ComputeInterval(2.5, 0, %d) error = %v, want ErrInvalidQuality", quality, err)
		}
	}
}
