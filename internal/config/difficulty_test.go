package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: ProgressScore, MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{500, 0.6},
		{1000, 1.0},
		{5000, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}

	if got := d.Multiplier(1000, 0); math.Abs(got-2) > 1e-9 {
		t.Errorf("Multiplier at max = %v, expected 2", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressTime, MaxAt: 60},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})

	if got := d.Level(999999, 30); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level at 30s = %v, expected 0.5", got)
	}
	if got := d.Multiplier(0, 120); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("Multiplier past max = %v, expected 1.5", got)
	}
}

func TestDifficultyDisabledKeepsInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 1.5,
		Progression:  ProgressionConfig{Type: ProgressTime, MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	if d.Active() {
		t.Error("Active() = true for a disabled config")
	}
	if got := d.Level(0, 100); got != 1.0 {
		t.Errorf("Level() = %v, expected clamped initial 1.0", got)
	}
	if got := d.Interval(); got != 1 {
		t.Errorf("Interval() = %v, expected fallback 1", got)
	}
}

func TestDifficultyNoneProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: ProgressNone, MaxAt: 10},
	})
	if d.Active() {
		t.Error("Active() = true for progression none")
	}
	if got := d.Level(5000, 5000); got != 0.3 {
		t.Errorf("Level() = %v, expected 0.3", got)
	}
}
