package config

import "math"

// Progression types.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyManager maps run progress to the obstacle difficulty multiplier.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg. InitialLevel is clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = math.Max(0, math.Min(1, cfg.InitialLevel))
	return &DifficultyManager{cfg: cfg}
}

// Active reports whether difficulty grows during a run.
func (d *DifficultyManager) Active() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Interval returns the seconds between two obstacle adjustments.
func (d *DifficultyManager) Interval() float64 {
	if d.cfg.AdjustEvery <= 0 {
		return 1
	}
	return d.cfg.AdjustEvery
}

// Level returns the difficulty in [InitialLevel, 1] for a run that has
// scored score points over elapsed seconds.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	base := d.cfg.InitialLevel
	if !d.Active() {
		return base
	}

	span := float64(d.cfg.Progression.MaxAt)
	if span <= 0 {
		return 1
	}

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = float64(score) / span
	case ProgressTime:
		done = elapsed / span
	default:
		return base
	}
	done = math.Max(0, math.Min(1, done))

	return base + done*(1-base)
}

// Multiplier is 1 at level 0 and 1+speed_multiplier at level 1.
func (d *DifficultyManager) Multiplier(score int, elapsed float64) float64 {
	return 1 + d.Level(score, elapsed)*d.cfg.Scaling.SpeedMultiplier
}
