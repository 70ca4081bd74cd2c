// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

import "github.com/vovakirdan/tui-runner/internal/core"

// RunnerConfig contains every tunable of a run.
type RunnerConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Health     HealthConfig     `yaml:"health"`
	Score      ScoreConfig      `yaml:"score"`
	Ground     GroundConfig     `yaml:"ground"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Decor      DecorConfig      `yaml:"decor"`
	Camera     CameraConfig     `yaml:"camera"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines locomotion parameters.
type PlayerConfig struct {
	LaneDistance    float64 `yaml:"lane_distance"`     // Lateral distance between lanes
	LaneChangeSpeed float64 `yaml:"lane_change_speed"` // Lateral units per second
	StartLane       int     `yaml:"start_lane"`
	BaseSpeed       float64 `yaml:"base_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	AccelRate       float64 `yaml:"accel_rate"`     // Speed added per step
	AccelInterval   float64 `yaml:"accel_interval"` // Seconds between steps
	JumpHeight      float64 `yaml:"jump_height"`
	Gravity         float64 `yaml:"gravity"` // Negative, units/s^2
	GroundY         float64 `yaml:"ground_y"`
	Height          float64 `yaml:"height"`
	GroundTolerance float64 `yaml:"ground_tolerance"`
	GroundedClamp   float64 `yaml:"grounded_clamp"` // Max vertical velocity while grounded
	Width           float64 `yaml:"width"`
	Depth           float64 `yaml:"depth"`
}

// HealthConfig defines lives and invincibility timings.
type HealthConfig struct {
	MaxLives              int     `yaml:"max_lives"`
	InvincibilityDuration float64 `yaml:"invincibility_duration"`
	StartInvincibility    float64 `yaml:"start_invincibility"`
	FlashInterval         float64 `yaml:"flash_interval"`
	RecoilScale           float64 `yaml:"recoil_scale"`
	RecoilDuration        float64 `yaml:"recoil_duration"`
	HitEffectDuration     float64 `yaml:"hit_effect_duration"`
}

// ScoreConfig defines score accrual.
type ScoreConfig struct {
	PointsPerSecond float64 `yaml:"points_per_second"`
	ObstaclePoints  int     `yaml:"obstacle_points"`
}

// GroundConfig defines ground tile streaming.
type GroundConfig struct {
	TileLength  float64 `yaml:"tile_length"` // Zero means no tile template
	TilesAhead  int     `yaml:"tiles_ahead"`
	TilesBehind int     `yaml:"tiles_behind"`
	Width       float64 `yaml:"width"`
}

// ObstacleKind is one obstacle template.
type ObstacleKind struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
	Glyph  string  `yaml:"glyph"`
}

// ObstacleConfig defines obstacle streaming and placement.
type ObstacleConfig struct {
	Kinds            []ObstacleKind `yaml:"kinds"`
	LanePositions    []float64      `yaml:"lane_positions"`
	SpawnDistance    float64        `yaml:"spawn_distance"`
	MinSpacing       float64        `yaml:"min_spacing"`
	MaxSpacing       float64        `yaml:"max_spacing"`
	DestroyDistance  float64        `yaml:"destroy_distance"`
	SpawnChance      float64        `yaml:"spawn_chance"`
	DoubleLaneChance float64        `yaml:"double_lane_chance"`
	InitialCount     int            `yaml:"initial_count"`
	DestroyOnHit     bool           `yaml:"destroy_on_hit"`
}

// DecorChances are the cumulative classification weights of decor objects.
// Whatever is left up to 1 falls back to volcano rock.
type DecorChances struct {
	VolcanoRock float64 `yaml:"volcano_rock"`
	FireCrystal float64 `yaml:"fire_crystal"`
	Torch       float64 `yaml:"torch"`
	Geyser      float64 `yaml:"geyser"`
}

// Sum returns the total of all weights.
func (c DecorChances) Sum() float64 {
	return c.VolcanoRock + c.FireCrystal + c.Torch + c.Geyser
}

// DecorConfig defines side decoration streaming.
type DecorConfig struct {
	SyncWithGround   bool         `yaml:"sync_with_ground"`
	SpawnInterval    float64      `yaml:"spawn_interval"`
	SpawnDistance    float64      `yaml:"spawn_distance"`
	DespawnDistance  float64      `yaml:"despawn_distance"`
	MinSideDistance  float64      `yaml:"min_side_distance"`
	MaxSideDistance  float64      `yaml:"max_side_distance"`
	ObjectsPerSide   int          `yaml:"objects_per_side"`
	ZJitter          float64      `yaml:"z_jitter"` // Fraction of the interval
	Chances          DecorChances `yaml:"chances"`
	BackgroundChance float64      `yaml:"background_chance"`
	CleanupEvery     int          `yaml:"cleanup_every"` // Frames between cleanup sweeps
	PrimeBehind      int          `yaml:"prime_behind"`
	PrimeAhead       int          `yaml:"prime_ahead"`
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Offset core.Vec3 `yaml:"offset"`
}

// AnimationConfig defines the model teleport guard.
type AnimationConfig struct {
	FixTeleport       bool    `yaml:"fix_teleport"`
	TeleportThreshold float64 `yaml:"teleport_threshold"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	AdjustEvery  float64           `yaml:"adjust_every"`  // Seconds between obstacle adjustments
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score (or seconds) at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Health.MaxLives = 5
		cfg.Player.MaxSpeed = 20
	case DifficultyHard:
		cfg.Health.MaxLives = 2
		cfg.Health.InvincibilityDuration = 1.5
	}
}
