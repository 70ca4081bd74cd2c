package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "runner.yaml"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they set.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRunner(data)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := ParseRunner(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRunner decodes a YAML document over the defaults and validates it.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c RunnerConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}

// probabilitySlack tolerates rounding in hand-written weights.
const probabilitySlack = 1e-6

// Validate reports configuration values that would break a run.
// Missing templates (no obstacle kinds, zero tile length) are not errors here:
// the owning spawner disables itself at start instead.
func (c RunnerConfig) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	probability := func(name string, v float64) {
		check(v >= 0 && v <= 1 && !math.IsNaN(v), "%s must be in [0,1], got %v", name, v)
	}

	probability("obstacles.spawn_chance", c.Obstacles.SpawnChance)
	probability("obstacles.double_lane_chance", c.Obstacles.DoubleLaneChance)
	probability("decor.background_chance", c.Decor.BackgroundChance)
	probability("decor.chances.volcano_rock", c.Decor.Chances.VolcanoRock)
	probability("decor.chances.fire_crystal", c.Decor.Chances.FireCrystal)
	probability("decor.chances.torch", c.Decor.Chances.Torch)
	probability("decor.chances.geyser", c.Decor.Chances.Geyser)
	check(c.Decor.Chances.Sum() <= 1+probabilitySlack,
		"decor.chances must sum to at most 1, got %v", c.Decor.Chances.Sum())

	check(len(c.Obstacles.LanePositions) == 3,
		"obstacles.lane_positions must list 3 lanes, got %d", len(c.Obstacles.LanePositions))
	check(c.Obstacles.MinSpacing > 0 && c.Obstacles.MinSpacing <= c.Obstacles.MaxSpacing,
		"obstacles spacing must satisfy 0 < min_spacing <= max_spacing")
	check(c.Decor.MinSideDistance >= 0 && c.Decor.MinSideDistance <= c.Decor.MaxSideDistance,
		"decor side distances must satisfy 0 <= min_side_distance <= max_side_distance")
	check(c.Decor.SyncWithGround || c.Decor.SpawnInterval > 0,
		"decor.spawn_interval must be positive")
	check(c.Ground.TileLength >= 0, "ground.tile_length must not be negative")

	check(c.Player.Gravity < 0, "player.gravity must be negative, got %v", c.Player.Gravity)
	check(c.Player.BaseSpeed <= c.Player.MaxSpeed,
		"player.base_speed must not exceed player.max_speed")
	check(c.Player.AccelInterval > 0, "player.accel_interval must be positive")
	check(c.Player.StartLane >= 0 && c.Player.StartLane <= 2,
		"player.start_lane must be 0, 1 or 2, got %d", c.Player.StartLane)
	check(c.Health.MaxLives > 0, "health.max_lives must be positive")

	switch c.Difficulty.Progression.Type {
	case ProgressScore, ProgressTime, ProgressNone, "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type must be score, time or none, got %q",
			c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}
