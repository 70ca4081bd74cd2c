package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerYAML returns the embedded default configuration document.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			LaneDistance:    3,
			LaneChangeSpeed: 10,
			StartLane:       1,
			BaseSpeed:       10,
			MaxSpeed:        25,
			AccelRate:       0.5,
			AccelInterval:   5,
			JumpHeight:      3,
			Gravity:         -30,
			GroundY:         0,
			Height:          2,
			GroundTolerance: 0.1,
			GroundedClamp:   -2,
			Width:           1,
			Depth:           1,
		},
		Health: HealthConfig{
			MaxLives:              3,
			InvincibilityDuration: 2,
			StartInvincibility:    3,
			FlashInterval:         0.1,
			RecoilScale:           0.8,
			RecoilDuration:        0.1,
			HitEffectDuration:     2,
		},
		Score: ScoreConfig{
			PointsPerSecond: 10,
			ObstaclePoints:  50,
		},
		Ground: GroundConfig{
			TileLength:  10,
			TilesAhead:  10,
			TilesBehind: 5,
			Width:       10,
		},
		Obstacles: ObstacleConfig{
			Kinds: []ObstacleKind{
				{Name: "lava_block", Width: 2, Height: 1.5, Depth: 1, Glyph: "▓"},
				{Name: "fire_wall", Width: 2.5, Height: 2.5, Depth: 0.5, Glyph: "█"},
				{Name: "ember_pile", Width: 1.5, Height: 0.8, Depth: 1.5, Glyph: "▒"},
			},
			LanePositions:    []float64{-3, 0, 3},
			SpawnDistance:    50,
			MinSpacing:       15,
			MaxSpacing:       25,
			DestroyDistance:  30,
			SpawnChance:      0.4,
			DoubleLaneChance: 0.15,
			InitialCount:     3,
			DestroyOnHit:     false,
		},
		Decor: DecorConfig{
			SyncWithGround:  true,
			SpawnInterval:   10,
			SpawnDistance:   40,
			DespawnDistance: 60,
			MinSideDistance: 10,
			MaxSideDistance: 30,
			ObjectsPerSide:  3,
			ZJitter:         0.3,
			Chances: DecorChances{
				VolcanoRock: 0.4,
				FireCrystal: 0.3,
				Torch:       0.2,
				Geyser:      0.1,
			},
			BackgroundChance: 0.3,
			CleanupEvery:     300,
			PrimeBehind:      5,
			PrimeAhead:       15,
		},
		Camera: CameraConfig{
			Offset: core.Vec3{X: 0, Y: 5, Z: -10},
		},
		Animation: AnimationConfig{
			FixTeleport:       true,
			TeleportThreshold: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0,
			AdjustEvery:  1,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1,
			},
		},
	}
}
