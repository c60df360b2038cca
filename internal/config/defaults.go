package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded configuration. It matches the
// embedded defaults/breakout.yaml.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Gameplay: BreakoutGameplay{
			StartLives:    3,
			MaxLives:      9,
			MilestoneStep: 5000,
		},
		Timing: BreakoutTiming{
			RespawnDelay:  1.0,
			RespawnGrowth: 0.8,
			LevelDelay:    1.5,
			LevelGrowth:   1.0,
		},
		Physics: BreakoutPhysics{
			BallSpeed:          9.0,
			MaxBallSpeed:       25.0,
			GravityLimit:       30.0,
			InitialPaddleScale: 0.01,
			Substeps:           2,
		},
		Paddle: BreakoutPaddle{
			Speed:     14.0,
			MinWidth:  0.5,
			MaxWidth:  2.0,
			WidthStep: 0.25,
		},
		Hazard: BreakoutHazard{
			SpawnDelay:    0.5,
			AngleVariance: 20.0,
			MinSpeed:      3.0,
			MinAxialSpeed: 3.0,
		},
		Levels: BreakoutLevels{
			Start: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
