package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in configuration.
// It matches defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
			FPS:    60,
		},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			JumpImpulse: -12,
			MoveSpeed:   5,
		},
		Player: SizeConfig{
			Width:  30,
			Height: 40,
		},
		Enemy: EnemyConfig{
			Width:  30,
			Height: 30,
			Speed:  2,
		},
		Coin: CoinConfig{
			Size:  15,
			Value: 10,
		},
		GameOverDelayMS: 2000,
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
