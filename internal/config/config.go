// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import "time"

// PlatformerConfig contains all tunables for the platformer.
type PlatformerConfig struct {
	World           WorldConfig      `yaml:"world"`
	Physics         PhysicsConfig    `yaml:"physics"`
	Player          SizeConfig       `yaml:"player"`
	Enemy           EnemyConfig      `yaml:"enemy"`
	Coin            CoinConfig       `yaml:"coin"`
	GameOverDelayMS int              `yaml:"game_over_delay_ms"`
	Difficulty      DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the simulated area and frame rate.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	MoveSpeed   float64 `yaml:"move_speed"`
}

// SizeConfig is a width/height pair.
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EnemyConfig defines enemy size and patrol speed.
type EnemyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// CoinConfig defines coin size and score value.
type CoinConfig struct {
	Size  float64 `yaml:"size"`
	Value int     `yaml:"value"`
}

// GameOverDelay returns how long the final summary is shown.
func (c PlatformerConfig) GameOverDelay() time.Duration {
	return time.Duration(c.GameOverDelayMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the enemy speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

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
