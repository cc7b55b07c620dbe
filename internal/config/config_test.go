package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}

	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded yaml = %+v\nhardcoded = %+v", cfg, DefaultPlatformerConfig())
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := DefaultPlatformerConfig()

	if cfg.World.Width != 800 || cfg.World.Height != 600 || cfg.World.FPS != 60 {
		t.Errorf("world = %+v, expected 800x600@60", cfg.World)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpImpulse != -12 {
		t.Errorf("jump impulse = %v, expected -12", cfg.Physics.JumpImpulse)
	}
	if cfg.Physics.MoveSpeed != 5 {
		t.Errorf("move speed = %v, expected 5", cfg.Physics.MoveSpeed)
	}
	if cfg.Enemy.Speed != 2 {
		t.Errorf("enemy speed = %v, expected 2", cfg.Enemy.Speed)
	}
	if cfg.Coin.Value != 10 {
		t.Errorf("coin value = %d, expected 10", cfg.Coin.Value)
	}
	if cfg.GameOverDelay() != 2*time.Second {
		t.Errorf("GameOverDelay() = %v, expected 2s", cfg.GameOverDelay())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.8\nenemy:\n  speed: 3\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("gravity = %v, expected 0.8", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpImpulse != -12 {
		t.Errorf("unset jump impulse should keep default, got %v", cfg.Physics.JumpImpulse)
	}
	if cfg.Enemy.Speed != 3 || cfg.Enemy.Width != 30 {
		t.Errorf("enemy = %+v, expected speed 3 and default size", cfg.Enemy)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "world: ["},
		{"zero world", "world:\n  width: 0\n"},
		{"zero fps", "world:\n  fps: 0\n"},
		{"negative player", "player:\n  width: -1\n"},
		{"player larger than world", "player:\n  height: 700\n"},
		{"zero coin", "coin:\n  size: 0\n"},
		{"negative delay", "game_over_delay_ms: -5\n"},
		{"unknown progression", "difficulty:\n  progression:\n    type: lunar\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Errorf("Parse(%q) should fail", tc.yaml)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("coin:\n  value: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Coin.Value != 25 {
		t.Errorf("coin value = %d, expected 25", cfg.Coin.Value)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	ApplyPreset(&cfg, DifficultyHard)

	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should enable progression")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("initial level = %v, expected 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Difficulty.Progression.Type != "score" {
		t.Errorf("progression = %q, expected score", cfg.Difficulty.Progression.Type)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	untouched := DefaultPlatformerConfig()
	ApplyPreset(&untouched, ParsePreset("bogus"))
	if untouched != DefaultPlatformerConfig() {
		t.Error("unknown preset should leave config unchanged")
	}
}
