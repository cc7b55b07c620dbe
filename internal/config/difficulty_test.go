package config

import "testing"

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	d := NewDifficultyManager(DefaultPlatformerConfig().Difficulty)

	if d.IsEnabled() {
		t.Error("default difficulty should be disabled")
	}
	for _, score := range []int{0, 10, 1000} {
		if got := d.Speed(2, score, 0); got != 2 {
			t.Errorf("Speed(2, %d) = %v, expected 2", score, got)
		}
	}
	if d.MaxSpeed(2) != 2 {
		t.Errorf("MaxSpeed(2) = %v, expected 2", d.MaxSpeed(2))
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 40},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		score     int
		wantLevel float64
		wantSpeed float64
	}{
		{0, 0, 2},
		{20, 0.5, 3},
		{40, 1, 4},
		{400, 1, 4}, // clamped
	}

	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.wantLevel {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.wantLevel)
		}
		if got := d.Speed(2, tc.score, 0); got != tc.wantSpeed {
			t.Errorf("Speed(2, %d) = %v, expected %v", tc.score, got, tc.wantSpeed)
		}
	}

	if d.MaxSpeed(2) != 4 {
		t.Errorf("MaxSpeed(2) = %v, expected 4", d.MaxSpeed(2))
	}
}

func TestDifficultyTimeProgressionFromInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at t=0 = %v, expected 0.5", got)
	}
	if got := d.Level(0, 50); got != 0.75 {
		t.Errorf("Level at t=50 = %v, expected 0.75", got)
	}
	if got := d.Level(0, 100); got != 1 {
		t.Errorf("Level at t=100 = %v, expected 1", got)
	}
}
