package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/platformer/internal/core"
)

func TestHoldTrackerWindows(t *testing.T) {
	start := time.Unix(1000, 0)
	ms := func(n int) time.Time { return start.Add(time.Duration(n) * time.Millisecond) }

	h := NewHoldTracker(300*time.Millisecond, 100*time.Millisecond)
	h.Press(core.ActionRight, ms(0))

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"right after press", ms(10), true},
		{"inside initial window", ms(299), true},
		{"after initial window", ms(300), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.IsHeld(core.ActionRight, tc.at); got != tc.want {
				t.Errorf("IsHeld = %v, expected %v", got, tc.want)
			}
		})
	}

	// Auto-repeat switches to the short window.
	h.Press(core.ActionRight, ms(250))
	if !h.IsHeld(core.ActionRight, ms(340)) {
		t.Error("repeat should keep key held inside repeat window")
	}
	if h.IsHeld(core.ActionRight, ms(360)) {
		t.Error("key should be released after repeat window")
	}
}

func TestHoldTrackerApply(t *testing.T) {
	now := time.Unix(2000, 0)
	h := NewHoldTracker(DefaultInitialHold, DefaultRepeatHold)
	h.Press(core.ActionLeft, now)
	h.Press(core.ActionRight, now.Add(-time.Second))

	frame := core.NewInputFrame()
	h.Apply(&frame, now)

	if !frame.IsHeld(core.ActionLeft) {
		t.Error("left should be held")
	}
	if frame.IsHeld(core.ActionRight) {
		t.Error("stale right press should have expired")
	}
	if h.IsHeld(core.ActionRight, now) {
		t.Error("Apply should drop expired keys")
	}
}

func TestHoldTrackerRelease(t *testing.T) {
	now := time.Unix(3000, 0)
	h := NewHoldTracker(DefaultInitialHold, DefaultRepeatHold)
	h.Press(core.ActionLeft, now)
	h.Release(core.ActionLeft)

	if h.IsHeld(core.ActionLeft, now) {
		t.Error("released key should not be held")
	}

	h.Press(core.ActionLeft, now)
	h.Reset()
	if h.IsHeld(core.ActionLeft, now) {
		t.Error("Reset should forget every key")
	}
}
