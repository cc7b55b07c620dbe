package tui

import (
	"time"

	"github.com/vovakirdan/platformer/internal/core"
)

// Terminals report key presses and auto-repeats but never releases, so a
// key counts as held for a short window after its last event. The first
// window is long enough to bridge the terminal's auto-repeat delay.
const (
	DefaultInitialHold = 350 * time.Millisecond
	DefaultRepeatHold  = 90 * time.Millisecond
)

type holdState struct {
	first time.Time
	last  time.Time
}

// HoldTracker turns a stream of key-down events into held-key state.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	keys    map[core.Action]holdState
}

// NewHoldTracker creates a tracker with the given windows.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		keys:    make(map[core.Action]holdState),
	}
}

// Press records a key-down or auto-repeat event at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	st, ok := h.keys[a]
	if !ok || !h.active(st, now) {
		st.first = now
	}
	st.last = now
	h.keys[a] = st
}

// Release forgets a key, e.g. when the opposite direction is pressed.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.keys, a)
}

// Reset forgets every key.
func (h *HoldTracker) Reset() {
	clear(h.keys)
}

// IsHeld reports whether a is held at now.
func (h *HoldTracker) IsHeld(a core.Action, now time.Time) bool {
	st, ok := h.keys[a]
	return ok && h.active(st, now)
}

// Apply marks every held key on the frame and drops expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, st := range h.keys {
		if !h.active(st, now) {
			delete(h.keys, a)
			continue
		}
		frame.Hold(a)
	}
}

func (h *HoldTracker) active(st holdState, now time.Time) bool {
	// Only one event so far: wait out the auto-repeat delay.
	if st.first.Equal(st.last) {
		return now.Sub(st.last) < h.initial
	}
	return now.Sub(st.last) < h.repeat
}
