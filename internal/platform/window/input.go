package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/platformer/internal/core"
)

// KeyState reports keyboard and window state for the current tick.
type KeyState interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	Closing() bool
}

// ebitenKeys reads the live keyboard.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) Closing() bool                 { return ebiten.IsWindowBeingClosed() }

// Bindings lists the keys for each action.
var Bindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:    {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionPause:   {ebiten.KeyP},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionQuit:    {ebiten.KeyEscape, ebiten.KeyQ},
}

// heldActions are sampled as held keys, everything else as key-down events.
var heldActions = []core.Action{core.ActionLeft, core.ActionRight}

var eventActions = []core.Action{
	core.ActionJump, core.ActionPause, core.ActionRestart, core.ActionQuit,
}

// ReadInput fills frame from the keyboard state.
func ReadInput(keys KeyState, frame *core.InputFrame) {
	for _, a := range heldActions {
		for _, k := range Bindings[a] {
			if keys.Pressed(k) {
				frame.Hold(a)
				break
			}
		}
	}
	for _, a := range eventActions {
		for _, k := range Bindings[a] {
			if keys.JustPressed(k) {
				frame.Set(a)
				break
			}
		}
	}
}
