package platformer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/platformer/internal/core"
)

// Effect durations in seconds.
const (
	coinPopDuration    = 0.25
	summaryRevealDelay = 0.6
)

// pop is a collected coin shrinking away.
type pop struct {
	box   core.RectF
	tween *gween.Tween
	scale float32
}

// Effects holds purely visual animations. Nothing here feeds back into
// the simulation.
type Effects struct {
	pops    []*pop
	summary *gween.Tween
	reveal  float32 // 0..1, fraction of the game-over summary shown
}

// CoinCollected starts a shrink animation at the coin's last position.
func (fx *Effects) CoinCollected(box core.RectF) {
	fx.pops = append(fx.pops, &pop{
		box:   box,
		tween: gween.New(1, 0, coinPopDuration, ease.OutQuad),
		scale: 1,
	})
}

// GameOver starts revealing the summary text.
func (fx *Effects) GameOver() {
	fx.summary = gween.New(0, 1, summaryRevealDelay, ease.Linear)
	fx.reveal = 0
}

// Update advances all animations by dt seconds.
func (fx *Effects) Update(dt float32) {
	alive := fx.pops[:0]
	for _, p := range fx.pops {
		scale, finished := p.tween.Update(dt)
		p.scale = scale
		if !finished {
			alive = append(alive, p)
		}
	}
	fx.pops = alive

	if fx.summary != nil {
		reveal, finished := fx.summary.Update(dt)
		fx.reveal = reveal
		if finished {
			fx.reveal = 1
			fx.summary = nil
		}
	}
}

// Reset drops every running animation.
func (fx *Effects) Reset() {
	fx.pops = nil
	fx.summary = nil
	fx.reveal = 0
}

// Draw paints the running coin pops.
func (fx *Effects) Draw(dst core.Canvas) {
	for _, p := range fx.pops {
		s := float64(p.scale)
		w, h := p.box.W*s, p.box.H*s
		if w <= 0 || h <= 0 {
			continue
		}
		cx, cy := p.box.Center()
		dst.FillRect(core.NewRectF(cx-w/2, cy-h/2, w, h), core.ColorBrightYellow)
	}
}

// RevealText returns the prefix of text visible at the current reveal
// progress.
func (fx *Effects) RevealText(text string) string {
	runes := []rune(text)
	n := int(fx.reveal * float32(len(runes)))
	if n >= len(runes) {
		return text
	}
	return string(runes[:n])
}
