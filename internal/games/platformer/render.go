package platformer

import (
	"fmt"

	"github.com/vovakirdan/platformer/internal/core"
)

// HUD placement in world units.
const (
	hudX = 10
	hudY = 10
)

// Draw paints the current frame onto dst. Entities first, then effects,
// then text overlays.
func (g *Game) Draw(dst core.Canvas) {
	g.arena.Each(func(_ EntityID, e Entity) {
		dst.FillRect(e.Bounds(), e.Fill())
	})
	g.effects.Draw(dst)

	state := g.State()
	dst.DrawText(hudX, hudY, ScoreLine(state.Score), core.ColorDefault)

	mid := g.world.H / 2
	switch {
	case state.GameOver:
		dst.DrawTextCentered(mid, g.effects.RevealText(SummaryLine(state.Score)), core.ColorBrightRed)
		if state.Outcome == core.OutcomeEnemy {
			dst.DrawTextCentered(mid+g.world.H/15, "Caught by an enemy", core.ColorGray)
		}
	case state.Paused:
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightYellow)
	case g.coinsTotal > 0 && g.CoinsLeft() == 0:
		dst.DrawText(hudX, hudY+g.world.H/20, "All coins!", core.ColorBrightGreen)
	}
}

// Render draws the frame into a terminal screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.Draw(core.NewScreenCanvas(dst, g.world.W, g.world.H))
}

// ScoreLine is the HUD text for a score.
func ScoreLine(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// SummaryLine is the text shown once the game is over.
func SummaryLine(score int) string {
	return fmt.Sprintf("Game Over! Final Score: %d", score)
}
