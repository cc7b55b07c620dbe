package platformer

import "github.com/vovakirdan/platformer/internal/core"

// Resolve advances a body by one frame against a static platform set and
// keeps it inside bounds.
//
// Order matters:
//  1. gravity is added to VY, even when grounded
//  2. X moves by VX, then overlapping platforms push the body out sideways
//  3. Grounded is cleared, Y moves by VY, then overlapping platforms push the
//     body out vertically; a downward hit lands it (VY=0, Grounded=true), an
//     upward hit bonks its head (VY=0)
//  4. the box is clamped to bounds; reaching the bottom edge lands it
//
// Afterwards the box does not overlap any platform and lies within bounds.
func Resolve(b *Body, platforms []core.RectF, bounds core.RectF, gravity float64) {
	b.VY += gravity

	b.Box.X += b.VX
	for _, p := range platforms {
		if !b.Box.Intersects(p) {
			continue
		}
		if b.VX > 0 {
			b.Box.X = p.X - b.Box.W
		} else if b.VX < 0 {
			b.Box.X = p.Right()
		}
	}

	b.Grounded = false
	b.Box.Y += b.VY
	for _, p := range platforms {
		if !b.Box.Intersects(p) {
			continue
		}
		if b.VY > 0 {
			b.Box.Y = p.Y - b.Box.H
			b.VY = 0
			b.Grounded = true
		} else if b.VY < 0 {
			b.Box.Y = p.Bottom()
			b.VY = 0
		}
	}

	if b.Box.X < bounds.X {
		b.Box.X = bounds.X
	}
	if b.Box.Right() > bounds.Right() {
		b.Box.X = bounds.Right() - b.Box.W
	}
	if b.Box.Y < bounds.Y {
		b.Box.Y = bounds.Y
	}
	if b.Box.Bottom() >= bounds.Bottom() {
		b.Box.Y = bounds.Bottom() - b.Box.H
		b.VY = 0
		b.Grounded = true
	}
}
