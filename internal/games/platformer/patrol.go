package platformer

import "math"

// Patrol moves the enemy one frame along its route. Direction flips after
// the move that takes it more than PatrolDistance from StartX, so the
// enemy overshoots by at most one step.
func (e *Enemy) Patrol(speed float64) {
	e.Box.X += speed * float64(e.Direction)
	if math.Abs(e.Box.X-e.StartX) > e.PatrolDistance {
		e.Direction = -e.Direction
	}
}
