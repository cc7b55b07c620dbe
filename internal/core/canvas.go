package core

import "math"

// Canvas is the drawing surface games render onto, in world units.
// Frontends provide an implementation backed by a terminal cell buffer
// or a window image.
type Canvas interface {
	// Bounds returns the drawable world area.
	Bounds() RectF
	// FillRect paints a filled rectangle.
	FillRect(r RectF, c Color)
	// DrawText draws a line of text with its top-left corner at (x, y).
	DrawText(x, y float64, text string, c Color)
	// DrawTextCentered draws a line of text centered horizontally at y.
	DrawTextCentered(y float64, text string, c Color)
}

// FillRune is the glyph used for filled rectangles in the terminal.
const FillRune = '█'

// ScreenCanvas maps a world-sized Canvas onto a terminal Screen by scaling
// world units to cells.
type ScreenCanvas struct {
	screen *Screen
	world  RectF
}

// NewScreenCanvas creates a canvas drawing a worldW x worldH world onto dst.
func NewScreenCanvas(dst *Screen, worldW, worldH float64) *ScreenCanvas {
	return &ScreenCanvas{
		screen: dst,
		world:  NewRectF(0, 0, worldW, worldH),
	}
}

// toCellX converts a world x coordinate to fractional cell columns.
// Multiply first: world edges on cell boundaries must map exactly.
func (c *ScreenCanvas) toCellX(v float64) float64 {
	if c.world.W <= 0 {
		return 0
	}
	return v * float64(c.screen.Width()) / c.world.W
}

func (c *ScreenCanvas) toCellY(v float64) float64 {
	if c.world.H <= 0 {
		return 0
	}
	return v * float64(c.screen.Height()) / c.world.H
}

// Bounds returns the world area.
func (c *ScreenCanvas) Bounds() RectF {
	return c.world
}

// CellRect converts a world box to the cells it covers.
// Any box with a positive size covers at least one cell.
func (c *ScreenCanvas) CellRect(r RectF) Rect {
	x0 := int(math.Floor(c.toCellX(r.X)))
	y0 := int(math.Floor(c.toCellY(r.Y)))
	x1 := int(math.Ceil(c.toCellX(r.Right())))
	y1 := int(math.Ceil(c.toCellY(r.Bottom())))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// FillRect paints the cells covered by r.
func (c *ScreenCanvas) FillRect(r RectF, col Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.screen.DrawRect(c.CellRect(r), FillRune, col)
}

// DrawText writes text starting at the cell containing (x, y).
func (c *ScreenCanvas) DrawText(x, y float64, text string, col Color) {
	c.screen.DrawText(int(c.toCellX(x)), int(c.toCellY(y)), text, col)
}

// DrawTextCentered writes text centered on the row containing y.
func (c *ScreenCanvas) DrawTextCentered(y float64, text string, col Color) {
	c.screen.DrawTextCentered(int(c.toCellY(y)), text, col)
}
