// Package window runs the platformer in a desktop window with Ebitengine.
package window

import (
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/platformer/internal/core"
)

// Background is the clear colour of the window.
var Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// palette maps core colours to window colours. Text in the default colour
// is drawn black on the white background.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      {0, 0, 0, 255},
	core.ColorBlack:        {0, 0, 0, 255},
	core.ColorWhite:        {255, 255, 255, 255},
	core.ColorRed:          {255, 0, 0, 255},
	core.ColorGreen:        {0, 255, 0, 255},
	core.ColorBlue:         {0, 0, 255, 255},
	core.ColorYellow:       {255, 255, 0, 255},
	core.ColorMagenta:      {255, 0, 255, 255},
	core.ColorCyan:         {0, 255, 255, 255},
	core.ColorBrightRed:    {220, 20, 60, 255},
	core.ColorBrightGreen:  {0, 160, 0, 255},
	core.ColorBrightYellow: {255, 200, 0, 255},
	core.ColorBrightBlue:   {65, 105, 225, 255},
	core.ColorOrange:       {255, 140, 0, 255},
	core.ColorGray:         {110, 110, 110, 255},
}

// RGBA returns the window colour for c.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// NewFace loads the HUD font at the given size in points.
// Falls back to a fixed bitmap face if the TrueType data cannot be parsed.
func NewFace(size float64) font.Face {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Scale maps world units to pixels.
type Scale struct {
	X, Y float64
}

// NewScale returns the scale that fits world into a w×h pixel area.
func NewScale(world core.RectF, w, h int) Scale {
	if world.W <= 0 || world.H <= 0 {
		return Scale{X: 1, Y: 1}
	}
	return Scale{X: float64(w) / world.W, Y: float64(h) / world.H}
}

// Rect converts a world box to pixel coordinates.
func (s Scale) Rect(r core.RectF) (x, y, w, h float32) {
	return float32(r.X * s.X), float32(r.Y * s.Y), float32(r.W * s.X), float32(r.H * s.Y)
}

// ImageCanvas draws world-space shapes and text onto an Ebitengine image.
type ImageCanvas struct {
	dst   *ebiten.Image
	world core.RectF
	scale Scale
	face  font.Face
}

// NewImageCanvas wraps dst, mapping world onto its full bounds.
func NewImageCanvas(dst *ebiten.Image, world core.RectF, face font.Face) *ImageCanvas {
	b := dst.Bounds()
	return &ImageCanvas{
		dst:   dst,
		world: world,
		scale: NewScale(world, b.Dx(), b.Dy()),
		face:  face,
	}
}

// Bounds returns the world area.
func (c *ImageCanvas) Bounds() core.RectF {
	return c.world
}

// FillRect paints a solid rectangle.
func (c *ImageCanvas) FillRect(r core.RectF, col core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x, y, w, h := c.scale.Rect(r)
	vector.DrawFilledRect(c.dst, x, y, w, h, RGBA(col), false)
}

// DrawText draws text with its top-left corner at (x, y).
func (c *ImageCanvas) DrawText(x, y float64, s string, col core.Color) {
	ascent := c.face.Metrics().Ascent.Ceil()
	text.Draw(c.dst, s, c.face, int(x*c.scale.X), int(y*c.scale.Y)+ascent, RGBA(col))
}

// DrawTextCentered draws text horizontally centered with its top at y.
func (c *ImageCanvas) DrawTextCentered(y float64, s string, col core.Color) {
	width := font.MeasureString(c.face, s).Ceil()
	x := (c.dst.Bounds().Dx() - width) / 2
	ascent := c.face.Metrics().Ascent.Ceil()
	text.Draw(c.dst, s, c.face, x, int(y*c.scale.Y)+ascent, RGBA(col))
}
