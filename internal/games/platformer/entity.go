package platformer

import (
	"fmt"

	"github.com/vovakirdan/platformer/internal/core"
)

// Entity is anything the arena owns: it has a box and a fill colour.
type Entity interface {
	Bounds() core.RectF
	Fill() core.Color
}

// Kind tags the type of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindPlatform
	KindCoin
	KindEnemy
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlatform:
		return "platform"
	case KindCoin:
		return "coin"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// EntityID identifies an entity in an Arena. The zero value is never issued.
type EntityID struct {
	Kind Kind
	Seq  uint32
}

// IsZero reports whether id is the zero id.
func (id EntityID) IsZero() bool {
	return id == EntityID{}
}

// String formats the id as kind#seq.
func (id EntityID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind, id.Seq)
}

// Body is the physical state the resolver works on.
type Body struct {
	Box      core.RectF
	VX, VY   float64
	Grounded bool
}

// Player is the controllable character.
type Player struct {
	Body
	Score int
}

// NewPlayer places a player with its top-left corner at (x, y).
func NewPlayer(x, y, w, h float64) *Player {
	return &Player{Body: Body{Box: core.NewRectF(x, y, w, h)}}
}

// Bounds returns the player's box.
func (p *Player) Bounds() core.RectF { return p.Box }

// Fill returns the player's colour.
func (p *Player) Fill() core.Color { return core.ColorBlue }

// Jump sets the vertical velocity to impulse if the player is grounded.
// Reports whether the jump was honoured.
func (p *Player) Jump(impulse float64) bool {
	if !p.Grounded {
		return false
	}
	p.VY = impulse
	return true
}

// Platform is a static, solid rectangle.
type Platform struct {
	Box core.RectF
}

// Bounds returns the platform's box.
func (p Platform) Bounds() core.RectF { return p.Box }

// Fill returns the platform's colour.
func (p Platform) Fill() core.Color { return core.ColorGreen }

// Coin is a one-shot pickup.
type Coin struct {
	Box core.RectF
}

// Bounds returns the coin's box.
func (c *Coin) Bounds() core.RectF { return c.Box }

// Fill returns the coin's colour.
func (c *Coin) Fill() core.Color { return core.ColorYellow }

// Enemy walks back and forth around StartX. Touching it ends the game.
type Enemy struct {
	Box            core.RectF
	StartX         float64
	PatrolDistance float64
	Direction      int // -1 or +1
}

// NewEnemy places an enemy at (x, y) heading right.
func NewEnemy(x, y, w, h, patrol float64) *Enemy {
	return &Enemy{
		Box:            core.NewRectF(x, y, w, h),
		StartX:         x,
		PatrolDistance: patrol,
		Direction:      1,
	}
}

// Bounds returns the enemy's box.
func (e *Enemy) Bounds() core.RectF { return e.Box }

// Fill returns the enemy's colour.
func (e *Enemy) Fill() core.Color { return core.ColorRed }
