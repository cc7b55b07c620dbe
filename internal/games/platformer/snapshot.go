package platformer

import "github.com/vovakirdan/platformer/internal/core"

// Box is a rectangle in a snapshot.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func boxOf(r core.RectF) Box {
	return Box{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// PlayerSnapshot is the player's physical state.
type PlayerSnapshot struct {
	Box      Box     `json:"box"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Grounded bool    `json:"grounded"`
}

// EnemySnapshot is one enemy's position and heading.
type EnemySnapshot struct {
	Box       Box `json:"box"`
	Direction int `json:"direction"`
}

// Snapshot captures the complete game state for determinism testing and
// for spectators.
type Snapshot struct {
	Level     string          `json:"level"`
	Frame     int             `json:"frame"`
	Score     int             `json:"score"`
	Coins     int             `json:"coins"`
	CoinsLeft int             `json:"coins_left"`
	Paused    bool            `json:"paused"`
	GameOver  bool            `json:"game_over"`
	Outcome   string          `json:"outcome,omitempty"`
	World     Box             `json:"world"`
	Player    PlayerSnapshot  `json:"player"`
	Platforms []Box           `json:"platforms"`
	Pickups   []Box           `json:"pickups"`
	Enemies   []EnemySnapshot `json:"enemies"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := g.State()
	p := g.Player()

	snap := Snapshot{
		Level:     g.level.ID,
		Frame:     state.Frames,
		Score:     state.Score,
		Coins:     state.Coins,
		CoinsLeft: g.CoinsLeft(),
		Paused:    state.Paused,
		GameOver:  state.GameOver,
		Outcome:   string(state.Outcome),
		World:     boxOf(g.world),
		Player: PlayerSnapshot{
			Box:      boxOf(p.Box),
			VX:       p.VX,
			VY:       p.VY,
			Grounded: p.Grounded,
		},
		Platforms: make([]Box, 0, len(g.platforms)),
		Pickups:   make([]Box, 0, g.CoinsLeft()),
	}

	for _, r := range g.platforms {
		snap.Platforms = append(snap.Platforms, boxOf(r))
	}
	for _, id := range g.arena.IDs(KindCoin) {
		e, _ := g.arena.Get(id)
		snap.Pickups = append(snap.Pickups, boxOf(e.Bounds()))
	}
	for _, e := range g.Enemies() {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{Box: boxOf(e.Box), Direction: e.Direction})
	}
	return snap
}
