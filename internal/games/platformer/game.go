// Package platformer implements a single-screen side-view platformer.
// The player runs and jumps across static platforms, picks up coins and
// loses on touching a patrolling enemy.
package platformer

import (
	"time"

	"github.com/vovakirdan/platformer/internal/config"
	"github.com/vovakirdan/platformer/internal/core"
	"github.com/vovakirdan/platformer/internal/levels"
	"github.com/vovakirdan/platformer/internal/registry"
)

// GameID is the registry id of the platformer.
const GameID = "platformer"

// configPath, difficultyPreset and currentLevel are set once from the CLI
// before any game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	currentLevel     *levels.Level
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's settings.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevel selects the level new games start on.
func SetLevel(l levels.Level) {
	currentLevel = &l
}

func init() {
	registry.Register(GameID, func() registry.Game { return New() })
}

// Game is one platformer session.
type Game struct {
	fixed   bool // config and level were injected, skip loading on Reset
	cfg     config.PlatformerConfig
	level   levels.Level
	runtime core.RuntimeConfig

	arena      *Arena
	playerID   EntityID
	platforms  []core.RectF
	world      core.RectF
	difficulty *config.DifficultyManager
	effects    Effects

	coinsTotal int
	coins      int
	frames     int
	paused     bool
	gameOver   bool
	outcome    core.Outcome
}

// New creates a game that loads its config and level on Reset.
func New() *Game {
	return &Game{}
}

// NewWithLevel creates a game with a fixed config and level.
func NewWithLevel(cfg config.PlatformerConfig, level levels.Level) *Game {
	return &Game{fixed: true, cfg: cfg, level: level}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset (re)builds the session from the config and level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := config.Load(configPath)
		if err != nil {
			cfg = config.DefaultPlatformerConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg

		if currentLevel != nil {
			g.level = *currentLevel
		} else {
			g.level = levels.MustDefault()
		}
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.world = core.NewRectF(0, 0, g.cfg.World.Width, g.cfg.World.Height)
	g.build()

	g.coins = 0
	g.frames = 0
	g.paused = false
	g.gameOver = false
	g.outcome = core.OutcomeNone
	g.effects.Reset()
}

// build populates a fresh arena from the level.
func (g *Game) build() {
	g.arena = NewArena()

	g.platforms = make([]core.RectF, 0, len(g.level.Platforms))
	for _, p := range g.level.Platforms {
		g.arena.Spawn(KindPlatform, Platform{Box: p})
		g.platforms = append(g.platforms, p)
	}

	size := g.cfg.Coin.Size
	for _, c := range g.level.Coins {
		g.arena.Spawn(KindCoin, &Coin{Box: core.NewRectF(c.X, c.Y, size, size)})
	}
	g.coinsTotal = len(g.level.Coins)

	for _, e := range g.level.Enemies {
		g.arena.Spawn(KindEnemy, NewEnemy(e.X, e.Y, g.cfg.Enemy.Width, g.cfg.Enemy.Height, e.Patrol))
	}

	g.playerID = g.arena.Spawn(KindPlayer,
		NewPlayer(g.level.Spawn.X, g.level.Spawn.Y, g.cfg.Player.Width, g.cfg.Player.Height))
}

// Player returns the player entity.
func (g *Game) Player() *Player {
	e, _ := g.arena.Get(g.playerID)
	return e.(*Player)
}

// Enemies returns the enemies in spawn order.
func (g *Game) Enemies() []*Enemy {
	ids := g.arena.IDs(KindEnemy)
	out := make([]*Enemy, 0, len(ids))
	for _, id := range ids {
		e, _ := g.arena.Get(id)
		out = append(out, e.(*Enemy))
	}
	return out
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Config returns the active config.
func (g *Game) Config() config.PlatformerConfig {
	return g.cfg
}

// World returns the simulated area.
func (g *Game) World() core.RectF {
	return g.world
}

// TickRate returns the frames per second: the runtime override if set,
// otherwise the configured rate.
func (g *Game) TickRate() int {
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return g.cfg.World.FPS
}

// GameOverDelay returns how long frontends keep the summary on screen.
func (g *Game) GameOverDelay() time.Duration {
	return g.cfg.GameOverDelay()
}

// CoinsLeft returns how many coins are still in the level.
func (g *Game) CoinsLeft() int {
	return g.arena.Len(KindCoin)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.effects.Update(g.frameSeconds())

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionQuit) {
		g.end(core.OutcomeQuit)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.frames++
	p := g.Player()

	if in.Has(core.ActionJump) {
		p.Jump(g.cfg.Physics.JumpImpulse)
	}

	p.VX = 0
	if in.IsHeld(core.ActionLeft) {
		p.VX = -g.cfg.Physics.MoveSpeed
	}
	if in.IsHeld(core.ActionRight) {
		p.VX = g.cfg.Physics.MoveSpeed
	}

	Resolve(&p.Body, g.platforms, g.world, g.cfg.Physics.Gravity)

	speed := g.difficulty.Speed(g.cfg.Enemy.Speed, p.Score, g.frames)
	enemies := g.Enemies()
	for _, e := range enemies {
		e.Patrol(speed)
	}

	collected := 0
	for _, id := range g.arena.IDs(KindCoin) {
		e, _ := g.arena.Get(id)
		coin := e.(*Coin)
		if !p.Box.Intersects(coin.Box) {
			continue
		}
		if g.arena.Remove(id) {
			p.Score += g.cfg.Coin.Value
			g.coins++
			collected++
			g.effects.CoinCollected(coin.Box)
		}
	}

	for _, e := range enemies {
		if p.Box.Intersects(e.Box) {
			g.end(core.OutcomeEnemy)
			break
		}
	}

	return core.StepResult{State: g.State(), Collected: collected}
}

func (g *Game) end(outcome core.Outcome) {
	g.gameOver = true
	g.outcome = outcome
	g.effects.GameOver()
}

func (g *Game) frameSeconds() float32 {
	fps := g.TickRate()
	if fps <= 0 {
		fps = 60
	}
	return 1 / float32(fps)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.arena != nil {
		score = g.Player().Score
	}
	return core.GameState{
		Score:    score,
		Coins:    g.coins,
		Frames:   g.frames,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Outcome:  g.outcome,
	}
}

// Ensure Game implements registry.Game
var _ registry.Game = (*Game)(nil)
