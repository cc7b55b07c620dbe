package window

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"github.com/vovakirdan/platformer/internal/core"
	"github.com/vovakirdan/platformer/internal/registry"
	"github.com/vovakirdan/platformer/internal/storage"
)

// pacer is implemented by games that choose their own frame rate and
// summary hold time.
type pacer interface {
	TickRate() int
	GameOverDelay() time.Duration
}

// Options configures a window session.
type Options struct {
	Title         string
	Width, Height int // window size in pixels; zero uses the world size
	Runtime       core.RuntimeConfig
	GameOverDelay time.Duration
	LevelID       string
	Player        string

	// OnStep is called after every simulated tick.
	OnStep func(registry.Game, core.StepResult)

	// Logger receives save failures. Defaults to log.Default().
	Logger *log.Logger
}

// App adapts a registry game to ebiten.Game.
type App struct {
	game  registry.Game
	store *storage.Store
	opts  Options
	keys  KeyState
	face  font.Face

	input      core.InputFrame
	state      core.GameState
	delayTicks int
	overTicks  int
	runSaved   bool
	done       bool
}

// NewApp resets the game and prepares it for the window loop.
func NewApp(game registry.Game, store *storage.Store, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	game.Reset(opts.Runtime)
	if p, ok := game.(pacer); ok {
		if rate := p.TickRate(); rate > 0 {
			opts.Runtime.TickRate = rate
		}
		opts.GameOverDelay = p.GameOverDelay()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	world := game.World()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = int(world.W), int(world.H)
	}
	if opts.Title == "" {
		opts.Title = game.Title()
	}

	return &App{
		game:       game,
		store:      store,
		opts:       opts,
		keys:       ebitenKeys{},
		input:      core.NewInputFrame(),
		state:      game.State(),
		delayTicks: DelayTicks(opts.GameOverDelay, opts.Runtime.TickRate),
	}
}

// DelayTicks converts a wall-clock delay to a number of ticks at fps.
func DelayTicks(d time.Duration, fps int) int {
	if d <= 0 || fps <= 0 {
		return 0
	}
	return int((int64(d)*int64(fps) + int64(time.Second) - 1) / int64(time.Second))
}

// Update advances the game by one tick.
func (a *App) Update() error {
	if a.done {
		return ebiten.Termination
	}

	a.input.Clear()
	ReadInput(a.keys, &a.input)

	if a.keys.Closing() {
		if !a.state.GameOver {
			a.input.Set(core.ActionQuit)
			a.state = a.game.Step(a.input).State
			a.saveRun()
		}
		a.done = true
		return ebiten.Termination
	}

	if a.state.GameOver {
		switch {
		case a.input.Has(core.ActionRestart):
			a.restart()
			return nil
		case a.input.Has(core.ActionQuit):
			a.done = true
			return ebiten.Termination
		}
	}

	result := a.game.Step(a.input)
	a.state = result.State
	if a.opts.OnStep != nil {
		a.opts.OnStep(a.game, result)
	}

	if a.state.GameOver {
		if a.overTicks == 0 {
			a.saveRun()
		}
		a.overTicks++
		if a.overTicks > a.delayTicks {
			a.done = true
			return ebiten.Termination
		}
	}
	return nil
}

func (a *App) restart() {
	a.game.Reset(a.opts.Runtime)
	a.state = a.game.State()
	a.overTicks = 0
	a.runSaved = false
}

func (a *App) saveRun() {
	if a.runSaved || a.store == nil {
		return
	}
	if _, err := a.store.SaveRun(storage.Run{
		LevelID: a.opts.LevelID,
		Player:  a.opts.Player,
		Score:   a.state.Score,
		Coins:   a.state.Coins,
		Frames:  a.state.Frames,
		Outcome: string(a.state.Outcome),
	}); err != nil {
		a.opts.Logger.Warn("run not saved", "level", a.opts.LevelID, "score", a.state.Score, "error", err)
	}
	a.runSaved = true
}

// Draw renders the game onto the window.
func (a *App) Draw(screen *ebiten.Image) {
	if a.face == nil {
		a.face = NewFace(18)
	}
	screen.Fill(Background)
	a.game.Draw(NewImageCanvas(screen, a.game.World(), a.face))
}

// Layout keeps a fixed logical resolution.
func (a *App) Layout(_, _ int) (int, int) {
	return a.opts.Width, a.opts.Height
}

// State returns the last observed game state.
func (a *App) State() core.GameState {
	return a.state
}

// Done reports whether the session has ended.
func (a *App) Done() bool {
	return a.done
}

// Run opens a window and plays one session, returning its final state.
// Closing the window ends the session like the quit key.
func Run(game registry.Game, store *storage.Store, opts Options) (core.GameState, error) {
	app := NewApp(game, store, opts)

	ebiten.SetWindowSize(app.opts.Width, app.opts.Height)
	ebiten.SetWindowTitle(app.opts.Title)
	ebiten.SetTPS(app.opts.Runtime.TickRate)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(app); err != nil {
		return app.State(), err
	}
	return app.State(), nil
}
