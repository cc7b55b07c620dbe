package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

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

// Options configures a game model.
type Options struct {
	Runtime       core.RuntimeConfig
	GameOverDelay time.Duration // overridden by games implementing TickRate/GameOverDelay
	LevelID       string        // recorded with the run
	Player        string        // recorded with the run

	// Embedded models run inside a larger program and report Finished
	// instead of quitting it.
	Embedded bool

	// OnStep is called after every simulated tick.
	OnStep func(registry.Game, core.StepResult)

	// Logger receives save failures. Defaults to log.Default().
	Logger *log.Logger
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one platformer session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	opts       Options
	inputFrame core.InputFrame
	holds      *HoldTracker
	keyMapper  *KeyMapper
	help       help.Model
	gameState  core.GameState
	gameOverAt time.Time
	runSaved   bool // whether the run has been saved for current game over
	finished   bool
	quitting   bool
}

// NewModel creates a model for the given game and resets the game.
func NewModel(game registry.Game, store *storage.Store, opts Options) Model {
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

	return Model{
		game:       game,
		screen:     core.NewScreen(opts.Runtime.ScreenW, playHeight(opts.Runtime.ScreenH)),
		store:      store,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		holds:      NewHoldTracker(DefaultInitialHold, DefaultRepeatHold),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		gameState:  game.State(),
	}
}

// playHeight leaves the bottom row for the help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys
	switch {
	case key.Matches(msg, keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action, held := m.keyMapper.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case held:
		m.holds.Release(opposite(action))
		m.holds.Press(action, time.Now())
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.restart()
		}
	case action == core.ActionQuit && m.gameState.GameOver:
		// Second quit skips the rest of the summary.
		return m.finish()
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// handleResize processes window resize events. The world keeps its size,
// only the cell mapping changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	m.holds.Apply(&m.inputFrame, now)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.opts.OnStep != nil {
		m.opts.OnStep(m.game, result)
	}

	if m.gameState.GameOver {
		if m.gameOverAt.IsZero() {
			m.gameOverAt = now
			m.saveRun()
		}
		if now.Sub(m.gameOverAt) >= m.opts.GameOverDelay {
			return m.finish()
		}
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.finished = true
	if m.opts.Embedded {
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) restart() {
	m.game.Reset(m.opts.Runtime)
	m.gameState = m.game.State()
	m.gameOverAt = time.Time{}
	m.runSaved = false
	m.holds.Reset()
	m.inputFrame.Clear()
}

// saveRun records the finished run once.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	// The summary is shown whether or not the save succeeds.
	if _, err := m.store.SaveRun(storage.Run{
		LevelID: m.opts.LevelID,
		Player:  m.opts.Player,
		Score:   m.gameState.Score,
		Coins:   m.gameState.Coins,
		Frames:  m.gameState.Frames,
		Outcome: string(m.gameState.Outcome),
	}); err != nil {
		m.opts.Logger.Warn("run not saved", "level", m.opts.LevelID, "score", m.gameState.Score, "error", err)
	}
	m.runSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.LevelID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || (m.finished && !m.opts.Embedded) {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Finished reports whether the summary has been shown and the session ended.
func (m Model) Finished() bool {
	return m.finished
}

// Quitting reports whether the user force-quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run plays one session in the current terminal and returns its final state.
func Run(game registry.Game, store *storage.Store, opts Options) (core.GameState, error) {
	model := NewModel(game, store, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if m, ok := final.(Model); ok {
		return m.State(), nil
	}
	return game.State(), nil
}
