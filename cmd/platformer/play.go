package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/platformer/internal/config"
	"github.com/vovakirdan/platformer/internal/core"
	"github.com/vovakirdan/platformer/internal/games/platformer"
	"github.com/vovakirdan/platformer/internal/levels"
	"github.com/vovakirdan/platformer/internal/platform/tui"
	"github.com/vovakirdan/platformer/internal/platform/window"
	"github.com/vovakirdan/platformer/internal/registry"
	"github.com/vovakirdan/platformer/internal/spectate"
)

var (
	flagLevel      string
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
)

const controlsHelp = `Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump (only from the ground)
  P                - Pause
  R                - Restart (after game over)
  Esc/Q            - Quit

Difficulty options:
  easy   - Enemies start slow and speed up as you score
  normal - Enemies start at 30% extra speed and progress
  hard   - Enemies start at 70% extra speed and progress
  fixed  - No progression, enemies keep the config's speed`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a platformer session in the terminal.

` + controlsHelp + `

Examples:
  platformer play
  platformer play --level stairs
  platformer play --level ./my-level.yaml --difficulty easy
  platformer play --config ./my-platformer.yaml
  platformer play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a platformer session in an 800x600 desktop window.

` + controlsHelp + `

Examples:
  platformer window
  platformer window --level stairs --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", levels.DefaultID, "Level id or path to a level YAML")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a read-only spectator feed on this address (e.g. :8080)")
}

func init() {
	addSessionFlags(playCmd)
	addSessionFlags(windowCmd)
}

// newSession resolves the level and creates a game configured from flags.
func newSession() (levels.Level, registry.Game, error) {
	lvl, err := levels.NewLoader(levels.DefaultDirs()...).Find(flagLevel)
	if err != nil {
		return levels.Level{}, nil, err
	}

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return levels.Level{}, nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	if _, err := config.Load(flagConfig); err != nil {
		return levels.Level{}, nil, err
	}

	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetLevel(lvl)

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		return levels.Level{}, nil, err
	}
	return lvl, game, nil
}

// startSpectating serves the spectator feed when --spectate is set and
// returns the per-tick publisher. The returned stop func is always non-nil.
func startSpectating(feedLogger *log.Logger) (func(registry.Game, core.StepResult), func()) {
	if flagSpectate == "" {
		return nil, func() {}
	}

	hub := spectate.NewHub(feedLogger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
			feedLogger.Error("spectator feed stopped", "error", err)
		}
	}()

	publish := func(g registry.Game, _ core.StepResult) {
		p, ok := g.(*platformer.Game)
		if !ok {
			return
		}
		if err := hub.Publish(p.Snapshot()); err != nil {
			feedLogger.Warn("snapshot not published", "error", err)
		}
	}
	stop := func() {
		cancel()
		<-done
	}
	return publish, stop
}

// fileLogger writes to ~/.platformer/<name> so the terminal UI stays clean.
func fileLogger(name string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(nopWriter{}), func() {}
	}
	path := filepath.Join(home, ".platformer", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(nopWriter{}), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(nopWriter{}), func() {}
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "platformer"})
	l.SetLevel(logger.GetLevel())
	return l, func() { f.Close() }
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal (try 'platformer window')")
		os.Exit(1)
	}

	lvl, game, err := newSession()
	if err != nil {
		reportSessionError(err)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	sessionLogger, closeLog := fileLogger("platformer.log")
	defer closeLog()
	onStep, stopFeed := startSpectating(sessionLogger)

	store := openStore()
	state, runErr := tui.Run(game, store, tui.Options{
		Runtime: cfg,
		LevelID: lvl.ID,
		Player:  playerName(),
		OnStep:  onStep,
		Logger:  sessionLogger,
	})

	stopFeed()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printSummary(lvl, game, state)
}

func runWindow(_ *cobra.Command, _ []string) {
	lvl, game, err := newSession()
	if err != nil {
		reportSessionError(err)
	}

	onStep, stopFeed := startSpectating(logger)

	store := openStore()
	logger.Info("opening window", "level", lvl.ID)
	state, runErr := window.Run(game, store, window.Options{
		Title:   "Platformer - " + lvl.Name,
		Runtime: core.RuntimeConfig{TickRate: flagFPS},
		LevelID: lvl.ID,
		Player:  playerName(),
		OnStep:  onStep,
		Logger:  logger,
	})

	stopFeed()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printSummary(lvl, game, state)
}

func reportSessionError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, levels.ErrUnknownLevel) {
		fmt.Fprintln(os.Stderr, "Run 'platformer levels' to see available levels.")
	}
	os.Exit(1)
}

func printSummary(lvl levels.Level, game registry.Game, state core.GameState) {
	if !state.GameOver {
		return
	}
	fps := 0
	if p, ok := game.(*platformer.Game); ok {
		fps = p.TickRate()
	}
	fmt.Println(platformer.SummaryLine(state.Score))
	fmt.Printf("Level: %s  Coins: %d  Time: %s\n", lvl.Name, state.Coins, tui.FormatFrames(state.Frames, fps))
}
