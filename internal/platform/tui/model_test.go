package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/platformer/internal/config"
	"github.com/vovakirdan/platformer/internal/core"
	"github.com/vovakirdan/platformer/internal/games/platformer"
	"github.com/vovakirdan/platformer/internal/levels"
	"github.com/vovakirdan/platformer/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store, embedded bool) (Model, *platformer.Game) {
	t.Helper()
	game := platformer.NewWithLevel(config.DefaultPlatformerConfig(), levels.MustDefault())
	m := NewModel(game, store, Options{
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 31, TickRate: 60},
		LevelID:  "meadow",
		Player:   "tester",
		Embedded: embedded,
	})
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelUsesGamePacing(t *testing.T) {
	m, _ := newTestModel(t, nil, false)
	if m.opts.GameOverDelay != 2*time.Second {
		t.Errorf("GameOverDelay = %v, expected 2s from config", m.opts.GameOverDelay)
	}
	if m.opts.Runtime.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", m.opts.Runtime.TickRate)
	}
}

func TestModelHeldKeyMovesPlayer(t *testing.T) {
	m, game := newTestModel(t, nil, false)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, TickMsg(time.Now()))

	if game.Player().VX != 5 {
		t.Errorf("VX = %v, expected 5 while right is held", game.Player().VX)
	}

	// Left releases right immediately.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	_, _ = update(t, m, TickMsg(time.Now()))
	if game.Player().VX != -5 {
		t.Errorf("VX = %v, expected -5 after pressing left", game.Player().VX)
	}
}

func TestModelQuitShowsSummaryThenFinishes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store, false)
	start := time.Now()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := update(t, m, TickMsg(start))
	if !m.State().GameOver || m.State().Outcome != core.OutcomeQuit {
		t.Fatalf("state = %+v, expected game over by quit", m.State())
	}
	if m.Finished() || cmd == nil {
		t.Fatal("summary should stay up and keep ticking")
	}
	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("view should still show the HUD during the summary")
	}

	m, _ = update(t, m, TickMsg(start.Add(time.Second)))
	if m.Finished() {
		t.Fatal("finished before the delay elapsed")
	}

	m, _ = update(t, m, TickMsg(start.Add(2*time.Second)))
	if !m.Finished() {
		t.Fatal("expected finished after the delay")
	}
	if m.View() != "" {
		t.Error("standalone model should clear the view when finished")
	}

	runs, err := store.TopRuns("meadow", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected exactly 1", len(runs))
	}
	if runs[0].Outcome != "quit" || runs[0].Player != "tester" {
		t.Errorf("unexpected run %+v", runs[0])
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	m, game := newTestModel(t, nil, true)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg(time.Now()))
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.State().GameOver || game.State().GameOver {
		t.Error("restart should start a fresh session")
	}
}

func TestModelEmbeddedFinishDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t, nil, true)
	m.opts.GameOverDelay = 0

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := update(t, m, TickMsg(time.Now()))
	if !m.Finished() {
		t.Fatal("expected finished with zero delay")
	}
	if cmd != nil {
		t.Error("embedded model should not return a command when finished")
	}
	if m.View() == "" {
		t.Error("embedded model keeps rendering for its parent")
	}
}

func TestModelSaveFailureIsLogged(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	var buf bytes.Buffer
	game := platformer.NewWithLevel(config.DefaultPlatformerConfig(), levels.MustDefault())
	m := NewModel(game, store, Options{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 31, TickRate: 60},
		LevelID: "meadow",
		Player:  "tester",
		Logger:  log.New(&buf),
	})
	start := time.Now()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(time.Second)))
	m, _ = update(t, m, TickMsg(start.Add(3*time.Second)))

	if !m.Finished() {
		t.Error("session should finish even when the run cannot be saved")
	}
	out := buf.String()
	if !strings.Contains(out, "run not saved") || !strings.Contains(out, "meadow") {
		t.Errorf("log = %q, expected a save warning for meadow", out)
	}
	if n := strings.Count(out, "run not saved"); n != 1 {
		t.Errorf("warned %d times, expected once", n)
	}
}
