package platformer

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/platformer/internal/config"
	"github.com/vovakirdan/platformer/internal/core"
	"github.com/vovakirdan/platformer/internal/levels"
)

func newTestGame(t *testing.T, level levels.Level) *Game {
	t.Helper()
	g := NewWithLevel(config.DefaultPlatformerConfig(), level)
	g.Reset(core.DefaultConfig())
	return g
}

func flatLevel() levels.Level {
	return levels.Level{
		ID:        "flat",
		Spawn:     levels.Point{X: 50, Y: 520},
		Platforms: []core.RectF{core.NewRectF(0, 560, 800, 40)},
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hold(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}

func TestResetBuildsLevel(t *testing.T) {
	g := newTestGame(t, levels.MustDefault())

	p := g.Player()
	if p.Box != core.NewRectF(50, 500, 30, 40) {
		t.Errorf("player box = %+v, expected spawn (50, 500) 30x40", p.Box)
	}
	if g.CoinsLeft() != 4 {
		t.Errorf("CoinsLeft = %d, expected 4", g.CoinsLeft())
	}
	if n := len(g.Enemies()); n != 3 {
		t.Errorf("got %d enemies, expected 3", n)
	}
	if g.World() != core.NewRectF(0, 0, 800, 600) {
		t.Errorf("World = %+v, expected 800x600", g.World())
	}
	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state %+v", state)
	}
}

func TestIdleFrameOnGround(t *testing.T) {
	g := newTestGame(t, flatLevel())

	g.Step(core.NewInputFrame())

	p := g.Player()
	if p.VY != 0 || !p.Grounded {
		t.Errorf("VY = %v, Grounded = %v; expected resting", p.VY, p.Grounded)
	}
	if p.Box.X != 50 || p.Box.Y != 520 {
		t.Errorf("player moved to (%v, %v)", p.Box.X, p.Box.Y)
	}
}

func TestHeldKeysSetVelocity(t *testing.T) {
	tests := []struct {
		name   string
		in     core.InputFrame
		wantVX float64
	}{
		{"none", core.NewInputFrame(), 0},
		{"left", hold(core.ActionLeft), -5},
		{"right", hold(core.ActionRight), 5},
		{"both, right wins", hold(core.ActionLeft, core.ActionRight), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, flatLevel())
			g.Step(tc.in)

			p := g.Player()
			if p.VX != tc.wantVX {
				t.Errorf("VX = %v, expected %v", p.VX, tc.wantVX)
			}
			if p.Box.X != 50+tc.wantVX {
				t.Errorf("X = %v, expected %v", p.Box.X, 50+tc.wantVX)
			}
		})
	}
}

func TestJumpFromGround(t *testing.T) {
	g := newTestGame(t, flatLevel())
	g.Step(core.NewInputFrame()) // settle: grounded

	g.Step(press(core.ActionJump))
	p := g.Player()
	if p.VY != -11.5 {
		t.Errorf("VY after jump frame = %v, expected -12 plus one frame of gravity", p.VY)
	}
	if p.Box.Y != 520-11.5 {
		t.Errorf("Y = %v, expected %v", p.Box.Y, 520-11.5)
	}
	if p.Grounded {
		t.Error("player should be airborne after jumping")
	}

	g.Step(press(core.ActionJump))
	if p.VY != -11 {
		t.Errorf("mid-air jump changed VY to %v, expected -11", p.VY)
	}
}

func TestJumpRefusedBeforeFirstLanding(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 50, Y: 400}
	g := newTestGame(t, level)

	g.Step(press(core.ActionJump))
	p := g.Player()
	if p.VY != 0.5 || p.Box.Y != 400.5 {
		t.Errorf("VY = %v, Y = %v; expected 0.5 and 400.5 from gravity alone", p.VY, p.Box.Y)
	}
	if p.Grounded {
		t.Error("spawned player is airborne until it lands")
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 340, Y: 380}
	level.Coins = []levels.Point{{X: 350, Y: 400}}
	g := newTestGame(t, level)

	res := g.Step(core.NewInputFrame())
	if res.Collected != 1 {
		t.Errorf("Collected = %d, expected 1", res.Collected)
	}
	if res.State.Score != 10 || res.State.Coins != 1 {
		t.Errorf("state = %+v, expected score 10 and 1 coin", res.State)
	}
	if g.CoinsLeft() != 0 {
		t.Errorf("CoinsLeft = %d, expected 0", g.CoinsLeft())
	}

	res = g.Step(core.NewInputFrame())
	if res.Collected != 0 || res.State.Score != 10 {
		t.Errorf("second frame: collected %d, score %d; expected 0 and 10", res.Collected, res.State.Score)
	}
}

func TestEnemyContactEndsGame(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 120, Y: 520}
	level.Enemies = []levels.EnemySpawn{{X: 100, Y: 530, Patrol: 100}}
	g := newTestGame(t, level)

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over on enemy contact")
	}
	if res.State.Outcome != core.OutcomeEnemy {
		t.Errorf("Outcome = %q, expected %q", res.State.Outcome, core.OutcomeEnemy)
	}

	frames := res.State.Frames
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(hold(core.ActionRight))
	}
	if g.State().Frames != frames {
		t.Error("simulation advanced after game over")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("world changed after game over")
	}
}

func TestQuitEndsGame(t *testing.T) {
	g := newTestGame(t, flatLevel())

	res := g.Step(press(core.ActionQuit))
	if !res.State.GameOver || res.State.Outcome != core.OutcomeQuit {
		t.Errorf("state = %+v, expected game over by quit", res.State)
	}
	if res.State.Frames != 0 {
		t.Errorf("Frames = %d, quit frame should not simulate", res.State.Frames)
	}
}

func TestQuitSkipsCoinPickup(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 340, Y: 380}
	level.Coins = []levels.Point{{X: 350, Y: 400}}
	g := newTestGame(t, level)

	res := g.Step(press(core.ActionQuit))
	if res.Collected != 0 || res.State.Score != 0 || res.State.Coins != 0 {
		t.Errorf("quit frame collected: %+v", res)
	}
	if g.CoinsLeft() != 1 {
		t.Errorf("CoinsLeft = %d, expected the coin to stay", g.CoinsLeft())
	}
	if g.Player().Box.Y != 380 {
		t.Errorf("player moved on the quit frame to Y = %v", g.Player().Box.Y)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, levels.MustDefault())

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	before := g.Snapshot()
	for i := 0; i < 5; i++ {
		g.Step(hold(core.ActionRight))
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("world changed while paused")
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Paused || res.State.Frames != 1 {
		t.Errorf("after unpause state = %+v, expected running with 1 frame", res.State)
	}
}

func TestAllCoinsIsNotTerminal(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 340, Y: 380}
	level.Coins = []levels.Point{{X: 350, Y: 400}}
	g := newTestGame(t, level)

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Error("collecting every coin must not end the game")
	}
}

func TestResetRestoresLevel(t *testing.T) {
	g := newTestGame(t, levels.MustDefault())
	for i := 0; i < 50; i++ {
		g.Step(hold(core.ActionRight))
	}
	g.Reset(core.DefaultConfig())

	fresh := newTestGame(t, levels.MustDefault())
	if !reflect.DeepEqual(g.Snapshot(), fresh.Snapshot()) {
		t.Error("Reset did not restore the initial world")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, levels.MustDefault())
	g2 := newTestGame(t, levels.MustDefault())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		in := randomInput(rng)
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Error("identical inputs produced different worlds")
	}
}

func randomInput(rng *rand.Rand) core.InputFrame {
	in := core.NewInputFrame()
	switch rng.Intn(3) {
	case 0:
		in.Hold(core.ActionLeft)
	case 1:
		in.Hold(core.ActionRight)
	}
	if rng.Intn(8) == 0 {
		in.Set(core.ActionJump)
	}
	return in
}

func TestWorldInvariantsUnderRandomPlay(t *testing.T) {
	all, err := levels.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultPlatformerConfig()

	for _, level := range all {
		t.Run(level.ID, func(t *testing.T) {
			g := NewWithLevel(cfg, level)
			g.Reset(core.DefaultConfig())
			rng := rand.New(rand.NewSource(42))

			for frame := 0; frame < 5000; frame++ {
				if g.State().GameOver {
					g.Reset(core.DefaultConfig())
				}
				g.Step(randomInput(rng))

				p := g.Player()
				if !g.World().Contains(p.Box) {
					t.Fatalf("frame %d: player %+v outside world", frame, p.Box)
				}
				for _, plat := range level.Platforms {
					if p.Box.Intersects(plat) {
						t.Fatalf("frame %d: player %+v overlaps platform %+v", frame, p.Box, plat)
					}
				}
				for _, e := range g.Enemies() {
					d := e.Box.X - e.StartX
					if d < 0 {
						d = -d
					}
					if d > e.PatrolDistance+cfg.Enemy.Speed {
						t.Fatalf("frame %d: enemy strayed %v from start", frame, d)
					}
				}
				state := g.State()
				if state.Score != state.Coins*cfg.Coin.Value {
					t.Fatalf("frame %d: score %d does not match %d coins", frame, state.Score, state.Coins)
				}
			}
		})
	}
}

func TestRenderHUDAndSummary(t *testing.T) {
	level := flatLevel()
	level.Spawn = levels.Point{X: 120, Y: 520}
	level.Enemies = []levels.EnemySpawn{{X: 100, Y: 530, Patrol: 100}}
	g := newTestGame(t, level)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
	if screen.GetCell(0, 29).Rune != core.FillRune {
		t.Error("ground should be drawn on the last row")
	}

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if !strings.Contains(screen.Row(15), SummaryLine(0)) {
		t.Errorf("summary row = %q, expected %q", screen.Row(15), SummaryLine(0))
	}
}

func TestSnapshotTracksPickups(t *testing.T) {
	g := newTestGame(t, levels.MustDefault())
	snap := g.Snapshot()

	if snap.Level != "meadow" {
		t.Errorf("Level = %q, expected meadow", snap.Level)
	}
	if len(snap.Platforms) != 5 || len(snap.Pickups) != 4 || len(snap.Enemies) != 3 {
		t.Errorf("snapshot counts platforms=%d pickups=%d enemies=%d",
			len(snap.Platforms), len(snap.Pickups), len(snap.Enemies))
	}
	if snap.Player.Box != (Box{X: 50, Y: 500, W: 30, H: 40}) {
		t.Errorf("player box = %+v", snap.Player.Box)
	}
}
