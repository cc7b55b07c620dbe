package registry

import (
	"testing"

	"github.com/vovakirdan/platformer/internal/core"
)

type stubGame struct {
	id     string
	resets int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Draw(core.Canvas)                     {}
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) World() core.RectF                    { return core.RectF{W: 10, H: 10} }
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Fatal("Exists reports the wrong registrations")
	}

	g1, err := Create("stub-a")
	if err != nil {
		t.Fatal(err)
	}
	g2, _ := Create("stub-a")
	if g1 == g2 {
		t.Error("Create should return a fresh instance each time")
	}

	if _, err := Create("stub-missing"); err == nil {
		t.Error("expected an error for an unknown id")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub-a" || info.ID == "stub-b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title of %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "stub-a" {
		t.Errorf("List order = %v, expected sorted by id", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same id twice should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
