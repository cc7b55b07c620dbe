package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/platformer/internal/core"
)

func TestBuiltinLevelsParse(t *testing.T) {
	all, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	if len(all) < 2 {
		t.Fatalf("expected at least 2 builtin levels, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("levels not sorted by id: %q before %q", all[i-1].ID, all[i].ID)
		}
	}
	for _, l := range all {
		if l.Source != "builtin" {
			t.Errorf("level %q source = %q, expected builtin", l.ID, l.Source)
		}
	}
}

func TestMeadowMatchesClassicLayout(t *testing.T) {
	l := MustDefault()

	if l.ID != "meadow" {
		t.Fatalf("default level = %q, expected meadow", l.ID)
	}
	if l.Spawn != (Point{X: 50, Y: 500}) {
		t.Errorf("spawn = %+v, expected (50, 500)", l.Spawn)
	}

	wantPlatforms := []core.RectF{
		core.NewRectF(0, 560, 800, 40),
		core.NewRectF(300, 450, 200, 20),
		core.NewRectF(100, 350, 200, 20),
		core.NewRectF(500, 250, 200, 20),
		core.NewRectF(200, 150, 200, 20),
	}
	if len(l.Platforms) != len(wantPlatforms) {
		t.Fatalf("got %d platforms, expected %d", len(l.Platforms), len(wantPlatforms))
	}
	for i, p := range wantPlatforms {
		if l.Platforms[i] != p {
			t.Errorf("platform %d = %+v, expected %+v", i, l.Platforms[i], p)
		}
	}

	wantCoins := []Point{{350, 400}, {150, 300}, {550, 200}, {250, 100}}
	if len(l.Coins) != len(wantCoins) {
		t.Fatalf("got %d coins, expected %d", len(l.Coins), len(wantCoins))
	}
	for i, c := range wantCoins {
		if l.Coins[i] != c {
			t.Errorf("coin %d = %+v, expected %+v", i, l.Coins[i], c)
		}
	}

	wantEnemies := []EnemySpawn{{400, 420, 100}, {200, 320, 100}, {600, 220, 100}}
	if len(l.Enemies) != len(wantEnemies) {
		t.Fatalf("got %d enemies, expected %d", len(l.Enemies), len(wantEnemies))
	}
	for i, e := range wantEnemies {
		if l.Enemies[i] != e {
			t.Errorf("enemy %d = %+v, expected %+v", i, l.Enemies[i], e)
		}
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"minimal", "id: empty\n", false},
		{"missing id", "name: nope\n", true},
		{"zero width platform", "id: x\nplatforms:\n  - {x: 0, y: 0, w: 0, h: 10}\n", true},
		{"negative patrol", "id: x\nenemies:\n  - {x: 0, y: 0, patrol: -1}\n", true},
		{"malformed", "id: [", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if (err != nil) != tc.wantErr {
				t.Errorf("Parse() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseDefaultsNameToID(t *testing.T) {
	l, err := Parse([]byte("id: bare\n"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "bare" {
		t.Errorf("Name = %q, expected id fallback", l.Name)
	}
	if len(l.Platforms) != 0 {
		t.Errorf("expected no platforms, got %d", len(l.Platforms))
	}
}

func writeLevel(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderUserLevels(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "cave.yaml", "id: cave\nname: Cave\n")
	writeLevel(t, dir, "meadow.yml", "id: meadow\nname: My Meadow\n")
	writeLevel(t, dir, "broken.yaml", "id: [")
	writeLevel(t, dir, "notes.txt", "id: ignored\n")

	loader := NewLoader(dir, filepath.Join(dir, "missing"))
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	byID := make(map[string]Level)
	for _, l := range all {
		byID[l.ID] = l
	}

	if _, ok := byID["cave"]; !ok {
		t.Error("user level cave should be loaded")
	}
	if _, ok := byID["ignored"]; ok {
		t.Error("non-yaml files should be ignored")
	}
	if byID["meadow"].Name != "My Meadow" {
		t.Errorf("user meadow should override builtin, got %q", byID["meadow"].Name)
	}
	if _, ok := byID["stairs"]; !ok {
		t.Error("builtin stairs should still be present")
	}
}

func TestLoaderFind(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, "solo.yaml", "id: solo\n")
	loader := NewLoader()

	l, err := loader.Find("")
	if err != nil || l.ID != DefaultID {
		t.Errorf("Find(\"\") = %q, %v; expected default level", l.ID, err)
	}

	l, err = loader.Find(path)
	if err != nil || l.ID != "solo" || l.Source != path {
		t.Errorf("Find(path) = %+v, %v", l, err)
	}

	_, err = loader.Find("atlantis")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Find(unknown) err = %v, expected ErrUnknownLevel", err)
	}
}
