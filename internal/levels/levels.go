// Package levels provides level definitions for the platformer: the player
// spawn point, the static platform set, coins and patrolling enemies.
// Built-in levels are embedded; users can add YAML files of their own.
package levels

import (
	"embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/platformer/internal/core"
)

// DefaultID is the level played when none is requested.
const DefaultID = "meadow"

// ErrUnknownLevel is returned when a level id cannot be resolved.
var ErrUnknownLevel = errors.New("levels: unknown level")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Point is a world position.
type Point struct {
	X, Y float64
}

// EnemySpawn places an enemy and sets how far it patrols from its spawn x.
type EnemySpawn struct {
	X, Y   float64
	Patrol float64
}

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	Spawn     Point
	Platforms []core.RectF
	Coins     []Point
	Enemies   []EnemySpawn
	Source    string // "builtin" or the file path it was loaded from
}

// yamlLevel is the on-disk representation.
type yamlLevel struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Spawn     yamlPoint   `yaml:"spawn"`
	Platforms []yamlRect  `yaml:"platforms"`
	Coins     []yamlPoint `yaml:"coins"`
	Enemies   []yamlEnemy `yaml:"enemies"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlEnemy struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Patrol float64 `yaml:"patrol"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:        yl.ID,
		Name:      yl.Name,
		Spawn:     Point(yl.Spawn),
		Platforms: make([]core.RectF, 0, len(yl.Platforms)),
		Coins:     make([]Point, 0, len(yl.Coins)),
		Enemies:   make([]EnemySpawn, 0, len(yl.Enemies)),
	}
	if level.Name == "" {
		level.Name = level.ID
	}
	for _, p := range yl.Platforms {
		level.Platforms = append(level.Platforms, core.NewRectF(p.X, p.Y, p.W, p.H))
	}
	for _, c := range yl.Coins {
		level.Coins = append(level.Coins, Point(c))
	}
	for _, e := range yl.Enemies {
		level.Enemies = append(level.Enemies, EnemySpawn(e))
	}

	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// Validate checks the level is well formed.
// An empty platform list is allowed: the player simply falls to the floor.
func (l Level) Validate() error {
	if l.ID == "" {
		return errors.New("level has no id")
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("platform %d has non-positive size %vx%v", i, p.W, p.H)
		}
	}
	for i, e := range l.Enemies {
		if e.Patrol < 0 {
			return fmt.Errorf("enemy %d has negative patrol distance %v", i, e.Patrol)
		}
	}
	return nil
}

// Builtin returns the embedded levels sorted by id.
func Builtin() ([]Level, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: read builtin: %w", err)
	}

	result := make([]Level, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: read builtin %s: %w", e.Name(), err)
		}
		level, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parse builtin %s: %w", e.Name(), err)
		}
		level.Source = "builtin"
		result = append(result, level)
	}
	sortByID(result)
	return result, nil
}

// MustDefault returns the default built-in level.
// It panics if the embedded data is broken, which tests guard against.
func MustDefault() Level {
	all, err := Builtin()
	if err != nil {
		panic(err)
	}
	for _, l := range all {
		if l.ID == DefaultID {
			return l
		}
	}
	panic(fmt.Sprintf("levels: builtin %q missing", DefaultID))
}
