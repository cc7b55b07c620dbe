package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader resolves levels from the embedded set and from user directories.
// A user level with the same id as a built-in one replaces it.
type Loader struct {
	Dirs []string
}

// NewLoader creates a loader searching the given directories.
func NewLoader(dirs ...string) *Loader {
	return &Loader{Dirs: dirs}
}

// DefaultDirs returns ~/.platformer/levels and ./levels.
func DefaultDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".platformer", "levels"))
	}
	return append(dirs, "levels")
}

// LoadAll returns built-in and user levels sorted by id.
// Invalid user files are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Level, len(builtin))
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}

	for _, dir := range l.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("levels: read %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !isSupportedExtension(filepath.Ext(e.Name())) {
				continue
			}
			lvl, err := l.LoadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				// Skip invalid files
				continue
			}
			byID[lvl.ID] = lvl
		}
	}

	result := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		result = append(result, lvl)
	}
	sortByID(result)
	return result, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parse %s: %w", path, err)
	}
	lvl.Source = path
	return lvl, nil
}

// Find resolves a level by file path or by id. An empty ref means DefaultID.
func (l *Loader) Find(ref string) (Level, error) {
	if ref == "" {
		ref = DefaultID
	}

	if isSupportedExtension(filepath.Ext(ref)) {
		if _, err := os.Stat(ref); err == nil {
			return l.LoadFile(ref)
		}
	}

	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == ref {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w %q", ErrUnknownLevel, ref)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
