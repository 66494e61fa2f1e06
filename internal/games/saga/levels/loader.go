// Package levels loads saga level files, either the embedded set or a
// directory on disk. This package depends on core but core does not
// depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
	"github.com/vovakirdan/tui-saga/internal/games/saga/levels/formats"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrLevelNotFound is returned by LoadByID for unknown ids.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// Loader loads levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over fsys rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{fsys: fsys, root: root}
}

// Embedded returns a loader for the levels shipped with the binary.
func Embedded() *Loader {
	return NewLoader(embedded, "data")
}

// NewDirLoader returns a loader for a directory on disk. A leading ~ is
// expanded to the home directory.
func NewDirLoader(dir string) *Loader {
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return NewLoader(os.DirFS(dir), ".")
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail
// to parse are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return Level{Level: parsed, FilePath: p}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level %d: %w", id, ErrLevelNotFound)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Spec returns the engine configuration of the level.
func (l Level) Spec() core.LevelSpec {
	return l.Level.Spec()
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// Problem is a level file that cannot be played.
type Problem struct {
	File string
	Err  error
}

func (p Problem) Error() string {
	return p.File + ": " + p.Err.Error()
}

// Check loads every level file and builds an engine for each one with
// opts. Unlike LoadAll it reports the files it cannot use: parse errors,
// duplicate IDs and layouts the tile pool cannot fill.
func (l *Loader) Check(opts core.Options) ([]Level, []Problem, error) {
	var (
		levels   []Level
		problems []Problem
		seen     = map[int]string{}
	)

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, Problem{File: p, Err: err})
			return nil
		}
		if first, dup := seen[level.ID]; dup {
			problems = append(problems, Problem{File: p, Err: fmt.Errorf("duplicate id %d (also in %s)", level.ID, first)})
			return nil
		}
		seen[level.ID] = p

		if _, err := core.NewEngine(level.Spec(), opts); err != nil {
			problems = append(problems, Problem{File: p, Err: err})
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, problems, nil
}
