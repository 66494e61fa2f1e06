// Package formats provides level file parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned for level files that parse but make no sense.
var ErrInvalidLevel = errors.New("invalid level")

// YAMLLevel represents the YAML structure for a level file.
// Grid rows run top to bottom; each character is the starting stack
// depth of one cell.
type YAMLLevel struct {
	ID              int               `yaml:"id"`
	Name            string            `yaml:"name"`
	Turns           int               `yaml:"turns"`
	Objective       int               `yaml:"objective"`
	Clouds          int               `yaml:"clouds,omitempty"`
	RaisedEdgeFloor bool              `yaml:"raised_edge_floor,omitempty"`
	Grid            []string          `yaml:"grid"`
	Metadata        map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID              int
	Name            string
	Turns           int
	Objective       int
	Clouds          int
	RaisedEdgeFloor bool
	Depths          [][]int // [col][row]
	Metadata        map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID <= 0 {
		return Level{}, fmt.Errorf("id %d: %w", yl.ID, ErrInvalidLevel)
	}
	if yl.Turns <= 0 {
		return Level{}, fmt.Errorf("level %d: turns must be positive: %w", yl.ID, ErrInvalidLevel)
	}
	if yl.Objective < 0 || yl.Clouds < 0 {
		return Level{}, fmt.Errorf("level %d: negative objective or clouds: %w", yl.ID, ErrInvalidLevel)
	}

	depths, err := parseGrid(yl.Grid)
	if err != nil {
		return Level{}, fmt.Errorf("level %d: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", yl.ID)
	}

	return Level{
		ID:              yl.ID,
		Name:            name,
		Turns:           yl.Turns,
		Objective:       yl.Objective,
		Clouds:          yl.Clouds,
		RaisedEdgeFloor: yl.RaisedEdgeFloor,
		Depths:          depths,
		Metadata:        yl.Metadata,
	}, nil
}

// parseGrid converts row-major digit rows into a [col][row] depth matrix.
func parseGrid(rows []string) ([][]int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", core.ErrBadLayout)
	}
	cols := len(rows[0])
	depths := make([][]int, cols)
	for c := range depths {
		depths[c] = make([]int, len(rows))
	}
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("grid row %d has %d cells, expected %d: %w", r, len(line), cols, core.ErrBadLayout)
		}
		for c, ch := range line {
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("grid row %d col %d: %q is not a depth: %w", r, c, ch, core.ErrBadLayout)
			}
			depths[c][r] = int(ch - '0')
		}
	}
	return depths, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Spec converts the level into the engine configuration.
func (l *Level) Spec() core.LevelSpec {
	return core.LevelSpec{
		ID:              l.ID,
		Name:            l.Name,
		Depths:          l.Depths,
		Turns:           l.Turns,
		Objective:       l.Objective,
		Clouds:          l.Clouds,
		RaisedEdgeFloor: l.RaisedEdgeFloor,
	}
}
