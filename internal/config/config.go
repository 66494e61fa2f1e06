// Package config provides YAML-based configuration loading for the saga
// engine, its renderer and the records store.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// SagaConfig contains all configuration for the saga game.
type SagaConfig struct {
	Tiles     TilesConfig     `yaml:"tiles"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Records   RecordsConfig   `yaml:"records"`
	Debug     DebugConfig     `yaml:"debug"`
}

// TilesConfig sizes the tile catalogue.
type TilesConfig struct {
	PlayablePerVariant  int `yaml:"playable_per_variant"`
	FillerPerVariant    int `yaml:"filler_per_variant"`
	VariantsPerCategory int `yaml:"variants_per_category"`
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	PointsPerTile int `yaml:"points_per_tile"`
}

// BoardConfig defines board behavior and the on-screen cell size.
type BoardConfig struct {
	ReshuffleBudget int `yaml:"reshuffle_budget"`
	CellWidth       int `yaml:"cell_width"`  // terminal columns per cell
	CellHeight      int `yaml:"cell_height"` // terminal rows per cell
}

// AnimationConfig defines tile speeds in cells per tick.
type AnimationConfig struct {
	TileSpeed   float64 `yaml:"tile_speed"`
	DealSpeed   float64 `yaml:"deal_speed"`
	SpawnOffset float64 `yaml:"spawn_offset"`
}

// RecordsConfig locates the player records database.
type RecordsConfig struct {
	Path string `yaml:"path"` // empty means the XDG data directory
}

// DebugConfig toggles the cheat keys.
type DebugConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that every count and speed is usable.
func (c SagaConfig) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"tiles.playable_per_variant", c.Tiles.PlayablePerVariant > 0},
		{"tiles.filler_per_variant", c.Tiles.FillerPerVariant >= 0},
		{"tiles.variants_per_category", c.Tiles.VariantsPerCategory > 0},
		{"scoring.points_per_tile", c.Scoring.PointsPerTile > 0},
		{"board.reshuffle_budget", c.Board.ReshuffleBudget > 0},
		{"board.cell_width", c.Board.CellWidth > 0},
		{"board.cell_height", c.Board.CellHeight > 0},
		{"animation.tile_speed", c.Animation.TileSpeed > 0},
		{"animation.deal_speed", c.Animation.DealSpeed > 0},
		{"animation.spawn_offset", c.Animation.SpawnOffset > 0},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("config: %s out of range: %w", ch.name, ErrInvalidConfig)
		}
	}
	return nil
}
