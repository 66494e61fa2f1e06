package config

import (
	_ "embed"
)

//go:embed defaults/saga.yaml
var defaultSagaYAML []byte

// DefaultSagaConfig returns the default saga configuration.
func DefaultSagaConfig() SagaConfig {
	return SagaConfig{
		Tiles: TilesConfig{
			PlayablePerVariant:  20,
			FillerPerVariant:    6,
			VariantsPerCategory: 1,
		},
		Scoring: ScoringConfig{
			PointsPerTile: 60,
		},
		Board: BoardConfig{
			ReshuffleBudget: 10,
			CellWidth:       4,
			CellHeight:      2,
		},
		Animation: AnimationConfig{
			TileSpeed:   0.5,
			DealSpeed:   0.75,
			SpawnOffset: 1,
		},
		Debug: DebugConfig{
			Enabled: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSagaYAML
}
