package config

import (
	_ "embed"
)

//go:embed defaults/doodle.yaml
var defaultDoodleYAML []byte

// DefaultDoodleConfig returns the built-in configuration.
// It mirrors defaults/doodle.yaml and is used when the embedded file cannot be parsed.
func DefaultDoodleConfig() DoodleConfig {
	return DoodleConfig{
		Grid: GridConfig{
			VisibleRows:   15,
			Cols:          20,
			CellWidth:     32,
			CellHeight:    32,
			ReferenceLine: 4,
		},
		Physics: PhysicsConfig{
			LateralStep: 2,
			RiseStep:    2,
			FallStep:    2,
			RiseTicks:   64, // 128px, four rows
			TickMS:      10,
		},
		Spawn: SpawnConfig{
			FirstProbability:   0.9,
			InitialProbability: 0.8,
			ScrollProbability:  0.9,
		},
		Player: PlayerConfig{
			StartX:      320,
			StartRow:    2,
			SpriteWidth: 32,
			Watermark:   2,
		},
		Input: InputConfig{
			Midpoint:  0.5,
			DeadZone:  0.3,
			HoldTicks: 16,
		},
		Effects: EffectsConfig{
			FlashCount:      4,
			FlashIntervalMS: 100,
			PointsPerLine:   100,
		},
		Render: RenderConfig{
			CharsPerCell: 4,
			LinesPerCell: 2,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDoodleYAML
}
