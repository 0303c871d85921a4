// Package config provides YAML-based game configuration loading and
// spawn presets for the platform jumper.
package config

import (
	"errors"
	"fmt"
)

// DoodleConfig contains all configuration for the platform jumper.
// Every pixel and grid constant used by the simulation lives here so
// that algorithms never hard-code a cell size.
type DoodleConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Physics PhysicsConfig `yaml:"physics"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Player  PlayerConfig  `yaml:"player"`
	Input   InputConfig   `yaml:"input"`
	Effects EffectsConfig `yaml:"effects"`
	Render  RenderConfig  `yaml:"render"`
}

// GridConfig describes the platform field and its pixel scale.
type GridConfig struct {
	VisibleRows   int `yaml:"visible_rows"`   // Rows shown on screen; the field buffers twice as many
	Cols          int `yaml:"cols"`           // Lanes across the screen
	CellWidth     int `yaml:"cell_width"`     // Pixels per lane
	CellHeight    int `yaml:"cell_height"`    // Pixels per row
	ReferenceLine int `yaml:"reference_line"` // Row the character is kept near by scrolling
}

// PhysicsConfig defines per-tick motion in pixels.
type PhysicsConfig struct {
	LateralStep int `yaml:"lateral_step"`
	RiseStep    int `yaml:"rise_step"`
	FallStep    int `yaml:"fall_step"`
	RiseTicks   int `yaml:"rise_ticks"` // Length of the ballistic ascent
	TickMS      int `yaml:"tick_ms"`    // Nominal pacing between steps
}

// SpawnConfig holds the fixed per-row platform spawn probabilities.
type SpawnConfig struct {
	FirstProbability   float64 `yaml:"first_probability"`   // Row 1 at initialization
	InitialProbability float64 `yaml:"initial_probability"` // Remaining rows at initialization
	ScrollProbability  float64 `yaml:"scroll_probability"`  // Rows regenerated by a scroll
}

// PlayerConfig describes the character's starting state.
type PlayerConfig struct {
	StartX      int `yaml:"start_x"`      // Pixels; negative centres the character
	StartRow    int `yaml:"start_row"`    // Grid row of the character's top cell
	SpriteWidth int `yaml:"sprite_width"` // Pixels
	Watermark   int `yaml:"watermark"`    // Initial highest line reached
}

// InputConfig calibrates the analog direction reading.
type InputConfig struct {
	Midpoint  float64 `yaml:"midpoint"`
	DeadZone  float64 `yaml:"dead_zone"`
	HoldTicks int     `yaml:"hold_ticks"` // Keyboard tilt latch duration
}

// EffectsConfig holds scoring and presentation timings.
type EffectsConfig struct {
	FlashCount      int `yaml:"flash_count"`
	FlashIntervalMS int `yaml:"flash_interval_ms"`
	PointsPerLine   int `yaml:"points_per_line"`
}

// RenderConfig maps grid cells to terminal characters.
type RenderConfig struct {
	CharsPerCell int `yaml:"chars_per_cell"`
	LinesPerCell int `yaml:"lines_per_cell"`
}

// Rows returns the depth of the field buffer (visible window plus lookahead).
func (g GridConfig) Rows() int {
	return 2 * g.VisibleRows
}

// ScreenWidth returns the playfield width in pixels.
func (g GridConfig) ScreenWidth() int {
	return g.Cols * g.CellWidth
}

// ScreenHeight returns the playfield height in pixels.
func (g GridConfig) ScreenHeight() int {
	return g.VisibleRows * g.CellHeight
}

// PlayfieldSize returns the playfield size in terminal characters.
func (c DoodleConfig) PlayfieldSize() (w, h int) {
	return c.Grid.Cols * c.Render.CharsPerCell, c.Grid.VisibleRows * c.Render.LinesPerCell
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the constraints the simulation relies on.
func (c DoodleConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	g := c.Grid
	if g.VisibleRows < 4 {
		fail("grid.visible_rows must be at least 4, got %d", g.VisibleRows)
	}
	if g.Cols < 3 {
		fail("grid.cols must be at least 3, got %d", g.Cols)
	}
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		fail("grid cell size must be positive, got %dx%d", g.CellWidth, g.CellHeight)
	}
	if g.ReferenceLine < 2 || g.ReferenceLine >= g.VisibleRows {
		fail("grid.reference_line must be in [2, %d), got %d", g.VisibleRows, g.ReferenceLine)
	}

	p := c.Physics
	for name, step := range map[string]int{"lateral_step": p.LateralStep, "rise_step": p.RiseStep, "fall_step": p.FallStep} {
		if step <= 0 {
			fail("physics.%s must be positive, got %d", name, step)
		}
	}
	if p.FallStep > 0 && g.CellHeight > 0 && g.CellHeight%p.FallStep != 0 {
		fail("physics.fall_step %d must divide grid.cell_height %d", p.FallStep, g.CellHeight)
	}
	if p.RiseStep > 0 && g.CellHeight > 0 && g.CellHeight%p.RiseStep != 0 {
		fail("physics.rise_step %d must divide grid.cell_height %d", p.RiseStep, g.CellHeight)
	}
	if p.RiseTicks <= 0 {
		fail("physics.rise_ticks must be positive, got %d", p.RiseTicks)
	}
	if p.TickMS <= 0 {
		fail("physics.tick_ms must be positive, got %d", p.TickMS)
	}
	if p.RiseTicks > 0 && p.RiseStep > 0 && p.FallStep > 0 && g.CellHeight > 0 {
		rise := p.RiseTicks * p.RiseStep
		if rise%p.FallStep != 0 {
			fail("physics rise height %d (rise_ticks*rise_step) must be a multiple of fall_step %d", rise, p.FallStep)
		}
		// The highest resting row without a rebase is reference_line+1.
		riseRows := (rise + g.CellHeight - 1) / g.CellHeight
		if top := max(g.ReferenceLine+1, c.Player.StartRow) + riseRows; top >= g.VisibleRows {
			fail("physics rise of %d rows from row %d leaves the %d visible rows", riseRows, top-riseRows, g.VisibleRows)
		}
	}

	for name, prob := range map[string]float64{
		"first_probability":   c.Spawn.FirstProbability,
		"initial_probability": c.Spawn.InitialProbability,
		"scroll_probability":  c.Spawn.ScrollProbability,
	} {
		if prob < 0 || prob > 1 {
			fail("spawn.%s must be in [0, 1], got %v", name, prob)
		}
	}

	if c.Player.SpriteWidth <= 0 || c.Player.SpriteWidth > g.ScreenWidth() {
		fail("player.sprite_width must be in (0, %d], got %d", g.ScreenWidth(), c.Player.SpriteWidth)
	}
	if c.Player.StartX > g.ScreenWidth()-c.Player.SpriteWidth {
		fail("player.start_x %d leaves the screen", c.Player.StartX)
	}
	if c.Player.StartRow < 2 || c.Player.StartRow >= g.VisibleRows {
		fail("player.start_row must be in [2, %d), got %d", g.VisibleRows, c.Player.StartRow)
	}

	if c.Input.DeadZone < 0 || c.Input.Midpoint < 0 || c.Input.Midpoint > 1 {
		fail("input midpoint %v / dead_zone %v out of range", c.Input.Midpoint, c.Input.DeadZone)
	}
	if c.Render.CharsPerCell <= 0 || c.Render.LinesPerCell <= 0 {
		fail("render cell size must be positive, got %dx%d", c.Render.CharsPerCell, c.Render.LinesPerCell)
	}

	return errors.Join(errs...)
}

// SpawnPreset names a fixed set of spawn probabilities.
type SpawnPreset string

const (
	SpawnSparse SpawnPreset = "sparse"
	SpawnNormal SpawnPreset = "normal"
	SpawnDense  SpawnPreset = "dense"
)

// ParseSpawnPreset converts a CLI value to a preset. Empty means keep the config.
func ParseSpawnPreset(s string) (SpawnPreset, error) {
	switch SpawnPreset(s) {
	case "", SpawnSparse, SpawnNormal, SpawnDense:
		return SpawnPreset(s), nil
	default:
		return "", fmt.Errorf("unknown spawn preset %q (want sparse, normal or dense)", s)
	}
}

// ApplySpawnPreset replaces the spawn probabilities with the preset's values.
// Probabilities stay fixed for the whole session.
func ApplySpawnPreset(cfg *DoodleConfig, preset SpawnPreset) {
	switch preset {
	case SpawnSparse:
		cfg.Spawn = SpawnConfig{FirstProbability: 0.7, InitialProbability: 0.6, ScrollProbability: 0.7}
	case SpawnNormal:
		cfg.Spawn = DefaultDoodleConfig().Spawn
	case SpawnDense:
		cfg.Spawn = SpawnConfig{FirstProbability: 1.0, InitialProbability: 0.95, ScrollProbability: 1.0}
	}
}
