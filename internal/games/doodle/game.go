// Package doodle implements a vertically scrolling platform jumper.
// The character bounces off two-lane platforms while the field scrolls
// down under it, and the run ends when it drops to the bottom of the window.
package doodle

import (
	"fmt"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/registry"
)

// GameID is the registry identifier.
const GameID = "doodle"

// maxPendingKeys bounds the key queue between polls.
const maxPendingKeys = 8

// Settings applied to games created through the registry.
var (
	configOverride *config.DoodleConfig
	inputProbe     func() error
	logger         Logger = nopLogger{}
)

// SetConfig sets the configuration used by subsequent Reset calls.
// Without it, Reset loads the config from the default search path.
func SetConfig(cfg config.DoodleConfig) {
	configOverride = &cfg
}

// SetInputProbe sets the keyboard presence check run when a session starts.
// A nil probe means input is always available (headless replays).
func SetInputProbe(probe func() error) {
	inputProbe = probe
}

// SetLogger routes simulation debug events to l.
func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	logger = l
}

// Game adapts a Session to the platform's registry.Game interface.
// Input frames feed a keyboard tilt sensor and a pending-key queue that
// the session polls once per tick.
type Game struct {
	cfg     config.DoodleConfig
	runtime core.RuntimeConfig
	session *Session
	display *ScreenDisplay
	input   *frameInput
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Doodle Jump"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if configOverride != nil {
		g.cfg = *configOverride
	} else {
		cfg, _, err := config.LoadDoodle("")
		if err != nil {
			cfg = config.DefaultDoodleConfig()
		}
		g.cfg = cfg
	}

	g.display = NewScreenDisplay(g.cfg)
	g.input = newFrameInput(g.cfg.Input, inputProbe)
	g.session = NewSession(g.cfg, runtime.Seed, g.input, g.display, logger)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.input.feed(in)

	seed := g.session.Seed()
	err := g.session.Tick()
	if g.session.Seed() != seed {
		// A restart begins from a clean controller state so a round
		// replays identically from its seed.
		g.input.reset()
	} else {
		g.input.advance()
	}
	g.display.Tick()

	return core.StepResult{State: g.State(), Err: err}
}

// Render draws the playfield centred horizontally, framed when the screen
// has room for a border. A screen too small for the playfield gets a notice.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := g.display.Width(), g.display.Height()

	if dst.Width() < w || dst.Height() < h {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("terminal too small: need %dx%d", w, h), core.ColorText)
		return
	}

	ox := (dst.Width() - w) / 2
	oy := 0
	if dst.Width() >= w+2 && dst.Height() >= h+2 {
		oy = 1
		dst.DrawBox(core.NewRect(ox-1, 0, w+2, h+2), core.ColorGrid)
	}
	g.display.Render(dst, ox, oy)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State()
	phase := st.String()
	if st == StatePlaying {
		phase = g.session.Phase().String()
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: st == StateGameOver,
		Paused:   st == StatePaused,
		Phase:    phase,
	}
}

// Seed returns the seed of the round in progress.
func (g *Game) Seed() int64 {
	return g.session.Seed()
}

// Config returns the configuration the game is running with.
func (g *Game) Config() config.DoodleConfig {
	return g.cfg
}

// ConfigSnapshot encodes the running configuration for replay records.
func (g *Game) ConfigSnapshot() ([]byte, error) {
	return config.Marshal(g.cfg)
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// frameInput implements Input on top of per-tick input frames.
type frameInput struct {
	tilt    *KeyTilt
	pending []core.Action
	probe   func() error
}

func newFrameInput(cfg config.InputConfig, probe func() error) *frameInput {
	return &frameInput{tilt: NewKeyTilt(cfg), probe: probe}
}

func (f *frameInput) feed(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		f.tilt.Press(Left)
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		f.tilt.Press(Right)
	}
	for _, a := range in.Actions() {
		switch a {
		case core.ActionStart, core.ActionPause, core.ActionResume, core.ActionRestart:
			if len(f.pending) < maxPendingKeys {
				f.pending = append(f.pending, a)
			}
		}
	}
}

func (f *frameInput) advance() {
	f.tilt.Advance()
}

func (f *frameInput) reset() {
	f.tilt.Center()
	f.pending = f.pending[:0]
}

// SampleDirection implements Input.
func (f *frameInput) SampleDirection() Direction {
	return f.tilt.Direction()
}

// PollKey implements Input.
func (f *frameInput) PollKey() (core.Action, bool) {
	if len(f.pending) == 0 {
		return core.ActionNone, false
	}
	a := f.pending[0]
	f.pending = f.pending[1:]
	return a, true
}

// Ready implements Input.
func (f *frameInput) Ready() error {
	if f.probe == nil {
		return nil
	}
	return f.probe()
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
