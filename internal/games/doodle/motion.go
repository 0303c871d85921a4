package doodle

import (
	"fmt"

	"github.com/vovakirdan/tui-doodle/internal/config"
)

// Phase is the vertical half of the jump cycle.
type Phase int

const (
	Rising Phase = iota
	Falling
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Falling {
		return "falling"
	}
	return "rising"
}

// Character is the player's sprite state. X and Y are pixels of the
// sprite's top-left corner; the sprite is one lane wide and two rows tall.
type Character struct {
	X, Y     int
	Phase    Phase
	riseTick int // ticks spent in the current ascent
}

// Progress is the score state borrowed from the session for each step.
type Progress struct {
	Score     int
	Watermark int // highest row landed on, relative to the current window
}

// StepResult reports what a single motion step did.
type StepResult struct {
	Died     bool
	Landed   bool
	Landing  int // character row after landing, before any rebase
	Points   int
	Scrolled int
}

// Motion advances the character one tick at a time.
type Motion struct {
	cfg      config.DoodleConfig
	field    *Field
	resolver *Resolver
	display  Display
	log      Logger
	maxX     int
}

// NewMotion creates the step function for a session.
func NewMotion(cfg config.DoodleConfig, field *Field, resolver *Resolver, display Display, log Logger) *Motion {
	return &Motion{
		cfg:      cfg,
		field:    field,
		resolver: resolver,
		display:  display,
		log:      log,
		maxX:     cfg.Grid.ScreenWidth() - cfg.Player.SpriteWidth,
	}
}

// Step moves the character laterally, then vertically according to its phase.
// The ascent is ballistic: no collision checks until the burst is spent.
// While falling, collisions are checked only on cell boundaries.
func (m *Motion) Step(c *Character, dir Direction, p *Progress) StepResult {
	m.moveLateral(c, dir)

	if c.Phase == Rising {
		c.Y -= m.cfg.Physics.RiseStep
		c.riseTick++
		if c.riseTick >= m.cfg.Physics.RiseTicks {
			c.Phase = Falling
			c.riseTick = 0
		}
		return StepResult{}
	}

	yNext := c.Y + m.cfg.Physics.FallStep
	if !m.resolver.Aligned(yNext) {
		c.Y = yNext
		return StepResult{}
	}

	cls := m.resolver.Classify(c.X, yNext)
	switch cls.Outcome {
	case OutOfBounds:
		return StepResult{Died: true}
	case Clear:
		c.Y = yNext
		return StepResult{}
	}

	// Landed: the character stays just above the boundary and bounces.
	c.Phase = Rising
	c.riseTick = 0
	res := StepResult{Landed: true, Landing: cls.Row}

	if cls.Row > p.Watermark {
		res.Points = m.cfg.Effects.PointsPerLine * (cls.Row - p.Watermark)
		p.Score += res.Points
		p.Watermark = cls.Row
	}

	if cls.Row-m.cfg.Grid.ReferenceLine >= 2 {
		res.Scrolled = m.rebase(c, p, cls.Row)
	}
	return res
}

// moveLateral applies the fixed lateral step, refusing moves that leave the screen.
func (m *Motion) moveLateral(c *Character, dir Direction) {
	x := c.X
	switch dir {
	case Left:
		x -= m.cfg.Physics.LateralStep
	case Right:
		x += m.cfg.Physics.LateralStep
	}
	if x >= 0 && x <= m.maxX {
		c.X = x
	}
	if c.X < 0 || c.X > m.maxX {
		panic(fmt.Sprintf("doodle: character x %d outside [0, %d]", c.X, m.maxX))
	}
}

// rebase scrolls the field so the landing row comes down to the reference
// line and moves the character down with it.
func (m *Motion) rebase(c *Character, p *Progress, landing int) int {
	diff := landing - m.cfg.Grid.ReferenceLine

	for row, col := range m.field.Visible() {
		m.display.ClearCell(col, row)
	}
	m.field.Scroll(diff)
	p.Watermark -= diff
	for row, col := range m.field.Visible() {
		m.display.DrawCell(col, row, true)
	}
	c.Y += m.cfg.Grid.CellHeight * diff

	m.log.Debug("field rebased", "landing", landing, "diff", diff, "watermark", p.Watermark)
	return diff
}
