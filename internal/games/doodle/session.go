package doodle

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
)

// State is the session's position in the title -> play -> game-over cycle.
type State int

const (
	StateTitle State = iota
	StateAwaitingStart
	StatePlaying
	StatePaused
	StateGameOver
	StateAborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateAwaitingStart:
		return "awaiting_start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Overlay text, positioned on the text grid.
const (
	scoreLabel = "SCORE:"
	scoreX     = 1
	scoreY     = 1
)

var (
	titleLines = []overlayLine{
		{4, "DOODLE JUMP"},
		{5, "TERMINAL EDITION"},
		{7, "PRESS [R] TO START!"},
		{8, "PAUSE: [P] UNPAUSE: [U]"},
	}
	pauseLines = []overlayLine{
		{4, "PAUSED"},
		{5, "[U] TO UNPAUSE"},
	}
	gameOverLines = []overlayLine{
		{4, "GAME OVER"},
		{5, "[Y] TO PLAY AGAIN"},
		{7, "FINAL SCORE:"},
	}
)

type overlayLine struct {
	row  int
	text string
}

// Session sequences one play session and owns all mutable game state.
// It is stepped once per tick; nothing in it blocks, including pause.
type Session struct {
	cfg     config.DoodleConfig
	input   Input
	display Display
	log     Logger

	seed     int64
	rng      *rand.Rand
	field    *Field
	resolver *Resolver
	motion   *Motion

	state    State
	resumeTo Phase
	char     Character
	progress Progress
	ticks    uint64 // ticks spent playing in this round
	err      error
	rounds   int // completed restarts, for logs
}

// NewSession creates a session and initializes it with the seed.
// A nil logger discards debug output.
func NewSession(cfg config.DoodleConfig, seed int64, input Input, display Display, log Logger) *Session {
	if log == nil {
		log = nopLogger{}
	}
	s := &Session{
		cfg:     cfg,
		input:   input,
		display: display,
		log:     log,
	}
	s.reset(seed)
	return s
}

// reset rebuilds the field and character from scratch and shows the title.
func (s *Session) reset(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.field = NewField(s.cfg.Grid, s.cfg.Spawn, s.rng)
	s.resolver = NewResolver(s.field, s.cfg.Grid)
	s.motion = NewMotion(s.cfg, s.field, s.resolver, s.display, s.log)

	s.char = s.startCharacter()
	s.progress = Progress{Score: 0, Watermark: s.cfg.Player.Watermark}
	s.state = StateTitle
	s.resumeTo = Rising
	s.ticks = 0
	s.err = nil

	s.display.DrawBackgroundGrid()
	_, startCol := s.resolver.Cell(s.char.X, s.char.Y)
	s.field.Initialize(startCol)
	for row, col := range s.field.Visible() {
		s.display.DrawCell(col, row, true)
	}

	s.display.MoveCharacter(s.char.X, s.char.Y)
	s.display.SetCharacterVisible(true)
	s.display.ClearOverlay()
	s.drawLines(titleLines)

	s.log.Debug("session initialized", "seed", seed, "field", "\n"+s.field.String())
}

// startCharacter places the sprite with its top cell on the start row.
func (s *Session) startCharacter() Character {
	g := s.cfg.Grid
	x := s.cfg.Player.StartX
	if x < 0 {
		x = (g.ScreenWidth() - s.cfg.Player.SpriteWidth) / 2
	}
	y := (g.VisibleRows - 1 - s.cfg.Player.StartRow) * g.CellHeight
	return Character{X: x, Y: y, Phase: Rising}
}

// Tick advances the session by one step. It returns an error only when the
// session aborted because no input device is attached.
func (s *Session) Tick() error {
	switch s.state {
	case StateTitle:
		if key, ok := s.input.PollKey(); ok && key == core.ActionStart {
			s.transition(StateAwaitingStart)
		}

	case StateAwaitingStart:
		if err := s.input.Ready(); err != nil {
			s.err = fmt.Errorf("doodle: cannot start session: %w", err)
			s.transition(StateAborted)
			return s.err
		}
		s.display.ClearOverlay()
		s.progress.Score = 0
		s.drawScore()
		s.transition(StatePlaying)

	case StatePlaying:
		if key, ok := s.input.PollKey(); ok && key == core.ActionPause {
			s.resumeTo = s.char.Phase
			s.drawLines(pauseLines)
			s.transition(StatePaused)
			return nil
		}
		s.play()

	case StatePaused:
		if key, ok := s.input.PollKey(); ok && (key == core.ActionResume || key == core.ActionPause) {
			s.display.ClearOverlay()
			s.char.Phase = s.resumeTo
			s.drawScore()
			s.transition(StatePlaying)
		}

	case StateGameOver:
		if key, ok := s.input.PollKey(); ok && key == core.ActionRestart {
			s.rounds++
			s.reset(s.rng.Int63())
			s.log.Info("session restarted", "round", s.rounds, "seed", s.seed)
		}

	case StateAborted:
		return s.err
	}
	return nil
}

// play runs one tick of motion and scoring.
func (s *Session) play() {
	res := s.motion.Step(&s.char, s.input.SampleDirection(), &s.progress)
	s.ticks++

	if res.Died {
		s.enterGameOver()
		return
	}
	if res.Points > 0 {
		s.log.Debug("new height", "row", res.Landing, "points", res.Points, "score", s.progress.Score)
	}

	s.display.MoveCharacter(s.char.X, s.char.Y)
	s.drawScore()
}

func (s *Session) enterGameOver() {
	s.display.FlashCharacter(s.cfg.Effects.FlashCount, time.Duration(s.cfg.Effects.FlashIntervalMS)*time.Millisecond)
	s.display.ClearOverlay()
	s.drawLines(gameOverLines)
	digits := strconv.Itoa(s.progress.Score)
	s.display.DrawText(s.centerX(digits), 8, digits)
	s.transition(StateGameOver)
	s.log.Info("game over", "score", s.progress.Score, "ticks", s.ticks)
}

func (s *Session) transition(to State) {
	s.log.Debug("session state", "from", s.state, "to", to)
	s.state = to
}

func (s *Session) drawScore() {
	s.display.DrawText(scoreX, scoreY, scoreLabel+strconv.Itoa(s.progress.Score))
}

func (s *Session) drawLines(lines []overlayLine) {
	for _, l := range lines {
		s.display.DrawText(s.centerX(l.text), l.row, l.text)
	}
}

func (s *Session) centerX(text string) int {
	return max(s.display.TextColumns()/2-len(text)/2, 0)
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Phase returns the character's vertical phase.
func (s *Session) Phase() Phase { return s.char.Phase }

// Score returns the score of the current round.
func (s *Session) Score() int { return s.progress.Score }

// Seed returns the seed the current round was initialized with.
func (s *Session) Seed() int64 { return s.seed }

// Err returns the abort error, if any.
func (s *Session) Err() error { return s.err }

// Field exposes the platform field for rendering and tests.
func (s *Session) Field() *Field { return s.field }

// Snapshot captures the session for determinism checks and replay verification.
type Snapshot struct {
	State     State
	Phase     Phase
	X, Y      int
	Score     int
	Watermark int
	Ticks     uint64
	Seed      int64
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:     s.state,
		Phase:     s.char.Phase,
		X:         s.char.X,
		Y:         s.char.Y,
		Score:     s.progress.Score,
		Watermark: s.progress.Watermark,
		Ticks:     s.ticks,
		Seed:      s.seed,
	}
}
