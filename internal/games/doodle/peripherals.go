package doodle

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-doodle/internal/core"
)

// ErrNoInputDevice is returned when the session cannot find a keyboard at start.
var ErrNoInputDevice = errors.New("no input device attached")

// Direction is the lateral intent derived from the analog reading.
type Direction int

const (
	Hold Direction = iota
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Hold"
	}
}

// Input is what the session needs from the controls.
type Input interface {
	// SampleDirection reads the tilt sensor once. Non-blocking.
	SampleDirection() Direction
	// PollKey returns the next pending key press, if any. Non-blocking.
	PollKey() (core.Action, bool)
	// Ready reports whether a keyboard is attached. A non-nil error aborts the session.
	Ready() error
}

// Display is what the session needs from the screen.
// Rows and columns are grid coordinates of the visible window (row 0 at the
// bottom); x/y in MoveCharacter are pixels; x/y in DrawText are text cells.
type Display interface {
	DrawBackgroundGrid()
	DrawCell(col, row int, filled bool)
	ClearCell(col, row int)
	MoveCharacter(x, y int)
	SetCharacterVisible(visible bool)
	FlashCharacter(count int, interval time.Duration)
	DrawText(x, y int, text string)
	ClearOverlay()
	// TextColumns is the width of the text overlay, used to centre messages.
	TextColumns() int
}

// Logger receives debug events from the simulation.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
func (nopLogger) Info(any, ...any)  {}
