package core

import "strings"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left, A - tilt left
	ActionRight          // Right, D - tilt right
	ActionStart          // R, Enter - leave the title screen
	ActionPause          // P, Esc - freeze the session
	ActionResume         // U - leave the pause overlay
	ActionRestart        // Y - play again after game over
	ActionQuit           // Q, Ctrl+C - exit
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one simulation tick.
// It is stored as a bitmask so frames can be recorded and replayed cheaply.
type InputFrame struct {
	mask uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameFromMask rebuilds a frame from a recorded mask.
// Bits that do not correspond to a known action are dropped.
func FrameFromMask(mask uint16) InputFrame {
	return InputFrame{mask: mask & (1<<actionCount - 1) &^ 1}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.mask |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.mask&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.mask == 0
}

// Mask returns the raw bitmask for recording.
func (f InputFrame) Mask() uint16 {
	return f.mask
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.mask = 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String renders the frame as "Left+Pause" for logs.
func (f InputFrame) String() string {
	actions := f.Actions()
	if len(actions) == 0 {
		return "None"
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, "+")
}
