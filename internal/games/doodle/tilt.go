package doodle

import "github.com/vovakirdan/tui-doodle/internal/config"

// DirectionFromReading applies the dead-zone rule to a normalized reading.
// A reading left of the midpoint by more than the dead zone means Left.
func DirectionFromReading(reading, midpoint, deadZone float64) Direction {
	diff := midpoint - reading
	switch {
	case diff > deadZone:
		return Left
	case diff < -deadZone:
		return Right
	default:
		return Hold
	}
}

// KeyTilt turns discrete key presses into an analog tilt reading.
// Terminals report key presses but not releases, so a press latches the
// reading at the extreme for a number of ticks before it relaxes back to
// the midpoint. Key repeat keeps refreshing the latch while a key is held.
type KeyTilt struct {
	cfg       config.InputConfig
	reading   float64
	remaining int
}

// NewKeyTilt creates a centred tilt sensor.
func NewKeyTilt(cfg config.InputConfig) *KeyTilt {
	return &KeyTilt{cfg: cfg, reading: cfg.Midpoint}
}

// Press latches the reading toward the given direction.
func (t *KeyTilt) Press(d Direction) {
	switch d {
	case Left:
		t.reading = 0
	case Right:
		t.reading = 1
	default:
		t.Center()
		return
	}
	t.remaining = max(t.cfg.HoldTicks, 1)
}

// Advance ages the latch by one tick.
func (t *KeyTilt) Advance() {
	if t.remaining == 0 {
		return
	}
	t.remaining--
	if t.remaining == 0 {
		t.reading = t.cfg.Midpoint
	}
}

// Center drops any latch.
func (t *KeyTilt) Center() {
	t.reading = t.cfg.Midpoint
	t.remaining = 0
}

// Reading returns the current normalized value in [0, 1].
func (t *KeyTilt) Reading() float64 {
	return t.reading
}

// Direction samples the reading through the configured dead zone.
func (t *KeyTilt) Direction() Direction {
	return DirectionFromReading(t.reading, t.cfg.Midpoint, t.cfg.DeadZone)
}
