package doodle

import (
	"testing"

	"github.com/vovakirdan/tui-doodle/internal/config"
)

func TestDirectionFromReading(t *testing.T) {
	tests := []struct {
		reading float64
		want    Direction
	}{
		{0, Left},
		{0.1, Left},
		{0.25, Hold},
		{0.5, Hold},
		{0.75, Hold},
		{0.9, Right},
		{1, Right},
	}

	for _, tt := range tests {
		if got := DirectionFromReading(tt.reading, 0.5, 0.3); got != tt.want {
			t.Errorf("DirectionFromReading(%v) = %v, want %v", tt.reading, got, tt.want)
		}
	}
}

func TestKeyTiltLatch(t *testing.T) {
	cfg := config.DefaultDoodleConfig().Input
	tilt := NewKeyTilt(cfg)

	if tilt.Direction() != Hold || tilt.Reading() != cfg.Midpoint {
		t.Fatalf("new tilt reads %v (%v), want centred", tilt.Direction(), tilt.Reading())
	}

	tilt.Press(Left)
	for i := 1; i < cfg.HoldTicks; i++ {
		tilt.Advance()
		if tilt.Direction() != Left {
			t.Fatalf("latch released after %d ticks, want %d", i, cfg.HoldTicks)
		}
	}
	tilt.Advance()
	if tilt.Direction() != Hold {
		t.Errorf("direction = %v after %d ticks, want hold", tilt.Direction(), cfg.HoldTicks)
	}

	tilt.Press(Right)
	tilt.Advance()
	tilt.Press(Right)
	for range cfg.HoldTicks - 1 {
		tilt.Advance()
	}
	if tilt.Direction() != Right {
		t.Error("repeated press did not refresh the latch")
	}

	tilt.Center()
	if tilt.Direction() != Hold {
		t.Errorf("direction = %v after Center, want hold", tilt.Direction())
	}
}
