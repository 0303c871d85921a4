// Package replay records the input frames of a round and re-simulates
// them. A round is fully determined by its seed, its config and its
// frames, so a recording is small enough to keep in the replay store.
package replay

import (
	"github.com/vovakirdan/tui-doodle/internal/core"
)

// Recorder accumulates the input frames of one round.
type Recorder struct {
	seed  int64
	masks []uint16
}

// NewRecorder starts a recording for a round initialized with seed.
func NewRecorder(seed int64) *Recorder {
	return &Recorder{seed: seed}
}

// Record appends the frame applied on the next tick.
func (r *Recorder) Record(in core.InputFrame) {
	r.masks = append(r.masks, in.Mask())
}

// Seed returns the seed the round started from.
func (r *Recorder) Seed() int64 {
	return r.seed
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.masks)
}

// Frames returns the recorded frames in order.
func (r *Recorder) Frames() []core.InputFrame {
	frames := make([]core.InputFrame, len(r.masks))
	for i, m := range r.masks {
		frames[i] = core.FrameFromMask(m)
	}
	return frames
}

// Encode returns the run-length encoded recording.
func (r *Recorder) Encode() string {
	return encodeMasks(r.masks)
}
