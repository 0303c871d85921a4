package replay

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/registry"
)

// Result is the outcome of a playback.
type Result struct {
	State core.GameState
	Ticks uint64
}

// Player re-simulates a recording against a fresh game instance.
type Player struct {
	game    registry.Game
	runtime core.RuntimeConfig
	frames  []core.InputFrame
	tick    uint64
}

// NewPlayer resets game with runtime and prepares to feed it frames.
// runtime.Seed must be the seed the recording started from.
func NewPlayer(game registry.Game, runtime core.RuntimeConfig, frames []core.InputFrame) *Player {
	game.Reset(runtime)
	return &Player{game: game, runtime: runtime, frames: frames}
}

// Done reports whether every frame has been applied.
func (p *Player) Done() bool {
	return p.tick >= uint64(len(p.frames))
}

// Step applies the next frame. It returns false once the recording is exhausted.
func (p *Player) Step() (core.StepResult, bool) {
	if p.Done() {
		return core.StepResult{State: p.game.State()}, false
	}
	res := p.game.Step(p.frames[p.tick])
	p.tick++
	return res, true
}

// Run plays the whole recording. With a positive tickRate the frames are
// paced in real time; otherwise they run as fast as possible.
// onTick, if set, observes every step.
func (p *Player) Run(ctx context.Context, tickRate int, onTick func(tick uint64, res core.StepResult)) (Result, error) {
	var tickC <-chan time.Time
	if tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(tickRate))
		defer ticker.Stop()
		tickC = ticker.C
	}

	for !p.Done() {
		if tickC != nil {
			select {
			case <-tickC:
			case <-ctx.Done():
				return p.result(), ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return p.result(), err
		}

		res, _ := p.Step()
		if onTick != nil {
			onTick(p.tick, res)
		}
		if res.Err != nil {
			return p.result(), res.Err
		}
	}
	return p.result(), nil
}

func (p *Player) result() Result {
	return Result{State: p.game.State(), Ticks: p.tick}
}

// Play runs a recording to completion without pacing.
func Play(game registry.Game, runtime core.RuntimeConfig, frames []core.InputFrame) (Result, error) {
	return NewPlayer(game, runtime, frames).Run(context.Background(), 0, nil)
}
