package replay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/games/doodle"
	"github.com/vovakirdan/tui-doodle/internal/replay"
)

func scriptedFrames(n int) []core.InputFrame {
	frames := make([]core.InputFrame, n)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		switch {
		case i == 0:
			frames[i].Set(core.ActionStart)
		case i%90 < 10:
			frames[i].Set(core.ActionLeft)
		case i%90 > 60:
			frames[i].Set(core.ActionRight)
		}
	}
	return frames
}

func TestPlayReproducesRecording(t *testing.T) {
	doodle.SetConfig(config.DefaultDoodleConfig())
	runtime := core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 100, Seed: 31337}

	live := doodle.New()
	live.Reset(runtime)
	rec := replay.NewRecorder(live.Seed())
	for _, in := range scriptedFrames(2000) {
		rec.Record(in)
		live.Step(in)
	}

	frames, err := replay.Decode(rec.Encode())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	replayed := doodle.New()
	res, err := replay.Play(replayed, core.RuntimeConfig{Seed: rec.Seed()}, frames)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if res.Ticks != 2000 {
		t.Errorf("Ticks = %d, want 2000", res.Ticks)
	}
	if res.State != live.State() {
		t.Errorf("state = %+v, want %+v", res.State, live.State())
	}
	if replayed.Snapshot() != live.Snapshot() {
		t.Errorf("snapshot = %+v, want %+v", replayed.Snapshot(), live.Snapshot())
	}
}

func TestPlayerStep(t *testing.T) {
	doodle.SetConfig(config.DefaultDoodleConfig())
	p := replay.NewPlayer(doodle.New(), core.RuntimeConfig{Seed: 5}, scriptedFrames(3))

	for i := range 3 {
		if _, ok := p.Step(); !ok {
			t.Fatalf("Step() %d reported exhausted", i)
		}
	}
	if !p.Done() {
		t.Error("Done() = false after every frame")
	}
	if _, ok := p.Step(); ok {
		t.Error("Step() past the end reported progress")
	}
}

func TestPlayerRunCancelled(t *testing.T) {
	doodle.SetConfig(config.DefaultDoodleConfig())
	p := replay.NewPlayer(doodle.New(), core.RuntimeConfig{Seed: 5}, scriptedFrames(100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, 0, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() err = %v, want context.Canceled", err)
	}
	if res.Ticks != 0 {
		t.Errorf("Ticks = %d after cancelled run, want 0", res.Ticks)
	}
}

func TestPlayerRunObservesTicks(t *testing.T) {
	doodle.SetConfig(config.DefaultDoodleConfig())
	p := replay.NewPlayer(doodle.New(), core.RuntimeConfig{Seed: 5}, scriptedFrames(20))

	var seen []uint64
	res, err := p.Run(context.Background(), 1000, func(tick uint64, _ core.StepResult) {
		seen = append(seen, tick)
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(seen) != 20 || seen[0] != 1 || seen[19] != 20 || res.Ticks != 20 {
		t.Errorf("observed ticks %v, result %d", seen, res.Ticks)
	}
}
