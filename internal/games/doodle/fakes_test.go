package doodle

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
)

// testConfig returns the default config with all spawn probabilities zeroed,
// so fields hold only the ground row unless a test places platforms.
func testConfig() config.DoodleConfig {
	cfg := config.DefaultDoodleConfig()
	cfg.Spawn = config.SpawnConfig{}
	return cfg
}

func groundField(cfg config.DoodleConfig) *Field {
	f := NewField(cfg.Grid, cfg.Spawn, rand.New(rand.NewSource(1)))
	f.Initialize(0)
	return f
}

type fakeInput struct {
	dir      Direction
	keys     []core.Action
	readyErr error
}

func (in *fakeInput) push(keys ...core.Action) {
	in.keys = append(in.keys, keys...)
}

func (in *fakeInput) SampleDirection() Direction { return in.dir }

func (in *fakeInput) PollKey() (core.Action, bool) {
	if len(in.keys) == 0 {
		return core.ActionNone, false
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k, true
}

func (in *fakeInput) Ready() error { return in.readyErr }

type textCall struct {
	x, y int
	text string
}

type flashCall struct {
	count    int
	interval time.Duration
}

type fakeDisplay struct {
	cells   map[[2]int]bool
	texts   []textCall
	cleared int
	drawn   int
	x, y    int
	visible bool
	flashes []flashCall
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{cells: make(map[[2]int]bool)}
}

func (d *fakeDisplay) DrawBackgroundGrid() { clear(d.cells) }

func (d *fakeDisplay) DrawCell(col, row int, filled bool) {
	d.cells[[2]int{col, row}] = filled
	d.drawn++
}

func (d *fakeDisplay) ClearCell(col, row int) {
	delete(d.cells, [2]int{col, row})
	d.cleared++
}

func (d *fakeDisplay) MoveCharacter(x, y int)           { d.x, d.y = x, y }
func (d *fakeDisplay) SetCharacterVisible(visible bool) { d.visible = visible }

func (d *fakeDisplay) FlashCharacter(count int, interval time.Duration) {
	d.flashes = append(d.flashes, flashCall{count, interval})
}

func (d *fakeDisplay) DrawText(x, y int, text string) {
	d.texts = append(d.texts, textCall{x, y, text})
}

func (d *fakeDisplay) ClearOverlay()    { d.texts = d.texts[:0] }
func (d *fakeDisplay) TextColumns() int { return 80 }

func (d *fakeDisplay) hasText(text string) bool {
	for _, c := range d.texts {
		if c.text == text {
			return true
		}
	}
	return false
}

func (d *fakeDisplay) lastText() textCall {
	if len(d.texts) == 0 {
		return textCall{}
	}
	return d.texts[len(d.texts)-1]
}
