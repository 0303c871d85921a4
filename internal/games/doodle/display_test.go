package doodle

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
)

func renderDisplay(d *ScreenDisplay) *core.Screen {
	scr := core.NewScreen(d.Width(), d.Height())
	d.Render(scr, 0, 0)
	return scr
}

func TestScreenDisplaySize(t *testing.T) {
	d := NewScreenDisplay(config.DefaultDoodleConfig())
	if d.Width() != 80 || d.Height() != 30 {
		t.Errorf("size = %dx%d, want 80x30", d.Width(), d.Height())
	}
	if d.TextColumns() != d.Width() {
		t.Errorf("TextColumns() = %d, want %d", d.TextColumns(), d.Width())
	}
}

func TestScreenDisplayCells(t *testing.T) {
	d := NewScreenDisplay(config.DefaultDoodleConfig())
	d.DrawBackgroundGrid()
	d.DrawCell(0, 0, true)
	d.DrawCell(19, 14, true)

	scr := renderDisplay(d)

	tests := []struct {
		x, y  int
		want  rune
		color core.Color
	}{
		{0, 28, PlatformChar, core.ColorPlatform},
		{3, 29, PlatformChar, core.ColorPlatform},
		{76, 0, PlatformChar, core.ColorPlatform},
		{4, 28, GridChar, core.ColorGrid},
		{5, 28, FieldChar, core.ColorField},
		{4, 29, FieldChar, core.ColorField},
	}
	for _, tt := range tests {
		got := scr.GetCell(tt.x, tt.y)
		if got.Rune != tt.want || got.Color != tt.color {
			t.Errorf("cell (%d, %d) = %q/%v, want %q/%v", tt.x, tt.y, got.Rune, got.Color, tt.want, tt.color)
		}
	}

	d.ClearCell(0, 0)
	if got := renderDisplay(d).Get(0, 28); got != GridChar {
		t.Errorf("cleared cell shows %q, want grid mark", got)
	}

	d.DrawCell(-1, 0, true)
	d.DrawCell(0, 15, true)
}

func TestScreenDisplaySpriteAndOverlay(t *testing.T) {
	d := NewScreenDisplay(config.DefaultDoodleConfig())
	d.MoveCharacter(320, 384)
	d.SetCharacterVisible(true)
	d.DrawText(1, 1, "SCORE:0")

	scr := renderDisplay(d)
	if got := scr.GetCell(40, 24); got.Rune != '(' || got.Color != core.ColorCharacter {
		t.Errorf("sprite corner = %q/%v, want '('/character", got.Rune, got.Color)
	}
	if got := scr.Get(41, 27); got != '╯' {
		t.Errorf("sprite feet = %q, want '╯'", got)
	}
	if got := scr.GetCell(1, 1); got.Rune != 'S' || got.Color != core.ColorOverlay {
		t.Errorf("overlay = %q/%v, want 'S'/overlay", got.Rune, got.Color)
	}

	d.SetCharacterVisible(false)
	d.ClearOverlay()
	scr = renderDisplay(d)
	if got := scr.Get(40, 24); got == '(' {
		t.Error("hidden sprite still rendered")
	}
	if got := scr.Get(1, 1); got == 'S' {
		t.Error("cleared overlay still rendered")
	}
}

func TestScreenDisplayFlash(t *testing.T) {
	d := NewScreenDisplay(config.DefaultDoodleConfig())
	d.MoveCharacter(320, 384)
	d.SetCharacterVisible(true)
	d.FlashCharacter(4, 100*time.Millisecond)

	if got := renderDisplay(d).Get(40, 24); got == '(' {
		t.Error("sprite drawn during the first off phase")
	}
	for range 10 {
		d.Tick()
	}
	if got := renderDisplay(d).GetCell(40, 24); got.Rune != '(' || got.Color != core.ColorDanger {
		t.Errorf("flashing sprite = %q/%v, want '('/danger", got.Rune, got.Color)
	}

	offPhases := 1 // the opening off phase checked above
	wasVisible := true
	for tick := 0; tick < 200 && d.Flashing(); tick++ {
		if !d.visible && wasVisible {
			offPhases++
		}
		wasVisible = d.visible
		d.Tick()
	}

	if d.Flashing() {
		t.Fatal("flash did not finish within 200 ticks")
	}
	if offPhases != 4 {
		t.Errorf("sprite blinked off %d times, want 4", offPhases)
	}
	if !d.visible {
		t.Error("sprite hidden after flash")
	}
}
