package doodle

import (
	"time"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
)

// Visual characters for rendering
const (
	FieldChar    = ' '
	GridChar     = '·'
	PlatformChar = '█'
)

// spriteArt is drawn when the sprite maps to exactly 4x4 characters.
var spriteArt = [4]string{
	"(°°)",
	"/██\\",
	" ██ ",
	" ╯╰ ",
}

// ScreenDisplay is a retained-mode Display that composes onto a core.Screen.
// The session issues drawing commands; Render paints the current picture.
type ScreenDisplay struct {
	grid   config.GridConfig
	render config.RenderConfig
	sprite config.PlayerConfig
	tick   time.Duration

	cells   []bool   // visible window, row-major, row 0 at the bottom
	overlay [][]rune // text layer, 0 means transparent

	charX, charY int
	visible      bool

	flashPhases    int // remaining visibility toggles
	flashPhaseLen  int // ticks per toggle
	flashCountdown int
}

// NewScreenDisplay creates a display sized from the config.
func NewScreenDisplay(cfg config.DoodleConfig) *ScreenDisplay {
	d := &ScreenDisplay{
		grid:   cfg.Grid,
		render: cfg.Render,
		sprite: cfg.Player,
		tick:   time.Duration(cfg.Physics.TickMS) * time.Millisecond,
		cells:  make([]bool, cfg.Grid.VisibleRows*cfg.Grid.Cols),
	}
	d.overlay = make([][]rune, d.Height())
	for y := range d.overlay {
		d.overlay[y] = make([]rune, d.Width())
	}
	return d
}

// Width returns the playfield width in characters.
func (d *ScreenDisplay) Width() int {
	return d.grid.Cols * d.render.CharsPerCell
}

// Height returns the playfield height in characters.
func (d *ScreenDisplay) Height() int {
	return d.grid.VisibleRows * d.render.LinesPerCell
}

// TextColumns implements Display.
func (d *ScreenDisplay) TextColumns() int {
	return d.Width()
}

// DrawBackgroundGrid resets every square to empty background.
func (d *ScreenDisplay) DrawBackgroundGrid() {
	clear(d.cells)
}

// DrawCell paints one visible square.
func (d *ScreenDisplay) DrawCell(col, row int, filled bool) {
	if i, ok := d.cellIndex(col, row); ok {
		d.cells[i] = filled
	}
}

// ClearCell restores one square to background, including its grid mark.
func (d *ScreenDisplay) ClearCell(col, row int) {
	d.DrawCell(col, row, false)
}

// MoveCharacter places the sprite at pixel coordinates.
func (d *ScreenDisplay) MoveCharacter(x, y int) {
	d.charX, d.charY = x, y
}

// SetCharacterVisible shows or hides the sprite and cancels any flash.
func (d *ScreenDisplay) SetCharacterVisible(visible bool) {
	d.visible = visible
	d.flashPhases = 0
}

// FlashCharacter blinks the sprite count times; each on and off lasts interval.
// The animation advances with Tick and leaves the sprite visible.
func (d *ScreenDisplay) FlashCharacter(count int, interval time.Duration) {
	if count <= 0 {
		return
	}
	d.flashPhaseLen = max(int(interval/d.tick), 1)
	d.flashPhases = count * 2
	d.flashCountdown = d.flashPhaseLen
	d.visible = false
}

// Flashing reports whether a flash animation is running.
func (d *ScreenDisplay) Flashing() bool {
	return d.flashPhases > 0
}

// Tick advances time-based effects by one simulation tick.
func (d *ScreenDisplay) Tick() {
	if d.flashPhases == 0 {
		return
	}
	d.flashCountdown--
	if d.flashCountdown > 0 {
		return
	}
	d.flashPhases--
	d.flashCountdown = d.flashPhaseLen
	// Odd phases remaining mean the sprite is in its "on" half.
	d.visible = d.flashPhases%2 == 1 || d.flashPhases == 0
}

// DrawText writes overlay text at text-cell coordinates. Text past the edge is clipped.
func (d *ScreenDisplay) DrawText(x, y int, text string) {
	if y < 0 || y >= len(d.overlay) {
		return
	}
	i := 0
	for _, r := range text {
		if cx := x + i; cx >= 0 && cx < len(d.overlay[y]) {
			d.overlay[y][cx] = r
		}
		i++
	}
}

// ClearOverlay removes all overlay text.
func (d *ScreenDisplay) ClearOverlay() {
	for y := range d.overlay {
		clear(d.overlay[y])
	}
}

// Render paints the playfield into dst with its top-left corner at (ox, oy).
func (d *ScreenDisplay) Render(dst *core.Screen, ox, oy int) {
	cw, lh := d.render.CharsPerCell, d.render.LinesPerCell

	for row := range d.grid.VisibleRows {
		top := oy + (d.grid.VisibleRows-1-row)*lh
		for col := range d.grid.Cols {
			left := ox + col*cw
			rect := core.NewRect(left, top, cw, lh)
			if d.cells[row*d.grid.Cols+col] {
				dst.DrawRect(rect, PlatformChar, core.ColorPlatform)
				continue
			}
			dst.DrawRect(rect, FieldChar, core.ColorField)
			dst.SetWithColor(left, top, GridChar, core.ColorGrid)
		}
	}

	if d.visible {
		d.renderSprite(dst, ox, oy)
	}

	for y, line := range d.overlay {
		for x, r := range line {
			if r != 0 {
				dst.SetWithColor(ox+x, oy+y, r, core.ColorOverlay)
			}
		}
	}
}

func (d *ScreenDisplay) renderSprite(dst *core.Screen, ox, oy int) {
	x0 := ox + d.charX*d.render.CharsPerCell/d.grid.CellWidth
	y0 := oy + d.charY*d.render.LinesPerCell/d.grid.CellHeight
	w := max(d.sprite.SpriteWidth*d.render.CharsPerCell/d.grid.CellWidth, 1)
	h := 2 * d.render.LinesPerCell

	color := core.ColorCharacter
	if d.Flashing() {
		color = core.ColorDanger
	}

	useArt := w == len([]rune(spriteArt[0])) && h == len(spriteArt)
	for dy := range h {
		var art []rune
		if useArt {
			art = []rune(spriteArt[dy])
		}
		for dx := range w {
			r := PlatformChar
			if art != nil {
				r = art[dx]
			}
			dst.SetWithColor(x0+dx, y0+dy, r, color)
		}
	}
}

func (d *ScreenDisplay) cellIndex(col, row int) (int, bool) {
	if row < 0 || row >= d.grid.VisibleRows || col < 0 || col >= d.grid.Cols {
		return 0, false
	}
	return row*d.grid.Cols + col, true
}
