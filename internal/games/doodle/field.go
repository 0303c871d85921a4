package doodle

import (
	"fmt"
	"iter"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-doodle/internal/config"
)

// PlatformWidth is the number of adjacent cells every generated platform covers.
const PlatformWidth = 2

// Field is the scrolling grid of platform segments.
//
// Row 0 is the bottom of the current window and rows grow upward. The buffer
// holds twice the visible rows so platforms exist one screen ahead of the
// camera. Scrolling moves whole rows, which keeps regeneration proportional
// to the number of rows shifted.
type Field struct {
	rows        int
	cols        int
	visibleRows int
	cells       []bool // row-major, rows*cols
	spawn       config.SpawnConfig
	rng         *rand.Rand
}

// NewField creates an empty field sized from the grid config.
func NewField(grid config.GridConfig, spawn config.SpawnConfig, rng *rand.Rand) *Field {
	return &Field{
		rows:        grid.Rows(),
		cols:        grid.Cols,
		visibleRows: grid.VisibleRows,
		cells:       make([]bool, grid.Rows()*grid.Cols),
		spawn:       spawn,
		rng:         rng,
	}
}

// Rows returns the buffer depth.
func (f *Field) Rows() int { return f.rows }

// Cols returns the number of lanes.
func (f *Field) Cols() int { return f.cols }

// VisibleRows returns the height of the displayed window.
func (f *Field) VisibleRows() int { return f.visibleRows }

// Initialize clears the field, lays the full-width ground on row 0 and
// generates the remaining rows. The first platform above the ground never
// covers startCol, so the opening jump cannot be blocked from below.
func (f *Field) Initialize(startCol int) {
	clear(f.cells)

	for col := range f.cols {
		f.set(0, col)
	}

	if f.roll(f.spawn.FirstProbability) {
		if lane, ok := f.laneAvoiding(startCol); ok {
			f.placePlatform(1, lane)
		}
	}

	for row := 2; row < f.rows; row++ {
		if f.roll(f.spawn.InitialProbability) {
			f.placePlatform(row, f.randomLane())
		}
	}
}

// Scroll discards the bottom by rows, shifts the rest down and regenerates
// the freed rows at the top. by must be in [1, Rows()].
func (f *Field) Scroll(by int) {
	if by < 1 || by > f.rows {
		panic(fmt.Sprintf("doodle: scroll by %d outside [1, %d]", by, f.rows))
	}

	copy(f.cells, f.cells[by*f.cols:])
	freed := f.rows - by
	clear(f.cells[freed*f.cols:])

	for row := freed; row < f.rows; row++ {
		if f.roll(f.spawn.ScrollProbability) {
			f.placePlatform(row, f.randomLane())
		}
	}
}

// Occupied reports whether a platform segment is at (row, col).
// Out-of-range coordinates are a programming error and panic.
func (f *Field) Occupied(row, col int) bool {
	return f.cells[f.index(row, col)]
}

// Visible yields the (row, col) of every platform segment in the displayed window.
func (f *Field) Visible() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row := range f.visibleRows {
			for col := range f.cols {
				if f.cells[row*f.cols+col] && !yield(row, col) {
					return
				}
			}
		}
	}
}

// Row returns a copy of one row's occupancy.
func (f *Field) Row(row int) []bool {
	start := f.index(row, 0)
	out := make([]bool, f.cols)
	copy(out, f.cells[start:start+f.cols])
	return out
}

// String dumps the whole buffer, bottom row first, one line per row.
func (f *Field) String() string {
	var sb strings.Builder
	sb.Grow(f.rows * (f.cols + 1))
	for row := range f.rows {
		for col := range f.cols {
			if f.cells[row*f.cols+col] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Field) index(row, col int) int {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		panic(fmt.Sprintf("doodle: field cell (%d, %d) outside %dx%d", row, col, f.rows, f.cols))
	}
	return row*f.cols + col
}

func (f *Field) set(row, col int) {
	f.cells[f.index(row, col)] = true
}

func (f *Field) placePlatform(row, lane int) {
	for dx := range PlatformWidth {
		f.set(row, lane+dx)
	}
}

func (f *Field) roll(p float64) bool {
	return f.rng.Float64() < p
}

// randomLane picks the left lane of a platform uniformly from [0, cols-2].
func (f *Field) randomLane() int {
	return f.rng.Intn(f.cols - PlatformWidth + 1)
}

// laneAvoiding picks a random lane whose platform does not cover col.
func (f *Field) laneAvoiding(col int) (int, bool) {
	lanes := make([]int, 0, f.cols)
	for lane := 0; lane <= f.cols-PlatformWidth; lane++ {
		if col >= lane && col < lane+PlatformWidth {
			continue
		}
		lanes = append(lanes, lane)
	}
	if len(lanes) == 0 {
		return 0, false
	}
	return lanes[f.rng.Intn(len(lanes))], true
}
