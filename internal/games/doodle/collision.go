package doodle

import "github.com/vovakirdan/tui-doodle/internal/config"

// Outcome classifies where a falling character's next position leads.
type Outcome int

const (
	Clear Outcome = iota
	Landed
	OutOfBounds
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Landed:
		return "Landed"
	case OutOfBounds:
		return "OutOfBounds"
	default:
		return "Clear"
	}
}

// Classification is the result of a collision check.
// Row is the grid row of the character's top cell when it lands; the
// platform it stands on is two rows lower, in PlatformRow.
type Classification struct {
	Outcome     Outcome
	Row         int
	PlatformRow int
}

// Resolver converts pixel positions to grid cells and checks them against a field.
type Resolver struct {
	field *Field
	grid  config.GridConfig
}

// NewResolver creates a resolver bound to a field.
func NewResolver(field *Field, grid config.GridConfig) *Resolver {
	return &Resolver{field: field, grid: grid}
}

// Aligned reports whether y sits exactly on a cell boundary.
// Collisions are only possible there; between boundaries the character is mid-cell.
func (r *Resolver) Aligned(y int) bool {
	return y%r.grid.CellHeight == 0
}

// Cell converts a pixel position (top-left of the sprite) to the grid cell
// of the sprite's top half. Screen y grows downward, rows grow upward.
func (r *Resolver) Cell(x, y int) (row, col int) {
	col = x / r.grid.CellWidth
	row = (r.grid.VisibleRows - 1) - y/r.grid.CellHeight
	return row, col
}

// Classify decides what happens if the character moves to (x, yNext).
// The character is two cells tall, so the cells checked are two rows below
// its top cell. The lane to the right is checked as well because the sprite
// can straddle a lane boundary. Reaching row 1 means the character has
// dropped to the bottom of the window and the run is over.
func (r *Resolver) Classify(x, yNext int) Classification {
	row, col := r.Cell(x, yNext)
	if row <= 1 {
		return Classification{Outcome: OutOfBounds, Row: row}
	}

	below := row - 2
	hit := r.field.Occupied(below, col)
	if !hit && col+1 < r.field.Cols() {
		hit = r.field.Occupied(below, col+1)
	}
	if !hit {
		return Classification{Outcome: Clear, Row: row}
	}

	landing := r.grid.VisibleRows - (yNext+r.grid.CellHeight)/r.grid.CellHeight
	return Classification{Outcome: Landed, Row: landing, PlatformRow: landing - 2}
}
