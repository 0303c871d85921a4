package doodle

import (
	"testing"
)

// rowY returns the pixel y of a character whose top cell is on row.
func rowY(row int) int {
	cfg := testConfig()
	return (cfg.Grid.VisibleRows - 1 - row) * cfg.Grid.CellHeight
}

func TestResolverCell(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(groundField(cfg), cfg.Grid)

	tests := []struct {
		x, y     int
		row, col int
	}{
		{0, 0, 14, 0},
		{320, 384, 2, 10},
		{608, 448, 0, 19},
		{33, 63, 13, 1},
	}

	for _, tt := range tests {
		row, col := r.Cell(tt.x, tt.y)
		if row != tt.row || col != tt.col {
			t.Errorf("Cell(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, row, col, tt.row, tt.col)
		}
	}
}

func TestResolverAligned(t *testing.T) {
	cfg := testConfig()
	r := NewResolver(groundField(cfg), cfg.Grid)

	for y, want := range map[int]bool{0: true, 2: false, 31: false, 32: true, 384: true} {
		if got := r.Aligned(y); got != want {
			t.Errorf("Aligned(%d) = %v, want %v", y, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	cfg := testConfig()
	f := groundField(cfg)
	f.placePlatform(3, 4)  // cols 4, 5
	f.placePlatform(5, 18) // cols 18, 19
	r := NewResolver(f, cfg.Grid)

	tests := []struct {
		name    string
		x, y    int
		outcome Outcome
		row     int
	}{
		{"bottom row", 128, rowY(1), OutOfBounds, 1},
		{"below bottom", 128, rowY(0), OutOfBounds, 0},
		{"ground", 320, rowY(2), Landed, 2},
		{"on platform", 128, rowY(5), Landed, 5},
		{"straddling left lane", 96, rowY(5), Landed, 5},
		{"beside platform", 64, rowY(5), Clear, 5},
		{"above platform", 128, rowY(6), Clear, 6},
		{"right edge", 608, rowY(7), Landed, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Classify(tt.x, tt.y)
			if got.Outcome != tt.outcome {
				t.Fatalf("Classify(%d, %d) = %v, want %v", tt.x, tt.y, got.Outcome, tt.outcome)
			}
			if got.Row != tt.row {
				t.Errorf("Row = %d, want %d", got.Row, tt.row)
			}
			if got.Outcome == Landed && got.PlatformRow != tt.row-2 {
				t.Errorf("PlatformRow = %d, want %d", got.PlatformRow, tt.row-2)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	cfg := testConfig()
	f := groundField(cfg)
	f.placePlatform(3, 4)
	r := NewResolver(f, cfg.Grid)

	first := r.Classify(128, rowY(5))
	for range 10 {
		if got := r.Classify(128, rowY(5)); got != first {
			t.Fatalf("Classify changed between calls: %+v vs %+v", got, first)
		}
	}
}
