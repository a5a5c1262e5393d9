package systems

import (
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/pthm-cable/starfield/components"
)

// newRandomStars creates n randomized stars on an 800×600 plane.
func newRandomStars(tb testing.TB, n int, seed int64) *components.Stars {
	tb.Helper()
	s, err := components.NewStars(n, 4000, 800, 600)
	if err != nil {
		tb.Fatalf("NewStars(%d) failed: %v", n, err)
	}
	s.InitRange(0, n, rand.New(rand.NewSource(seed)))
	return s
}

// newPlacedStars creates stars at the given positions with zero velocity.
func newPlacedStars(tb testing.TB, pos [][2]float32) *components.Stars {
	tb.Helper()
	s, err := components.NewStars(len(pos), 4000, 800, 600)
	if err != nil {
		tb.Fatalf("NewStars(%d) failed: %v", len(pos), err)
	}
	rng := rand.New(rand.NewSource(1))
	for i, p := range pos {
		s.Init(i, rng)
		s.Place(i, p[0], p[1], 0, 0)
	}
	return s
}

func newDefaultGrid() *SpatialGrid {
	return NewSpatialGrid(800, 600, 64, 50)
}

func TestSpatialGridDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cell float32
		cols, rows int
	}{
		{"default plane", 800, 600, 64, 13, 10},
		{"exact fit", 640, 640, 64, 10, 10},
		{"smaller than a cell", 30, 20, 64, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewSpatialGrid(tc.w, tc.h, tc.cell, 50)
			if g.Cols() != tc.cols || g.Rows() != tc.rows {
				t.Errorf("grid = %dx%d, want %dx%d", g.Cols(), g.Rows(), tc.cols, tc.rows)
			}
			if g.NumCells() != tc.cols*tc.rows {
				t.Errorf("NumCells() = %d, want %d", g.NumCells(), tc.cols*tc.rows)
			}
		})
	}
}

func TestCellCoords(t *testing.T) {
	g := newDefaultGrid()

	tests := []struct {
		name     string
		x, y     float32
		col, row int
	}{
		{"origin", 0, 0, 0, 0},
		{"far corner", 799, 599, 12, 9},
		{"cell boundary", 64, 64, 1, 1},
		{"just below boundary", 63.9, 127.9, 0, 1},
		{"negative clamps", -5, -0.5, 0, 0},
		{"overshoot clamps", 900, 700, 12, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := g.CellCoords(tc.x, tc.y)
			if col != tc.col || row != tc.row {
				t.Errorf("CellCoords(%v, %v) = (%d, %d), want (%d, %d)",
					tc.x, tc.y, col, row, tc.col, tc.row)
			}
			if idx := g.CellIndex(tc.x, tc.y); idx != tc.row*g.Cols()+tc.col {
				t.Errorf("CellIndex = %d, want %d", idx, tc.row*g.Cols()+tc.col)
			}
		})
	}
}

// membership returns each cell's members as a sorted copy.
func membership(g *SpatialGrid) [][]int32 {
	out := make([][]int32, g.NumCells())
	for c := range out {
		out[c] = slices.Clone(g.Members(c))
		slices.Sort(out[c])
	}
	return out
}

func TestRebuildIdempotent(t *testing.T) {
	s := newRandomStars(t, 1000, 3)
	g := newDefaultGrid()

	g.Rebuild(s)
	first := membership(g)
	g.Rebuild(s)
	second := membership(g)

	total := 0
	for c := range first {
		if !slices.Equal(first[c], second[c]) {
			t.Fatalf("cell %d membership changed across rebuilds", c)
		}
		total += len(first[c])
	}
	if total != s.Len() {
		t.Errorf("binned %d stars, want %d", total, s.Len())
	}
}

func TestRebuildRecordsCell(t *testing.T) {
	s := newRandomStars(t, 500, 9)
	g := newDefaultGrid()
	g.Rebuild(s)

	for i := 0; i < s.Len(); i++ {
		want := g.CellIndex(s.X(i), s.Y(i))
		if int(s.Cell(i)) != want {
			t.Fatalf("star %d Cell = %d, want %d", i, s.Cell(i), want)
		}
		if !slices.Contains(g.Members(want), int32(i)) {
			t.Fatalf("star %d missing from cell %d", i, want)
		}
	}
}

func TestAssignConcurrentMatchesSerial(t *testing.T) {
	s := newRandomStars(t, 2000, 11)
	g := newDefaultGrid()
	g.Rebuild(s)
	serial := membership(g)

	g.Reset(0, g.NumCells())
	cols := s.Columns()
	const parts = 8
	chunk := (s.Len() + parts - 1) / parts
	var wg sync.WaitGroup
	for p := 0; p < parts; p++ {
		start := p * chunk
		end := min(start+chunk, s.Len())
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Assign(cols, start, end)
		}()
	}
	wg.Wait()

	parallel := membership(g)
	for c := range serial {
		if !slices.Equal(serial[c], parallel[c]) {
			t.Fatalf("cell %d: concurrent %v, serial %v", c, parallel[c], serial[c])
		}
	}
}

func TestCellOverflowDrops(t *testing.T) {
	pos := make([][2]float32, 10)
	for i := range pos {
		pos[i] = [2]float32{100 + float32(i), 100}
	}
	s := newPlacedStars(t, pos)
	g := NewSpatialGrid(800, 600, 64, 4)
	g.Rebuild(s)

	cell := g.CellIndex(100, 100)
	if n := len(g.Members(cell)); n != 4 {
		t.Errorf("Members len = %d, want 4", n)
	}
	if g.Dropped() != 6 {
		t.Errorf("Dropped() = %d, want 6", g.Dropped())
	}
	if g.Overflowed() != 1 {
		t.Errorf("Overflowed() = %d, want 1", g.Overflowed())
	}
	// Dropped stars still know their cell
	for i := 0; i < s.Len(); i++ {
		if int(s.Cell(i)) != cell {
			t.Errorf("star %d Cell = %d, want %d", i, s.Cell(i), cell)
		}
	}

	g.Reset(0, g.NumCells())
	if g.Dropped() != 0 || len(g.Members(cell)) != 0 {
		t.Error("Reset did not clear overflow state")
	}
}
