// Package systems provides the per-frame simulation systems: the spatial grid,
// physics integration, the pairwise interaction pass and frame phase metadata.
package systems

import (
	"sync/atomic"

	"github.com/pthm-cable/starfield/components"
)

// gridCell holds the indices of stars resident in one cell this frame.
// count may exceed len(indices); the excess was dropped on overflow.
type gridCell struct {
	indices []int32
	count   atomic.Int32
}

// SpatialGrid is a uniform partition of the plane used to bound neighbor
// search. Membership is rebuilt every frame; cell storage is allocated once.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	capacity int
	cells    []gridCell // flat grid, row-major
}

// NewSpatialGrid creates a spatial grid covering the given plane size.
// Each cell holds at most cellCapacity stars per frame.
func NewSpatialGrid(width, height, cellSize float32, cellCapacity int) *SpatialGrid {
	cols := ceilDiv(width, cellSize)
	rows := ceilDiv(height, cellSize)
	if cellCapacity < 1 {
		cellCapacity = 1
	}

	cells := make([]gridCell, cols*rows)
	for i := range cells {
		cells[i].indices = make([]int32, cellCapacity)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		capacity: cellCapacity,
		cells:    cells,
	}
}

func ceilDiv(extent, size float32) int {
	n := int(extent / size)
	if float32(n)*size < extent {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Reset clears cells [c0, c1). Disjoint ranges may be reset concurrently.
func (g *SpatialGrid) Reset(c0, c1 int) {
	for i := c0; i < c1; i++ {
		g.cells[i].count.Store(0)
	}
}

// Assign bins stars [i0, i1) into their cells and records each star's cell.
// Slots are reserved with an atomic add, so concurrent calls on disjoint
// star ranges neither lose nor duplicate an index. Stars arriving after a
// cell is full are left out of that cell's list for this frame.
func (g *SpatialGrid) Assign(cols components.Columns, i0, i1 int) {
	for i := i0; i < i1; i++ {
		idx := g.CellIndex(cols.X[i], cols.Y[i])
		cols.Cell[i] = int32(idx)

		cell := &g.cells[idx]
		slot := int(cell.count.Add(1)) - 1
		if slot < g.capacity {
			cell.indices[slot] = int32(i)
		}
	}
}

// Rebuild clears the grid and bins every live star on the calling goroutine.
func (g *SpatialGrid) Rebuild(stars *components.Stars) {
	g.Reset(0, len(g.cells))
	g.Assign(stars.Columns(), 0, stars.Len())
}

// Members returns the star indices binned into cell this frame.
// The slice aliases grid storage and is valid until the next Reset.
func (g *SpatialGrid) Members(cell int) []int32 {
	c := &g.cells[cell]
	n := int(c.count.Load())
	if n > g.capacity {
		n = g.capacity
	}
	return c.indices[:n]
}

// Dropped returns how many stars overflowed their cell since the last reset.
func (g *SpatialGrid) Dropped() int {
	dropped := 0
	for i := range g.cells {
		if n := int(g.cells[i].count.Load()); n > g.capacity {
			dropped += n - g.capacity
		}
	}
	return dropped
}

// Overflowed returns how many cells received more stars than they hold.
func (g *SpatialGrid) Overflowed() int {
	cells := 0
	for i := range g.cells {
		if int(g.cells[i].count.Load()) > g.capacity {
			cells++
		}
	}
	return cells
}

// CellCoords returns the column and row for a plane position, clamped to the
// grid so positions overshooting the plane still map to an edge cell.
func (g *SpatialGrid) CellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 || x < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 || y < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

// CellIndex returns the flat index for a plane position.
func (g *SpatialGrid) CellIndex(x, y float32) int {
	col, row := g.CellCoords(x, y)
	return row*g.cols + col
}

// Cols returns the number of grid columns.
func (g *SpatialGrid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *SpatialGrid) Rows() int { return g.rows }

// NumCells returns cols × rows.
func (g *SpatialGrid) NumCells() int { return len(g.cells) }

// CellSize returns the edge length of a cell.
func (g *SpatialGrid) CellSize() float32 { return g.cellSize }

// CellCapacity returns the per-cell index limit.
func (g *SpatialGrid) CellCapacity() int { return g.capacity }
