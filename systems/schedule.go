package systems

// NumColorClasses is the number of cell classes the interaction pass is split
// into. Cells in one class have disjoint footprints and may run concurrently.
const NumColorClasses = 6

// CellColor returns the class of the cell at (col, row).
//
// A cell's footprint spans columns col-1..col+1 and rows row..row+1. Two
// cells of the same class are at least 3 columns or 2 rows apart, which keeps
// their footprints apart.
func CellColor(col, row int) int {
	return col%3 + 3*(row%2)
}

// ColorClasses partitions the grid's cells into NumColorClasses lists of
// flat cell indices, in row-major order within each class.
func ColorClasses(g *SpatialGrid) [][]int {
	classes := make([][]int, NumColorClasses)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := CellColor(col, row)
			classes[c] = append(classes[c], row*g.cols+col)
		}
	}
	return classes
}

// Footprint returns the flat indices of the cells whose stars ApplyCell may
// modify when run on cell.
func Footprint(g *SpatialGrid, cell int) []int {
	col := cell % g.cols
	row := cell / g.cols
	out := []int{cell}
	for _, off := range neighborOffsets {
		nc := col + off[0]
		nr := row + off[1]
		if nc < 0 || nc >= g.cols || nr >= g.rows {
			continue
		}
		out = append(out, nr*g.cols+nc)
	}
	return out
}
