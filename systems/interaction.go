package systems

import (
	"math"

	"github.com/pthm-cable/starfield/components"
)

// InteractionParams configures the short-range pairwise force.
type InteractionParams struct {
	Radius    float32 // Pairs at or beyond this distance are ignored
	Strength  float32 // Force scale; magnitude per pair is Strength/d
	MinDistSq float32 // Pairs at or below this squared distance are skipped
}

// PairFunc observes each pair the interaction pass applies a force to.
type PairFunc func(a, b int32)

// neighborOffsets is the forward half of the 8-neighbourhood, as (dcol, drow).
// With the same-cell i<j loop it reaches every unordered pair of stars in the
// same or adjacent cells exactly once.
var neighborOffsets = [4][2]int{
	{1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
}

// Interaction applies the pairwise force cell by cell.
type Interaction struct {
	params   InteractionParams
	radiusSq float32
}

// NewInteraction creates an interaction pass with the given parameters.
func NewInteraction(p InteractionParams) *Interaction {
	return &Interaction{
		params:   p,
		radiusSq: p.Radius * p.Radius,
	}
}

// Params returns the interaction parameters.
func (in *Interaction) Params() InteractionParams { return in.params }

// ApplyCell processes the pairs owned by one cell: pairs within the cell and
// pairs between the cell and its forward neighbours. It mutates the velocity
// of stars in the cell's 3×2 footprint only. It returns the number of pairs
// that received a force; onPair, if set, is called for each of them.
func (in *Interaction) ApplyCell(cols components.Columns, grid *SpatialGrid, cell int, onPair PairFunc) int {
	members := grid.Members(cell)
	if len(members) == 0 {
		return 0
	}

	pairs := 0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if in.applyPair(cols, members[i], members[j]) {
				pairs++
				if onPair != nil {
					onPair(members[i], members[j])
				}
			}
		}
	}

	col := cell % grid.cols
	row := cell / grid.cols
	for _, off := range neighborOffsets {
		nc := col + off[0]
		nr := row + off[1]
		if nc < 0 || nc >= grid.cols || nr >= grid.rows {
			continue
		}
		others := grid.Members(nr*grid.cols + nc)
		for _, a := range members {
			for _, b := range others {
				if in.applyPair(cols, a, b) {
					pairs++
					if onPair != nil {
						onPair(a, b)
					}
				}
			}
		}
	}
	return pairs
}

// applyPair applies equal and opposite velocity changes to a and b if they
// are inside the interaction radius.
func (in *Interaction) applyPair(cols components.Columns, a, b int32) bool {
	dx := cols.X[a] - cols.X[b]
	dy := cols.Y[a] - cols.Y[b]
	distSq := dx*dx + dy*dy
	if distSq <= in.params.MinDistSq || distSq >= in.radiusSq {
		return false
	}

	f := in.params.Strength / float32(math.Sqrt(float64(distSq)))
	fx := dx * f
	fy := dy * f
	cols.VX[a] += fx
	cols.VY[a] += fy
	cols.VX[b] -= fx
	cols.VY[b] -= fy
	return true
}
