package systems

import (
	"math"

	"github.com/pthm-cable/starfield/components"
	"gonum.org/v1/gonum/blas/blas32"
)

const twoPi = 2 * math.Pi

// PhysicsParams holds the per-frame motion constants.
type PhysicsParams struct {
	Width             float32
	Height            float32
	Damping           float32 // Speed retained on wall rebound
	CentralAttraction float32 // Velocity added per frame toward the plane centre
}

// Integrate advances stars [i0, i1) by one frame: position step, wall
// reflection, phase advance and central attraction. A star touching its
// margin (position within size of a wall, inclusive) rebounds that frame. Each star depends only on
// its own attributes, so any partition of the index range gives the same
// result bit for bit.
func Integrate(cols components.Columns, i0, i1 int, p PhysicsParams) {
	n := i1 - i0
	if n <= 0 {
		return
	}

	// x += 1*vx, y += 1*vy over the whole range
	blas32.Axpy(1, vec(cols.VX[i0:i1]), vec(cols.X[i0:i1]))
	blas32.Axpy(1, vec(cols.VY[i0:i1]), vec(cols.Y[i0:i1]))

	cx := p.Width * 0.5
	cy := p.Height * 0.5

	x := cols.X[i0:i1]
	y := cols.Y[i0:i1]
	vx := cols.VX[i0:i1]
	vy := cols.VY[i0:i1]
	size := cols.Size[i0:i1]
	phase := cols.Phase[i0:i1]
	pulse := cols.PulseSpeed[i0:i1]

	for k := 0; k < n; k++ {
		r := size[k]

		if x[k] <= r || x[k] >= p.Width-r {
			vx[k] = -vx[k] * p.Damping
			x[k] = clamp(x[k], r, p.Width-r)
		}
		if y[k] <= r || y[k] >= p.Height-r {
			vy[k] = -vy[k] * p.Damping
			y[k] = clamp(y[k], r, p.Height-r)
		}

		phase[k] += pulse[k]
		if phase[k] > twoPi {
			phase[k] -= twoPi
		}

		dx := cx - x[k]
		dy := cy - y[k]
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist > 0 {
			vx[k] += dx / dist * p.CentralAttraction
			vy[k] += dy / dist * p.CentralAttraction
		}
	}
}

func vec(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
