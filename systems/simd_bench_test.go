package systems

import (
	"testing"

	"gonum.org/v1/gonum/blas/blas32"
)

// Benchmark the position step with a plain loop
func BenchmarkPositionStepScalar(b *testing.B) {
	size := 2000 // Default max population
	x := make([]float32, size)
	vx := make([]float32, size)

	for i := range x {
		x[i] = float32(i) * 0.4
		vx[i] = float32(i%7) * 0.001
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range x {
			x[i] += vx[i]
		}
	}
}

// Benchmark the position step with blas32
func BenchmarkPositionStepBLAS(b *testing.B) {
	size := 2000
	x := make([]float32, size)
	vx := make([]float32, size)

	for i := range x {
		x[i] = float32(i) * 0.4
		vx[i] = float32(i%7) * 0.001
	}

	// Pre-create vectors (reused each iteration)
	vX := blas32.Vector{N: size, Inc: 1, Data: x}
	vVX := blas32.Vector{N: size, Inc: 1, Data: vx}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		blas32.Axpy(1, vVX, vX) // x = x + vx
	}
}

// --- Phase-specific benchmarks ---

func BenchmarkPhase_GridRebuild(b *testing.B) {
	s := newRandomStars(b, 2000, 42)
	g := newDefaultGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(s)
	}
}

func BenchmarkPhase_Integrate(b *testing.B) {
	s := newRandomStars(b, 2000, 42)
	p := PhysicsParams{Width: 800, Height: 600, Damping: 0.98, CentralAttraction: 0.000005}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Integrate(s.Columns(), 0, s.Len(), p)
	}
}

func BenchmarkPhase_Interaction(b *testing.B) {
	s := newRandomStars(b, 2000, 42)
	g := newDefaultGrid()
	g.Rebuild(s)
	in := NewInteraction(InteractionParams{Radius: 50, Strength: 0.000001, MinDistSq: 0.1})
	classes := ColorClasses(g)
	cols := s.Columns()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, class := range classes {
			for _, cell := range class {
				in.ApplyCell(cols, g, cell, nil)
			}
		}
	}
}
