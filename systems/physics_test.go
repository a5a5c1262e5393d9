package systems

import (
	"math"
	"testing"
)

func defaultPhysics() PhysicsParams {
	return PhysicsParams{
		Width:             800,
		Height:            600,
		Damping:           0.98,
		CentralAttraction: 0.000005,
	}
}

func TestIntegrateWallReflection(t *testing.T) {
	tests := []struct {
		name           string
		x, y, vx, vy   float32
		wantX, wantY   float32
		wantVX, wantVY float32
	}{
		{"right wall", 797.5, 300, 1, 0, 798, 300, -0.98, 0},
		{"left wall", 2.5, 300, -1, 0, 2, 300, 0.98, 0},
		{"bottom wall", 400, 597.5, 0, 1, 400, 598, 0, -0.98},
		{"top wall", 400, 2.5, 0, -1, 400, 2, 0, 0.98},
		{"corner", 797.5, 597.5, 1, 2, 798, 598, -0.98, -1.96},
		{"lands on left margin", 2.5, 300, -0.5, 0, 2, 300, 0.49, 0},
		{"lands on right margin", 797.5, 300, 0.5, 0, 798, 300, -0.49, 0},
		{"lands on bottom margin", 400, 597.5, 0, 0.5, 400, 598, 0, -0.49},
		{"interior", 300, 200, 1, -1, 301, 199, 1, -1},
	}

	p := defaultPhysics()
	p.CentralAttraction = 0

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlacedStars(t, [][2]float32{{tc.x, tc.y}})
			s.Place(0, tc.x, tc.y, tc.vx, tc.vy)
			s.SetSize(0, 2)

			Integrate(s.Columns(), 0, 1, p)

			if s.X(0) != tc.wantX || s.Y(0) != tc.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", s.X(0), s.Y(0), tc.wantX, tc.wantY)
			}
			if math.Abs(float64(s.VX(0)-tc.wantVX)) > 1e-6 || math.Abs(float64(s.VY(0)-tc.wantVY)) > 1e-6 {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", s.VX(0), s.VY(0), tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestIntegrateReboundSpeed(t *testing.T) {
	p := defaultPhysics()
	p.CentralAttraction = 0

	s := newPlacedStars(t, [][2]float32{{790, 300}})
	s.SetSize(0, 3)
	s.Place(0, 790, 300, 0.5, 0)

	var before float32
	for frame := 0; frame < 100; frame++ {
		before = s.VX(0)
		Integrate(s.Columns(), 0, 1, p)
		if s.VX(0) < 0 {
			break
		}
	}
	if s.VX(0) >= 0 {
		t.Fatal("star never rebounded off the right wall")
	}
	got := -s.VX(0)
	want := before * p.Damping
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("rebound speed = %v, want %v", got, want)
	}
}

func TestIntegrateKeepsStarsInBounds(t *testing.T) {
	s := newRandomStars(t, 1000, 5)
	p := defaultPhysics()

	for frame := 0; frame < 300; frame++ {
		Integrate(s.Columns(), 0, s.Len(), p)
		for i := 0; i < s.Len(); i++ {
			r := s.Size(i)
			x, y := s.X(i), s.Y(i)
			if x < r || x > p.Width-r || y < r || y > p.Height-r {
				t.Fatalf("frame %d: star %d at (%v, %v) outside [%v, %v]x[%v, %v]",
					frame, i, x, y, r, p.Width-r, r, p.Height-r)
			}
		}
	}
}

func TestIntegratePhaseWrap(t *testing.T) {
	s := newPlacedStars(t, [][2]float32{{400, 300}})
	cols := s.Columns()
	cols.Phase[0] = 6.28
	cols.PulseSpeed[0] = 0.01

	Integrate(cols, 0, 1, defaultPhysics())

	want := 6.29 - 2*math.Pi
	if math.Abs(float64(s.Phase(0))-want) > 1e-5 {
		t.Errorf("phase = %v, want %v", s.Phase(0), want)
	}
}

func TestIntegrateCentralAttraction(t *testing.T) {
	s := newPlacedStars(t, [][2]float32{{100, 300}, {400, 300}})
	p := defaultPhysics()

	Integrate(s.Columns(), 0, 2, p)

	if math.Abs(float64(s.VX(0)-p.CentralAttraction)) > 1e-9 || s.VY(0) != 0 {
		t.Errorf("star left of centre: velocity (%v, %v), want (%v, 0)", s.VX(0), s.VY(0), p.CentralAttraction)
	}
	// A star exactly at the centre gets no pull
	if s.VX(1) != 0 || s.VY(1) != 0 {
		t.Errorf("star at centre: velocity (%v, %v), want (0, 0)", s.VX(1), s.VY(1))
	}
}

func TestIntegratePartitionIsBitIdentical(t *testing.T) {
	whole := newRandomStars(t, 1001, 21)
	parts := newRandomStars(t, 1001, 21)
	p := defaultPhysics()

	for frame := 0; frame < 50; frame++ {
		Integrate(whole.Columns(), 0, whole.Len(), p)
		for start := 0; start < parts.Len(); start += 37 {
			Integrate(parts.Columns(), start, min(start+37, parts.Len()), p)
		}
	}

	a, b := whole.Columns(), parts.Columns()
	for i := range a.X {
		if math.Float32bits(a.X[i]) != math.Float32bits(b.X[i]) ||
			math.Float32bits(a.Y[i]) != math.Float32bits(b.Y[i]) ||
			math.Float32bits(a.VX[i]) != math.Float32bits(b.VX[i]) ||
			math.Float32bits(a.VY[i]) != math.Float32bits(b.VY[i]) ||
			math.Float32bits(a.Phase[i]) != math.Float32bits(b.Phase[i]) {
			t.Fatalf("star %d differs between whole and partitioned integration", i)
		}
	}
}

func TestIntegrateEmptyRange(t *testing.T) {
	s := newPlacedStars(t, [][2]float32{{10, 10}})
	Integrate(s.Columns(), 0, 0, defaultPhysics())
	if s.X(0) != 10 {
		t.Error("empty range modified stars")
	}
}
