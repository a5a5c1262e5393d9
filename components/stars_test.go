package components

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestStars(t *testing.T, count int) *Stars {
	t.Helper()
	s, err := NewStars(count, 2000, 800, 600)
	if err != nil {
		t.Fatalf("NewStars(%d) failed: %v", count, err)
	}
	s.InitRange(0, count, rand.New(rand.NewSource(42)))
	return s
}

func TestNewStarsCapacityRounding(t *testing.T) {
	tests := []struct {
		count   int
		wantCap int
	}{
		{1, 8},
		{8, 8},
		{9, 16},
		{500, 504},
		{2000, 2000},
	}

	for _, tt := range tests {
		s, err := NewStars(tt.count, 2000, 800, 600)
		if err != nil {
			t.Fatalf("NewStars(%d) failed: %v", tt.count, err)
		}
		if s.Len() != tt.count {
			t.Errorf("Len() = %d, want %d", s.Len(), tt.count)
		}
		if s.Cap() != tt.wantCap {
			t.Errorf("NewStars(%d).Cap() = %d, want %d", tt.count, s.Cap(), tt.wantCap)
		}
	}
}

func TestNewStarsInvalidCount(t *testing.T) {
	for _, n := range []int{0, -5, 2001} {
		_, err := NewStars(n, 2000, 800, 600)
		if !errors.Is(err, ErrInvalidCount) {
			t.Errorf("NewStars(%d) error = %v, want ErrInvalidCount", n, err)
		}
	}
}

func TestNewStarsAllocationFailure(t *testing.T) {
	// Large enough that make rejects the length outright.
	huge := math.MaxInt / 4
	_, err := NewStars(huge, math.MaxInt/2, 800, 600)
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("error = %v, want ErrAllocation", err)
	}
}

func TestColumnsAligned(t *testing.T) {
	s := newTestStars(t, 37)
	c := s.cols

	floats := map[string][]float32{
		"X": c.X, "Y": c.Y, "VX": c.VX, "VY": c.VY, "Size": c.Size,
		"Phase": c.Phase, "PulseSpeed": c.PulseSpeed, "Brightness": c.Brightness,
		"Glow": c.Glow, "R": c.R, "G": c.G, "B": c.B,
	}
	for name, col := range floats {
		if !isAligned(col) {
			t.Errorf("column %s not %d-byte aligned", name, CacheLineSize)
		}
		if len(col) < s.Cap() {
			t.Errorf("column %s len %d < capacity %d", name, len(col), s.Cap())
		}
	}
	if !isAligned(c.Variant) || !isAligned(c.Cell) {
		t.Error("variant/cell columns not aligned")
	}
}

func TestInitRanges(t *testing.T) {
	s := newTestStars(t, 1000)

	for i := 0; i < s.Len(); i++ {
		st := s.At(i)
		if st.X < 0 || st.X > 800 || st.Y < 0 || st.Y > 600 {
			t.Fatalf("star %d position (%v,%v) outside plane", i, st.X, st.Y)
		}
		speed := math.Hypot(float64(st.VX), float64(st.VY))
		if speed < minSpeed-1e-6 || speed > minSpeed+speedJitter+1e-6 {
			t.Fatalf("star %d speed %v outside [%v, %v]", i, speed, minSpeed, minSpeed+speedJitter)
		}
		if st.Phase < 0 || st.Phase >= twoPi {
			t.Fatalf("star %d phase %v outside [0, 2π)", i, st.Phase)
		}
		if st.PulseSpeed <= 0 {
			t.Fatalf("star %d pulse speed %v not positive", i, st.PulseSpeed)
		}
		if st.Size < minSize || st.Size > minSize+sizeSteps-1 {
			t.Fatalf("star %d size %v outside [2, 7]", i, st.Size)
		}
		if st.Brightness < 0 || st.Brightness > 1 || st.Glow < 0 || st.Glow > 1 {
			t.Fatalf("star %d brightness/glow out of [0,1]: %v %v", i, st.Brightness, st.Glow)
		}
		for _, ch := range []float32{st.Color.R, st.Color.G, st.Color.B} {
			if ch < 0 || ch > 1 {
				t.Fatalf("star %d colour channel %v out of [0,1]", i, ch)
			}
		}
		if !st.Variant.Valid() {
			t.Fatalf("star %d has invalid variant %d", i, st.Variant)
		}
	}
}

func TestInitUsesEveryVariant(t *testing.T) {
	s := newTestStars(t, 400)
	seen := make(map[Variant]bool)
	for i := 0; i < s.Len(); i++ {
		seen[s.Variant(i)] = true
	}
	if len(seen) != NumVariants {
		t.Errorf("saw %d variants, want %d", len(seen), NumVariants)
	}
}

func TestGrowPreservesData(t *testing.T) {
	s := newTestStars(t, 20)
	before := make([]Star, s.Len())
	for i := range before {
		before[i] = s.At(i)
	}

	if err := s.Grow(100); err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	if s.Len() != 100 || s.Cap() != 104 {
		t.Fatalf("after grow Len=%d Cap=%d, want 100/104", s.Len(), s.Cap())
	}

	for i, want := range before {
		got := s.At(i)
		if math.Float32bits(got.X) != math.Float32bits(want.X) ||
			math.Float32bits(got.VY) != math.Float32bits(want.VY) ||
			got != want {
			t.Fatalf("star %d changed across grow: got %+v want %+v", i, got, want)
		}
	}
	if !isAligned(s.cols.X) {
		t.Error("grown column not aligned")
	}
}

func TestShrinkKeepsStorage(t *testing.T) {
	s := newTestStars(t, 100)
	capBefore := s.Cap()
	x0 := &s.cols.X[0]

	if err := s.Shrink(30); err != nil {
		t.Fatalf("Shrink failed: %v", err)
	}
	if s.Len() != 30 || s.Cap() != capBefore {
		t.Fatalf("after shrink Len=%d Cap=%d, want 30/%d", s.Len(), s.Cap(), capBefore)
	}

	// Growing back within capacity must not reallocate.
	if err := s.Grow(90); err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	if &s.cols.X[0] != x0 {
		t.Error("grow within capacity reallocated storage")
	}
}

func TestResizeBounds(t *testing.T) {
	s := newTestStars(t, 10)

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero", 0, true},
		{"above max", 2001, true},
		{"grow", 64, false},
		{"shrink", 5, false},
		{"max", 2000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Resize(tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCount) {
					t.Errorf("Resize(%d) error = %v, want ErrInvalidCount", tt.n, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resize(%d) failed: %v", tt.n, err)
			}
			if s.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.n)
			}
		})
	}
}

func TestColumnsTruncatedToLen(t *testing.T) {
	s := newTestStars(t, 13)
	c := s.Columns()
	if len(c.X) != 13 || len(c.Variant) != 13 || len(c.Cell) != 13 {
		t.Errorf("column lengths %d/%d/%d, want 13", len(c.X), len(c.Variant), len(c.Cell))
	}
}

func TestColorFamilySampleBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for f := ColorFamily(0); f < NumColorFamilies; f++ {
		for i := 0; i < 200; i++ {
			c := f.Sample(rng)
			for _, ch := range []float32{c.R, c.G, c.B} {
				if ch < 0 || ch > 1 {
					t.Fatalf("%s sample channel %v outside [0,1]", f, ch)
				}
			}
			if f == FamilyWhite && (c.R != c.G || c.G != c.B) {
				t.Fatalf("white family should be grey, got %+v", c)
			}
		}
	}
}

func TestVariantString(t *testing.T) {
	names := map[Variant]string{
		VariantCross:   "cross",
		VariantSparkle: "sparkle",
		VariantRadiant: "radiant",
		VariantPulsar:  "pulsar",
		Variant(9):     "unknown",
	}
	for v, want := range names {
		if got := v.String(); got != want {
			t.Errorf("Variant(%d).String() = %q, want %q", v, got, want)
		}
	}
}
