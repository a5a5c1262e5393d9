// Package components holds the structure-of-arrays star store and the small
// closed enumerations attached to each star.
package components

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrAllocation reports that column storage could not be acquired.
	ErrAllocation = errors.New("star storage allocation failed")
	// ErrInvalidCount reports a star count outside [1, MaxCount].
	ErrInvalidCount = errors.New("invalid star count")
)

// Initial motion and appearance ranges for new stars.
const (
	minSpeed      = 0.01
	speedJitter   = 0.03
	minBrightness = 0.6
	brightJitter  = 0.4
	minPulseSpeed = 0.0005
	pulseJitter   = 0.002
	minSize       = 2
	sizeSteps     = 6
	minGlow       = 0.5
	glowJitter    = 0.5
	twoPi         = 2 * math.Pi
)

// Columns is the set of per-star attribute arrays, index-aligned.
// Slices returned by Stars.Columns are truncated to the live count.
type Columns struct {
	X, Y       []float32
	VX, VY     []float32
	Size       []float32
	Phase      []float32
	PulseSpeed []float32
	Brightness []float32
	Glow       []float32
	R, G, B    []float32
	Variant    []Variant
	Cell       []int32
}

// Star is a value snapshot of one star, for consumers that draw it.
type Star struct {
	X, Y       float32
	VX, VY     float32
	Size       float32
	Phase      float32
	PulseSpeed float32
	Brightness float32
	Glow       float32
	Color      Color
	Variant    Variant
	Cell       int32
}

// Stars is the structure-of-arrays particle store. Every column has the same
// capacity and moves in lockstep on growth.
type Stars struct {
	cols     Columns // full-capacity columns
	count    int
	capacity int
	maxCount int
	width    float32
	height   float32
}

// NewStars allocates a store for count stars on a width × height plane.
// Capacity is count rounded up to SIMDWidth. Stars are zeroed; call Init or
// InitRange before simulating them.
func NewStars(count, maxCount int, width, height float32) (*Stars, error) {
	if count < 1 || count > maxCount {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, maxCount)
	}

	capacity := roundCapacity(count)
	cols, err := allocColumns(capacity)
	if err != nil {
		return nil, err
	}

	return &Stars{
		cols:     cols,
		count:    count,
		capacity: capacity,
		maxCount: maxCount,
		width:    width,
		height:   height,
	}, nil
}

// allocColumns allocates every column with the given capacity. On any failure
// the partially built set is dropped and only the error is returned.
func allocColumns(capacity int) (Columns, error) {
	var c Columns
	floats := []*[]float32{
		&c.X, &c.Y, &c.VX, &c.VY, &c.Size, &c.Phase, &c.PulseSpeed,
		&c.Brightness, &c.Glow, &c.R, &c.G, &c.B,
	}
	for _, dst := range floats {
		s, err := alignedSlice[float32](capacity)
		if err != nil {
			return Columns{}, err
		}
		*dst = s
	}

	variants, err := alignedSlice[Variant](capacity)
	if err != nil {
		return Columns{}, err
	}
	cells, err := alignedSlice[int32](capacity)
	if err != nil {
		return Columns{}, err
	}
	c.Variant = variants
	c.Cell = cells
	return c, nil
}

// Init randomizes star i. It writes only slot i, so disjoint index ranges may
// be initialized concurrently as long as each goroutine owns its rng.
func (s *Stars) Init(i int, rng *rand.Rand) {
	c := &s.cols

	c.X[i] = rng.Float32() * s.width
	c.Y[i] = rng.Float32() * s.height

	angle := rng.Float64() * twoPi
	speed := minSpeed + rng.Float64()*speedJitter
	c.VX[i] = float32(math.Cos(angle) * speed)
	c.VY[i] = float32(math.Sin(angle) * speed)

	c.Brightness[i] = minBrightness + rng.Float32()*brightJitter
	c.Phase[i] = rng.Float32() * twoPi
	c.PulseSpeed[i] = minPulseSpeed + rng.Float32()*pulseJitter
	c.Size[i] = float32(minSize + rng.Intn(sizeSteps))
	c.Variant[i] = Variant(rng.Intn(NumVariants))
	c.Glow[i] = minGlow + rng.Float32()*glowJitter

	col := ColorFamily(rng.Intn(NumColorFamilies)).Sample(rng)
	c.R[i], c.G[i], c.B[i] = col.R, col.G, col.B
	c.Cell[i] = 0
}

// InitRange initializes stars [start, end).
func (s *Stars) InitRange(start, end int, rng *rand.Rand) {
	for i := start; i < end; i++ {
		s.Init(i, rng)
	}
}

// Resize changes the live count. New slots are uninitialized.
func (s *Stars) Resize(newCount int) error {
	if newCount < 1 || newCount > s.maxCount {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, newCount, s.maxCount)
	}
	if newCount > s.count {
		return s.Grow(newCount)
	}
	return s.Shrink(newCount)
}

// Grow raises the live count to newCount, reallocating when it exceeds the
// capacity. Existing stars are copied bit for bit; slots [old, newCount) are
// left for the caller to initialize.
func (s *Stars) Grow(newCount int) error {
	if newCount < s.count || newCount > s.maxCount {
		return fmt.Errorf("%w: grow to %d from %d (max %d)", ErrInvalidCount, newCount, s.count, s.maxCount)
	}
	if newCount <= s.capacity {
		s.count = newCount
		return nil
	}

	capacity := roundCapacity(newCount)
	next, err := allocColumns(capacity)
	if err != nil {
		return fmt.Errorf("growing to %d stars: %w", newCount, err)
	}

	n := s.count
	copy(next.X, s.cols.X[:n])
	copy(next.Y, s.cols.Y[:n])
	copy(next.VX, s.cols.VX[:n])
	copy(next.VY, s.cols.VY[:n])
	copy(next.Size, s.cols.Size[:n])
	copy(next.Phase, s.cols.Phase[:n])
	copy(next.PulseSpeed, s.cols.PulseSpeed[:n])
	copy(next.Brightness, s.cols.Brightness[:n])
	copy(next.Glow, s.cols.Glow[:n])
	copy(next.R, s.cols.R[:n])
	copy(next.G, s.cols.G[:n])
	copy(next.B, s.cols.B[:n])
	copy(next.Variant, s.cols.Variant[:n])
	copy(next.Cell, s.cols.Cell[:n])

	s.cols = next
	s.capacity = capacity
	s.count = newCount
	return nil
}

// Shrink lowers the live count. Storage is kept, so growing back up to the
// current capacity does not reallocate.
func (s *Stars) Shrink(newCount int) error {
	if newCount < 1 || newCount > s.count {
		return fmt.Errorf("%w: shrink to %d from %d", ErrInvalidCount, newCount, s.count)
	}
	s.count = newCount
	return nil
}

// Columns returns the attribute arrays truncated to the live count.
// The simulation mutates them in place; renderers should use the accessors.
func (s *Stars) Columns() Columns {
	n := s.count
	c := s.cols
	return Columns{
		X:          c.X[:n],
		Y:          c.Y[:n],
		VX:         c.VX[:n],
		VY:         c.VY[:n],
		Size:       c.Size[:n],
		Phase:      c.Phase[:n],
		PulseSpeed: c.PulseSpeed[:n],
		Brightness: c.Brightness[:n],
		Glow:       c.Glow[:n],
		R:          c.R[:n],
		G:          c.G[:n],
		B:          c.B[:n],
		Variant:    c.Variant[:n],
		Cell:       c.Cell[:n],
	}
}

// Place sets position and velocity of star i.
func (s *Stars) Place(i int, x, y, vx, vy float32) {
	s.cols.X[i], s.cols.Y[i] = x, y
	s.cols.VX[i], s.cols.VY[i] = vx, vy
}

// SetSize sets the radius of star i.
func (s *Stars) SetSize(i int, size float32) {
	s.cols.Size[i] = size
}

// Len returns the live star count.
func (s *Stars) Len() int { return s.count }

// Cap returns the allocated capacity.
func (s *Stars) Cap() int { return s.capacity }

// MaxCount returns the upper bound on the live count.
func (s *Stars) MaxCount() int { return s.maxCount }

// Width returns the plane width.
func (s *Stars) Width() float32 { return s.width }

// Height returns the plane height.
func (s *Stars) Height() float32 { return s.height }

// Per-attribute reads of star i. i must be below Len.

func (s *Stars) X(i int) float32          { return s.cols.X[i] }
func (s *Stars) Y(i int) float32          { return s.cols.Y[i] }
func (s *Stars) VX(i int) float32         { return s.cols.VX[i] }
func (s *Stars) VY(i int) float32         { return s.cols.VY[i] }
func (s *Stars) Size(i int) float32       { return s.cols.Size[i] }
func (s *Stars) Phase(i int) float32      { return s.cols.Phase[i] }
func (s *Stars) PulseSpeed(i int) float32 { return s.cols.PulseSpeed[i] }
func (s *Stars) Brightness(i int) float32 { return s.cols.Brightness[i] }
func (s *Stars) Glow(i int) float32       { return s.cols.Glow[i] }
func (s *Stars) Variant(i int) Variant    { return s.cols.Variant[i] }
func (s *Stars) Cell(i int) int32         { return s.cols.Cell[i] }

// Color returns the base colour of star i.
func (s *Stars) Color(i int) Color {
	return Color{R: s.cols.R[i], G: s.cols.G[i], B: s.cols.B[i]}
}

// At returns a snapshot of star i.
func (s *Stars) At(i int) Star {
	c := &s.cols
	return Star{
		X:          c.X[i],
		Y:          c.Y[i],
		VX:         c.VX[i],
		VY:         c.VY[i],
		Size:       c.Size[i],
		Phase:      c.Phase[i],
		PulseSpeed: c.PulseSpeed[i],
		Brightness: c.Brightness[i],
		Glow:       c.Glow[i],
		Color:      Color{R: c.R[i], G: c.G[i], B: c.B[i]},
		Variant:    c.Variant[i],
		Cell:       c.Cell[i],
	}
}
