// Package renderer draws the starfield with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/components"
)

// Glow layers per variant: radius multiplier and peak alpha before the
// star's glow intensity is applied.
type glowLayer struct {
	radius float32
	alpha  float32
}

var (
	crossGlow   = []glowLayer{{3, 0.1}, {2, 0.2}}
	sparkleGlow = []glowLayer{{4, 0.15}}
	radiantGlow = []glowLayer{{5, 0.08}, {3, 0.15}, {1.5, 0.3}}
	pulsarGlow  = []glowLayer{{6, 0.05}, {3, 0.1}}
)

// Culler reports whether a circle in plane coordinates may be on screen.
type Culler interface {
	IsVisible(x, y, radius float32) bool
}

// glowReach is the largest glow radius as a multiple of star size: the
// pulsar's outer halo at peak pulse.
const glowReach = 6 * 1.5

// StarRenderer draws every star with its variant glyph using additive blending.
type StarRenderer struct{}

// NewStarRenderer creates a star renderer.
func NewStarRenderer() *StarRenderer {
	return &StarRenderer{}
}

// Draw renders the live stars that cull reports visible; a nil cull draws
// them all. It only reads the store.
func (r *StarRenderer) Draw(stars *components.Stars, cull Culler) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < stars.Len(); i++ {
		if cull != nil && !cull.IsVisible(stars.X(i), stars.Y(i), stars.Size(i)*glowReach) {
			continue
		}
		r.drawStar(stars.At(i))
	}
	rl.EndBlendMode()
}

func (r *StarRenderer) drawStar(s components.Star) {
	// Brightness breathes with the pulse phase
	b := s.Brightness * (0.7 + 0.3*sin32(s.Phase))
	cr, cg, cb := s.Color.R*b, s.Color.G*b, s.Color.B*b
	base := rgba(cr, cg, cb, 1)
	center := rl.Vector2{X: s.X, Y: s.Y}
	size := s.Size

	switch s.Variant {
	case components.VariantCross:
		drawGlows(center, size, 1, crossGlow, cr, cg, cb, s.Glow)
		drawCross(center, size, base)
		rl.DrawCircleV(center, 1.5, rgba(cr*1.2, cg*1.2, cb*1.2, 1))

	case components.VariantSparkle:
		drawGlows(center, size, 1, sparkleGlow, cr, cg, cb, s.Glow)
		drawCross(center, size, base)
		diag := size * 0.7
		rl.DrawLineV(rl.Vector2{X: s.X - diag, Y: s.Y - diag}, rl.Vector2{X: s.X + diag, Y: s.Y + diag}, base)
		rl.DrawLineV(rl.Vector2{X: s.X - diag, Y: s.Y + diag}, rl.Vector2{X: s.X + diag, Y: s.Y - diag}, base)
		rl.DrawCircleV(center, 2, rl.White)

	case components.VariantRadiant:
		drawGlows(center, size, 1, radiantGlow, cr, cg, cb, s.Glow)
		for k := 0; k < 8; k++ {
			angle := float32(k) * (2 * math.Pi / 8)
			ray := size * (1.2 + 0.3*sin32(s.Phase+float32(k)))
			end := rl.Vector2{X: s.X + cos32(angle)*ray, Y: s.Y + sin32(angle)*ray}
			rl.DrawLineV(center, end, base)
		}
		rl.DrawCircleV(center, 2.5, rl.White)

	case components.VariantPulsar:
		pulse := 1 + 0.5*sin32(s.Phase*2)
		drawGlows(center, size, pulse, pulsarGlow, cr, cg, cb, s.Glow)
		var outline [11]rl.Vector2
		for k := 0; k < 10; k++ {
			angle := float32(k) * (2 * math.Pi / 10)
			radius := size
			if k%2 == 1 {
				radius *= 0.5
			}
			radius *= pulse
			outline[k] = rl.Vector2{X: s.X + cos32(angle)*radius, Y: s.Y + sin32(angle)*radius}
		}
		outline[10] = outline[0]
		rl.DrawLineStrip(outline[:], base)
	}
}

// drawGlows draws soft radial halos, outermost first.
func drawGlows(center rl.Vector2, size, scale float32, layers []glowLayer, r, g, b, intensity float32) {
	for _, l := range layers {
		inner := rgba(r, g, b, l.alpha*intensity)
		outer := rgba(r, g, b, 0)
		rl.DrawCircleGradient(int32(center.X), int32(center.Y), size*l.radius*scale, inner, outer)
	}
}

// drawCross draws a plus sign of half-length size.
func drawCross(c rl.Vector2, size float32, col rl.Color) {
	rl.DrawLineV(rl.Vector2{X: c.X - size, Y: c.Y}, rl.Vector2{X: c.X + size, Y: c.Y}, col)
	rl.DrawLineV(rl.Vector2{X: c.X, Y: c.Y - size}, rl.Vector2{X: c.X, Y: c.Y + size}, col)
}

// rgba converts linear [0, 1] channels to an 8-bit colour, clamping overshoot.
func rgba(r, g, b, a float32) rl.Color {
	return rl.Color{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }
