package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/ui"
)

// velocityScale stretches per-frame velocities into visible line lengths.
const velocityScale = 600

// classTints colours the six interaction schedule classes.
var classTints = [systems.NumColorClasses]rl.Color{
	{R: 230, G: 80, B: 80, A: 36},
	{R: 80, G: 200, B: 90, A: 36},
	{R: 80, G: 120, B: 230, A: 36},
	{R: 220, G: 200, B: 70, A: 36},
	{R: 200, G: 90, B: 220, A: 36},
	{R: 70, G: 200, B: 210, A: 36},
}

// drawGridOverlays draws the cell-level overlays beneath the stars.
func (g *Game) drawGridOverlays() {
	grid := g.sim.Grid()
	size := grid.CellSize()

	if g.overlays.IsEnabled(ui.OverlayColorClasses) || g.overlays.IsEnabled(ui.OverlayOccupancy) {
		classes := g.overlays.IsEnabled(ui.OverlayColorClasses)
		capacity := float32(grid.CellCapacity())

		for row := 0; row < grid.Rows(); row++ {
			for col := 0; col < grid.Cols(); col++ {
				var tint rl.Color
				if classes {
					tint = classTints[systems.CellColor(col, row)]
				} else {
					fill := float32(len(grid.Members(row*grid.Cols()+col))) / capacity
					tint = rl.Color{R: 255, G: 160, B: 60, A: uint8(fill * 120)}
				}
				rl.DrawRectangle(int32(float32(col)*size), int32(float32(row)*size), int32(size), int32(size), tint)
			}
		}
	}

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		lineColor := rl.Color{R: 90, G: 90, B: 140, A: 90}
		w := int32(g.sim.Stars().Width())
		h := int32(g.sim.Stars().Height())
		for col := 0; col <= grid.Cols(); col++ {
			x := int32(float32(col) * size)
			rl.DrawLine(x, 0, x, h, lineColor)
		}
		for row := 0; row <= grid.Rows(); row++ {
			y := int32(float32(row) * size)
			rl.DrawLine(0, y, w, y, lineColor)
		}
	}
}

// drawVelocityOverlay draws each star's velocity as a short line.
func (g *Game) drawVelocityOverlay() {
	if !g.overlays.IsEnabled(ui.OverlayVelocity) {
		return
	}
	stars := g.sim.Stars()
	lineColor := rl.Color{R: 120, G: 255, B: 160, A: 160}
	for i := 0; i < stars.Len(); i++ {
		x, y := stars.X(i), stars.Y(i)
		end := rl.Vector2{X: x + stars.VX(i)*velocityScale, Y: y + stars.VY(i)*velocityScale}
		rl.DrawLineV(rl.Vector2{X: x, Y: y}, end, lineColor)
	}
}
