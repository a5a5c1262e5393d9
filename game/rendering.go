package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/ui"
)

const controlsLegend = "[+/-] Stars  [T] Serial/Parallel  [B] Summary  [Space] Pause  [Home] Reset view  [Tab] Panel  [Arrows/Wheel] View  [Q] Quit"

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.background.Draw()

	rl.BeginMode2D(g.camera2D())
	g.drawGridOverlays()
	g.stars.Draw(g.sim.Stars(), g.camera)
	g.drawVelocityOverlay()
	rl.EndMode2D()

	g.drawUI()

	rl.EndDrawing()
}

// camera2D converts the view camera to raylib's form.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	}
}

// drawUI renders the HUD and any enabled panels.
func (g *Game) drawUI() {
	last := g.sim.LastFrame()
	g.hud.Draw(ui.HUDData{
		Title:        "Starfield",
		Stars:        g.sim.Count(),
		Workers:      g.sim.Workers(),
		Tick:         g.sim.Tick(),
		FPS:          rl.GetFPS(),
		FrameTime:    last.Duration,
		Pairs:        last.Pairs,
		Dropped:      last.Dropped,
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.sim.Perf().Stats(), g.registry)
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		action := g.controls.Draw(ui.ControlsState{
			Step:    g.cfg.Population.Step,
			Workers: g.sim.Workers(),
			Paused:  g.paused,
		}, g.overlays)
		g.applyAction(action)
	}
}
