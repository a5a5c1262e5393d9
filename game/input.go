package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/ui"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyQ) {
		g.quit = true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.applyAction(ui.ActionTogglePause)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.applyAction(ui.ActionAddStars)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.applyAction(ui.ActionRemoveStars)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.applyAction(ui.ActionToggleWorkers)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.applyAction(ui.ActionLogSummary)
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleCameraInput()
}

// handleCameraInput processes view pan/zoom controls.
func (g *Game) handleCameraInput() {
	const panSpeed = 8.0

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.applyAction(ui.ActionResetView)
	}
}

// applyAction carries out a request from the keyboard or a panel button.
func (g *Game) applyAction(action ui.Action) {
	switch action {
	case ui.ActionAddStars:
		g.stepStars(g.cfg.Population.Step)
	case ui.ActionRemoveStars:
		g.stepStars(-g.cfg.Population.Step)
	case ui.ActionToggleWorkers:
		g.toggleWorkers()
	case ui.ActionLogSummary:
		g.logSummary()
	case ui.ActionResetView:
		g.camera.Reset()
	case ui.ActionTogglePause:
		g.paused = !g.paused
	}
}

func (g *Game) stepStars(delta int) {
	before := g.sim.Count()
	if err := g.sim.Step(delta); err != nil {
		slog.Error("failed to change star count", "delta", delta, "error", err)
		return
	}
	if after := g.sim.Count(); after != before {
		slog.Info("star count changed", "from", before, "to", after)
	}
}

// toggleWorkers switches between one worker and the parallel worker count.
func (g *Game) toggleWorkers() {
	n := 1
	if g.sim.Workers() == 1 {
		n = g.parallelWorkers
	}
	g.sim.SetWorkers(n)
	slog.Info("worker count changed", "workers", g.sim.Workers())
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.background.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-250, 10)
}
