package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Stars        int
	Workers      int
	Tick         int32
	FPS          int32
	FrameTime    time.Duration // Simulation time of the last frame
	Pairs        int
	Dropped      int
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// Mode returns "serial" for one worker and "parallel" otherwise.
func (d HUDData) Mode() string {
	if d.Workers <= 1 {
		return "serial"
	}
	return "parallel"
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Stars: %d | Workers: %d (%s)", data.Stars, data.Workers, data.Mode()),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Sim: %s | Pairs: %d",
			data.Tick, data.FPS, data.FrameTime.Round(time.Microsecond), data.Pairs),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	statusColor := rl.Yellow
	if data.Paused {
		statusText = "PAUSED"
	}
	if data.Dropped > 0 {
		statusText += fmt.Sprintf(" | %d stars over cell capacity", data.Dropped)
		statusColor = h.renderer.Theme.WarnColor
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phase labels come from the registry
// when one is given.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	r := p.renderer
	padding := r.Theme.Padding
	height := padding*2 + r.Theme.LineHeight*3 + int32(len(telemetry.Phases))*(r.Theme.LineHeight+2)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Frame Phases")
	y = r.DrawLabelValue(x, y, "Avg tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max tick", stats.MaxTickDuration.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		fill := r.Theme.BarFill
		if pct > 50 {
			fill = rl.Red
		} else if pct > 25 {
			fill = rl.Orange
		}
		label := phase
		if registry != nil {
			label = registry.GetName(phase)
		}
		y = r.DrawBar(x, y, label, float32(pct/100), inner, fill)
	}
}
