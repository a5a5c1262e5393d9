package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	buttonHeight = 24
	buttonGap    = 6
)

// ControlsPanel renders the control panel: simulation buttons and overlay
// check boxes.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// ControlsState is what the panel shows on its buttons.
type ControlsState struct {
	Step    int
	Workers int
	Paused  bool
}

// Draw renders the panel and returns the action of the button clicked this
// frame, if any. Overlay check boxes update the registry directly.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) Action {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	items := 0
	for _, cat := range categories {
		items += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := padding*3 + lineHeight + 3*(buttonHeight+buttonGap) + int32(items)*lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := c.y + padding
	half := float32(c.width-padding*2-buttonGap) / 2

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	action := ActionNone
	row := func(left, right string, leftAction, rightAction Action) {
		fy := float32(y)
		if gui.Button(rl.Rectangle{X: x, Y: fy, Width: half, Height: buttonHeight}, left) {
			action = leftAction
		}
		if right != "" && gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: fy, Width: half, Height: buttonHeight}, right) {
			action = rightAction
		}
		y += buttonHeight + buttonGap
	}

	row(fmt.Sprintf("+%d stars", state.Step), fmt.Sprintf("-%d stars", state.Step), ActionAddStars, ActionRemoveStars)
	row(toggleText(state.Workers > 1, "Serial", "Parallel"), "Log summary", ActionToggleWorkers, ActionLogSummary)
	row(toggleText(state.Paused, "Resume", "Pause"), "Reset view", ActionTogglePause, ActionResetView)

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			box := rl.Rectangle{X: x, Y: float32(y + 2), Width: 10, Height: 10}
			enabled := overlays.IsEnabled(desc.ID)
			if checked := gui.CheckBox(box, label, enabled); checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			y += lineHeight
		}
		y += 4
	}

	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "grid":
		return "Grid"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
