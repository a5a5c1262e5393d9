package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer clears the frame to a deep violet and adds a faint glow
// around the screen centre.
type BackgroundRenderer struct {
	screenW, screenH float32
	baseColor        rl.Color
	haloColor        rl.Color
}

// NewBackgroundRenderer creates a background renderer with linear [0, 1]
// base colour channels.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: rgba(baseR, baseG, baseB, 1),
		haloColor: rgba(baseR*3, baseG*3, baseB*3, 1),
	}
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(screenW, screenH float32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the background.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.baseColor)

	radius := min(b.screenW, b.screenH) * 0.6
	rl.DrawCircleGradient(int32(b.screenW/2), int32(b.screenH/2), radius, b.haloColor, b.baseColor)
}
