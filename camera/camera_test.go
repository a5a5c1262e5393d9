package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 0.01
}

func TestNew(t *testing.T) {
	cam := New(800, 600, 800, 600)

	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected camera at (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.MinZoom != 1.0 {
		t.Errorf("expected MinZoom 1.0, got %f", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(800, 600, 800, 600)

	sx, sy := cam.WorldToScreen(400, 300)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}

	// At 1:1 on a plane the size of the screen, coordinates coincide.
	sx, sy = cam.WorldToScreen(10, 590)
	if !near(sx, 10) || !near(sy, 590) {
		t.Errorf("expected (10, 590), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2.5)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float32 }{
		{400, 300},
		{100, 100},
		{780, 590},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsidePlane(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float32
		wantX  float32
		wantY  float32
	}{
		// At zoom 2 the view is 400x300, so the center ranges over [200,600]x[150,450].
		{"far left", -5000, 0, 200, 300},
		{"far right", 5000, 0, 600, 300},
		{"far down", 0, 5000, 400, 450},
		{"small step", 40, 20, 420, 310},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(800, 600, 800, 600)
			cam.SetZoom(2)
			cam.Pan(tt.dx, tt.dy)
			if !near(cam.X, tt.wantX) || !near(cam.Y, tt.wantY) {
				t.Errorf("after Pan(%v,%v) at zoom 2: (%f,%f), want (%f,%f)",
					tt.dx, tt.dy, cam.X, cam.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPanAtFullViewIsFixed(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Pan(300, -200)
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("whole plane visible, camera should stay centered, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 1600, 1200)

	// MinZoom = max(800/1600, 600/1200) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	cam := New(800, 600, 800, 600)

	wx, wy := cam.ScreenToWorld(300, 250)
	cam.ZoomAt(300, 250, 2)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 300) || !near(sy, 250) {
		t.Errorf("point under cursor moved to (%f, %f)", sx, sy)
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Resize(1600, 900)

	// max(1600/800, 900/600) = 2
	if cam.MinZoom != 2 || cam.Zoom != 2 {
		t.Errorf("after resize MinZoom=%f Zoom=%f, want 2/2", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(4)
	cam.Pan(-10000, -10000) // top-left corner: view covers [0,200]x[0,150]

	if !cam.IsVisible(100, 75, 1) {
		t.Error("center of view should be visible")
	}
	if cam.IsVisible(700, 500, 5) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(205, 75, 7) {
		t.Error("point just past the edge with a large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(3)
	cam.Pan(200, 200)

	cam.Reset()

	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected position (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
