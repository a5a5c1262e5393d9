// Package game drives a starfield simulation from a window or a headless loop,
// wiring input, rendering and telemetry around sim.Simulation.
package game

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/sim"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
	"github.com/pthm-cable/starfield/ui"
)

// Options configures a new game instance.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	Stars     int    // Initial star count (0 = config default)
	Workers   int    // Worker count (0 = config, then GOMAXPROCS)
	LogStats  bool   // Log window stats and perf via slog
	OutputDir string // Directory for CSV logs (empty = disabled)
	Headless  bool   // No window; skip renderer and UI setup
}

// Game holds the simulation and everything around it.
type Game struct {
	cfg *config.Config
	sim *sim.Simulation

	// Telemetry
	collector        *telemetry.Collector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	logStats         bool

	// Rendering (nil when headless)
	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	stars      *renderer.StarRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	registry   *systems.SystemRegistry
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry

	// Worker count restored when leaving serial mode
	parallelWorkers int

	paused   bool
	quit     bool
	headless bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from a validated config.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	s, err := sim.New(cfg, sim.Options{
		Count:   opts.Stars,
		Seed:    opts.Seed,
		Workers: opts.Workers,
	})
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g := &Game{
		cfg:              cfg,
		sim:              s,
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsInterval),
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		parallelWorkers:  s.Workers(),
		headless:         opts.Headless,
		screenWidth:      float32(cfg.Screen.Width),
		screenHeight:     float32(cfg.Screen.Height),
	}
	if g.parallelWorkers <= 1 {
		g.parallelWorkers = max(runtime.GOMAXPROCS(0), 2)
	}

	if !opts.Headless {
		sw, sh := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
		g.camera = camera.New(float32(sw), float32(sh), cfg.Derived.PlaneW32, cfg.Derived.PlaneH32)
		g.background = renderer.NewBackgroundRenderer(sw, sh, 0.02, 0.01, 0.05)
		g.stars = renderer.NewStarRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(sw-250, 10, 240)
		g.registry = systems.NewSystemRegistry()
		g.controls = ui.NewControlsPanel(10, 100, 200)
		g.overlays = ui.NewOverlayRegistry()
	}

	return g, nil
}

// Update processes input and advances one frame unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	g.step()
}

// UpdateHeadless advances one frame without touching input or graphics.
func (g *Game) UpdateHeadless() {
	g.step()
}

func (g *Game) step() {
	g.sim.Advance()
	g.collector.Record(g.sim.LastFrame())
	g.flushTelemetry()
}

// Tick returns the number of frames simulated.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// ShouldQuit reports whether the user asked to exit.
func (g *Game) ShouldQuit() bool {
	return g.quit
}

// Unload stops the workers and closes output files.
func (g *Game) Unload() {
	g.sim.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
