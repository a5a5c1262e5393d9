// Package config provides configuration loading and validation for the starfield simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Plane       PlaneConfig       `yaml:"plane"`
	Grid        GridConfig        `yaml:"grid"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Interaction InteractionConfig `yaml:"interaction"`
	Population  PopulationConfig  `yaml:"population"`
	Workers     WorkersConfig     `yaml:"workers"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlaneConfig holds the simulation plane extent.
type PlaneConfig struct {
	Width  int `yaml:"width"`  // Plane width in units (0 = use screen width)
	Height int `yaml:"height"` // Plane height in units (0 = use screen height)
}

// GridConfig holds spatial grid parameters.
type GridConfig struct {
	CellSize     float64 `yaml:"cell_size"`
	CellCapacity int     `yaml:"cell_capacity"` // Max indices per cell; excess stars skip interactions that frame
}

// PhysicsConfig holds per-star integration parameters.
type PhysicsConfig struct {
	Damping           float64 `yaml:"damping"`            // Velocity factor kept on a wall bounce
	CentralAttraction float64 `yaml:"central_attraction"` // Velocity added per frame toward the plane centre
}

// InteractionConfig holds pairwise interaction parameters.
type InteractionConfig struct {
	Radius    float64 `yaml:"radius"`
	Strength  float64 `yaml:"strength"`    // Positive repels, negative attracts
	MinDistSq float64 `yaml:"min_dist_sq"` // Pairs closer than this are skipped
}

// PopulationConfig holds star count bounds.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Step    int `yaml:"step"` // Stars added or removed per keyboard step
}

// WorkersConfig holds worker pool parameters.
type WorkersConfig struct {
	Count             int `yaml:"count"`              // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // Loops shorter than this run inline
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int `yaml:"perf_window"`
	StatsInterval int `yaml:"stats_interval"` // Frames per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PlaneW32   float32 // Effective plane width as float32
	PlaneH32   float32 // Effective plane height as float32
	CellSize32 float32
	GridCols   int
	GridRows   int
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// MustDefaults is like Defaults but panics on error. Intended for tests and tools.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("config: failed to load defaults: %v", err))
	}
	return cfg
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		bad("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Plane.Width < 0 || c.Plane.Height < 0 {
		bad("plane size must not be negative, got %dx%d", c.Plane.Width, c.Plane.Height)
	}
	if c.Grid.CellSize <= 0 {
		bad("grid.cell_size must be positive, got %v", c.Grid.CellSize)
	}
	if c.Grid.CellCapacity < 1 {
		bad("grid.cell_capacity must be at least 1, got %d", c.Grid.CellCapacity)
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping >= 1 {
		bad("physics.damping must be in (0, 1), got %v", c.Physics.Damping)
	}
	if c.Interaction.Radius <= 0 {
		bad("interaction.radius must be positive, got %v", c.Interaction.Radius)
	}
	if c.Interaction.MinDistSq <= 0 {
		bad("interaction.min_dist_sq must be positive, got %v", c.Interaction.MinDistSq)
	}
	if c.Population.Min < 1 {
		bad("population.min must be at least 1, got %d", c.Population.Min)
	}
	if c.Population.Min > c.Population.Max {
		bad("population.min (%d) exceeds population.max (%d)", c.Population.Min, c.Population.Max)
	}
	if c.Population.Initial < c.Population.Min || c.Population.Initial > c.Population.Max {
		bad("population.initial (%d) outside [%d, %d]", c.Population.Initial, c.Population.Min, c.Population.Max)
	}
	if c.Population.Step < 1 {
		bad("population.step must be at least 1, got %d", c.Population.Step)
	}
	if c.Workers.Count < 0 {
		bad("workers.count must not be negative, got %d", c.Workers.Count)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	if c.Interaction.Radius > c.Grid.CellSize {
		slog.Warn("interaction radius exceeds grid cell size; pairs more than one cell apart are ignored",
			"radius", c.Interaction.Radius,
			"cell_size", c.Grid.CellSize,
		)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Plane dimensions default to screen size if not specified
	planeW := c.Plane.Width
	if planeW == 0 {
		planeW = c.Screen.Width
	}
	planeH := c.Plane.Height
	if planeH == 0 {
		planeH = c.Screen.Height
	}
	c.Derived.PlaneW32 = float32(planeW)
	c.Derived.PlaneH32 = float32(planeH)
	c.Derived.CellSize32 = float32(c.Grid.CellSize)

	if c.Grid.CellSize > 0 {
		c.Derived.GridCols = int(math.Ceil(float64(planeW) / c.Grid.CellSize))
		c.Derived.GridRows = int(math.Ceil(float64(planeH) / c.Grid.CellSize))
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
