// Package sim drives the starfield: it owns the star store, the spatial grid
// and the worker pool, and advances them one frame at a time.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/starfield/components"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
)

// initBlock is the number of stars seeded from one RNG stream. Fixed blocks
// keep initialization independent of the worker count.
const initBlock = 64

// Options selects per-run settings that are not part of the config file.
type Options struct {
	Count   int   // Initial stars; 0 uses population.initial
	Seed    int64 // RNG seed; 0 picks one from the clock
	Workers int   // Worker goroutines; 0 uses workers.count, then GOMAXPROCS
}

// Simulation is the frame driver.
type Simulation struct {
	cfg *config.Config

	stars       *components.Stars
	grid        *systems.SpatialGrid
	interaction *systems.Interaction
	classes     [][]int
	physics     systems.PhysicsParams

	pool      *workerPool
	threshold int

	perf *telemetry.PerfCollector

	seed    int64
	initGen int64 // bumped on every initialization so regrown slots differ
	tick    int32
	last    telemetry.FrameStats
}

// New builds a simulation with every star initialized.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	count := opts.Count
	if count == 0 {
		count = cfg.Population.Initial
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := opts.Workers
	if workers == 0 {
		workers = cfg.Workers.Count
	}

	w, h := cfg.Derived.PlaneW32, cfg.Derived.PlaneH32
	stars, err := components.NewStars(count, cfg.Population.Max, w, h)
	if err != nil {
		return nil, fmt.Errorf("creating star store: %w", err)
	}

	grid := systems.NewSpatialGrid(w, h, cfg.Derived.CellSize32, cfg.Grid.CellCapacity)

	s := &Simulation{
		cfg:   cfg,
		stars: stars,
		grid:  grid,
		interaction: systems.NewInteraction(systems.InteractionParams{
			Radius:    float32(cfg.Interaction.Radius),
			Strength:  float32(cfg.Interaction.Strength),
			MinDistSq: float32(cfg.Interaction.MinDistSq),
		}),
		classes: systems.ColorClasses(grid),
		physics: systems.PhysicsParams{
			Width:             w,
			Height:            h,
			Damping:           float32(cfg.Physics.Damping),
			CentralAttraction: float32(cfg.Physics.CentralAttraction),
		},
		pool:      newWorkerPool(workers, cfg.Workers.ParallelThreshold),
		threshold: cfg.Workers.ParallelThreshold,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		seed:      seed,
	}

	start := time.Now()
	s.initStars(0, count)
	slog.Info("stars initialized",
		"stars", count,
		"capacity", stars.Cap(),
		"workers", s.pool.numWorkers,
		"seed", seed,
		"elapsed_us", time.Since(start).Microseconds(),
	)

	return s, nil
}

// initStars randomizes stars [start, end) in parallel. Each block of
// initBlock indices draws from its own stream derived from the seed.
func (s *Simulation) initStars(start, end int) {
	gen := s.initGen
	s.initGen++

	first := start / initBlock
	blocks := (end+initBlock-1)/initBlock - first
	s.pool.parallelFor(blocks, 2, func(b0, b1, _ int) {
		for b := first + b0; b < first+b1; b++ {
			rng := rand.New(rand.NewSource(blockSeed(s.seed, gen, b)))
			lo := max(b*initBlock, start)
			hi := min((b+1)*initBlock, end)
			s.stars.InitRange(lo, hi, rng)
		}
	})
}

// blockSeed mixes the run seed, generation and block index into one seed.
func blockSeed(seed, gen int64, block int) int64 {
	h := uint64(seed)
	h ^= uint64(gen+1) * 0x9e3779b97f4a7c15
	h ^= uint64(block+1) * 0xbf58476d1ce4e5b9
	h ^= h >> 31
	return int64(h)
}

// Advance simulates one frame: grid rebuild, physics, then the interaction
// pass in colour-class order with a barrier between classes.
func (s *Simulation) Advance() {
	s.perf.StartTick()

	n := s.stars.Len()
	cols := s.stars.Columns()

	s.perf.StartPhase(telemetry.PhaseGridReset)
	s.pool.parallelFor(s.grid.NumCells(), s.threshold, func(c0, c1, _ int) {
		s.grid.Reset(c0, c1)
	})

	s.perf.StartPhase(telemetry.PhaseGridAssign)
	s.pool.parallelFor(n, s.threshold, func(i0, i1, _ int) {
		s.grid.Assign(cols, i0, i1)
	})

	s.perf.StartPhase(telemetry.PhasePhysics)
	s.pool.parallelFor(n, s.threshold, func(i0, i1, _ int) {
		systems.Integrate(cols, i0, i1, s.physics)
	})

	s.perf.StartPhase(telemetry.PhaseInteraction)
	s.pool.resetPairs()
	for _, class := range s.classes {
		s.pool.parallelFor(len(class), cellParallelThreshold, func(k0, k1, worker int) {
			scratch := &s.pool.scratches[worker]
			for k := k0; k < k1; k++ {
				scratch.pairs += s.interaction.ApplyCell(cols, s.grid, class[k], nil)
			}
		})
	}

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	dropped := s.grid.Dropped()
	overflow := s.grid.Overflowed()
	if dropped > 0 {
		slog.Debug("grid cells overflowed",
			"tick", s.tick,
			"dropped", dropped,
			"cells", overflow,
			"cell_capacity", s.grid.CellCapacity(),
		)
	}
	s.perf.EndTick()

	s.tick++
	s.last = telemetry.FrameStats{
		Tick:          s.tick,
		Stars:         n,
		Workers:       s.pool.numWorkers,
		Pairs:         s.pool.pairs(),
		Dropped:       dropped,
		OverflowCells: overflow,
		Duration:      s.perf.LastTick(),
	}
}

// Resize sets the star count to n. New stars are initialized before it
// returns; removed stars are the highest indices.
func (s *Simulation) Resize(n int) error {
	old := s.stars.Len()
	if err := s.stars.Resize(n); err != nil {
		return fmt.Errorf("resizing to %d stars: %w", n, err)
	}
	if n > old {
		s.initStars(old, n)
	}
	return nil
}

// Step changes the star count by delta, clamped to the population bounds.
func (s *Simulation) Step(delta int) error {
	target := s.stars.Len() + delta
	target = max(target, s.cfg.Population.Min)
	target = min(target, s.cfg.Population.Max)
	if target == s.stars.Len() {
		return nil
	}
	return s.Resize(target)
}

// SetWorkers replaces the worker pool. n <= 0 means GOMAXPROCS; 1 runs every
// loop on the calling goroutine.
func (s *Simulation) SetWorkers(n int) {
	s.pool.stopWorkers()
	s.pool = newWorkerPool(n, s.threshold)
	s.perf.Reset()
}

// Count returns the live star count.
func (s *Simulation) Count() int { return s.stars.Len() }

// Stars returns the star store. Callers must not mutate it.
func (s *Simulation) Stars() *components.Stars { return s.stars }

// Grid returns the spatial grid as of the last frame.
func (s *Simulation) Grid() *systems.SpatialGrid { return s.grid }

// Tick returns the number of frames advanced.
func (s *Simulation) Tick() int32 { return s.tick }

// Workers returns the current worker count.
func (s *Simulation) Workers() int { return s.pool.numWorkers }

// Seed returns the RNG seed in use.
func (s *Simulation) Seed() int64 { return s.seed }

// LastFrame returns stats for the most recent frame.
func (s *Simulation) LastFrame() telemetry.FrameStats { return s.last }

// Perf returns the performance collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Close stops the worker goroutines. It is safe to call more than once.
func (s *Simulation) Close() {
	s.pool.stopWorkers()
}
