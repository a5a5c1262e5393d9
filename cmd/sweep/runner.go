package main

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/sim"
	"github.com/pthm-cable/starfield/telemetry"
)

// SweepRow is one CSV record: timing for a star count and worker count.
type SweepRow struct {
	Stars        int     `csv:"stars"`
	Workers      int     `csv:"workers"`
	Frames       int     `csv:"frames"`
	MeanFrameUS  float64 `csv:"mean_frame_us"`
	StdFrameUS   float64 `csv:"std_frame_us"`
	P50FrameUS   float64 `csv:"p50_frame_us"`
	P90FrameUS   float64 `csv:"p90_frame_us"`
	MaxFrameUS   float64 `csv:"max_frame_us"`
	FramesPerSec float64 `csv:"frames_per_sec"`
	Speedup      float64 `csv:"speedup"` // Serial mean / this mean, for the same star count
	MeanPairs    float64 `csv:"mean_pairs"`
	Dropped      int     `csv:"dropped"`
}

// Runner runs headless simulations with fixed settings.
type Runner struct {
	cfg    *config.Config
	seed   int64
	warmup int
	frames int

	// Serial mean frame time per star count, for speedup
	serialMean map[int]float64
}

// NewRunner creates a runner.
func NewRunner(cfg *config.Config, seed int64, warmup, frames int) *Runner {
	return &Runner{
		cfg:        cfg,
		seed:       seed,
		warmup:     warmup,
		frames:     frames,
		serialMean: make(map[int]float64),
	}
}

// Run simulates stars with the given worker count and summarizes frame times.
// Speedup is filled in once a one-worker run for the same count has been seen,
// so list 1 first in -workers.
func (r *Runner) Run(stars, workers int) (*SweepRow, error) {
	s, err := sim.New(r.cfg, sim.Options{Count: stars, Seed: r.seed, Workers: workers})
	if err != nil {
		return nil, fmt.Errorf("starting %d stars on %d workers: %w", stars, workers, err)
	}
	defer s.Close()

	for i := 0; i < r.warmup; i++ {
		s.Advance()
	}

	durations := make([]float64, r.frames)
	var pairs float64
	var dropped int
	for i := range durations {
		s.Advance()
		f := s.LastFrame()
		durations[i] = float64(f.Duration.Nanoseconds()) / 1e3
		pairs += float64(f.Pairs)
		dropped += f.Dropped
	}

	row := summarize(durations)
	row.Stars = stars
	row.Workers = s.Workers()
	row.MeanPairs = pairs / float64(r.frames)
	row.Dropped = dropped

	if row.Workers == 1 {
		r.serialMean[stars] = row.MeanFrameUS
	}
	if base, ok := r.serialMean[stars]; ok && row.MeanFrameUS > 0 {
		row.Speedup = base / row.MeanFrameUS
	}
	return row, nil
}

// summarize computes timing columns from per-frame durations in µs.
func summarize(durations []float64) *SweepRow {
	row := &SweepRow{Frames: len(durations)}
	if len(durations) == 0 {
		return row
	}

	row.MeanFrameUS, row.StdFrameUS = stat.MeanStdDev(durations, nil)

	sorted := slices.Clone(durations)
	slices.Sort(sorted)
	row.P50FrameUS = telemetry.Percentile(sorted, 0.5)
	row.P90FrameUS = telemetry.Percentile(sorted, 0.9)
	row.MaxFrameUS = sorted[len(sorted)-1]

	if row.MeanFrameUS > 0 {
		row.FramesPerSec = 1e6 / row.MeanFrameUS
	}
	return row
}
