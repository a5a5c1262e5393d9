package telemetry

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats describes one simulated frame.
type FrameStats struct {
	Tick          int32
	Stars         int
	Workers       int
	Pairs         int // Pairs that received an interaction force
	Dropped       int // Stars left out of a full grid cell
	OverflowCells int // Cells that received more stars than they hold
	Duration      time.Duration
}

// LogValue implements slog.LogValuer for structured logging.
func (f FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(f.Tick)),
		slog.Int("stars", f.Stars),
		slog.Int("workers", f.Workers),
		slog.Int("pairs", f.Pairs),
		slog.Int("dropped", f.Dropped),
		slog.Int("overflow_cells", f.OverflowCells),
		slog.Int64("duration_us", f.Duration.Microseconds()),
	)
}

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`
	Frames          int   `csv:"frames"`

	// Population at window end
	Stars   int `csv:"stars"`
	Workers int `csv:"workers"`

	// Interaction activity over the window
	MeanPairs     float64 `csv:"mean_pairs"`
	MaxPairs      int     `csv:"max_pairs"`
	Dropped       int     `csv:"dropped"`
	OverflowCells int     `csv:"overflow_cells"`

	// Frame time
	MeanFrameUS float64 `csv:"mean_frame_us"`
	MaxFrameUS  float64 `csv:"max_frame_us"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarizes a set of star speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSpeedStats calculates mean, population standard deviation,
// percentiles and maximum of the given speeds.
func ComputeSpeedStats(speeds []float64) SpeedStats {
	n := len(speeds)
	if n == 0 {
		return SpeedStats{}
	}

	mean, variance := stat.PopMeanVariance(speeds, nil)

	// Sort for percentiles
	sorted := slices.Clone(speeds)
	slices.Sort(sorted)

	return SpeedStats{
		Mean: mean,
		Std:  math.Sqrt(variance),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(speeds),
	}
}

// Speeds appends the speed of every star to dst and returns it.
func Speeds(dst []float64, vx, vy []float32) []float64 {
	for i := range vx {
		dst = append(dst, math.Hypot(float64(vx[i]), float64(vy[i])))
	}
	return dst
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("frames", s.Frames),
		slog.Int("stars", s.Stars),
		slog.Int("workers", s.Workers),
		slog.Float64("mean_pairs", s.MeanPairs),
		slog.Int("max_pairs", s.MaxPairs),
		slog.Int("dropped", s.Dropped),
		slog.Int("overflow_cells", s.OverflowCells),
		slog.Float64("mean_frame_us", s.MeanFrameUS),
		slog.Float64("max_frame_us", s.MaxFrameUS),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"stars", s.Stars,
		"workers", s.Workers,
		"mean_pairs", s.MeanPairs,
		"max_pairs", s.MaxPairs,
		"dropped", s.Dropped,
		"overflow_cells", s.OverflowCells,
		"mean_frame_us", s.MeanFrameUS,
		"max_frame_us", s.MaxFrameUS,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p50", s.SpeedP50,
		"speed_max", s.SpeedMax,
	)
}
