package sim

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/starfield/components"
)

// Summary describes the memory layout and execution setup of a simulation.
type Summary struct {
	Stars        int
	Capacity     int
	Alignment    int // Column alignment in bytes
	SIMDWidth    int // Capacity is a multiple of this
	GridCols     int
	GridRows     int
	CellCapacity int
	ColorClasses int
	Workers      int
	LastFrame    time.Duration
	AvgFrame     time.Duration
}

// Summary reports the current layout and timing.
func (s *Simulation) Summary() Summary {
	return Summary{
		Stars:        s.stars.Len(),
		Capacity:     s.stars.Cap(),
		Alignment:    components.CacheLineSize,
		SIMDWidth:    components.SIMDWidth,
		GridCols:     s.grid.Cols(),
		GridRows:     s.grid.Rows(),
		CellCapacity: s.grid.CellCapacity(),
		ColorClasses: len(s.classes),
		Workers:      s.pool.numWorkers,
		LastFrame:    s.last.Duration,
		AvgFrame:     s.perf.Stats().AvgTickDuration,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (m Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("stars", m.Stars),
		slog.Int("capacity", m.Capacity),
		slog.Int("alignment_bytes", m.Alignment),
		slog.Int("simd_width", m.SIMDWidth),
		slog.Int("grid_cols", m.GridCols),
		slog.Int("grid_rows", m.GridRows),
		slog.Int("cell_capacity", m.CellCapacity),
		slog.Int("color_classes", m.ColorClasses),
		slog.Int("workers", m.Workers),
		slog.Int64("last_frame_us", m.LastFrame.Microseconds()),
		slog.Int64("avg_frame_us", m.AvgFrame.Microseconds()),
	)
}
