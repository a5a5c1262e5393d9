// Package telemetry collects per-frame statistics and phase timings, writes
// them to CSV and flags notable windows as bookmarks.
package telemetry

// Collector accumulates frame stats within a window of frames and produces
// WindowStats.
type Collector struct {
	windowTicks int32

	// Current window tracking
	windowStartTick int32

	frames        int
	pairSum       int
	maxPairs      int
	dropped       int
	overflowCells int
	frameUSSum    float64
	maxFrameUS    float64

	speeds []float64 // reused across flushes
}

// NewCollector creates a new stats collector that flushes every windowTicks frames.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// Record adds one frame to the current window.
func (c *Collector) Record(f FrameStats) {
	c.frames++
	c.pairSum += f.Pairs
	c.maxPairs = max(c.maxPairs, f.Pairs)
	c.dropped += f.Dropped
	c.overflowCells += f.OverflowCells

	us := float64(f.Duration.Microseconds())
	c.frameUSSum += us
	c.maxFrameUS = max(c.maxFrameUS, us)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// vx and vy are the live velocity columns; speeds are sampled from them.
func (c *Collector) Flush(currentTick int32, stars, workers int, vx, vy []float32) WindowStats {
	c.speeds = Speeds(c.speeds[:0], vx, vy)
	speed := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Frames:          c.frames,

		Stars:   stars,
		Workers: workers,

		MaxPairs:      c.maxPairs,
		Dropped:       c.dropped,
		OverflowCells: c.overflowCells,
		MaxFrameUS:    c.maxFrameUS,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,
	}
	if c.frames > 0 {
		stats.MeanPairs = float64(c.pairSum) / float64(c.frames)
		stats.MeanFrameUS = c.frameUSSum / float64(c.frames)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.frames = 0
	c.pairSum = 0
	c.maxPairs = 0
	c.dropped = 0
	c.overflowCells = 0
	c.frameUSSum = 0
	c.maxFrameUS = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
