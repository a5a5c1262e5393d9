package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Phase names for one simulation frame.
const (
	PhaseGridReset   = "grid_reset"
	PhaseGridAssign  = "grid_assign"
	PhasePhysics     = "physics"
	PhaseInteraction = "interaction"
	PhaseTelemetry   = "telemetry"
)

// Phases lists the frame phases in execution order.
var Phases = []string{
	PhaseGridReset, PhaseGridAssign, PhasePhysics, PhaseInteraction, PhaseTelemetry,
}

// PerfCollector times frames and their phases over a rolling window.
//
// Every series is a ring of nanosecond values sharing one write cursor, so
// slot k of each phase ring belongs to the same frame as slot k of ticks.
// A phase that did not run in a frame records zero for it.
type PerfCollector struct {
	window int
	next   int // ring slot for the next frame
	filled int // valid slots, at most window

	ticks  []float64
	phases map[string][]float64
	order  []string // phase names in first-seen order

	// In-flight frame
	frameStart time.Time
	mark       time.Time
	current    string
	pending    map[string]time.Duration

	lastTick time.Duration

	// Render loop timing
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		window:  window,
		ticks:   make([]float64, window),
		phases:  make(map[string][]float64, len(Phases)),
		pending: make(map[string]time.Duration, len(Phases)),
	}
	for _, name := range Phases {
		p.series(name)
	}
	return p
}

// series returns the ring for a phase, creating it on first use.
func (p *PerfCollector) series(name string) []float64 {
	ring, ok := p.phases[name]
	if !ok {
		ring = make([]float64, p.window)
		p.phases[name] = ring
		p.order = append(p.order, name)
	}
	return ring
}

// StartTick begins timing a frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = time.Now()
	p.current = ""
	clear(p.pending)
}

// StartPhase closes the running phase, if any, and starts the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.mark = now
	p.current = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.current != "" {
		p.pending[p.current] += now.Sub(p.mark)
	}
}

// EndTick closes the frame and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current = ""

	p.lastTick = now.Sub(p.frameStart)
	p.ticks[p.next] = float64(p.lastTick)
	for name := range p.pending {
		p.series(name)
	}
	for _, name := range p.order {
		p.phases[name][p.next] = float64(p.pending[name])
	}

	p.next = (p.next + 1) % p.window
	p.filled = min(p.filled+1, p.window)
}

// LastTick returns the duration of the most recent frame.
func (p *PerfCollector) LastTick() time.Duration {
	return p.lastTick
}

// Reset empties the window, e.g. after the worker count changes.
func (p *PerfCollector) Reset() {
	clear(p.ticks)
	for _, ring := range p.phases {
		clear(ring)
	}
	p.next = 0
	p.filled = 0
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration // Mean time per frame
	PhasePct map[string]float64       // Share of the mean frame, 0-100

	TicksPerSecond float64

	// Render loop
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(p.order)),
		PhasePct:      make(map[string]float64, len(p.order)),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		st.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return st
	}

	ticks := p.ticks[:p.filled]
	n := float64(p.filled)
	avg := floats.Sum(ticks) / n
	st.AvgTickDuration = time.Duration(avg)
	st.MinTickDuration = time.Duration(floats.Min(ticks))
	st.MaxTickDuration = time.Duration(floats.Max(ticks))
	if avg > 0 {
		st.TicksPerSecond = float64(time.Second) / avg
	}

	for _, name := range p.order {
		mean := floats.Sum(p.phases[name][:p.filled]) / n
		st.PhaseAvg[name] = time.Duration(mean)
		if avg > 0 {
			st.PhasePct[name] = mean / avg * 100
		}
	}
	return st
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	Stars          int     `csv:"stars"`
	Workers        int     `csv:"workers"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	GridResetPct   float64 `csv:"grid_reset_pct"`
	GridAssignPct  float64 `csv:"grid_assign_pct"`
	PhysicsPct     float64 `csv:"physics_pct"`
	InteractionPct float64 `csv:"interaction_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32, stars, workers int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Stars:          stars,
		Workers:        workers,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		GridResetPct:   s.PhasePct[PhaseGridReset],
		GridAssignPct:  s.PhasePct[PhaseGridAssign],
		PhysicsPct:     s.PhasePct[PhasePhysics],
		InteractionPct: s.PhasePct[PhaseInteraction],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
