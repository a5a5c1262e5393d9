package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGridAssign)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseInteraction)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseGridAssign]; !ok {
		t.Error("expected grid_assign phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseInteraction]; !ok {
		t.Error("expected interaction phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGridAssign)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfCollector_LastTickAndReset(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartTick()
	pc.StartPhase(PhasePhysics)
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()

	if pc.LastTick() < 50*time.Microsecond {
		t.Errorf("LastTick() = %v, want >= 50µs", pc.LastTick())
	}

	pc.Reset()
	if stats := pc.Stats(); stats.AvgTickDuration != 0 {
		t.Errorf("expected empty window after Reset, got avg %v", stats.AvgTickDuration)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseGridReset:   5,
			PhaseGridAssign:  15,
			PhasePhysics:     30,
			PhaseInteraction: 50,
		},
	}

	row := s.ToCSV(240, 1000, 4)
	if row.WindowEnd != 240 || row.Stars != 1000 || row.Workers != 4 {
		t.Errorf("unexpected identity columns: %+v", row)
	}
	if row.AvgTickUS != 1500 {
		t.Errorf("AvgTickUS = %d, want 1500", row.AvgTickUS)
	}
	if row.InteractionPct != 50 || row.PhysicsPct != 30 || row.GridAssignPct != 15 || row.GridResetPct != 5 {
		t.Errorf("phase columns not mapped: %+v", row)
	}
}

func TestPerfCollector_WindowForgetsOldFrames(t *testing.T) {
	pc := NewPerfCollector(2)

	pc.StartTick()
	pc.StartPhase(PhasePhysics)
	time.Sleep(5 * time.Millisecond)
	pc.EndTick()
	if pc.Stats().MaxTickDuration < 5*time.Millisecond {
		t.Fatalf("slow frame not recorded: max %v", pc.Stats().MaxTickDuration)
	}

	// Two quick frames push the slow one out of a window of two
	for i := 0; i < 2; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		pc.EndTick()
	}
	if slowest := pc.Stats().MaxTickDuration; slowest >= 5*time.Millisecond {
		t.Errorf("max tick %v still includes the evicted frame", slowest)
	}
}

func TestPerfCollector_MissingPhaseCountsAsZero(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartTick()
	pc.StartPhase(PhaseInteraction)
	time.Sleep(time.Millisecond)
	pc.EndTick()
	withPhase := pc.Stats().PhaseAvg[PhaseInteraction]

	pc.StartTick()
	pc.StartPhase(PhaseGridReset)
	pc.EndTick()
	stats := pc.Stats()

	// The second frame had no interaction phase, so its mean halves
	got := stats.PhaseAvg[PhaseInteraction]
	if math.Abs(float64(got-withPhase/2)) > float64(time.Microsecond) {
		t.Errorf("interaction avg = %v, want about %v", got, withPhase/2)
	}
	for _, phase := range Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %q missing from averages", phase)
		}
	}
}
