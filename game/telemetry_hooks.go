package game

import (
	"log/slog"
)

// flushTelemetry closes the stats window when it is due, then logs and
// writes the window, perf and bookmark records.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	cols := g.sim.Stars().Columns()
	stats := g.collector.Flush(tick, g.sim.Count(), g.sim.Workers(), cols.VX, cols.VY)
	perfStats := g.sim.Perf().Stats()
	bookmarks := g.bookmarkDetector.Check(stats)

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		for _, bm := range bookmarks {
			bm.LogBookmark()
		}
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, tick, g.sim.Count(), g.sim.Workers()); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteBookmarks(bookmarks); err != nil {
			slog.Error("failed to write bookmarks", "error", err)
		}
	}
}
