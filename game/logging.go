package game

import "log/slog"

// logSummary logs the memory layout and execution setup.
func (g *Game) logSummary() {
	slog.Info("simulation summary", "summary", g.sim.Summary())
}
