package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOverflowOnset    BookmarkType = "overflow_onset"
	BookmarkOverflowCleared  BookmarkType = "overflow_cleared"
	BookmarkFrameSpike       BookmarkType = "frame_spike"
	BookmarkSpeedSurge       BookmarkType = "speed_surge"
	BookmarkPopulationChange BookmarkType = "population_change"
)

// Detection thresholds.
const (
	frameSpikeFactor = 2.0
	frameSpikeMinUS  = 50.0 // Ignore spikes smaller than this in absolute terms
	speedSurgeFactor = 1.5
	minHistory       = 3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows: cells starting or stopping to
// overflow, frame time spikes, speed surges and star count changes.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	last    WindowStats
	hasLast bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < minHistory {
		historySize = minHistory
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkOverflow,
		bd.checkPopulationChange,
		bd.checkFrameSpike,
		bd.checkSpeedSurge,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// A changed setup makes earlier timings incomparable.
	if bd.hasLast && (stats.Stars != bd.last.Stars || stats.Workers != bd.last.Workers) {
		bd.resetHistory()
	}
	bd.addToHistory(stats)
	bd.last = stats
	bd.hasLast = true

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) resetHistory() {
	bd.historyIdx = 0
	bd.historyFull = false
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkOverflow(stats WindowStats) *Bookmark {
	prevDropped := 0
	if bd.hasLast {
		prevDropped = bd.last.Dropped
	}

	switch {
	case stats.Dropped > 0 && prevDropped == 0:
		return &Bookmark{
			Type:        BookmarkOverflowOnset,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d star slots dropped across %d full cells with %d stars", stats.Dropped, stats.OverflowCells, stats.Stars),
		}
	case stats.Dropped == 0 && prevDropped > 0:
		return &Bookmark{
			Type:        BookmarkOverflowCleared,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No cell overflow with %d stars", stats.Stars),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationChange(stats WindowStats) *Bookmark {
	if !bd.hasLast || stats.Stars == bd.last.Stars {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPopulationChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Star count changed from %d to %d", bd.last.Stars, stats.Stars),
	}
}

func (bd *BookmarkDetector) checkFrameSpike(stats WindowStats) *Bookmark {
	avg, ok := bd.comparableAverage(stats, func(w WindowStats) float64 { return w.MeanFrameUS })
	if !ok || avg == 0 {
		return nil
	}

	if stats.MeanFrameUS > avg*frameSpikeFactor && stats.MeanFrameUS-avg > frameSpikeMinUS {
		return &Bookmark{
			Type:        BookmarkFrameSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Mean frame %.0fus is %.1fx average (%.0fus)", stats.MeanFrameUS, stats.MeanFrameUS/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSpeedSurge(stats WindowStats) *Bookmark {
	avg, ok := bd.comparableAverage(stats, func(w WindowStats) float64 { return w.SpeedMean })
	if !ok || avg == 0 {
		return nil
	}

	if stats.SpeedMean > avg*speedSurgeFactor {
		return &Bookmark{
			Type:        BookmarkSpeedSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Mean speed %.4f is %.1fx average (%.4f)", stats.SpeedMean, stats.SpeedMean/avg, avg),
		}
	}
	return nil
}

// comparableAverage averages field over the history when the history has at
// least minHistory windows run with the same star and worker counts as stats.
func (bd *BookmarkDetector) comparableAverage(stats WindowStats, field func(WindowStats) float64) (float64, bool) {
	history := bd.getHistory()
	if len(history) < minHistory {
		return 0, false
	}
	if stats.Stars != bd.last.Stars || stats.Workers != bd.last.Workers {
		return 0, false
	}

	var sum float64
	for _, h := range history {
		sum += field(h)
	}
	return sum / float64(len(history)), true
}
