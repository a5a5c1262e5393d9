// Package main runs headless starfield benchmarks over a grid of star counts
// and worker counts and writes one CSV row per combination.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/starfield/config"
)

// formatDuration formats a duration as MM:SS, or HHhMMmSSs for longer runs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	countsFlag := flag.String("counts", "500,1000,2000", "Comma-separated star counts")
	workersFlag := flag.String("workers", "1,2,4,8", "Comma-separated worker counts")
	frames := flag.Int("frames", 300, "Measured frames per combination")
	warmup := flag.Int("warmup", 30, "Unmeasured frames before measuring")
	seed := flag.Int64("seed", 42, "RNG seed shared by every run")
	output := flag.String("output", "sweep.csv", "Output CSV path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))

	counts, err := parseIntList(*countsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -counts: %v\n", err)
		os.Exit(1)
	}
	workers, err := parseIntList(*workersFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -workers: %v\n", err)
		os.Exit(1)
	}
	if *frames < 1 {
		fmt.Fprintln(os.Stderr, "-frames must be at least 1")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runner := NewRunner(cfg, *seed, *warmup, *frames)
	combos := len(counts) * len(workers)
	startTime := time.Now()

	var rows []*SweepRow
	for _, n := range counts {
		for _, w := range workers {
			row, err := runner.Run(n, w)
			if err != nil {
				slog.Error("run failed", "stars", n, "workers", w, "error", err)
				os.Exit(1)
			}
			rows = append(rows, row)

			done := len(rows)
			elapsed := time.Since(startTime)
			remaining := time.Duration(combos-done) * (elapsed / time.Duration(done))
			fmt.Printf("Run %d/%d: stars=%d workers=%d mean=%.0fus p50=%.0fus speedup=%.2f | elapsed: %s, ETA: %s\n",
				done, combos, row.Stars, row.Workers, row.MeanFrameUS, row.P50FrameUS, row.Speedup,
				formatDuration(elapsed), formatDuration(remaining))
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		slog.Error("failed to create output", "path", *output, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		slog.Error("failed to write sweep results", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nSweep complete: %d runs in %s, results in %s\n", combos, formatDuration(time.Since(startTime)), *output)
}
