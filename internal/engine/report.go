package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/highlights/internal/metrics"
	"github.com/ivlev/highlights/internal/system"
)

// BenchmarkLog is the file that collects one line per reported run.
const BenchmarkLog = "benchmark.log"

type RunStats struct {
	BuildVersion string
	InputPath    string
	Elapsed      time.Duration
	Totals       metrics.Totals
	Process      system.ProcessStats
}

func (s RunStats) effectiveFPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Totals.FramesWritten) / s.Elapsed.Seconds()
}

// WriteReport prints the performance report.
func WriteReport(w io.Writer, s RunStats) {
	fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Clips: %d (clamped: %d)\n"+
			"Frames written: %d | skipped: %d\n"+
			"Effective FPS: %.2f\n"+
			"RSS: %.1f MiB | CPU: %.1f%% | Threads: %d\n"+
			"----------------------------\n",
		s.BuildVersion,
		s.Elapsed.Seconds(),
		s.Totals.ClipsWritten, s.Totals.ClipsClamped,
		s.Totals.FramesWritten, s.Totals.FramesSkipped,
		s.effectiveFPS(),
		float64(s.Process.RSSBytes)/(1<<20), s.Process.CPUPercent, s.Process.NumThreads,
	)
}

// AppendBenchmark adds one summary line for the run to path.
func AppendBenchmark(path string, s RunStats, now time.Time) error {
	line := fmt.Sprintf("[%s] Build: %s | Input: %s | Clips: %d | Frames: %d | Skipped: %d | Total: %.2fs | FPS: %.2f\n",
		now.Format("2006-01-02 15:04:05"),
		s.BuildVersion,
		filepath.Base(s.InputPath),
		s.Totals.ClipsWritten,
		s.Totals.FramesWritten,
		s.Totals.FramesSkipped,
		s.Elapsed.Seconds(),
		s.effectiveFPS(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
