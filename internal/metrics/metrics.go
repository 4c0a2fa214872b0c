package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Run holds the counters of one extraction run. Each Run owns its registry
// so tests and repeated runs never share state.
type Run struct {
	Registry *prometheus.Registry

	ClipsWritten  prometheus.Counter
	FramesWritten prometheus.Counter
	FramesSkipped prometheus.Counter
	ClipsClamped  prometheus.Counter
	ClipSeconds   prometheus.Histogram
}

func NewRun() *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),
		ClipsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlights_clips_written_total",
			Help: "Clips whose sink was closed successfully",
		}),
		FramesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlights_frames_written_total",
			Help: "Frames written across all clips",
		}),
		FramesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlights_frames_skipped_total",
			Help: "Loop iterations whose frame read failed",
		}),
		ClipsClamped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "highlights_clips_clamped_total",
			Help: "Clips whose window was moved to the stream start",
		}),
		ClipSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "highlights_clip_duration_seconds",
			Help:    "Wall time spent extracting one clip",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
	r.Registry.MustRegister(r.ClipsWritten, r.FramesWritten, r.FramesSkipped, r.ClipsClamped, r.ClipSeconds)
	return r
}

// Totals is a plain snapshot of the run counters.
type Totals struct {
	ClipsWritten  int
	FramesWritten int
	FramesSkipped int
	ClipsClamped  int
}

// Snapshot gathers the registry and returns the counter values.
func (r *Run) Snapshot() (Totals, error) {
	families, err := r.Registry.Gather()
	if err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, mf := range families {
		var v int
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				v += int(c.GetValue())
			}
		}
		switch mf.GetName() {
		case "highlights_clips_written_total":
			t.ClipsWritten = v
		case "highlights_frames_written_total":
			t.FramesWritten = v
		case "highlights_frames_skipped_total":
			t.FramesSkipped = v
		case "highlights_clips_clamped_total":
			t.ClipsClamped = v
		}
	}
	return t, nil
}
