package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivlev/highlights/internal/director"
	"github.com/ivlev/highlights/internal/metrics"
	"github.com/ivlev/highlights/internal/source"
	"github.com/ivlev/highlights/internal/system"
	"github.com/ivlev/highlights/internal/video"
)

type Options struct {
	OutputDir    string
	OutputPrefix string
	Posters      bool
}

// Extractor cuts clip windows out of a source, one at a time. It is the only
// holder of the source while Run executes: every window repositions the one
// shared read cursor.
type Extractor struct {
	Source  source.Source
	Encoder video.Encoder
	Options Options
	Logger  *zap.Logger
	Metrics *metrics.Run
	Out     io.Writer // progress lines
}

func NewExtractor(src source.Source, enc video.Encoder, opts Options, logger *zap.Logger, m *metrics.Run) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewRun()
	}
	return &Extractor{
		Source:  src,
		Encoder: enc,
		Options: opts,
		Logger:  logger,
		Metrics: m,
		Out:     os.Stdout,
	}
}

// ClipResult describes one produced clip.
type ClipResult struct {
	Window        director.ClipWindow
	Path          string
	Poster        string
	FramesWritten int
	FramesSkipped int
}

// Run extracts windows in order. Each window reads FrameCount+1 frames: the
// loop bound is inclusive. Failed reads shorten the clip without stopping
// the run; a failed write or close aborts the whole run.
func (x *Extractor) Run(ctx context.Context, windows []director.ClipWindow) ([]ClipResult, error) {
	results := make([]ClipResult, 0, len(windows))
	for i, w := range windows {
		res, err := x.extract(ctx, w)
		if err != nil {
			return results, fmt.Errorf("clip %d/%d (%s): %w", i+1, len(windows), w.Anchor, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (x *Extractor) extract(ctx context.Context, w director.ClipWindow) (ClipResult, error) {
	started := time.Now()
	res := ClipResult{
		Window: w,
		Path:   director.OutputPath(x.Options.OutputDir, x.Options.OutputPrefix, w.StartLabel, director.ClipExt),
	}

	// Seeking
	if err := x.Source.Seek(w.StartFrame); err != nil {
		return res, fmt.Errorf("seek to frame %d: %w", w.StartFrame, err)
	}
	fmt.Fprintf(x.Out, "Capture started. start_frame = %d, capture_frame_count = %d\n", w.StartFrame, w.FrameCount)

	// Writing
	sink, err := x.Encoder.Create(ctx, res.Path, video.SinkFormat{
		Width:  x.Source.Width(),
		Height: x.Source.Height(),
		FPS:    x.Source.FPS(),
	})
	if err != nil {
		return res, fmt.Errorf("create sink %s: %w", res.Path, err)
	}

	for n := 0; n <= w.FrameCount; n++ {
		frame, err := x.Source.ReadFrame()
		if err != nil {
			res.FramesSkipped++
			x.Logger.Debug("frame read failed", zap.String("clip", res.Path), zap.Int("iteration", n), zap.Error(err))
			continue
		}

		if x.Options.Posters && res.FramesWritten == 0 {
			x.writePoster(&res, frame)
		}

		err = sink.WriteFrame(frame)
		release(frame)
		if err != nil {
			sink.Close()
			return res, fmt.Errorf("write frame to %s: %w", res.Path, err)
		}
		res.FramesWritten++
	}

	// Closed
	if err := sink.Close(); err != nil {
		return res, fmt.Errorf("close sink %s: %w", res.Path, err)
	}
	fmt.Fprintf(x.Out, "Capture finished. video_name = %s\n", res.Path)

	x.Metrics.ClipsWritten.Inc()
	x.Metrics.FramesWritten.Add(float64(res.FramesWritten))
	x.Metrics.FramesSkipped.Add(float64(res.FramesSkipped))
	x.Metrics.ClipSeconds.Observe(time.Since(started).Seconds())
	if w.Clamped {
		x.Metrics.ClipsClamped.Inc()
	}

	if res.FramesSkipped > 0 {
		x.Logger.Warn("clip shorter than requested",
			zap.String("clip", res.Path),
			zap.Int("written", res.FramesWritten),
			zap.Int("skipped", res.FramesSkipped),
		)
	}
	return res, nil
}

func (x *Extractor) writePoster(res *ClipResult, frame image.Image) {
	path := strings.TrimSuffix(res.Path, director.ClipExt) + ".png"
	if err := video.WritePoster(frame, path); err != nil {
		x.Logger.Warn("poster not written", zap.String("path", path), zap.Error(err))
		return
	}
	res.Poster = path
}

func release(frame image.Image) {
	if rgba, ok := frame.(*image.RGBA); ok {
		system.PutImage(rgba)
	}
}

// BuildManifest collects the results of a run into a manifest.
func BuildManifest(sourcePath string, req director.Request, fps int, results []ClipResult) *director.Manifest {
	m := director.NewManifest(sourcePath, req, fps)
	for _, r := range results {
		m.Add(r.Window, r.Path, r.FramesWritten, r.FramesSkipped)
	}
	return m
}
