package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ivlev/highlights/internal/config"
	"github.com/ivlev/highlights/internal/director"
	"github.com/ivlev/highlights/internal/engine"
	"github.com/ivlev/highlights/internal/logging"
	"github.com/ivlev/highlights/internal/metrics"
	"github.com/ivlev/highlights/internal/source"
	"github.com/ivlev/highlights/internal/system"
	"github.com/ivlev/highlights/internal/video"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("[-] settings: %v", err)
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		log.Fatalf("[-] logger: %v", err)
	}
	defer logger.Sync()

	if err := run(context.Background(), settings, logger); err != nil {
		logger.Fatal("highlight extraction failed", zap.Error(err))
	}
}

func run(ctx context.Context, settings *config.Settings, logger *zap.Logger) error {
	startTime := time.Now()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	option, known := director.ParseCaptureOption(cfg.Highlights.CaptureOption)
	if !known {
		logger.Warn("unknown capture option, using Before", zap.String("capture_option", cfg.Highlights.CaptureOption))
	}
	req := director.Request{
		KeyTimes: cfg.Highlights.KeyTimeList,
		Option:   option,
		Duration: cfg.Highlights.CaptureTimeInSeconds,
	}

	if err := system.CheckTools(ctx, settings.FFmpegPath, settings.FFprobePath); err != nil {
		return err
	}

	src, err := source.Open(ctx, cfg.Input.FileFullPath, cfg.Input.FrameRate, settings.FFmpegPath, settings.FFprobePath)
	if err != nil {
		return fmt.Errorf("open source %s: %w", cfg.Input.FileFullPath, err)
	}
	defer src.Close()

	fmt.Printf("[*] Source: %s | %dx%d @ %d FPS | codec: %s\n",
		cfg.Input.FileFullPath, src.Width(), src.Height(), src.FPS(), src.Codec())

	windows, err := director.NewDirector(src.FPS()).Resolve(req)
	if err != nil {
		return err
	}

	for _, w := range windows {
		if w.Clamped {
			logger.Warn("window starts before the stream, clamped to frame 0",
				zap.String("timecode", w.Anchor), zap.String("label", w.StartLabel))
		}
	}
	for _, c := range director.FindCollisions(windows) {
		logger.Warn("clips share an output file, later clips overwrite earlier ones",
			zap.String("label", c.Label), zap.Ints("windows", c.Indices))
	}

	if err := os.MkdirAll(cfg.Output.FileDirectory, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runMetrics := metrics.NewRun()
	extractor := engine.NewExtractor(src, video.NewFFmpegEncoder(settings.FFmpegPath), engine.Options{
		OutputDir:    cfg.Output.FileDirectory,
		OutputPrefix: cfg.Output.FilePrefix,
		Posters:      cfg.Output.Poster,
	}, logging.WithComponent(logger, "extractor"), runMetrics)

	results, err := extractor.Run(ctx, windows)
	if err != nil {
		return err
	}

	if cfg.Output.Manifest {
		manifest := engine.BuildManifest(cfg.Input.FileFullPath, req, src.FPS(), results)
		path := director.ManifestPath(cfg.Output.FileDirectory, cfg.Output.FilePrefix)
		if err := director.WriteManifest(manifest, path); err != nil {
			logger.Warn("manifest not written", zap.String("path", path), zap.Error(err))
		} else {
			fmt.Printf("[*] Manifest: %s\n", path)
		}
	}

	if settings.ShowStats {
		reportStats(settings, cfg.Input.FileFullPath, time.Since(startTime), runMetrics, logger)
	}

	fmt.Println("Done")
	return nil
}

func reportStats(settings *config.Settings, input string, elapsed time.Duration, m *metrics.Run, logger *zap.Logger) {
	totals, err := m.Snapshot()
	if err != nil {
		logger.Warn("metrics snapshot failed", zap.Error(err))
	}
	proc, err := system.CurrentProcessStats()
	if err != nil {
		logger.Debug("process stats unavailable", zap.Error(err))
	}

	stats := engine.RunStats{
		BuildVersion: settings.BuildVersion,
		InputPath:    input,
		Elapsed:      elapsed,
		Totals:       totals,
		Process:      proc,
	}
	engine.WriteReport(os.Stdout, stats)
	if err := engine.AppendBenchmark(engine.BenchmarkLog, stats, time.Now()); err != nil {
		fmt.Printf("[!] Could not write %s: %v\n", engine.BenchmarkLog, err)
	}
}
