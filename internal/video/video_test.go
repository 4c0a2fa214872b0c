package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := NewFFmpegEncoder("ffmpeg")
	args := e.buildFFmpegArgs("/out/p_00_00_55.mp4", SinkFormat{Width: 1280, Height: 720, FPS: 30})
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-f rawvideo",
		"-pixel_format rgba",
		"-video_size 1280x720",
		"-framerate 30",
		"-i -",
		"-c:v mpeg4",
		"-an",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected args to contain %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "/out/p_00_00_55.mp4" {
		t.Errorf("Expected output path last, got %s", args[len(args)-1])
	}
}

func TestCreateRejectsInvalidFormat(t *testing.T) {
	e := NewFFmpegEncoder("ffmpeg")
	if _, err := e.Create(context.Background(), "x.mp4", SinkFormat{Width: 0, Height: 10, FPS: 30}); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := e.Create(context.Background(), "x.mp4", SinkFormat{Width: 10, Height: 10}); err == nil {
		t.Error("Expected error for zero fps")
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, img); err != nil {
		t.Fatalf("writeRawRGBA failed: %v", err)
	}
	if buf.Len() != 2*2*4 {
		t.Fatalf("Expected 16 bytes, got %d", buf.Len())
	}
	if got := buf.Bytes()[4:8]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("Unexpected pixel bytes %v", got)
	}
}

func TestWritePoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p_00_00_55.png")
	if err := WritePoster(image.NewRGBA(image.Rect(0, 0, 640, 480)), path); err != nil {
		t.Fatalf("WritePoster failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open poster: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode poster: %v", err)
	}
	if cfg.Width != PosterWidth || cfg.Height != 240 {
		t.Errorf("Expected %dx240, got %dx%d", PosterWidth, cfg.Width, cfg.Height)
	}
}
