package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"

	"github.com/ivlev/highlights/internal/system"
)

// Codec is the fixed encoder for every clip: MPEG-4 Part 2, the "mp4v"
// family, in an MP4 container.
const Codec = "mpeg4"

// SinkFormat describes the frames a sink accepts.
type SinkFormat struct {
	Width, Height int
	FPS           int
}

// Sink receives the frames of one output clip.
type Sink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Encoder creates one sink per output clip.
type Encoder interface {
	Create(ctx context.Context, path string, format SinkFormat) (Sink, error)
}

// FFmpegEncoder writes clips through an ffmpeg child process fed with raw
// RGBA frames on stdin.
type FFmpegEncoder struct {
	FFmpegPath string
	Codec      string
}

func NewFFmpegEncoder(ffmpegPath string) *FFmpegEncoder {
	return &FFmpegEncoder{FFmpegPath: ffmpegPath, Codec: Codec}
}

func (e *FFmpegEncoder) Create(ctx context.Context, path string, format SinkFormat) (Sink, error) {
	if format.Width <= 0 || format.Height <= 0 || format.FPS <= 0 {
		return nil, fmt.Errorf("invalid sink format %dx%d @ %d", format.Width, format.Height, format.FPS)
	}

	cmd := exec.CommandContext(ctx, e.FFmpegPath, e.buildFFmpegArgs(path, format)...)
	sink := &ffmpegSink{cmd: cmd, path: path, format: format}
	cmd.Stdout = &sink.out
	cmd.Stderr = &sink.out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	sink.stdin = stdin
	return sink, nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(path string, format SinkFormat) []string {
	codec := e.Codec
	if codec == "" {
		codec = Codec
	}
	return []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", format.Width, format.Height),
		"-framerate", fmt.Sprintf("%d", format.FPS),
		"-i", "-",
		"-an",
		"-c:v", codec,
		"-q:v", "2",
		"-pix_fmt", "yuv420p",
		path,
	}
}

type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    bytes.Buffer
	path   string
	format SinkFormat
	closed bool
}

// WriteFrame sends one frame. Frames of another size are scaled to the sink.
func (s *ffmpegSink) WriteFrame(img image.Image) error {
	if s.closed {
		return fmt.Errorf("write to closed sink %s", s.path)
	}

	b := img.Bounds()
	if b.Dx() != s.format.Width || b.Dy() != s.format.Height {
		frame := system.GetImage(image.Rect(0, 0, s.format.Width, s.format.Height))
		defer system.PutImage(frame)
		system.FitInto(frame, img)
		return writeRawRGBA(s.stdin, frame)
	}
	return writeRawRGBA(s.stdin, img)
}

func (s *ffmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encode %s: %w, output: %s", s.path, err, strings.TrimSpace(s.out.String()))
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	rgba := system.ToRGBA(img)
	if rgba != img {
		defer system.PutImage(rgba)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
