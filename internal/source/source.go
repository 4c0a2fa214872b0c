package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/ivlev/highlights/internal/system"
)

var ErrInvalidFrameRate = errors.New("source frame rate must be positive")

// Source is a video stream with a single read cursor. Seek repositions the
// cursor for every holder, so a Source must have exactly one owner while
// clips are being extracted.
type Source interface {
	FPS() int
	Width() int
	Height() int
	Codec() string
	// Seek moves the cursor so that the next ReadFrame returns frame.
	Seek(frame int64) error
	// ReadFrame returns the frame under the cursor and advances it. The
	// caller owns the frame and may return it with system.PutImage.
	ReadFrame() (image.Image, error)
	Close() error
}

// FFmpegSource decodes a video file through an ffmpeg child process that
// streams raw RGBA frames on stdout. Seeking restarts the decoder at the
// target timestamp.
type FFmpegSource struct {
	path       string
	ffmpegPath string
	info       *Info

	pos    int64
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
}

func NewFFmpegSource(info *Info, ffmpegPath string) (*FFmpegSource, error) {
	if info.FPS <= 0 || info.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: %s reports %q", ErrInvalidFrameRate, info.Path, info.RawFrameRate)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("source %s has no video dimensions", info.Path)
	}
	return &FFmpegSource{
		path:       info.Path,
		ffmpegPath: ffmpegPath,
		info:       info,
	}, nil
}

func (s *FFmpegSource) FPS() int      { return s.info.FPS }
func (s *FFmpegSource) Width() int    { return s.info.Width }
func (s *FFmpegSource) Height() int   { return s.info.Height }
func (s *FFmpegSource) Codec() string { return s.info.Codec }

func (s *FFmpegSource) Seek(frame int64) error {
	if frame < 0 {
		frame = 0
	}
	s.stop()
	s.pos = frame
	return nil
}

func (s *FFmpegSource) ReadFrame() (image.Image, error) {
	if s.cmd == nil {
		if err := s.start(); err != nil {
			return nil, err
		}
	}

	img := system.GetImage(image.Rect(0, 0, s.info.Width, s.info.Height))
	if _, err := io.ReadFull(s.stdout, img.Pix); err != nil {
		system.PutImage(img)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = io.EOF
		}
		return nil, fmt.Errorf("read frame %d: %w", s.pos, err)
	}
	s.pos++
	return img, nil
}

func (s *FFmpegSource) Close() error {
	s.stop()
	return nil
}

func (s *FFmpegSource) start() error {
	// Input-side -ss decodes up to the exact timestamp, which keeps the
	// first frame aligned with the requested index.
	offset := float64(s.pos) / s.info.FrameRate
	args := []string{
		"-v", "error",
		"-ss", fmt.Sprintf("%.6f", offset),
		"-i", s.path,
		"-map", "0:v:0",
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	}

	cmd := exec.Command(s.ffmpegPath, args...)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg decoder start error: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	return nil
}

func (s *FFmpegSource) stop() {
	if s.cmd == nil {
		return
	}
	s.stdout.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
}
