package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ivlev/highlights/internal/system"
)

// ImageSequenceSource plays a directory of numbered still frames as a video
// stream at a fixed frame rate. Frames are ordered by file name.
type ImageSequenceSource struct {
	paths  []string
	fps    int
	width  int
	height int
	codec  string
	pos    int64
}

func NewImageSequenceSource(dir string, fps int) (*ImageSequenceSource, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: image sequence %s needs input.frame_rate", ErrInvalidFrameRate, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames found in %s", dir)
	}
	sort.Strings(paths)

	f, err := os.Open(paths[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", paths[0], err)
	}

	return &ImageSequenceSource{
		paths:  paths,
		fps:    fps,
		width:  cfg.Width,
		height: cfg.Height,
		codec:  format,
	}, nil
}

func (s *ImageSequenceSource) FPS() int      { return s.fps }
func (s *ImageSequenceSource) Width() int    { return s.width }
func (s *ImageSequenceSource) Height() int   { return s.height }
func (s *ImageSequenceSource) Codec() string { return s.codec }

// FrameCount is the number of frames in the sequence.
func (s *ImageSequenceSource) FrameCount() int { return len(s.paths) }

func (s *ImageSequenceSource) Seek(frame int64) error {
	if frame < 0 {
		frame = 0
	}
	s.pos = frame
	return nil
}

// ReadFrame decodes the frame under the cursor. A frame that fails to decode
// still advances the cursor. Frames whose size differs from the first one
// are scaled to it.
func (s *ImageSequenceSource) ReadFrame() (image.Image, error) {
	if s.pos >= int64(len(s.paths)) {
		return nil, io.EOF
	}
	path := s.paths[s.pos]
	s.pos++

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	frame := system.GetImage(image.Rect(0, 0, s.width, s.height))
	system.FitInto(frame, img)
	return frame, nil
}

func (s *ImageSequenceSource) Close() error {
	return nil
}
