package video

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ivlev/highlights/internal/system"
)

// PosterWidth bounds the width of clip poster images.
const PosterWidth = 320

// WritePoster stores a downscaled PNG still of img at path.
func WritePoster(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, system.Thumbnail(img, PosterWidth)); err != nil {
		f.Close()
		return fmt.Errorf("encode poster %s: %w", path, err)
	}
	return f.Close()
}
