package source

import (
	"context"
	"os"
)

// Open picks the source implementation for path: a directory is read as an
// image sequence at frameRate, anything else is probed and decoded by ffmpeg.
func Open(ctx context.Context, path string, frameRate int, ffmpegPath, ffprobePath string) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return NewImageSequenceSource(path, frameRate)
	}

	info, err := Probe(ctx, ffprobePath, path)
	if err != nil {
		return nil, err
	}
	return NewFFmpegSource(info, ffmpegPath)
}
