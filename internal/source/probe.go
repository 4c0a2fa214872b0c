package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Info is the stream metadata needed to address frames.
type Info struct {
	Path         string
	Width        int
	Height       int
	Codec        string
	FrameRate    float64 // exact rate, used to turn frame indices into timestamps
	FPS          int     // truncated rate, used for window arithmetic
	RawFrameRate string
}

// Probe reads the first video stream of path with ffprobe.
func Probe(ctx context.Context, ffprobePath, path string) (*Info, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(path, output)
}

type probeResult struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

func parseProbe(path string, output []byte) (*Info, error) {
	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		raw := stream.AvgFrameRate
		rate := ParseFrameRate(raw)
		if rate <= 0 {
			raw = stream.RFrameRate
			rate = ParseFrameRate(raw)
		}
		return &Info{
			Path:         path,
			Width:        stream.Width,
			Height:       stream.Height,
			Codec:        stream.CodecName,
			FrameRate:    rate,
			FPS:          int(rate),
			RawFrameRate: raw,
		}, nil
	}

	return nil, fmt.Errorf("no video stream in %s", path)
}

// ParseFrameRate parses ffprobe rationals such as "30000/1001" or "25".
// Unparseable or zero-denominator values yield 0.
func ParseFrameRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
