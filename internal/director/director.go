package director

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrFormat    = errors.New("malformed timecode")
	ErrFrameRate = errors.New("frame rate must be positive")
)

// FormatError reports a timecode that is not three colon-separated integers.
type FormatError struct {
	Timecode string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timecode %q: %s", e.Timecode, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// CaptureOption places a clip window relative to its anchor timecode.
type CaptureOption int

const (
	CaptureBefore CaptureOption = iota + 1 // window ends at the anchor
	CaptureCenter                          // window is centered on the anchor
	CaptureAfter                           // window starts at the anchor
)

func (o CaptureOption) String() string {
	switch o {
	case CaptureBefore:
		return "Before"
	case CaptureCenter:
		return "Center"
	case CaptureAfter:
		return "After"
	default:
		return fmt.Sprintf("CaptureOption(%d)", int(o))
	}
}

// ParseCaptureOption maps a configured option name to a CaptureOption.
// Unrecognized names fall back to CaptureBefore with known set to false.
func ParseCaptureOption(s string) (opt CaptureOption, known bool) {
	switch s {
	case "Before":
		return CaptureBefore, true
	case "Center":
		return CaptureCenter, true
	case "After":
		return CaptureAfter, true
	default:
		return CaptureBefore, false
	}
}

// Request is the set of highlights to cut from one source. Duration is shared
// by every timecode.
type Request struct {
	KeyTimes []string
	Option   CaptureOption
	Duration float64 // seconds
}

// Director turns highlight requests into frame-addressed clip windows.
type Director struct {
	FPS int
}

func NewDirector(fps int) *Director {
	return &Director{FPS: fps}
}

// Resolve computes one window per timecode, in input order. Windows that
// would start before the stream are clamped to frame zero and flagged.
func (d *Director) Resolve(req Request) ([]ClipWindow, error) {
	if d.FPS <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFrameRate, d.FPS)
	}

	frameCount := int(req.Duration * float64(d.FPS))
	windows := make([]ClipWindow, 0, len(req.KeyTimes))

	for _, tc := range req.KeyTimes {
		total, err := ParseTimecode(tc)
		if err != nil {
			return nil, err
		}

		start := d.startSeconds(total, req.Option, req.Duration)
		clamped := false
		if start < 0 {
			start = 0
			clamped = true
		}

		windows = append(windows, ClipWindow{
			Anchor:       tc,
			StartSeconds: start,
			StartFrame:   int64(start * float64(d.FPS)),
			StartLabel:   FormatHMS(int(math.Floor(start))),
			FrameCount:   frameCount,
			Clamped:      clamped,
		})
	}

	return windows, nil
}

func (d *Director) startSeconds(total int, opt CaptureOption, duration float64) float64 {
	switch opt {
	case CaptureCenter:
		return float64(total) - duration/2
	case CaptureAfter:
		return float64(total)
	default:
		return float64(total) - duration
	}
}

// ParseTimecode converts "HH:MM:SS" into whole seconds. Fields are not range
// checked beyond being non-negative, so "00:90:00" is 5400 seconds.
func ParseTimecode(tc string) (int, error) {
	parts := strings.Split(tc, ":")
	if len(parts) != 3 {
		return 0, &FormatError{Timecode: tc, Reason: "expected HH:MM:SS"}
	}

	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, &FormatError{Timecode: tc, Reason: fmt.Sprintf("field %d is not an integer", i+1)}
		}
		if v < 0 {
			return 0, &FormatError{Timecode: tc, Reason: fmt.Sprintf("field %d is negative", i+1)}
		}
		fields[i] = v
	}

	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}
