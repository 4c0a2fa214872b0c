package director

// ClipWindow is one resolved capture range of the source.
type ClipWindow struct {
	Anchor       string  `yaml:"anchor"`        // timecode the window was resolved from
	StartSeconds float64 `yaml:"start_seconds"` // may be fractional for centered windows
	StartFrame   int64   `yaml:"start_frame"`
	StartLabel   string  `yaml:"start_label"` // HH_MM_SS, used in the output file name
	FrameCount   int     `yaml:"frame_count"` // same for every window of a run
	Clamped      bool    `yaml:"clamped,omitempty"`
}

// Manifest records what a run produced.
type Manifest struct {
	Version  string         `yaml:"version"`
	Source   string         `yaml:"source"`
	Option   string         `yaml:"capture_option"`
	Duration float64        `yaml:"capture_time_in_seconds"`
	FPS      int            `yaml:"fps"`
	Clips    []ManifestClip `yaml:"clips"`
}

type ManifestClip struct {
	ClipWindow    `yaml:",inline"`
	Path          string `yaml:"path"`
	FramesWritten int    `yaml:"frames_written"`
	FramesSkipped int    `yaml:"frames_skipped"`
}
