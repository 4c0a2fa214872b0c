package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the well-known location of the run configuration.
const DefaultPath = "./config.json"

var ErrMissingKey = errors.New("missing required key")

type Config struct {
	Input      InputConfig
	Highlights HighlightsConfig
	Output     OutputConfig
}

type InputConfig struct {
	FileFullPath string
	FrameRate    int // only used when FileFullPath is a directory of frames
}

type HighlightsConfig struct {
	KeyTimeList          []string
	CaptureOption        string
	CaptureTimeInSeconds float64
}

type OutputConfig struct {
	FileDirectory string
	FilePrefix    string
	Manifest      bool
	Poster        bool
}

// Settings are process-level knobs read from the environment.
type Settings struct {
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	FFmpegPath   string `env:"FFMPEG_PATH"   envDefault:"ffmpeg"`
	FFprobePath  string `env:"FFPROBE_PATH"  envDefault:"ffprobe"`
	ShowStats    bool   `env:"SHOW_STATS"    envDefault:"false"`
	BuildVersion string `env:"BUILD_VERSION" envDefault:"dev"`
}

// document mirrors the on-disk layout. Pointers tell a missing key apart
// from a zero value.
type document struct {
	Input *struct {
		FileFullPath *string `yaml:"file_full_path"`
		FrameRate    int     `yaml:"frame_rate"`
	} `yaml:"input"`
	Highlights *struct {
		KeyTimeList          []string `yaml:"key_time_list"`
		CaptureOption        *string  `yaml:"capture_option"`
		CaptureTimeInSeconds *float64 `yaml:"capture_time_in_seconds"`
	} `yaml:"highlights"`
	Output *struct {
		FileDirectory *string `yaml:"file_directory"`
		FilePrefix    *string `yaml:"file_prefix"`
		Manifest      bool    `yaml:"manifest"`
		Poster        bool    `yaml:"poster"`
	} `yaml:"output"`
}

// Load reads and validates the configuration document at path. JSON is
// accepted because every JSON document is valid YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch {
	case doc.Input == nil:
		return nil, missing("input")
	case doc.Input.FileFullPath == nil:
		return nil, missing("input.file_full_path")
	case doc.Highlights == nil:
		return nil, missing("highlights")
	case doc.Highlights.KeyTimeList == nil:
		return nil, missing("highlights.key_time_list")
	case doc.Highlights.CaptureOption == nil:
		return nil, missing("highlights.capture_option")
	case doc.Highlights.CaptureTimeInSeconds == nil:
		return nil, missing("highlights.capture_time_in_seconds")
	case doc.Output == nil:
		return nil, missing("output")
	case doc.Output.FileDirectory == nil:
		return nil, missing("output.file_directory")
	case doc.Output.FilePrefix == nil:
		return nil, missing("output.file_prefix")
	}

	keyTimes := make([]string, len(doc.Highlights.KeyTimeList))
	copy(keyTimes, doc.Highlights.KeyTimeList)

	return &Config{
		Input: InputConfig{
			FileFullPath: *doc.Input.FileFullPath,
			FrameRate:    doc.Input.FrameRate,
		},
		Highlights: HighlightsConfig{
			KeyTimeList:          keyTimes,
			CaptureOption:        *doc.Highlights.CaptureOption,
			CaptureTimeInSeconds: *doc.Highlights.CaptureTimeInSeconds,
		},
		Output: OutputConfig{
			FileDirectory: *doc.Output.FileDirectory,
			FilePrefix:    *doc.Output.FilePrefix,
			Manifest:      doc.Output.Manifest,
			Poster:        doc.Output.Poster,
		},
	}, nil
}

func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

func missing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingKey, key)
}
