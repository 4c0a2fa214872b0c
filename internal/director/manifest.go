package director

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const manifestVersion = "1.0"

// NewManifest starts an empty manifest for one run.
func NewManifest(source string, req Request, fps int) *Manifest {
	return &Manifest{
		Version:  manifestVersion,
		Source:   source,
		Option:   req.Option.String(),
		Duration: req.Duration,
		FPS:      fps,
	}
}

func (m *Manifest) Add(w ClipWindow, path string, written, skipped int) {
	m.Clips = append(m.Clips, ManifestClip{
		ClipWindow:    w,
		Path:          path,
		FramesWritten: written,
		FramesSkipped: skipped,
	})
}

func WriteManifest(m *Manifest, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return &m, nil
}
