package director

import (
	"fmt"
	"path/filepath"
)

// ClipExt is the container extension of every output clip.
const ClipExt = ".mp4"

// FormatHMS renders non-negative whole seconds as HH_MM_SS. Hours are padded
// to two digits but never truncated.
func FormatHMS(seconds int) string {
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d_%02d_%02d", h, m, s)
}

// OutputPath builds directory/prefix_label.ext for a clip artifact.
func OutputPath(dir, prefix, label, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", prefix, label, ext))
}

// ManifestPath is where the run manifest is written when enabled.
func ManifestPath(dir, prefix string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_manifest.yaml", prefix))
}

// Collision lists windows that map to the same output file.
type Collision struct {
	Label   string
	Indices []int
}

// FindCollisions reports labels shared by more than one window, ordered by
// first occurrence. A later clip with a colliding label overwrites the
// earlier file.
func FindCollisions(windows []ClipWindow) []Collision {
	seen := make(map[string]int)
	var collisions []Collision

	for i, w := range windows {
		first, ok := seen[w.StartLabel]
		if !ok {
			seen[w.StartLabel] = i
			continue
		}

		found := false
		for c := range collisions {
			if collisions[c].Label == w.StartLabel {
				collisions[c].Indices = append(collisions[c].Indices, i)
				found = true
				break
			}
		}
		if !found {
			collisions = append(collisions, Collision{Label: w.StartLabel, Indices: []int{first, i}})
		}
	}

	return collisions
}
