package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"
)

// CheckTools verifies that every binary answers -version. All tools are
// probed at once; the first failure cancels the rest.
func CheckTools(ctx context.Context, tools ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tool := range tools {
		tool := tool
		g.Go(func() error {
			path, err := exec.LookPath(tool)
			if err != nil {
				return fmt.Errorf("%s not found: %w", tool, err)
			}
			out, err := exec.CommandContext(ctx, path, "-version").CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s -version: %w, output: %s", tool, err, strings.TrimSpace(string(out)))
			}
			return nil
		})
	}
	return g.Wait()
}

// ProcessStats is a point-in-time resource snapshot of this process.
type ProcessStats struct {
	RSSBytes   uint64
	CPUPercent float64
	NumThreads int32
}

func CurrentProcessStats() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}

	var stats ProcessStats
	mem, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	stats.RSSBytes = mem.RSS

	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if n, err := p.NumThreads(); err == nil {
		stats.NumThreads = n
	}
	return stats, nil
}
