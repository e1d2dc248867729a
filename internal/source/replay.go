package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stridesense/gaitwatch/internal/monitoring"
)

// ReplaySource feeds samples from a recorded trace file, one
// "x,y,z,timestamp_ms" line per sample. Lines starting with '#' and blank
// lines are skipped; malformed lines are logged and dropped, matching how
// the live path treats corrupt readings.
type ReplaySource struct {
	// Path is the trace file.
	Path string
	// Interval paces playback; zero replays as fast as possible.
	Interval time.Duration
}

// Run streams the trace into h until EOF or context cancellation.
func (r *ReplaySource) Run(ctx context.Context, h Handler) error {
	f, err := os.Open(r.Path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sample, err := ParseLine(line)
		if err != nil {
			monitoring.Logf("replay: dropping line: %v", err)
			continue
		}
		h(sample)

		if r.Interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Interval):
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read trace file: %w", err)
	}
	return nil
}
