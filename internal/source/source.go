// Package source provides sample sources that feed the detector:
// a file replay for bench runs and a serial reader for a wired dev rig.
// Production devices stream the same line format over their own transport.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stridesense/gaitwatch/internal/motion"
)

// Handler consumes one parsed sample.
type Handler func(s motion.Sample)

// Source delivers samples to a handler until the context is cancelled or
// the source is exhausted.
type Source interface {
	Run(ctx context.Context, h Handler) error
}

// ParseLine parses one "x,y,z,timestamp_ms" sample line.
func ParseLine(line string) (motion.Sample, error) {
	segments := strings.Split(strings.TrimSpace(line), ",")
	if len(segments) != 4 {
		return motion.Sample{}, fmt.Errorf("invalid sample line %q, expected 4 segments", line)
	}

	x, err := strconv.ParseFloat(segments[0], 64)
	if err != nil {
		return motion.Sample{}, fmt.Errorf("failed to parse x: %w", err)
	}
	y, err := strconv.ParseFloat(segments[1], 64)
	if err != nil {
		return motion.Sample{}, fmt.Errorf("failed to parse y: %w", err)
	}
	z, err := strconv.ParseFloat(segments[2], 64)
	if err != nil {
		return motion.Sample{}, fmt.Errorf("failed to parse z: %w", err)
	}
	ts, err := strconv.ParseInt(segments[3], 10, 64)
	if err != nil {
		return motion.Sample{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return motion.Sample{X: x, Y: y, Z: z, TimestampMillis: ts}, nil
}
