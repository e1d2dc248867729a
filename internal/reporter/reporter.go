// Package reporter owns the cadences around the detection core: the
// periodic tremor burst analysis and the freeze episode bookkeeping. The
// core itself performs no I/O; everything blocking happens here, off the
// sample path.
package reporter

import (
	"context"
	"errors"
	"time"

	"github.com/stridesense/gaitwatch/internal/monitoring"
	"github.com/stridesense/gaitwatch/internal/motion"
	"github.com/stridesense/gaitwatch/internal/timeutil"
)

// TremorStore persists burst analysis results.
type TremorStore interface {
	RecordTremorReading(r motion.TremorReading) error
}

// Burst drives the periodic tremor analysis at a fixed cadence.
type Burst struct {
	Detector *motion.Detector
	Store    TremorStore
	Clock    timeutil.Clock
	Interval time.Duration
}

// Run analyzes one burst per tick until the context is cancelled.
// Insufficient-data results are "no verdict yet" and skipped silently;
// store failures are logged and do not stop the loop.
func (b *Burst) Run(ctx context.Context) {
	ticker := b.Clock.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			b.analyzeOnce()
		}
	}
}

func (b *Burst) analyzeOnce() {
	reading, err := b.Detector.AnalyzeBurst()
	if err != nil {
		if errors.Is(err, motion.ErrInsufficientData) {
			monitoring.Debugf("reporter: burst window still warming up")
			return
		}
		monitoring.Logf("reporter: burst analysis failed: %v", err)
		return
	}

	if err := b.Store.RecordTremorReading(reading); err != nil {
		monitoring.Logf("reporter: failed to store tremor reading: %v", err)
		return
	}
	monitoring.Debugf("reporter: recorded tremor status=%s magnitude=%.1f frequency=%.1f",
		reading.Status, reading.Magnitude, reading.Frequency)
}
