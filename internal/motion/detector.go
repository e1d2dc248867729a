package motion

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInsufficientData means the window has not yet reached the minimum
// sample count. It is "no verdict yet", never a negative result.
var ErrInsufficientData = errors.New("motion: insufficient data in window")

// Detector is one monitoring session. It owns the rolling windows, the
// filter state and the freeze state machine; construct one per session and
// pass it by reference. All state is created here and discarded when the
// session ends; nothing persists across sessions.
//
// A single mutex spans append+evaluate so a concurrent sample producer and
// a burst reader cannot interleave mid-update. Each evaluation is bounded
// (O(window) worst case), so no cancellation is needed.
type Detector struct {
	mu  sync.Mutex
	cfg Config

	mag      *magnitudeStage
	splitter *bandSplitter

	locoWin   *Ring
	freezeWin *Ring

	tremorWin *Ring
	tremorTS  *ringInt64

	classifier *freezeClassifier

	sampleCount  int64
	lastTSMillis int64
}

// NewDetector validates cfg and builds a session. Invalid configuration is
// fatal at construction, not at runtime.
func NewDetector(cfg Config, cb Callbacks) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("motion: invalid config: %w", err)
	}
	return &Detector{
		cfg:        cfg,
		mag:        newMagnitudeStage(cfg.FreezeWindow, cfg.MinWindowSamples),
		splitter:   newBandSplitter(cfg.SmoothingAlpha),
		locoWin:    NewRing(cfg.FreezeWindow),
		freezeWin:  NewRing(cfg.FreezeWindow),
		tremorWin:  NewRing(cfg.TremorWindow),
		tremorTS:   newRingInt64(cfg.TremorWindow),
		classifier: newFreezeClassifier(cb),
	}, nil
}

// OnSample ingests one sensor reading and drives the freeze pipeline:
// magnitude detrend, band split, band powers, gate evaluation. Samples
// below the warmup count update the windows without producing a verdict.
func (d *Detector) OnSample(x, y, z float64, tsMillis int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sampleCount++
	d.lastTSMillis = tsMillis

	detrended, ok := d.mag.push(x, y, z)
	if !ok {
		return
	}

	loco, residual := d.splitter.update(detrended)
	d.locoWin.Push(loco)
	d.freezeWin.Push(residual)
	d.tremorWin.Push(detrended)
	d.tremorTS.Push(tsMillis)

	if d.locoWin.Len() < d.cfg.MinWindowSamples {
		return
	}

	pLoco := meanSquare(d.locoWin.Slice())
	pFreeze := meanSquare(d.freezeWin.Slice())
	d.classifier.evaluate(pLoco, pFreeze, tsMillis, &d.cfg)
}

// AnalyzeBurst runs the activity gate and tremor estimator over the
// accumulated burst window. The caller owns the cadence. Returns
// ErrInsufficientData until the window holds the minimum sample count.
func (d *Detector) AnalyzeBurst() (TremorReading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	values := d.tremorWin.Slice()
	if len(values) < d.cfg.MinWindowSamples {
		return TremorReading{}, ErrInsufficientData
	}

	reading := TremorReading{
		Status:          classifyActivity(values, d.cfg.WalkStdDev),
		TimestampMillis: d.lastTSMillis,
	}
	if reading.Status == ActivityActive {
		// Gait dominates the signal; a tremor estimate here would be a
		// false reading, so both fields stay zero.
		return reading, nil
	}

	ts := d.tremorTS.Slice()
	duration := float64(ts[len(ts)-1]-ts[0]) / 1000
	if duration <= 0 {
		duration = float64(len(values)) / d.cfg.SampleRateHz
	}

	reading.Magnitude, reading.Frequency = estimateTremor(
		values, duration, d.cfg.MADScaling, d.cfg.NoiseFloor)
	return reading, nil
}

// ApplyTuning replaces the configuration at runtime. Threshold-only changes
// keep all window contents; capacity changes rebuild the affected windows,
// which re-enters warmup for them.
func (d *Detector) ApplyTuning(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("motion: invalid config: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if cfg.FreezeWindow != d.cfg.FreezeWindow || cfg.MinWindowSamples != d.cfg.MinWindowSamples {
		d.mag = newMagnitudeStage(cfg.FreezeWindow, cfg.MinWindowSamples)
		d.locoWin = NewRing(cfg.FreezeWindow)
		d.freezeWin = NewRing(cfg.FreezeWindow)
	}
	if cfg.TremorWindow != d.cfg.TremorWindow {
		d.tremorWin = NewRing(cfg.TremorWindow)
		d.tremorTS = newRingInt64(cfg.TremorWindow)
	}
	d.splitter.alpha = cfg.SmoothingAlpha
	d.cfg = cfg
	return nil
}

// State returns the current freeze state.
func (d *Detector) State() FreezeState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.state
}

// SampleCount returns the number of samples ingested this session.
func (d *Detector) SampleCount() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleCount
}

// Config returns a copy of the current configuration.
func (d *Detector) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// meanSquare is the band power of a window. Non-finite members are skipped
// so one corrupt value cannot poison the verdict.
func meanSquare(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var s float64
	for _, v := range window {
		if !isFinite(v) {
			continue
		}
		s += v * v
	}
	return s / float64(len(window))
}
