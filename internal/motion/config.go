package motion

import "fmt"

// Config holds all tuning parameters for a Detector. The three freeze gates
// and the tremor scaling factor are open calibration parameters: defaults
// come from bench traces, not validated ground truth, and deployments are
// expected to adjust them at runtime via ApplyTuning.
type Config struct {
	// SampleRateHz is the nominal sensor rate, used only as a fallback when
	// window timestamps are degenerate.
	SampleRateHz float64

	// FreezeWindow is the per-sample window capacity (~1s at nominal rate).
	FreezeWindow int
	// TremorWindow is the burst window capacity (~10s at nominal rate).
	TremorWindow int
	// MinWindowSamples is the minimum window length before any verdict.
	MinWindowSamples int

	// SmoothingAlpha is the EMA constant separating the locomotor band
	// (~0.5-1.5 Hz) from the freeze/tremor residual (~1.5-8 Hz).
	SmoothingAlpha float64

	// MotionGate: freeze-band power below this means standing still.
	MotionGate float64
	// WalkGate: locomotor-band power above this means walking normally.
	WalkGate float64
	// FreezeRatio: freeze index (pFreeze/pLoco) above this means freezing.
	FreezeRatio float64

	// WalkStdDev is the detrended-signal standard deviation above which a
	// burst window counts as voluntary motion.
	WalkStdDev float64
	// MADScaling maps mean absolute deviation onto the 0-10 severity scale.
	MADScaling float64
	// NoiseFloor is the zero-crossing hysteresis threshold.
	NoiseFloor float64
	// MinTremorFreqHz is the lower edge of the clinical tremor band.
	// Frequencies below it are still reported; consumers filter.
	MinTremorFreqHz float64
}

// DefaultConfig returns the operating defaults. The freeze gates reflect the
// lenient revision (0.1/2.0/1.5); the earlier stricter set under-triggered.
func DefaultConfig() Config {
	return Config{
		SampleRateHz:     50,
		FreezeWindow:     50,
		TremorWindow:     500,
		MinWindowSamples: 50,
		SmoothingAlpha:   0.15,
		MotionGate:       0.1,
		WalkGate:         2.0,
		FreezeRatio:      1.5,
		WalkStdDev:       1.5,
		MADScaling:       1.5,
		NoiseFloor:       0.05,
		MinTremorFreqHz:  3.0,
	}
}

// Validate rejects configurations that would corrupt the pipeline. Called
// once at construction and again on every runtime update.
func (c Config) Validate() error {
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("sample rate must be positive, got %f", c.SampleRateHz)
	}
	if c.FreezeWindow <= 0 {
		return fmt.Errorf("freeze window capacity must be positive, got %d", c.FreezeWindow)
	}
	if c.TremorWindow <= 0 {
		return fmt.Errorf("tremor window capacity must be positive, got %d", c.TremorWindow)
	}
	if c.MinWindowSamples <= 0 {
		return fmt.Errorf("minimum window samples must be positive, got %d", c.MinWindowSamples)
	}
	if c.MinWindowSamples > c.FreezeWindow {
		return fmt.Errorf("minimum window samples (%d) exceeds freeze window capacity (%d)",
			c.MinWindowSamples, c.FreezeWindow)
	}
	if c.SmoothingAlpha <= 0 || c.SmoothingAlpha >= 1 {
		return fmt.Errorf("smoothing alpha must be in (0,1), got %f", c.SmoothingAlpha)
	}
	if c.MotionGate < 0 || c.WalkGate < 0 || c.FreezeRatio <= 0 {
		return fmt.Errorf("freeze gates must be non-negative with positive ratio, got %f/%f/%f",
			c.MotionGate, c.WalkGate, c.FreezeRatio)
	}
	if c.WalkStdDev <= 0 {
		return fmt.Errorf("walking stddev threshold must be positive, got %f", c.WalkStdDev)
	}
	if c.MADScaling <= 0 {
		return fmt.Errorf("MAD scaling factor must be positive, got %f", c.MADScaling)
	}
	if c.NoiseFloor < 0 {
		return fmt.Errorf("noise floor must be non-negative, got %f", c.NoiseFloor)
	}
	if c.MinTremorFreqHz < 0 {
		return fmt.Errorf("minimum tremor frequency must be non-negative, got %f", c.MinTremorFreqHz)
	}
	return nil
}
