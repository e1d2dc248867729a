package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stridesense/gaitwatch/internal/motion"
)

// TuningConfig is the root configuration for detector tuning. The schema
// matches the /api/params endpoint so the same JSON serves both startup
// configuration and runtime updates. All fields are optional; omitted
// fields fall back to the operating defaults.
//
// The freeze gates and the tremor scaling factor are open calibration
// parameters awaiting validation against clinical ground truth, which is
// why every one of them is adjustable per deployment instead of compiled
// in.
type TuningConfig struct {
	// Sampling and window params
	SampleRateHz     *float64 `json:"sample_rate_hz,omitempty"`
	FreezeWindow     *int     `json:"freeze_window,omitempty"`
	TremorWindow     *int     `json:"tremor_window,omitempty"`
	MinWindowSamples *int     `json:"min_window_samples,omitempty"`

	// Band separation
	SmoothingAlpha *float64 `json:"smoothing_alpha,omitempty"`

	// Freeze gates
	MotionGate  *float64 `json:"motion_gate,omitempty"`
	WalkGate    *float64 `json:"walk_gate,omitempty"`
	FreezeRatio *float64 `json:"freeze_ratio,omitempty"`

	// Tremor params
	WalkStdDev      *float64 `json:"walk_stddev,omitempty"`
	MADScaling      *float64 `json:"mad_scaling,omitempty"`
	NoiseFloor      *float64 `json:"noise_floor,omitempty"`
	MinTremorFreqHz *float64 `json:"min_tremor_freq_hz,omitempty"`

	// BurstInterval is the tremor analysis cadence, a duration string
	// like "10s".
	BurstInterval *string `json:"burst_interval,omitempty"`
}

// Load reads a TuningConfig from a JSON file. Partial configs are safe:
// omitted fields keep their defaults. Invalid values are fatal here, not at
// runtime.
func Load(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields this package owns and defers the detector
// parameters to motion.Config, so the two layers cannot disagree about what
// is legal.
func (c *TuningConfig) Validate() error {
	if c.BurstInterval != nil && *c.BurstInterval != "" {
		if _, err := time.ParseDuration(*c.BurstInterval); err != nil {
			return fmt.Errorf("invalid burst_interval %q: %w", *c.BurstInterval, err)
		}
	}
	return c.Motion().Validate()
}

// Motion materializes the detector configuration, applying defaults for
// every unset field.
func (c *TuningConfig) Motion() motion.Config {
	return c.ApplyTo(motion.DefaultConfig())
}

// ApplyTo overlays the set fields onto base. Runtime updates from
// /api/params go through this so a partial body only changes what it
// names.
func (c *TuningConfig) ApplyTo(base motion.Config) motion.Config {
	out := base
	if c.SampleRateHz != nil {
		out.SampleRateHz = *c.SampleRateHz
	}
	if c.FreezeWindow != nil {
		out.FreezeWindow = *c.FreezeWindow
	}
	if c.TremorWindow != nil {
		out.TremorWindow = *c.TremorWindow
	}
	if c.MinWindowSamples != nil {
		out.MinWindowSamples = *c.MinWindowSamples
	}
	if c.SmoothingAlpha != nil {
		out.SmoothingAlpha = *c.SmoothingAlpha
	}
	if c.MotionGate != nil {
		out.MotionGate = *c.MotionGate
	}
	if c.WalkGate != nil {
		out.WalkGate = *c.WalkGate
	}
	if c.FreezeRatio != nil {
		out.FreezeRatio = *c.FreezeRatio
	}
	if c.WalkStdDev != nil {
		out.WalkStdDev = *c.WalkStdDev
	}
	if c.MADScaling != nil {
		out.MADScaling = *c.MADScaling
	}
	if c.NoiseFloor != nil {
		out.NoiseFloor = *c.NoiseFloor
	}
	if c.MinTremorFreqHz != nil {
		out.MinTremorFreqHz = *c.MinTremorFreqHz
	}
	return out
}

// GetBurstInterval parses and returns the tremor analysis cadence.
func (c *TuningConfig) GetBurstInterval() time.Duration {
	if c.BurstInterval == nil || *c.BurstInterval == "" {
		return 10 * time.Second // default
	}
	d, err := time.ParseDuration(*c.BurstInterval)
	if err != nil {
		return 10 * time.Second // default on parse error
	}
	return d
}

// FromMotion builds a fully-populated TuningConfig mirroring cfg, used by
// the params endpoint to report effective values.
func FromMotion(cfg motion.Config, burstInterval time.Duration) *TuningConfig {
	interval := burstInterval.String()
	return &TuningConfig{
		SampleRateHz:     &cfg.SampleRateHz,
		FreezeWindow:     &cfg.FreezeWindow,
		TremorWindow:     &cfg.TremorWindow,
		MinWindowSamples: &cfg.MinWindowSamples,
		SmoothingAlpha:   &cfg.SmoothingAlpha,
		MotionGate:       &cfg.MotionGate,
		WalkGate:         &cfg.WalkGate,
		FreezeRatio:      &cfg.FreezeRatio,
		WalkStdDev:       &cfg.WalkStdDev,
		MADScaling:       &cfg.MADScaling,
		NoiseFloor:       &cfg.NoiseFloor,
		MinTremorFreqHz:  &cfg.MinTremorFreqHz,
		BurstInterval:    &interval,
	}
}
