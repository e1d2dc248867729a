package motion

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedSinusoid drives the detector with gravity plus an oscillation along
// the vertical axis, at the nominal 50 Hz (20 ms steps).
func feedSinusoid(d *Detector, freqHz, amplitude float64, n int, startMillis int64) int64 {
	ts := startMillis
	for i := 0; i < n; i++ {
		z := 9.81 + amplitude*math.Sin(2*math.Pi*freqHz*float64(i)/50)
		d.OnSample(0, 0, z, ts)
		ts += 20
	}
	return ts
}

func feedConstant(d *Detector, n int, startMillis int64) int64 {
	ts := startMillis
	for i := 0; i < n; i++ {
		d.OnSample(0, 0, 9.81, ts)
		ts += 20
	}
	return ts
}

func TestNewDetectorRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"zero freeze window":       func(c *Config) { c.FreezeWindow = 0 },
		"negative tremor window":   func(c *Config) { c.TremorWindow = -1 },
		"alpha out of range":       func(c *Config) { c.SmoothingAlpha = 1.5 },
		"zero mad scaling":         func(c *Config) { c.MADScaling = 0 },
		"min count beyond window":  func(c *Config) { c.MinWindowSamples = 100; c.FreezeWindow = 50 },
		"negative noise floor":     func(c *Config) { c.NoiseFloor = -0.01 },
		"zero walk stddev":         func(c *Config) { c.WalkStdDev = 0 },
		"non-positive sample rate": func(c *Config) { c.SampleRateHz = 0 },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := NewDetector(cfg, Callbacks{})
			assert.Error(t, err)
		})
	}
}

func TestDetectorConstantInputIsSedentaryAndNormal(t *testing.T) {
	t.Parallel()

	var started int
	d, err := NewDetector(DefaultConfig(), Callbacks{
		OnFreezeStarted: func() { started++ },
	})
	require.NoError(t, err)

	feedConstant(d, 600, 0)

	reading, err := d.AnalyzeBurst()
	require.NoError(t, err)
	assert.Equal(t, ActivitySedentary, reading.Status)
	assert.Zero(t, reading.Magnitude)
	assert.Zero(t, reading.Frequency)

	assert.Equal(t, FreezeStateNormal, d.State())
	assert.Zero(t, started)
}

func TestDetectorInsufficientDataBeforeWarmup(t *testing.T) {
	t.Parallel()

	d, err := NewDetector(DefaultConfig(), Callbacks{})
	require.NoError(t, err)

	feedConstant(d, 10, 0)
	_, err = d.AnalyzeBurst()
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDetectorTremorSinusoid(t *testing.T) {
	t.Parallel()

	d, err := NewDetector(DefaultConfig(), Callbacks{})
	require.NoError(t, err)

	// 6 Hz tremor-band oscillation, amplitude well below the walking gate.
	feedSinusoid(d, 6, 1.0, 600, 0)

	reading, err := d.AnalyzeBurst()
	require.NoError(t, err)
	assert.Equal(t, ActivitySedentary, reading.Status)
	assert.InDelta(t, 6.0, reading.Frequency, 0.5)
	assert.Greater(t, reading.Magnitude, 0.0)
}

func TestDetectorActiveWindowSuppressesTremor(t *testing.T) {
	t.Parallel()

	d, err := NewDetector(DefaultConfig(), Callbacks{})
	require.NoError(t, err)

	// Large swings: detrended stddev far above the 1.5 walking threshold.
	feedSinusoid(d, 2, 6.0, 600, 0)

	reading, err := d.AnalyzeBurst()
	require.NoError(t, err)
	assert.Equal(t, ActivityActive, reading.Status)
	assert.Zero(t, reading.Magnitude)
	assert.Zero(t, reading.Frequency)
}

func TestDetectorFreezeEpisodeLifecycle(t *testing.T) {
	t.Parallel()

	var started, ended int
	var duration time.Duration
	d, err := NewDetector(DefaultConfig(), Callbacks{
		OnFreezeStarted: func() { started++ },
		OnFreezeEnded:   func(dur time.Duration) { ended++; duration = dur },
	})
	require.NoError(t, err)

	// Freeze signature: tremor-band trembling with no locomotor drive.
	ts := feedSinusoid(d, 6, 1.0, 600, 0)
	require.Equal(t, FreezeStateFreezing, d.State())
	require.Equal(t, 1, started, "repeated freezing evaluations must not refire")
	require.Zero(t, ended)

	// Signal quiets down: the motion gate returns the machine to normal.
	feedConstant(d, 200, ts)
	assert.Equal(t, FreezeStateNormal, d.State())
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, ended)
	assert.Greater(t, duration, time.Duration(0))
}

func TestDetectorCorruptSamplesDoNotPanicOrAlarm(t *testing.T) {
	t.Parallel()

	var started int
	d, err := NewDetector(DefaultConfig(), Callbacks{
		OnFreezeStarted: func() { started++ },
	})
	require.NoError(t, err)

	ts := feedConstant(d, 300, 0)
	for i := 0; i < 100; i++ {
		d.OnSample(math.NaN(), math.Inf(1), math.NaN(), ts)
		ts += 20
	}
	feedConstant(d, 100, ts)

	assert.Equal(t, FreezeStateNormal, d.State())
	assert.Zero(t, started)

	reading, err := d.AnalyzeBurst()
	require.NoError(t, err)
	assert.Zero(t, reading.Magnitude)
}

func TestDetectorDeterministicAcrossInstances(t *testing.T) {
	t.Parallel()

	run := func() ([]FreezeState, TremorReading) {
		d, err := NewDetector(DefaultConfig(), Callbacks{})
		require.NoError(t, err)

		states := make([]FreezeState, 0, 900)
		ts := int64(0)
		for i := 0; i < 900; i++ {
			// Fixed pseudo-random-ish sequence: mix of drift and tremor.
			z := 9.81 + 0.8*math.Sin(2*math.Pi*5*float64(i)/50) + 0.3*math.Sin(float64(i)*0.013)
			d.OnSample(0.1, -0.2, z, ts)
			states = append(states, d.State())
			ts += 20
		}
		reading, err := d.AnalyzeBurst()
		require.NoError(t, err)
		return states, reading
	}

	statesA, readingA := run()
	statesB, readingB := run()
	assert.Empty(t, cmp.Diff(statesA, statesB))
	assert.Equal(t, readingA, readingB)
}

func TestDetectorApplyTuning(t *testing.T) {
	t.Parallel()

	t.Run("invalid update rejected, old config kept", func(t *testing.T) {
		t.Parallel()
		d, err := NewDetector(DefaultConfig(), Callbacks{})
		require.NoError(t, err)

		bad := DefaultConfig()
		bad.FreezeRatio = -1
		assert.Error(t, d.ApplyTuning(bad))
		assert.Equal(t, DefaultConfig(), d.Config())
	})

	t.Run("threshold change applies without losing windows", func(t *testing.T) {
		t.Parallel()
		d, err := NewDetector(DefaultConfig(), Callbacks{})
		require.NoError(t, err)
		feedConstant(d, 600, 0)

		cfg := DefaultConfig()
		cfg.MotionGate = 0.5
		require.NoError(t, d.ApplyTuning(cfg))

		// Burst window survives a threshold-only update.
		_, err = d.AnalyzeBurst()
		assert.NoError(t, err)
		assert.InDelta(t, 0.5, d.Config().MotionGate, 0)
	})

	t.Run("capacity change re-enters warmup", func(t *testing.T) {
		t.Parallel()
		d, err := NewDetector(DefaultConfig(), Callbacks{})
		require.NoError(t, err)
		feedConstant(d, 600, 0)

		cfg := DefaultConfig()
		cfg.TremorWindow = 250
		require.NoError(t, d.ApplyTuning(cfg))

		_, err = d.AnalyzeBurst()
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
