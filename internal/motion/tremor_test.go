package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sinusoid(freqHz, amplitude, rateHz float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/rateHz)
	}
	return out
}

func TestEstimateTremorConstantWindow(t *testing.T) {
	t.Parallel()

	window := make([]float64, 500)
	for i := range window {
		window[i] = 9.81
	}

	mag, freq := estimateTremor(window, 10, 1.5, 0.05)
	assert.Zero(t, mag)
	assert.Zero(t, freq)
}

func TestEstimateTremorSinusoidFrequency(t *testing.T) {
	t.Parallel()

	const rate = 50.0
	for _, f := range []float64{3, 4, 5, 6} {
		window := sinusoid(f, 1.0, rate, 500)
		_, freq := estimateTremor(window, float64(len(window))/rate, 1.5, 0.05)
		assert.InDelta(t, f, freq, 0.5, "input %v Hz", f)
	}
}

func TestEstimateTremorMagnitudeMonotoneInAmplitude(t *testing.T) {
	t.Parallel()

	const rate = 50.0
	var prev float64
	for _, a := range []float64{0.3, 0.6, 1.2, 2.4} {
		window := sinusoid(5, a, rate, 500)
		mag, _ := estimateTremor(window, 10, 1.5, 0.05)
		require.Greater(t, mag, prev, "amplitude %v", a)
		require.LessOrEqual(t, mag, 10.0)
		prev = mag
	}
}

func TestEstimateTremorScoreSaturatesAtTen(t *testing.T) {
	t.Parallel()

	window := sinusoid(5, 50, 50, 500)
	mag, _ := estimateTremor(window, 10, 1.5, 0.05)
	assert.Equal(t, 10.0, mag)
}

func TestEstimateTremorHysteresisRejectsBaselineNoise(t *testing.T) {
	t.Parallel()

	// Oscillation entirely inside the ±0.05 hysteresis band: no crossings.
	window := sinusoid(5, 0.03, 50, 500)
	_, freq := estimateTremor(window, 10, 1.5, 0.05)
	assert.Zero(t, freq)
}

func TestEstimateTremorSubTremorFrequencyStillReported(t *testing.T) {
	t.Parallel()

	// 1 Hz postural drift is below the clinical band but must not be
	// zeroed; the consumer applies the range filter.
	window := sinusoid(1, 1.0, 50, 500)
	mag, freq := estimateTremor(window, 10, 1.5, 0.05)
	assert.InDelta(t, 1.0, freq, 0.5)
	assert.Greater(t, mag, 0.0)
}

func TestClassifyActivity(t *testing.T) {
	t.Parallel()

	t.Run("high variance is active", func(t *testing.T) {
		t.Parallel()
		window := make([]float64, 50)
		for i := range window {
			// Alternating ±2: stddev ≈ 2.0, above the 1.5 threshold.
			if i%2 == 0 {
				window[i] = 2
			} else {
				window[i] = -2
			}
		}
		assert.Equal(t, ActivityActive, classifyActivity(window, 1.5))
	})

	t.Run("quiet window is sedentary", func(t *testing.T) {
		t.Parallel()
		window := sinusoid(5, 0.5, 50, 50)
		assert.Equal(t, ActivitySedentary, classifyActivity(window, 1.5))
	})
}
