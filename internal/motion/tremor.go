package motion

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// estimateTremor computes a 0-10 severity score and a dominant oscillation
// frequency from a sedentary window of detrended values. durationSeconds is
// the span covered by the window.
//
// Magnitude is the mean absolute deviation of the zero-mean window mapped
// through the scaling factor. It is always computed for a sedentary window,
// independent of the detected frequency: reporting raw motion intensity
// even at non-tremor frequencies avoids clinically misleading zero outputs
// for genuine non-zero motion.
//
// Frequency uses zero-crossing counting with hysteresis: a crossing counts
// only on a transition from above +noiseFloor to below -noiseFloor or vice
// versa, which rejects crossings caused by baseline noise. Frequencies
// below the clinical tremor band are still reported (postural drift shows
// up as sub-tremor); callers apply the range filter downstream.
func estimateTremor(window []float64, durationSeconds float64, madScaling, noiseFloor float64) (magnitude, frequency float64) {
	mean := stat.Mean(window, nil)
	if !isFinite(mean) {
		mean = 0
	}

	var madSum float64
	for _, v := range window {
		if !isFinite(v) {
			continue
		}
		madSum += math.Abs(v - mean)
	}
	mad := madSum / float64(len(window))
	magnitude = math.Min(mad/madScaling*10, 10)
	if !isFinite(magnitude) || magnitude < 0 {
		magnitude = 0
	}

	crossings := 0
	// side tracks which hysteresis band the signal last occupied:
	// +1 above +noiseFloor, -1 below -noiseFloor, 0 before first excursion.
	side := 0
	for _, v := range window {
		c := v - mean
		switch {
		case c > noiseFloor:
			if side == -1 {
				crossings++
			}
			side = 1
		case c < -noiseFloor:
			if side == 1 {
				crossings++
			}
			side = -1
		}
	}

	if durationSeconds > 0 {
		frequency = (float64(crossings) / 2) / durationSeconds
	}
	if !isFinite(frequency) || frequency < 0 {
		frequency = 0
	}

	return roundTenth(magnitude), roundTenth(frequency)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
