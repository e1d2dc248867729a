package motion

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// magnitudeStage reduces a triaxial sample to a detrended scalar motion
// proxy. The gravity/offset component is removed by subtracting the mean of
// the current window; orientation drift is treated as constant within one
// short window, so the mean is recomputed per window rather than tracked as
// a running estimate.
type magnitudeStage struct {
	window    *Ring
	minCount  int
	prevValid float64
}

func newMagnitudeStage(capacity, minCount int) *magnitudeStage {
	return &magnitudeStage{
		window:   NewRing(capacity),
		minCount: minCount,
	}
}

// push ingests one sample and returns the detrended magnitude. ok is false
// while the window is below the minimum sample count (insufficient data).
// Corrupt components (NaN/Inf) are replaced by the previous valid magnitude
// rather than propagated.
func (m *magnitudeStage) push(x, y, z float64) (detrended float64, ok bool) {
	var mag float64
	if isFinite(x) && isFinite(y) && isFinite(z) {
		mag = math.Sqrt(x*x + y*y + z*z)
		m.prevValid = mag
	} else {
		mag = m.prevValid
	}

	m.window.Push(mag)
	if m.window.Len() < m.minCount {
		return 0, false
	}

	mean := stat.Mean(m.window.Slice(), nil)
	if !isFinite(mean) {
		return 0, false
	}
	return mag - mean, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
