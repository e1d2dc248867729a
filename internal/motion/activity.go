package motion

import "gonum.org/v1/gonum/stat"

// classifyActivity gates tremor computation on signal variance. Voluntary
// gait produces large consistent swings that would otherwise register as
// tremor or spuriously trigger freeze detection. Pure function of the
// window; callers guarantee at least the minimum sample count.
func classifyActivity(window []float64, walkStdDev float64) ActivityStatus {
	sd := stat.StdDev(window, nil)
	if isFinite(sd) && sd > walkStdDev {
		return ActivityActive
	}
	return ActivitySedentary
}
