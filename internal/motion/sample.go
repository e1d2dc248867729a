// Package motion implements the streaming motion-signal classifier for
// wrist-worn triaxial accelerometer data. It detects freezing-of-gait (FoG)
// episodes on a per-sample path and estimates resting-tremor magnitude and
// frequency on a periodic burst path. All processing is causal and runs on
// bounded memory.
package motion

// Sample is a single triaxial accelerometer reading. Values are in m/s²
// (gravity included); TimestampMillis is the device timestamp.
type Sample struct {
	X               float64
	Y               float64
	Z               float64
	TimestampMillis int64
}

// ActivityStatus classifies a burst window as at-rest or in voluntary motion.
type ActivityStatus string

const (
	// ActivitySedentary means the window variance is below the walking
	// threshold and tremor assessment is meaningful.
	ActivitySedentary ActivityStatus = "sedentary"
	// ActivityActive means voluntary motion dominates the window; tremor
	// assessment is suspended because gait swings would register as tremor.
	ActivityActive ActivityStatus = "active"
)

// FreezeState is the classifier output state.
type FreezeState string

const (
	FreezeStateNormal   FreezeState = "normal"
	FreezeStateFreezing FreezeState = "freezing"
)

// TremorReading is the result of one burst analysis. Magnitude is a 0-10
// severity score, Frequency the dominant oscillation in Hz. When Status is
// ActivityActive both are forced to zero. Both are rounded to one decimal.
type TremorReading struct {
	Status          ActivityStatus `json:"status"`
	Magnitude       float64        `json:"magnitude"`
	Frequency       float64        `json:"frequency"`
	TimestampMillis int64          `json:"timestamp_ms"`
}
