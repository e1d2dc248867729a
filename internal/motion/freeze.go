package motion

import "time"

// Callbacks notify the intervention coordinator of freeze-state
// transitions. Nil functions are skipped. Callbacks run while the detector
// lock is held, so they must not call back into the detector.
type Callbacks struct {
	OnFreezeStarted func()
	OnFreezeEnded   func(duration time.Duration)
}

// freezeClassifier is the two-state freeze detection machine. It is
// evaluated on each new sample using the current ~1-second window's band
// powers and fires transition callbacks exactly once per state change.
type freezeClassifier struct {
	state         FreezeState
	enteredMillis int64
	cb            Callbacks
}

func newFreezeClassifier(cb Callbacks) *freezeClassifier {
	return &freezeClassifier{state: FreezeStateNormal, cb: cb}
}

// evaluate applies the two-gate rejection policy and the freeze ratio, in
// that order, then transitions the state machine. Every power and ratio is
// guarded against NaN/Inf and fails safe to normal.
//
//  1. Motion gate: pFreeze below the gate means standing still.
//  2. Walk gate: pLoco above the gate means walking normally.
//  3. Freeze ratio: pFreeze/pLoco above the threshold means freezing. A
//     near-zero pLoco is treated as normal here; a genuinely quiet signal
//     was already accepted by gate 1, so this only suppresses
//     divide-by-zero false positives.
func (f *freezeClassifier) evaluate(pLoco, pFreeze float64, tsMillis int64, cfg *Config) FreezeState {
	next := FreezeStateNormal

	switch {
	case !isFinite(pFreeze) || !isFinite(pLoco):
		// fail safe
	case pFreeze < cfg.MotionGate:
		// standing still
	case pLoco > cfg.WalkGate:
		// walking normally
	case pLoco < 1e-12:
		// quiet locomotor band with pFreeze past gate 1: avoid the
		// unstable ratio rather than alarm on it
	default:
		index := pFreeze / pLoco
		if isFinite(index) && index > cfg.FreezeRatio {
			next = FreezeStateFreezing
		}
	}

	f.transition(next, tsMillis)
	return f.state
}

// transition moves to next, firing callbacks on edges only. Repeated
// same-state evaluations are no-ops.
func (f *freezeClassifier) transition(next FreezeState, tsMillis int64) {
	if next == f.state {
		return
	}
	switch next {
	case FreezeStateFreezing:
		f.enteredMillis = tsMillis
		if f.cb.OnFreezeStarted != nil {
			f.cb.OnFreezeStarted()
		}
	case FreezeStateNormal:
		if f.cb.OnFreezeEnded != nil {
			d := time.Duration(tsMillis-f.enteredMillis) * time.Millisecond
			if d < 0 {
				d = 0
			}
			f.cb.OnFreezeEnded(d)
		}
	}
	f.state = next
}
