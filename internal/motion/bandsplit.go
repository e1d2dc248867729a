package motion

// bandSplitter separates the detrended scalar stream into a slow locomotor
// component (~0.5-1.5 Hz) and a faster freeze/tremor residual (~1.5-8 Hz)
// with a single-pole EMA. The coarse separation is deliberate: it fits a
// continuously-running bounded-memory loop in O(1) per sample, and the
// freeze gates downstream compensate for the wider transition band.
type bandSplitter struct {
	alpha float64
	// locomotorEstimate is the EMA state, exclusively owned by this
	// splitter and kept finite by update.
	locomotorEstimate float64
}

func newBandSplitter(alpha float64) *bandSplitter {
	return &bandSplitter{alpha: alpha}
}

// update feeds one detrended value and returns the locomotor component and
// the freeze/tremor residual. A non-finite input leaves the filter state
// untouched and reflects the previous estimate.
func (b *bandSplitter) update(s float64) (locomotor, residual float64) {
	if !isFinite(s) {
		return b.locomotorEstimate, 0
	}
	b.locomotorEstimate = b.alpha*s + (1-b.alpha)*b.locomotorEstimate
	if !isFinite(b.locomotorEstimate) {
		b.locomotorEstimate = 0
	}
	return b.locomotorEstimate, s - b.locomotorEstimate
}
