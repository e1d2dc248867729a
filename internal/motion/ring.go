package motion

// Ring is a fixed-capacity FIFO window over float64 scalars. Once full, each
// push evicts the oldest value. Slice returns the contents in insertion
// order, so chronological order is preserved for window computations.
type Ring struct {
	data []float64
	pos  int
	full bool
}

// NewRing creates a Ring with the given capacity. Capacity must be positive;
// the Detector constructor validates this before building rings.
func NewRing(capacity int) *Ring {
	return &Ring{data: make([]float64, capacity)}
}

// Push appends a value, evicting the oldest when at capacity.
func (r *Ring) Push(v float64) {
	r.data[r.pos] = v
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
		r.full = true
	}
}

// Len returns the number of stored values, never exceeding capacity.
func (r *Ring) Len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.data) }

// Slice returns the stored values oldest-first.
func (r *Ring) Slice() []float64 {
	n := r.Len()
	out := make([]float64, n)
	if r.full {
		copy(out, r.data[r.pos:])
		copy(out[len(r.data)-r.pos:], r.data[:r.pos])
	} else {
		copy(out, r.data[:r.pos])
	}
	return out
}

// Reset discards all stored values but keeps the capacity.
func (r *Ring) Reset() {
	r.pos = 0
	r.full = false
}

// ringInt64 mirrors Ring for int64 timestamps. The tremor window keeps
// sample timestamps alongside values so burst duration comes from the data
// itself rather than an assumed rate.
type ringInt64 struct {
	data []int64
	pos  int
	full bool
}

func newRingInt64(capacity int) *ringInt64 {
	return &ringInt64{data: make([]int64, capacity)}
}

func (r *ringInt64) Push(v int64) {
	r.data[r.pos] = v
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
		r.full = true
	}
}

func (r *ringInt64) Len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

func (r *ringInt64) Slice() []int64 {
	n := r.Len()
	out := make([]int64, n)
	if r.full {
		copy(out, r.data[r.pos:])
		copy(out[len(r.data)-r.pos:], r.data[:r.pos])
	} else {
		copy(out, r.data[:r.pos])
	}
	return out
}
