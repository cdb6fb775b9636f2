package rotary

// DefaultCountsPerDetent is the number of quarter-steps per physical click
// of a typical mechanical encoder.
const DefaultCountsPerDetent = 4

// Detent turns a raw position stream into discrete clicks.
// It accumulates deltas between successive positions and emits a single
// step once the accumulated movement reaches the threshold in either direction.
type Detent struct {
	counts int
	last   int
	acc    int
	primed bool
}

// NewDetent creates a detent accumulator. Non-positive counts use the default.
func NewDetent(counts int) *Detent {
	if counts <= 0 {
		counts = DefaultCountsPerDetent
	}
	return &Detent{counts: counts}
}

// Feed takes the latest decoder position and returns +1 or -1 when a detent
// was crossed, otherwise 0. The first call only records the baseline.
func (d *Detent) Feed(position int) int {
	if !d.primed {
		d.last = position
		d.primed = true
		return 0
	}

	d.acc += position - d.last
	d.last = position

	if d.acc >= d.counts {
		d.acc = 0
		return 1
	}
	if d.acc <= -d.counts {
		d.acc = 0
		return -1
	}
	return 0
}

// Reset forgets the accumulated movement and re-baselines on the next Feed.
func (d *Detent) Reset() {
	d.acc = 0
	d.primed = false
}
