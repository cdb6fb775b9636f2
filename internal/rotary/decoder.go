// Package rotary decodes a two-phase quadrature rotary control into a
// signed position count.
//
// The decoder is polled, not interrupt driven. Update must observe every
// distinct phase between two reads of Position; if the lines bounce across
// non-adjacent phases faster than the polling rate, the skipped step is
// absorbed without a count and the direction of that movement is lost.
// This is an accepted limitation of polled decoding.
package rotary

// Phase values of the combined (a<<1 | b) line state.
const (
	Phase00 uint8 = 0
	Phase01 uint8 = 1
	Phase10 uint8 = 2
	Phase11 uint8 = 3
)

// forward maps each phase to the next phase in the increasing direction:
// 00 -> 01 -> 11 -> 10 -> 00.
var forward = [4]uint8{
	Phase00: Phase01,
	Phase01: Phase11,
	Phase11: Phase10,
	Phase10: Phase00,
}

// backward is the mirror of forward: 00 -> 10 -> 11 -> 01 -> 00.
var backward = [4]uint8{
	Phase00: Phase10,
	Phase10: Phase11,
	Phase11: Phase01,
	Phase01: Phase00,
}

// Decoder tracks the position of a quadrature encoder.
type Decoder struct {
	position  int
	lastPhase uint8
}

// NewDecoder creates a decoder seeded with the current line levels.
// Position starts at zero.
func NewDecoder(a, b bool) *Decoder {
	return &Decoder{lastPhase: combine(a, b)}
}

// Update feeds one sample of both phase lines.
// Valid forward edges add one, valid backward edges subtract one, anything
// else (a skipped step) only moves the remembered phase.
func (d *Decoder) Update(a, b bool) {
	s := combine(a, b)
	if s == d.lastPhase {
		return
	}

	switch s {
	case forward[d.lastPhase]:
		d.position++
	case backward[d.lastPhase]:
		d.position--
	}
	d.lastPhase = s
}

// Position returns the accumulated count of accepted quarter-steps.
func (d *Decoder) Position() int {
	return d.position
}

// Phase returns the last observed combined phase.
func (d *Decoder) Phase() uint8 {
	return d.lastPhase
}

// Rebaseline zeroes the position without touching the phase.
func (d *Decoder) Rebaseline() {
	d.position = 0
}

// NextPhase returns the phase one quarter-step away from p in the given
// direction (+1 forward, -1 backward). Used to synthesize valid input.
func NextPhase(p uint8, dir int) uint8 {
	if dir < 0 {
		return backward[p&3]
	}
	return forward[p&3]
}

// Lines splits a combined phase back into its two line levels.
func Lines(p uint8) (a, b bool) {
	return p&2 != 0, p&1 != 0
}

func combine(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 2
	}
	if b {
		s |= 1
	}
	return s
}
