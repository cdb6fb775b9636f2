package tui

import (
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/rotary"
	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// Gravity is the resting reading of the simulated accelerometer, in m/s².
const Gravity = 9.80665

// Knob is a virtual rotary encoder. Key presses queue quarter-steps and
// every poll releases one edge, so the decoder sees a valid quadrature
// sequence no matter how fast keys repeat.
type Knob struct {
	phase   uint8
	pending int
}

// Turn queues steps quarter-steps; negative turns counter-clockwise.
func (k *Knob) Turn(steps int) {
	k.pending += steps
}

// Advance releases at most one queued edge.
func (k *Knob) Advance() {
	switch {
	case k.pending > 0:
		k.phase = rotary.NextPhase(k.phase, 1)
		k.pending--
	case k.pending < 0:
		k.phase = rotary.NextPhase(k.phase, -1)
		k.pending++
	}
}

// Pending returns the queued quarter-steps.
func (k *Knob) Pending() int {
	return k.pending
}

// Phases returns the current A and B line levels.
func (k *Knob) Phases() (a, b bool) {
	return rotary.Lines(k.phase)
}

// SampleFor returns an accelerometer reading that classifies as g.
// Non-tilt gestures give the board lying flat.
func SampleFor(g gesture.Gesture) tilt.Sample {
	switch g {
	case gesture.Left:
		return tilt.Sample{X: Gravity}
	case gesture.Right:
		return tilt.Sample{X: -Gravity}
	case gesture.Forward:
		return tilt.Sample{Y: -Gravity}
	case gesture.Back:
		return tilt.Sample{Y: Gravity}
	default:
		return tilt.Sample{Z: Gravity}
	}
}

// Accelerometer is a virtual sensor that holds a tilt for a while after
// each key press and then returns to flat.
type Accelerometer struct {
	tilt  gesture.Gesture
	until float64
	now   float64
}

// Tilt holds g until now+hold seconds.
func (a *Accelerometer) Tilt(g gesture.Gesture, now, hold float64) {
	a.tilt = g
	a.until = now + hold
}

// SetNow moves the sensor clock.
func (a *Accelerometer) SetNow(now float64) {
	a.now = now
}

// Current returns the gesture being held, or None.
func (a *Accelerometer) Current() gesture.Gesture {
	if a.now >= a.until {
		return gesture.None
	}
	return a.tilt
}

// ReadAcceleration implements tilt.Sensor. It never fails.
func (a *Accelerometer) ReadAcceleration() (tilt.Sample, error) {
	return SampleFor(a.Current()), nil
}
