// Package challenge implements a single timed gesture round.
//
// A round is a small state machine (Pending -> Running -> Succeeded|TimedOut)
// advanced one poll iteration at a time by Tick. Run wraps Tick in the
// blocking busy-poll loop used on hardware; event-driven front ends call
// Tick directly from their own timer.
package challenge

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
)

// DefaultTwistThreshold is how many quarter-steps the knob must move
// (strictly more than) to count as a twist.
const DefaultTwistThreshold = 4

// ErrInvalidSpec is returned for a round without a real target or time.
var ErrInvalidSpec = errors.New("challenge: invalid round spec")

// State is the lifecycle state of a round.
type State int

const (
	Pending State = iota
	Running
	Succeeded
	TimedOut
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case TimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Succeeded || s == TimedOut
}

// Outcome is the result of a finished round.
type Outcome int

const (
	Success Outcome = iota
	Timeout
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "SUCCESS"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Spec describes what a round asks for and how long the player has.
type Spec struct {
	Target gesture.Gesture
	Limit  float64 // seconds
}

// Validate checks that the target is a real gesture and the limit is positive.
func (s Spec) Validate() error {
	if !s.Target.IsTarget() {
		return fmt.Errorf("%w: target %v", ErrInvalidSpec, s.Target)
	}
	if s.Limit <= 0 {
		return fmt.Errorf("%w: limit %.3fs", ErrInvalidSpec, s.Limit)
	}
	return nil
}

// Encoder is the read side of the rotary decoder.
type Encoder interface {
	Position() int
}

// ClassifyFunc returns the gesture currently being held.
type ClassifyFunc func() gesture.Gesture

// Round is one challenge in progress.
type Round struct {
	spec      Spec
	twist     int
	state     State
	startTime float64
	startPos  int
	lastNow   float64
}

// NewRound creates a pending round. A non-positive twist threshold uses the default.
// NONE is never a target: it is what the classifier reports at rest.
func NewRound(spec Spec, twistThreshold int) (*Round, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if twistThreshold <= 0 {
		twistThreshold = DefaultTwistThreshold
	}
	return &Round{spec: spec, twist: twistThreshold}, nil
}

// Spec returns the round's target and limit.
func (r *Round) Spec() Spec {
	return r.spec
}

// State returns the current state.
func (r *Round) State() State {
	return r.state
}

// Start moves a pending round to Running, recording the start time and, for
// twist rounds, the knob position to measure from. Starting twice is a no-op.
func (r *Round) Start(now float64, enc Encoder) {
	if r.state != Pending {
		return
	}
	r.startTime = now
	r.lastNow = now
	if r.spec.Target == gesture.Twist && enc != nil {
		r.startPos = enc.Position()
	}
	r.state = Running
}

// Tick runs one poll iteration at time now.
// The success check happens before the deadline check, so a gesture seen on
// the tick that reaches the limit still wins.
func (r *Round) Tick(now float64, enc Encoder, classify ClassifyFunc) State {
	if r.state == Pending {
		r.Start(now, enc)
	}
	if r.state != Running {
		return r.state
	}
	r.lastNow = now

	if r.matched(enc, classify) {
		r.state = Succeeded
		return r.state
	}
	if now-r.startTime >= r.spec.Limit {
		r.state = TimedOut
	}
	return r.state
}

// Elapsed returns seconds between the start and the last tick.
func (r *Round) Elapsed() float64 {
	if r.state == Pending {
		return 0
	}
	return r.lastNow - r.startTime
}

// Remaining returns the seconds left before the deadline, never negative.
func (r *Round) Remaining() float64 {
	left := r.spec.Limit - r.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// Outcome maps a terminal state to an Outcome. ok is false while the round is live.
func (r *Round) Outcome() (o Outcome, ok bool) {
	switch r.state {
	case Succeeded:
		return Success, true
	case TimedOut:
		return Timeout, true
	default:
		return Timeout, false
	}
}

func (r *Round) matched(enc Encoder, classify ClassifyFunc) bool {
	if r.spec.Target == gesture.Twist {
		if enc == nil {
			return false
		}
		delta := enc.Position() - r.startPos
		if delta < 0 {
			delta = -delta
		}
		return delta > r.twist
	}
	if classify == nil {
		return false
	}
	return classify() == r.spec.Target
}
