package session

import (
	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
)

// Event is a notification for the presentation layer.
// The core never formats or draws anything itself.
type Event interface {
	sessionEvent()
}

// MenuShown is sent when the difficulty menu is (re)displayed.
type MenuShown struct {
	Difficulty config.Difficulty
}

func (MenuShown) sessionEvent() {}

// CountdownTick is sent once per countdown step before the first round.
type CountdownTick struct {
	Remaining int
	Lit       bool // LED on (first half of the step) or off
}

func (CountdownTick) sessionEvent() {}

// RoundStarted is sent when a round begins.
type RoundStarted struct {
	Level  int
	Target gesture.Gesture
	Limit  float64
}

func (RoundStarted) sessionEvent() {}

// RoundResolved is sent after a round finishes and progression is applied.
type RoundResolved struct {
	Target  gesture.Gesture
	Outcome challenge.Outcome
	Level   int // level after the update
	Score   int
}

func (RoundResolved) sessionEvent() {}

// SessionEnded is sent once when the session reaches Won or Lost.
type SessionEnded struct {
	Won   bool
	Score int
	Level int
}

func (SessionEnded) sessionEvent() {}

// SensorFault is sent once when the accelerometer is missing at startup.
// It is a persistent error state: no session will start.
type SensorFault struct {
	Err error
}

func (SensorFault) sessionEvent() {}

// Celebrate is one frame of the win animation.
type Celebrate struct {
	Color core.Color
	Score int
}

func (Celebrate) sessionEvent() {}

// Sink receives presentation events.
type Sink interface {
	Notify(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Notify calls f(ev).
func (f SinkFunc) Notify(ev Event) {
	f(ev)
}

type nopSink struct{}

func (nopSink) Notify(Event) {}
