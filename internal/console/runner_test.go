package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/rotary"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// fakeClock advances a little on every read so busy loops terminate.
type fakeClock struct {
	now  float64
	step float64
}

func (c *fakeClock) Now() float64 {
	c.now += c.step
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.now += d.Seconds()
}

// fakeLines turns the knob one quarter-step per poll while twisting is set.
// Each tap reads as pressed exactly once.
type fakeLines struct {
	phase    uint8
	twisting bool
	taps     int
}

func (l *fakeLines) Phases() (bool, bool) {
	if l.twisting {
		l.phase = rotary.NextPhase(l.phase, 1)
	}
	return rotary.Lines(l.phase)
}

func (l *fakeLines) Pressed() bool {
	if l.taps > 0 {
		l.taps--
		return true
	}
	return false
}

type fakeSensor struct {
	sample tilt.Sample
	err    error
}

func (s *fakeSensor) ReadAcceleration() (tilt.Sample, error) {
	return s.sample, s.err
}

// sampleFor returns a reading that classifies as g.
func sampleFor(g gesture.Gesture) tilt.Sample {
	switch g {
	case gesture.Left:
		return tilt.Sample{X: 9.8}
	case gesture.Right:
		return tilt.Sample{X: -9.8}
	case gesture.Forward:
		return tilt.Sample{Y: -9.8}
	case gesture.Back:
		return tilt.Sample{Y: 9.8}
	default:
		return tilt.Sample{Z: 9.8}
	}
}

type rig struct {
	clock  *fakeClock
	lines  *fakeLines
	sensor *fakeSensor
	events []session.Event
	react  func(ev session.Event)
}

func newRig() *rig {
	return &rig{
		clock:  &fakeClock{step: 0.001},
		lines:  &fakeLines{},
		sensor: &fakeSensor{sample: tilt.Sample{Z: 9.8}},
	}
}

func (r *rig) Notify(ev session.Event) {
	r.events = append(r.events, ev)
	if r.react != nil {
		r.react(ev)
	}
}

func (r *rig) runner(cfg config.Config) *Runner {
	return New(cfg, r.lines, r.sensor, r.clock, r, nil, 1)
}

func count[T session.Event](events []session.Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func TestRunReportsMissingSensor(t *testing.T) {
	rg := newRig()
	rg.sensor.err = errors.New("i2c: no ack")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rg.runner(config.DefaultConfig()).Run(ctx)
	if !errors.Is(err, tilt.ErrSensorUnavailable) {
		t.Errorf("expected ErrSensorUnavailable, got %v", err)
	}
	if len(rg.events) != 1 {
		t.Fatalf("expected exactly one event, got %#v", rg.events)
	}
	if _, ok := rg.events[0].(session.SensorFault); !ok {
		t.Errorf("event = %#v, expected SensorFault", rg.events[0])
	}
}

func TestPlayOnceLosesOnTimeout(t *testing.T) {
	rg := newRig()
	rg.react = func(ev session.Event) {
		switch ev.(type) {
		case session.MenuShown, session.SessionEnded:
			rg.lines.taps = 1
		}
	}

	st, err := rg.runner(config.DefaultConfig()).PlayOnce(context.Background())
	if err != nil {
		t.Fatalf("PlayOnce() failed: %v", err)
	}
	if st.Phase != session.Lost || st.Level != 1 || st.Score != 0 {
		t.Errorf("state = %+v, expected LOST at level 1", st)
	}

	// Countdown 3..1, each lit then dark
	var ticks []session.CountdownTick
	for _, ev := range rg.events {
		if c, ok := ev.(session.CountdownTick); ok {
			ticks = append(ticks, c)
		}
	}
	if len(ticks) != 6 {
		t.Fatalf("got %d countdown ticks, expected 6", len(ticks))
	}
	for i, c := range ticks {
		if c.Remaining != 3-i/2 || c.Lit != (i%2 == 0) {
			t.Errorf("tick %d = %+v", i, c)
		}
	}

	// Menu debounce, countdown and a full easy round
	if rg.clock.now < 0.1+3.0+3.0 {
		t.Errorf("clock = %v, session ended too early", rg.clock.now)
	}
}

func TestPlayOnceWinsAndCelebrates(t *testing.T) {
	rg := newRig()
	celebrations := 0
	rg.react = func(ev session.Event) {
		switch e := ev.(type) {
		case session.MenuShown:
			rg.lines.taps = 1
		case session.RoundStarted:
			rg.lines.twisting = e.Target == gesture.Twist
			rg.sensor.sample = sampleFor(e.Target)
		case session.Celebrate:
			celebrations++
			if celebrations == 3 {
				rg.lines.taps = 1
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Game.MaxLevel = 4

	st, err := rg.runner(cfg).PlayOnce(context.Background())
	if err != nil {
		t.Fatalf("PlayOnce() failed: %v", err)
	}
	if st.Phase != session.Won || st.Score != 400 || st.Level != 5 {
		t.Errorf("state = %+v, expected WON score 400 level 5", st)
	}
	if celebrations != 3 {
		t.Errorf("celebrations = %d, expected 3", celebrations)
	}

	succeeded := 0
	for _, ev := range rg.events {
		if r, ok := ev.(session.RoundResolved); ok && r.Outcome == challenge.Success {
			succeeded++
		}
	}
	if succeeded != 4 {
		t.Errorf("successful rounds = %d, expected 4", succeeded)
	}
}

func TestMenuKnobChangesDifficulty(t *testing.T) {
	rg := newRig()
	rg.react = func(ev session.Event) {
		switch e := ev.(type) {
		case session.MenuShown:
			if e.Difficulty == config.Easy {
				rg.lines.twisting = true
				return
			}
			rg.lines.twisting = false
			rg.lines.taps = 1
		case session.SessionEnded:
			rg.lines.taps = 1
		}
	}

	r := rg.runner(config.DefaultConfig())
	st, err := r.PlayOnce(context.Background())
	if err != nil {
		t.Fatalf("PlayOnce() failed: %v", err)
	}
	if st.Difficulty != config.Med {
		t.Errorf("difficulty = %v, expected MED after one detent", st.Difficulty)
	}
	if r.Difficulty() != config.Med {
		t.Errorf("runner should remember MED for the next session, got %v", r.Difficulty())
	}
	if n := count[session.MenuShown](rg.events); n != 2 {
		t.Errorf("menu shown %d times, expected 2", n)
	}

	var started session.RoundStarted
	for _, ev := range rg.events {
		if rs, ok := ev.(session.RoundStarted); ok {
			started = rs
			break
		}
	}
	if started.Limit != 2.2 {
		t.Errorf("first round limit = %v, expected MED base 2.2", started.Limit)
	}
}

func TestPlayOnceHonoursCancelInMenu(t *testing.T) {
	rg := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	rg.react = func(ev session.Event) {
		if _, ok := ev.(session.MenuShown); ok {
			cancel()
		}
	}

	_, err := rg.runner(config.DefaultConfig()).PlayOnce(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := count[session.RoundStarted](rg.events); n != 0 {
		t.Errorf("no round should start after cancel, got %d", n)
	}
}

func TestSystemClockIsMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	c.Sleep(time.Millisecond)
	if b := c.Now(); b <= a {
		t.Errorf("clock went backwards: %v then %v", a, b)
	}
}
