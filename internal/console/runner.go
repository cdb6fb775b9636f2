// Package console runs the game the way the handheld does: a polling loop
// over the encoder, button and accelerometer that goes menu, countdown,
// rounds, result screen, and back to the menu forever.
package console

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
	"github.com/vovakirdan/cosmic-tilt/internal/rotary"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// Timing of the presentation steps around the rounds.
const (
	CountdownStep  = 500 * time.Millisecond // lit and dark half of each countdown number
	Debounce       = 100 * time.Millisecond
	CelebrateEvery = 50 * time.Millisecond
	IdlePoll       = time.Millisecond
)

// Lines are the polled digital inputs: the two encoder phases and the
// push button.
type Lines interface {
	Phases() (a, b bool)
	Pressed() bool
}

// Clock is a monotonic time source.
type Clock interface {
	Now() float64 // seconds, arbitrary epoch
	Sleep(d time.Duration)
}

// SystemClock measures time from its creation with the runtime's monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the seconds elapsed since creation.
func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// Sleep blocks for d.
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Runner owns the decoder and classifier and plays sessions back to back.
type Runner struct {
	cfg        config.Config
	lines      Lines
	sensor     tilt.Sensor
	clock      Clock
	sink       session.Sink
	logger     *log.Logger
	rng        *rand.Rand
	decoder    *rotary.Decoder
	classifier *tilt.Classifier
	difficulty config.Difficulty
}

// New creates a runner. sink and logger may be nil.
func New(cfg config.Config, lines Lines, sensor tilt.Sensor, clock Clock, sink session.Sink, logger *log.Logger, seed int64) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	if sink == nil {
		sink = session.SinkFunc(func(session.Event) {})
	}
	return &Runner{
		cfg:        cfg,
		lines:      lines,
		sensor:     sensor,
		clock:      clock,
		sink:       sink,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		decoder:    rotary.NewDecoder(lines.Phases()),
		classifier: tilt.NewClassifier(sensor, cfg.Game.TiltThreshold, logger),
		difficulty: cfg.StartDifficulty(),
	}
}

// Difficulty returns the difficulty the next session will start with.
func (r *Runner) Difficulty() config.Difficulty {
	return r.difficulty
}

// Run checks the accelerometer once and then plays until ctx is cancelled.
// A missing accelerometer is reported once and the runner parks until
// cancellation, returning the probe error.
func (r *Runner) Run(ctx context.Context) error {
	if err := tilt.Probe(r.sensor); err != nil {
		r.logger.Error("startup check failed", "err", err)
		r.sink.Notify(session.SensorFault{Err: err})
		<-ctx.Done()
		return fmt.Errorf("console: %w", err)
	}
	r.logger.Info("runner started", "difficulty", r.difficulty)

	for {
		st, err := r.PlayOnce(ctx)
		if err != nil {
			return err
		}
		r.logger.Info("session finished", "phase", st.Phase, "score", st.Score, "level", st.Level)
	}
}

// PlayOnce runs a single session from the menu through the result screen.
func (r *Runner) PlayOnce(ctx context.Context) (session.State, error) {
	sess := session.New(session.SettingsFrom(r.cfg), r.difficulty,
		session.WithRand(r.rng),
		session.WithSink(r.sink),
		session.WithLogger(r.logger),
	)

	if err := r.menu(ctx, sess); err != nil {
		return sess.State(), err
	}
	r.difficulty = sess.State().Difficulty

	if err := sess.Start(); err != nil {
		return sess.State(), err
	}
	if err := r.countdown(sess); err != nil {
		return sess.State(), err
	}

	for !sess.State().Phase.Over() {
		if err := ctx.Err(); err != nil {
			return sess.State(), err
		}
		outcome, err := sess.PlayRound(session.RoundRunnerFunc(r.runRound))
		if err != nil {
			return sess.State(), err
		}
		if outcome == challenge.Success {
			r.clock.Sleep(time.Duration(r.cfg.Game.SuccessPauseMS) * time.Millisecond)
		}
	}

	var err error
	if sess.State().Phase == session.Won {
		err = r.celebrate(ctx, sess.State().Score)
	} else {
		err = r.waitButton(ctx, true)
	}
	if err == nil {
		err = r.waitButton(ctx, false)
	}
	return sess.State(), err
}

// menu shows the difficulty picker until the button is pressed.
// Every full detent of the knob moves one difficulty step.
func (r *Runner) menu(ctx context.Context, sess *session.Session) error {
	sess.Announce()

	detent := rotary.NewDetent(rotary.DefaultCountsPerDetent)
	r.poll()
	detent.Feed(r.decoder.Position())

	for !r.lines.Pressed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.poll()
		if step := detent.Feed(r.decoder.Position()); step != 0 {
			if err := sess.SelectDifficulty(step); err != nil {
				return err
			}
		}
		r.clock.Sleep(IdlePoll)
	}
	return r.waitButton(ctx, false)
}

func (r *Runner) countdown(sess *session.Session) error {
	for n := r.cfg.Game.CountdownFrom; n > 0; n-- {
		for _, lit := range []bool{true, false} {
			if err := sess.CountdownTick(n, lit); err != nil {
				return err
			}
			r.clock.Sleep(CountdownStep)
		}
	}
	return nil
}

func (r *Runner) runRound(spec challenge.Spec) (challenge.Outcome, error) {
	return challenge.Run(spec, challenge.Inputs{
		Poll:           r.poll,
		Encoder:        r.decoder,
		Classify:       r.classifier.Poll,
		Clock:          r.clock.Now,
		TwistThreshold: r.cfg.Game.TwistThreshold,
	})
}

// celebrate flashes random colours until the button goes down.
func (r *Runner) celebrate(ctx context.Context, score int) error {
	for !r.lines.Pressed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.poll()
		r.sink.Notify(session.Celebrate{Color: core.RandomColor(r.rng.Intn), Score: score})
		r.clock.Sleep(CelebrateEvery)
	}
	return nil
}

// waitButton polls until the button reaches the wanted state, keeping the
// decoder fed, then sleeps for the debounce period.
func (r *Runner) waitButton(ctx context.Context, pressed bool) error {
	for r.lines.Pressed() != pressed {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.poll()
		r.clock.Sleep(IdlePoll)
	}
	r.clock.Sleep(Debounce)
	return nil
}

func (r *Runner) poll() {
	r.decoder.Update(r.lines.Phases())
}
