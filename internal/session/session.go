// Package session strings timed rounds together into a full game: it owns
// level, score, difficulty and phase, and tells the presentation layer what
// happened through a Sink.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
)

// Session misuse errors.
var (
	ErrAlreadyStarted = errors.New("session: already started")
	ErrSessionOver    = errors.New("session: session is over")
	ErrNoRound        = errors.New("session: no round in progress")
	ErrRoundOpen      = errors.New("session: round already in progress")
	ErrNotCounting    = errors.New("session: not counting down")
)

// Phase is the coarse state of a session.
type Phase int

const (
	AwaitingStart Phase = iota
	Countdown
	InRound
	Won
	Lost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case AwaitingStart:
		return "AWAITING_START"
	case Countdown:
		return "COUNTDOWN"
	case InRound:
		return "IN_ROUND"
	case Won:
		return "WON"
	case Lost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// Over reports whether the session has ended.
func (p Phase) Over() bool {
	return p == Won || p == Lost
}

// State is a snapshot of the session.
type State struct {
	Level      int
	Score      int
	Difficulty config.Difficulty
	Phase      Phase
}

// Settings are the progression rules.
type Settings struct {
	MaxLevel   int
	ScoreAward int
	Budget     *config.Budget
}

// DefaultSettings returns the stock rules: ten levels, 100 points per round.
func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultConfig())
}

// SettingsFrom extracts the progression rules from a loaded config.
func SettingsFrom(cfg config.Config) Settings {
	return Settings{
		MaxLevel:   cfg.Game.MaxLevel,
		ScoreAward: cfg.Game.ScoreAward,
		Budget:     config.NewBudget(cfg.Game, cfg.Difficulty),
	}
}

// Picker draws a uniform integer in [0, n).
type Picker interface {
	Intn(n int) int
}

// Option customises a Session.
type Option func(*Session)

// WithRand sets the random source for target selection.
func WithRand(p Picker) Option {
	return func(s *Session) {
		if p != nil {
			s.rng = p
		}
	}
}

// WithSeed seeds a private math/rand source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithSink sets the presentation sink.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// RoundRunner plays one round to completion.
type RoundRunner interface {
	RunRound(spec challenge.Spec) (challenge.Outcome, error)
}

// RoundRunnerFunc adapts a function to RoundRunner.
type RoundRunnerFunc func(spec challenge.Spec) (challenge.Outcome, error)

// RunRound calls f(spec).
func (f RoundRunnerFunc) RunRound(spec challenge.Spec) (challenge.Outcome, error) {
	return f(spec)
}

// Session is a single play-through from the menu to Won or Lost.
// Not safe for concurrent use.
type Session struct {
	settings Settings
	state    State
	current  *challenge.Spec

	rng    Picker
	sink   Sink
	logger *log.Logger
}

// New creates a session at level 1 with zero score, awaiting start.
// Settings without a budget are replaced by DefaultSettings as a whole.
func New(settings Settings, difficulty config.Difficulty, opts ...Option) *Session {
	if settings.Budget == nil {
		settings = DefaultSettings()
	}
	if settings.MaxLevel < 1 {
		settings.MaxLevel = DefaultSettings().MaxLevel
	}
	s := &Session{
		settings: settings,
		state: State{
			Level:      1,
			Difficulty: difficulty.Cycle(0),
			Phase:      AwaitingStart,
		},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		sink:   nopSink{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state
}

// Settings returns the rules in force.
func (s *Session) Settings() Settings {
	return s.settings
}

// Current returns the spec of the open round, if any.
func (s *Session) Current() (challenge.Spec, bool) {
	if s.current == nil {
		return challenge.Spec{}, false
	}
	return *s.current, true
}

// Announce emits MenuShown for the current difficulty.
func (s *Session) Announce() {
	s.sink.Notify(MenuShown{Difficulty: s.state.Difficulty})
}

// SelectDifficulty moves delta steps through the difficulty levels,
// wrapping at both ends. Only allowed before the session starts.
func (s *Session) SelectDifficulty(delta int) error {
	if s.state.Phase != AwaitingStart {
		return fmt.Errorf("session: select difficulty in phase %s: %w", s.state.Phase, ErrAlreadyStarted)
	}
	if delta == 0 {
		return nil
	}
	s.state.Difficulty = s.state.Difficulty.Cycle(delta)
	s.logger.Debug("difficulty selected", "difficulty", s.state.Difficulty)
	s.Announce()
	return nil
}

// Start leaves the menu and enters the countdown.
func (s *Session) Start() error {
	if s.state.Phase != AwaitingStart {
		return fmt.Errorf("session: start in phase %s: %w", s.state.Phase, ErrAlreadyStarted)
	}
	s.state.Phase = Countdown
	s.logger.Info("session started", "difficulty", s.state.Difficulty)
	return nil
}

// CountdownTick notifies presenters of one countdown step.
// Only allowed between Start and the first round.
func (s *Session) CountdownTick(remaining int, lit bool) error {
	if s.state.Phase != Countdown {
		return fmt.Errorf("session: countdown in phase %s: %w", s.state.Phase, ErrNotCounting)
	}
	s.sink.Notify(CountdownTick{Remaining: remaining, Lit: lit})
	return nil
}

// TimeLimit returns the budget of the current level at the session difficulty.
func (s *Session) TimeLimit() float64 {
	return s.settings.Budget.Limit(s.state.Difficulty, s.state.Level)
}

// NextRound picks the next target uniformly from the five gestures and
// computes its time limit. Calling it before Start starts the session.
func (s *Session) NextRound() (challenge.Spec, error) {
	switch {
	case s.state.Phase.Over():
		return challenge.Spec{}, ErrSessionOver
	case s.current != nil:
		return challenge.Spec{}, ErrRoundOpen
	case s.state.Phase == AwaitingStart:
		if err := s.Start(); err != nil {
			return challenge.Spec{}, err
		}
	}

	spec := challenge.Spec{
		Target: gesture.Targets[s.rng.Intn(len(gesture.Targets))],
		Limit:  s.TimeLimit(),
	}
	if err := spec.Validate(); err != nil {
		return challenge.Spec{}, err
	}
	s.current = &spec
	s.state.Phase = InRound

	s.logger.Info("round started", "level", s.state.Level, "target", spec.Target, "limit", spec.Limit)
	s.sink.Notify(RoundStarted{Level: s.state.Level, Target: spec.Target, Limit: spec.Limit})
	return spec, nil
}

// Resolve applies the outcome of the open round. Success adds the score
// award and advances the level, winning once the level passes the maximum.
// A timeout loses immediately.
func (s *Session) Resolve(outcome challenge.Outcome) (State, error) {
	if s.state.Phase.Over() {
		return s.state, ErrSessionOver
	}
	if s.current == nil {
		return s.state, ErrNoRound
	}
	target := s.current.Target
	s.current = nil

	switch outcome {
	case challenge.Success:
		s.state.Score += s.settings.ScoreAward
		s.state.Level++
		if s.state.Level > s.settings.MaxLevel {
			s.state.Phase = Won
		}
	default:
		s.state.Phase = Lost
	}

	s.logger.Info("round resolved",
		"target", target,
		"outcome", outcome,
		"level", s.state.Level,
		"score", s.state.Score,
	)
	s.sink.Notify(RoundResolved{
		Target:  target,
		Outcome: outcome,
		Level:   s.state.Level,
		Score:   s.state.Score,
	})

	if s.state.Phase.Over() {
		won := s.state.Phase == Won
		s.logger.Info("session ended", "won", won, "score", s.state.Score, "level", s.state.Level)
		s.sink.Notify(SessionEnded{Won: won, Score: s.state.Score, Level: s.state.Level})
	}
	return s.state, nil
}

// PlayRound advances exactly one round: it picks the spec, hands it to
// runner and applies the outcome.
func (s *Session) PlayRound(runner RoundRunner) (challenge.Outcome, error) {
	spec, err := s.NextRound()
	if err != nil {
		return challenge.Timeout, err
	}
	outcome, err := runner.RunRound(spec)
	if err != nil {
		return outcome, fmt.Errorf("session: run round: %w", err)
	}
	if _, err := s.Resolve(outcome); err != nil {
		return outcome, err
	}
	return outcome, nil
}
