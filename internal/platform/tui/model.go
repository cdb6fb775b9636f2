package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/console"
	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
	"github.com/vovakirdan/cosmic-tilt/internal/present"
	"github.com/vovakirdan/cosmic-tilt/internal/rotary"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// Stage is where the simulator is in the menu → countdown → rounds → result cycle.
type Stage int

const (
	StageMenu Stage = iota
	StageCountdown
	StageRound
	StagePause // after a successful round
	StageResult
)

// Model is the Bubble Tea model for the simulator.
type Model struct {
	cfg    config.Config
	logger *log.Logger
	rng    *rand.Rand

	sess       *session.Session
	renderer   *present.Renderer
	sink       session.Sink
	knob       *Knob
	accel      *Accelerometer
	decoder    *rotary.Decoder
	detent     *rotary.Detent
	classifier *tilt.Classifier
	round      *challenge.Round

	stage      Stage
	difficulty config.Difficulty
	start      time.Time
	now        float64
	pressed    bool

	countdown     int
	lit           bool
	stepEnds      float64
	pauseUntil    float64
	celebrateNext float64

	keys     KeyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates the simulator in its menu. logger may be nil.
func NewModel(cfg config.Config, seed int64, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	knob := &Knob{}
	accel := &Accelerometer{}
	renderer := present.NewRenderer(nil, nil, logger)

	m := Model{
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		renderer:   renderer,
		sink:       present.Multi{renderer, present.LogSink{Logger: logger}},
		knob:       knob,
		accel:      accel,
		decoder:    rotary.NewDecoder(knob.Phases()),
		detent:     rotary.NewDetent(rotary.DefaultCountsPerDetent),
		classifier: tilt.NewClassifier(accel, cfg.Game.TiltThreshold, logger),
		difficulty: cfg.StartDifficulty(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:      80,
		height:     24,
	}
	m.progress.Width = progressWidth
	m.enterMenu()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return nextTick(m.cfg.Sim.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = core.Clamp(msg.Width-8, 10, progressWidth)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.step(time.Time(msg))
		return m, nextTick(m.cfg.Sim.FPS)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hold := float64(m.cfg.Sim.TiltHoldMS) / 1000
	steps := m.cfg.Sim.KnobStepsPerKey

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.accel.Tilt(gesture.Left, m.now, hold)
	case key.Matches(msg, m.keys.Right):
		m.accel.Tilt(gesture.Right, m.now, hold)
	case key.Matches(msg, m.keys.Forward):
		m.accel.Tilt(gesture.Forward, m.now, hold)
	case key.Matches(msg, m.keys.Back):
		m.accel.Tilt(gesture.Back, m.now, hold)
	case key.Matches(msg, m.keys.KnobLeft):
		m.knob.Turn(-steps)
	case key.Matches(msg, m.keys.KnobRight):
		m.knob.Turn(steps)
	case key.Matches(msg, m.keys.Button):
		m.pressed = true
	}
	return m, nil
}

// step runs one polling iteration at wall time t.
func (m *Model) step(t time.Time) {
	if m.start.IsZero() {
		m.start = t
	}
	m.now = t.Sub(m.start).Seconds()
	m.accel.SetNow(m.now)

	m.knob.Advance()
	m.decoder.Update(m.knob.Phases())

	pressed := m.pressed
	m.pressed = false

	switch m.stage {
	case StageMenu:
		if d := m.detent.Feed(m.decoder.Position()); d != 0 {
			if err := m.sess.SelectDifficulty(d); err != nil {
				m.logger.Warn("difficulty change rejected", "err", err)
			}
			m.difficulty = m.sess.State().Difficulty
		}
		if pressed {
			m.startCountdown()
		}

	case StageCountdown:
		if m.now < m.stepEnds {
			return
		}
		m.stepEnds += console.CountdownStep.Seconds()
		if m.lit {
			m.lit = false
			m.countdownTick()
			return
		}
		m.countdown--
		if m.countdown <= 0 {
			m.beginRound()
			return
		}
		m.lit = true
		m.countdownTick()

	case StageRound:
		state := m.round.Tick(m.now, m.decoder, m.classifier.Poll)
		if !state.Terminal() {
			return
		}
		outcome, _ := m.round.Outcome()
		st, err := m.sess.Resolve(outcome)
		if err != nil {
			m.logger.Error("resolve round", "err", err)
			return
		}
		switch {
		case st.Phase.Over():
			m.stage = StageResult
			m.celebrateNext = m.now
		default:
			m.stage = StagePause
			m.pauseUntil = m.now + float64(m.cfg.Game.SuccessPauseMS)/1000
		}

	case StagePause:
		if m.now >= m.pauseUntil {
			m.beginRound()
		}

	case StageResult:
		if pressed {
			m.enterMenu()
			return
		}
		if m.sess.State().Phase == session.Won && m.now >= m.celebrateNext {
			m.sink.Notify(session.Celebrate{
				Color: core.RandomColor(m.rng.Intn),
				Score: m.sess.State().Score,
			})
			m.celebrateNext = m.now + console.CelebrateEvery.Seconds()
		}
	}
}

// enterMenu starts a fresh session at the remembered difficulty.
func (m *Model) enterMenu() {
	m.sess = session.New(session.SettingsFrom(m.cfg), m.difficulty,
		session.WithRand(m.rng),
		session.WithSink(m.sink),
		session.WithLogger(m.logger),
	)
	m.round = nil
	m.stage = StageMenu
	m.detent.Reset()
	m.detent.Feed(m.decoder.Position())
	m.sess.Announce()
}

func (m *Model) startCountdown() {
	if err := m.sess.Start(); err != nil {
		m.logger.Error("start session", "err", err)
		return
	}
	m.stage = StageCountdown
	m.countdown = m.cfg.Game.CountdownFrom
	if m.countdown <= 0 {
		m.beginRound()
		return
	}
	m.lit = true
	m.stepEnds = m.now + console.CountdownStep.Seconds()
	m.countdownTick()
}

func (m *Model) countdownTick() {
	if err := m.sess.CountdownTick(m.countdown, m.lit); err != nil {
		m.logger.Error("countdown", "err", err)
	}
}

func (m *Model) beginRound() {
	spec, err := m.sess.NextRound()
	if err != nil {
		m.logger.Error("next round", "err", err)
		m.stage = StageResult
		return
	}
	round, err := challenge.NewRound(spec, m.cfg.Game.TwistThreshold)
	if err != nil {
		m.logger.Error("new round", "err", err)
		m.stage = StageResult
		return
	}
	m.round = round
	m.round.Start(m.now, m.decoder)
	m.stage = StageRound
}

// Stage returns the current stage.
func (m Model) Stage() Stage {
	return m.stage
}

// Session returns the live session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Frame returns what the simulated display currently shows.
func (m Model) Frame() core.Frame {
	return m.renderer.Frame()
}

// LED returns the simulated LED colour.
func (m Model) LED() core.Color {
	return m.renderer.LED()
}

// Run starts the Bubble Tea program with a new simulator model.
func Run(cfg config.Config, seed int64, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(cfg, seed, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
