package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
)

// driver feeds messages to a model with a synthetic clock.
type driver struct {
	t    *testing.T
	m    Model
	base time.Time
	now  float64
}

func newDriver(t *testing.T, cfg config.Config) *driver {
	d := &driver{t: t, m: NewModel(cfg, 7, nil), base: time.Unix(1000, 0)}
	d.tickAt(0)
	return d
}

func (d *driver) send(msg tea.Msg) {
	next, _ := d.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		d.t.Fatalf("Update returned %T", next)
	}
	d.m = m
}

func (d *driver) tickAt(at float64) {
	d.now = at
	d.send(TickMsg(d.base.Add(time.Duration(at * float64(time.Second)))))
}

func (d *driver) tick(dt float64) {
	d.tickAt(d.now + dt)
}

// until ticks in dt steps until cond holds, failing after max steps.
func (d *driver) until(dt float64, max int, cond func() bool) {
	for i := 0; i < max; i++ {
		if cond() {
			return
		}
		d.tick(dt)
	}
	if !cond() {
		d.t.Fatalf("condition not reached after %d ticks (stage %v)", max, d.m.Stage())
	}
}

func (d *driver) key(k tea.KeyMsg) {
	d.send(k)
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyKnobR = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	keyKnobL = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}
)

func tiltKey(g gesture.Gesture) tea.KeyMsg {
	switch g {
	case gesture.Left:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case gesture.Right:
		return tea.KeyMsg{Type: tea.KeyRight}
	case gesture.Forward:
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyDown}
	}
}

// startGame presses the button and waits for the first round.
func (d *driver) startGame() {
	d.key(keySpace)
	d.tick(0.01)
	d.until(0.05, 200, func() bool { return d.m.Stage() == StageRound })
}

// perform makes the gesture the current round asks for.
func (d *driver) perform() {
	spec, ok := d.m.Session().Current()
	if !ok {
		d.t.Fatal("no round in progress")
	}
	if spec.Target == gesture.Twist {
		d.key(keyKnobR)
		d.key(keyKnobR)
		return
	}
	d.key(tiltKey(spec.Target))
}

func TestMenuOnStart(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())

	if d.m.Stage() != StageMenu {
		t.Errorf("stage = %v, expected menu", d.m.Stage())
	}
	if got := d.m.Frame().String(); got != "COSMIC TILT / < EASY > / PRESS TO START" {
		t.Errorf("frame = %q", got)
	}
	if d.m.LED() != core.ColorBlue {
		t.Errorf("LED = %+v, expected blue", d.m.LED())
	}
	if !strings.Contains(d.m.View(), "COSMIC TILT") {
		t.Error("view does not show the panel")
	}
}

func TestKnobCyclesDifficulty(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())

	d.key(keyKnobR)
	for i := 0; i < 4; i++ {
		d.tick(0.02)
	}
	if got := d.m.Session().State().Difficulty; got != config.Med {
		t.Fatalf("difficulty = %v after one detent, expected MED", got)
	}
	if !strings.Contains(d.m.Frame().String(), "< MED >") {
		t.Errorf("frame = %q", d.m.Frame().String())
	}

	d.key(keyKnobL)
	d.key(keyKnobL)
	for i := 0; i < 8; i++ {
		d.tick(0.02)
	}
	if got := d.m.Session().State().Difficulty; got != config.DiffPlus {
		t.Errorf("difficulty = %v after two detents back, expected DIFF+", got)
	}
}

func TestCountdownThenRound(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())

	d.key(keySpace)
	d.tick(0.01)
	if d.m.Stage() != StageCountdown {
		t.Fatalf("stage = %v, expected countdown", d.m.Stage())
	}
	if d.m.Frame().String() != "3" || d.m.LED() != core.ColorYellow {
		t.Errorf("countdown shows %q %+v", d.m.Frame().String(), d.m.LED())
	}

	d.tickAt(0.6)
	if d.m.LED() != core.ColorOff {
		t.Errorf("second half of the step should be dark, got %+v", d.m.LED())
	}

	d.until(0.05, 200, func() bool { return d.m.Stage() == StageRound })
	if d.now < 3.0 {
		t.Errorf("round began at %.2fs, countdown is 3s", d.now)
	}
	if !strings.HasPrefix(d.m.Frame().String(), "LEVEL 1 / ") || d.m.LED() != core.ColorWhite {
		t.Errorf("round shows %q %+v", d.m.Frame().String(), d.m.LED())
	}
	if !strings.Contains(d.m.View(), "time") {
		t.Error("view should show the time bar during a round")
	}
}

func TestSuccessfulRounds(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())
	d.startGame()

	for level := 1; level <= 3; level++ {
		d.perform()
		d.until(0.02, 50, func() bool { return d.m.Stage() == StagePause })
		if d.m.LED() != core.ColorGreen {
			t.Errorf("level %d: LED = %+v, expected green", level, d.m.LED())
		}
		d.until(0.05, 20, func() bool { return d.m.Stage() == StageRound })
	}

	st := d.m.Session().State()
	if st.Level != 4 || st.Score != 300 {
		t.Errorf("state = %+v, expected level 4 score 300", st)
	}
}

func TestTimeoutShowsGameOverAndResets(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())
	d.startGame()

	d.tick(3.1)
	if d.m.Stage() != StageResult {
		t.Fatalf("stage = %v, expected result", d.m.Stage())
	}
	if d.m.Session().State().Phase != session.Lost {
		t.Errorf("phase = %v, expected lost", d.m.Session().State().Phase)
	}
	if got := d.m.Frame().String(); got != "GAME OVER / SCORE: 0 / PRESS TO RESET" {
		t.Errorf("frame = %q", got)
	}
	if d.m.LED() != core.ColorRed {
		t.Errorf("LED = %+v, expected red", d.m.LED())
	}

	d.key(keySpace)
	d.tick(0.02)
	if d.m.Stage() != StageMenu || d.m.Session().State().Phase != session.AwaitingStart {
		t.Errorf("button on result should return to a fresh menu, stage %v", d.m.Stage())
	}
}

func TestWinCelebrates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Game.MaxLevel = 1
	d := newDriver(t, cfg)
	d.startGame()

	d.perform()
	d.until(0.02, 50, func() bool { return d.m.Stage() == StageResult })

	if d.m.Session().State().Phase != session.Won {
		t.Fatalf("phase = %v, expected won", d.m.Session().State().Phase)
	}
	if got := d.m.Frame().String(); got != "YOU WIN! / SCORE: 100 / PRESS TO RESET" {
		t.Errorf("frame = %q", got)
	}

	seen := map[core.Color]bool{}
	for i := 0; i < 5; i++ {
		d.tick(0.06)
		seen[d.m.LED()] = true
	}
	if len(seen) < 2 {
		t.Errorf("LED should change while celebrating, saw %v", seen)
	}
}

func TestQuit(t *testing.T) {
	d := newDriver(t, config.DefaultConfig())
	_, cmd := d.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestKnobEmitsOneEdgePerAdvance(t *testing.T) {
	k := &Knob{}
	k.Turn(3)
	k.Turn(-1)
	if k.Pending() != 2 {
		t.Fatalf("Pending() = %d, expected 2", k.Pending())
	}
	a0, b0 := k.Phases()
	k.Advance()
	a1, b1 := k.Phases()
	if (a0 != a1) == (b0 != b1) {
		t.Errorf("one advance must flip exactly one line: %v%v -> %v%v", a0, b0, a1, b1)
	}
	k.Advance()
	k.Advance()
	if k.Pending() != 0 {
		t.Errorf("Pending() = %d after draining", k.Pending())
	}
}

func TestAccelerometerHold(t *testing.T) {
	a := &Accelerometer{}
	a.Tilt(gesture.Back, 1.0, 0.3)

	a.SetNow(1.1)
	if a.Current() != gesture.Back {
		t.Errorf("Current() = %v during hold, expected BACK", a.Current())
	}
	a.SetNow(1.3)
	if a.Current() != gesture.None {
		t.Errorf("Current() = %v after hold, expected NONE", a.Current())
	}
	s, err := a.ReadAcceleration()
	if err != nil || s.Z != Gravity {
		t.Errorf("resting sample = %+v, %v", s, err)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, time.Second},
		{-5, time.Second},
		{10000, time.Second / maxFPS},
	}
	for _, tc := range tests {
		if got := tickInterval(tc.fps); got != tc.want {
			t.Errorf("tickInterval(%d) = %v, expected %v", tc.fps, got, tc.want)
		}
	}
}
