package present

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
)

// Display shows a frame on the status screen.
type Display interface {
	Show(f core.Frame) error
}

// Light sets the status LED colour.
type Light interface {
	SetColor(c core.Color) error
}

// Renderer is a session.Sink that drives a Display and a Light.
// Either may be nil. Output errors are logged and otherwise ignored so a
// flaky display never stops the game.
type Renderer struct {
	display Display
	light   Light
	logger  *log.Logger

	frame core.Frame
	led   core.Color
}

// NewRenderer creates a renderer. logger may be nil.
func NewRenderer(display Display, light Light, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Renderer{display: display, light: light, logger: logger}
}

// Notify lays out ev and pushes the changed outputs.
func (r *Renderer) Notify(ev session.Event) {
	scene := Layout(ev)

	if !scene.KeepFrame {
		r.frame = scene.Frame
		if r.display != nil {
			if err := r.display.Show(scene.Frame); err != nil {
				r.logger.Warn("display update failed", "err", err)
			}
		}
	}
	if !scene.KeepLED {
		r.led = scene.LED
		if r.light != nil {
			if err := r.light.SetColor(scene.LED); err != nil {
				r.logger.Warn("led update failed", "err", err)
			}
		}
	}
}

// Frame returns the last frame shown.
func (r *Renderer) Frame() core.Frame {
	return r.frame
}

// LED returns the last LED colour set.
func (r *Renderer) LED() core.Color {
	return r.led
}

// Multi fans every event out to several sinks in order.
type Multi []session.Sink

// Notify forwards ev to each non-nil sink.
func (m Multi) Notify(ev session.Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(ev)
		}
	}
}

// LogSink records events as structured log lines.
type LogSink struct {
	Logger *log.Logger
}

// Notify logs ev. Win animation frames go to debug to keep info quiet.
func (s LogSink) Notify(ev session.Event) {
	if s.Logger == nil {
		return
	}
	switch e := ev.(type) {
	case session.MenuShown:
		s.Logger.Info("menu", "difficulty", e.Difficulty)
	case session.CountdownTick:
		s.Logger.Debug("countdown", "remaining", e.Remaining, "lit", e.Lit)
	case session.RoundStarted:
		s.Logger.Debug("target shown", "level", e.Level, "target", e.Target, "limit", e.Limit)
	case session.RoundResolved:
		s.Logger.Debug("round result", "target", e.Target, "outcome", e.Outcome, "score", e.Score)
	case session.SessionEnded:
		s.Logger.Info("game over", "won", e.Won, "score", e.Score, "level", e.Level)
	case session.SensorFault:
		s.Logger.Error("accelerometer missing, check wiring", "err", e.Err)
	case session.Celebrate:
		s.Logger.Debug("celebrate", "color", e.Color.Hex())
	}
}
