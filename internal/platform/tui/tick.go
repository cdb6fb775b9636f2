// Package tui provides the Bubble Tea simulator for Cosmic Tilt.
// The keyboard stands in for the knob, the button and the accelerometer,
// and the terminal stands in for the OLED and the status LED.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-tilt/internal/core"
)

// Polling rate bounds, in iterations per second.
const (
	minFPS = 1
	maxFPS = 240
)

// TickMsg carries the wall time of one polling iteration.
type TickMsg time.Time

func tickInterval(fps int) time.Duration {
	return time.Second / time.Duration(core.Clamp(fps, minFPS, maxFPS))
}

// nextTick schedules the next polling iteration.
func nextTick(fps int) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
