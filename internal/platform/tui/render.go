package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
)

// Simulated OLED: 128x64 pixels is about 21x8 cells of a 6x8 font.
const (
	panelCols     = 21
	panelRows     = 8
	progressWidth = 40
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("COSMIC TILT · simulator"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		RenderPanel(m.Frame()),
		"   ",
		RenderLED(m.LED()),
	))
	b.WriteString("\n\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")

	if m.stage == StageRound && m.round != nil {
		limit := m.round.Spec().Limit
		b.WriteString(labelStyle.Render("time"))
		b.WriteString(m.progress.ViewAs(core.ClampF(m.round.Remaining()/limit, 0, 1)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %.2fs", m.round.Remaining())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) statusView() string {
	st := m.sess.State()
	tiltName := m.accel.Current().String()
	if m.accel.Current() == gesture.None {
		tiltName = "flat"
	}

	rows := [][2]string{
		{"difficulty", st.Difficulty.String()},
		{"level", fmt.Sprint(st.Level)},
		{"score", fmt.Sprint(st.Score)},
		{"phase", phaseLabel(st.Phase)},
		{"tilt", tiltName},
		{"knob", fmt.Sprintf("%+d", m.decoder.Position())},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return b.String()
}

func phaseLabel(p session.Phase) string {
	return strings.ToLower(strings.ReplaceAll(p.String(), "_", " "))
}

// RenderPanel draws a frame into a bordered character panel.
func RenderPanel(f core.Frame) string {
	s := core.NewScreen(panelCols, panelRows)
	s.DrawFrame(f)
	return panelStyle.Render(s.String())
}

// RenderLED draws the status LED as a coloured dot.
func RenderLED(c core.Color) string {
	if c.IsOff() {
		return dimStyle.Render("○ LED")
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("●")
	return dot + dimStyle.Render(" LED")
}
