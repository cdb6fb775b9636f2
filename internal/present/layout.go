// Package present turns session events into what the player sees: a
// three-line frame for the status display and a colour for the LED.
package present

import (
	"fmt"

	"github.com/vovakirdan/cosmic-tilt/internal/challenge"
	"github.com/vovakirdan/cosmic-tilt/internal/core"
	"github.com/vovakirdan/cosmic-tilt/internal/session"
)

// Title is the menu headline.
const Title = "COSMIC TILT"

// Scene is the display and LED state produced by one event.
// KeepFrame and KeepLED mark outputs the event leaves unchanged.
type Scene struct {
	Frame     core.Frame
	LED       core.Color
	KeepFrame bool
	KeepLED   bool
}

// Layout maps an event to its scene. Unknown events leave everything as is.
func Layout(ev session.Event) Scene {
	switch e := ev.(type) {
	case session.MenuShown:
		return Scene{
			Frame: core.NewFrame(Title, fmt.Sprintf("< %s >", e.Difficulty), "PRESS TO START", 1, 2, 1),
			LED:   core.ColorBlue,
		}

	case session.CountdownTick:
		led := core.ColorOff
		if e.Lit {
			led = core.ColorYellow
		}
		return Scene{
			Frame: core.NewFrame("", fmt.Sprint(e.Remaining), "", 1, 4, 1),
			LED:   led,
		}

	case session.RoundStarted:
		return Scene{
			Frame: core.NewFrame(fmt.Sprintf("LEVEL %d", e.Level), e.Target.String(), "", 1, 2, 1),
			LED:   core.ColorWhite,
		}

	case session.RoundResolved:
		led := core.ColorGreen
		if e.Outcome != challenge.Success {
			led = core.ColorRed
		}
		return Scene{LED: led, KeepFrame: true}

	case session.SessionEnded:
		if e.Won {
			return Scene{
				Frame:   core.NewFrame("YOU WIN!", fmt.Sprintf("SCORE: %d", e.Score), "PRESS TO RESET", 1, 2, 1),
				KeepLED: true,
			}
		}
		return Scene{
			Frame: core.NewFrame("GAME OVER", fmt.Sprintf("SCORE: %d", e.Score), "PRESS TO RESET", 1, 2, 1),
			LED:   core.ColorRed,
		}

	case session.SensorFault:
		return Scene{
			Frame:   core.NewFrame("ERROR", "ADXL MISSING", "CHECK WIRING", 2, 1, 1),
			KeepLED: true,
		}

	case session.Celebrate:
		return Scene{LED: e.Color, KeepFrame: true}
	}

	return Scene{KeepFrame: true, KeepLED: true}
}
