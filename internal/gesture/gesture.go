// Package gesture defines the physical gestures the player is asked to perform.
package gesture

import (
	"fmt"
	"strings"
)

// Gesture is a recognized player motion.
type Gesture int

const (
	None    Gesture = iota // No recognized tilt; never a round target
	Left                   // Tilt left (+X)
	Right                  // Tilt right (-X)
	Forward                // Tilt forward (-Y)
	Back                   // Tilt back (+Y)
	Twist                  // Turn the rotary knob
)

// Targets lists the gestures a round may ask for, in selection order.
var Targets = []Gesture{Left, Right, Forward, Back, Twist}

// String returns the on-screen name of the gesture.
func (g Gesture) String() string {
	switch g {
	case None:
		return "NONE"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Forward:
		return "FORWARD"
	case Back:
		return "BACK"
	case Twist:
		return "TWIST"
	default:
		return "UNKNOWN"
	}
}

// IsTarget reports whether g can be asked for in a round.
func (g Gesture) IsTarget() bool {
	return g >= Left && g <= Twist
}

// IsTilt reports whether g is produced by the accelerometer rather than the knob.
func (g Gesture) IsTilt() bool {
	return g >= Left && g <= Back
}

// Parse converts a gesture name (case-insensitive) to a Gesture.
func Parse(s string) (Gesture, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return None, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	case "FORWARD":
		return Forward, nil
	case "BACK":
		return Back, nil
	case "TWIST":
		return Twist, nil
	default:
		return None, fmt.Errorf("gesture: unknown gesture %q", s)
	}
}
