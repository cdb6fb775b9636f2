package core

import "fmt"

// Color is an RGB value for the status LED.
type Color struct {
	R, G, B uint8
}

// Status colours used by the game.
var (
	ColorOff    = Color{0, 0, 0}
	ColorRed    = Color{255, 0, 0}
	ColorGreen  = Color{0, 255, 0}
	ColorBlue   = Color{0, 0, 255}
	ColorYellow = Color{255, 255, 0}
	ColorWhite  = Color{255, 255, 255}
)

// IsOff reports whether all channels are zero.
func (c Color) IsOff() bool {
	return c == ColorOff
}

// Scale multiplies every channel by brightness (clamped to [0, 1]).
func (c Color) Scale(brightness float64) Color {
	b := ClampF(brightness, 0, 1)
	return Color{
		R: uint8(float64(c.R)*b + 0.5),
		G: uint8(float64(c.G)*b + 0.5),
		B: uint8(float64(c.B)*b + 0.5),
	}
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RandomColor builds a colour from three draws of intn(256).
func RandomColor(intn func(n int) int) Color {
	return Color{
		R: uint8(intn(256)),
		G: uint8(intn(256)),
		B: uint8(intn(256)),
	}
}
