package device

import (
	"fmt"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"

	"github.com/vovakirdan/cosmic-tilt/internal/core"
)

// NeoPixel drives a single WS2812 status LED through an SPI port.
type NeoPixel struct {
	dev        *nrzled.Dev
	brightness float64
}

// NewNeoPixel opens a one-pixel strip on port.
func NewNeoPixel(port spi.Port, brightness float64) (*NeoPixel, error) {
	opts := nrzled.DefaultOpts
	opts.NumPixels = 1
	opts.Channels = 3
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("device: init nrzled: %w", err)
	}
	return &NeoPixel{dev: dev, brightness: brightness}, nil
}

// SetColor lights the pixel with c dimmed by the configured brightness.
func (n *NeoPixel) SetColor(c core.Color) error {
	if _, err := n.dev.Write(pixelBytes(c, n.brightness)); err != nil {
		return fmt.Errorf("device: write led: %w", err)
	}
	return nil
}

// Halt turns the LED off.
func (n *NeoPixel) Halt() error {
	return n.dev.Halt()
}

// pixelBytes returns the RGB payload for one pixel.
func pixelBytes(c core.Color, brightness float64) []byte {
	s := c.Scale(brightness)
	return []byte{s.R, s.G, s.B}
}
