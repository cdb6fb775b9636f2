// Package device binds the game to real hardware through periph.io: GPIO
// for the encoder and button, I2C for the accelerometer and OLED, and SPI
// for the NeoPixel status LED.
package device

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/present"
	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// Board is the opened hardware. Only Lines and Sensor are always set;
// Display and Light are nil when disabled or when bring-up failed.
type Board struct {
	Lines   *Lines
	Sensor  tilt.Sensor
	Display *OLED
	Light   *NeoPixel

	bus  i2c.BusCloser
	port spi.PortCloser
}

// Open initialises periph and every configured peripheral. Input pins
// and the I2C bus are required. A missing accelerometer is not an error
// here: Sensor then fails every read so the startup check can report it.
// Display and LED failures are logged and the game runs without them.
func Open(hw config.HardwareConfig, logger *log.Logger) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("device: periph host init: %w", err)
	}

	lines, err := OpenLines(hw.EncoderA, hw.EncoderB, hw.Button)
	if err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(hw.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("device: open i2c bus %q: %w", hw.I2CBus, err)
	}
	b := &Board{Lines: lines, bus: bus}

	accel, err := NewADXL345(bus, hw.AccelAddr)
	if err != nil {
		logger.Error("accelerometer bring-up failed", "addr", fmt.Sprintf("0x%02X", hw.AccelAddr), "err", err)
		b.Sensor = unavailable{err: err}
	} else {
		b.Sensor = accel
	}

	if hw.OLED {
		if oled, err := NewOLED(bus); err != nil {
			logger.Warn("oled disabled", "err", err)
		} else {
			b.Display = oled
		}
	}

	if hw.LED {
		port, err := spireg.Open(hw.LEDSPI)
		if err != nil {
			logger.Warn("led disabled", "spi", hw.LEDSPI, "err", err)
		} else if px, err := NewNeoPixel(port, hw.LEDBrightness); err != nil {
			logger.Warn("led disabled", "err", err)
			_ = port.Close()
		} else {
			b.port = port
			b.Light = px
		}
	}

	logger.Info("hardware ready",
		"encoder", hw.EncoderA+"/"+hw.EncoderB,
		"button", hw.Button,
		"oled", b.Display != nil,
		"led", b.Light != nil,
	)
	return b, nil
}

// Renderer returns a presentation sink bound to the available outputs.
func (b *Board) Renderer(logger *log.Logger) *present.Renderer {
	var d present.Display
	if b.Display != nil {
		d = b.Display
	}
	var l present.Light
	if b.Light != nil {
		l = b.Light
	}
	return present.NewRenderer(d, l, logger)
}

// Close blanks the outputs and releases the buses.
func (b *Board) Close() error {
	var errs []error
	if b.Display != nil {
		errs = append(errs, b.Display.Halt())
	}
	if b.Light != nil {
		errs = append(errs, b.Light.Halt())
	}
	if b.port != nil {
		errs = append(errs, b.port.Close())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return errors.Join(errs...)
}
