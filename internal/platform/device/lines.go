package device

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Lines reads the encoder phases and the push button from GPIO pins.
// All three inputs use the internal pull-up; the button pulls low when pressed.
type Lines struct {
	a, b   gpio.PinIO
	button gpio.PinIO
}

// OpenLines looks up and configures the three input pins by name.
func OpenLines(encoderA, encoderB, button string) (*Lines, error) {
	l := &Lines{}
	for _, p := range []struct {
		name string
		dst  *gpio.PinIO
	}{
		{encoderA, &l.a},
		{encoderB, &l.b},
		{button, &l.button},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return nil, fmt.Errorf("device: gpio pin %q not found", p.name)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("device: configure %s: %w", p.name, err)
		}
		*p.dst = pin
	}
	return l, nil
}

// Phases returns the encoder A and B levels.
func (l *Lines) Phases() (a, b bool) {
	return l.a.Read() == gpio.High, l.b.Read() == gpio.High
}

// Pressed reports whether the button is held down.
func (l *Lines) Pressed() bool {
	return l.button.Read() == gpio.Low
}
