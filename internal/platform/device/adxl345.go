package device

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/vovakirdan/cosmic-tilt/internal/tilt"
)

// ADXL345 register map (subset).
const (
	adxlRegDevID      = 0x00
	adxlRegPowerCtl   = 0x2D
	adxlRegDataFormat = 0x31
	adxlRegDataX0     = 0x32

	adxlDeviceID   = 0xE5
	adxlMeasure    = 0x08 // POWER_CTL measure bit
	adxlFullRes16g = 0x0B // FULL_RES | range ±16 g

	// DefaultADXLAddr is the address with SDO/ALT pulled low.
	DefaultADXLAddr = 0x53

	adxlScaleG      = 0.0039 // g per LSB in full resolution
	standardGravity = 9.80665
)

// ADXL345 reads acceleration from an Analog Devices ADXL345 over I2C.
type ADXL345 struct {
	dev *i2c.Dev
}

// NewADXL345 checks the device id and switches the part to measurement mode.
func NewADXL345(bus i2c.Bus, addr uint16) (*ADXL345, error) {
	if addr == 0 {
		addr = DefaultADXLAddr
	}
	a := &ADXL345{dev: &i2c.Dev{Bus: bus, Addr: addr}}

	id, err := a.readReg(adxlRegDevID)
	if err != nil {
		return nil, fmt.Errorf("adxl345: read device id: %w", err)
	}
	if id != adxlDeviceID {
		return nil, fmt.Errorf("adxl345: unexpected device id 0x%02X at 0x%02X", id, addr)
	}
	if err := a.writeReg(adxlRegDataFormat, adxlFullRes16g); err != nil {
		return nil, fmt.Errorf("adxl345: set data format: %w", err)
	}
	if err := a.writeReg(adxlRegPowerCtl, adxlMeasure); err != nil {
		return nil, fmt.Errorf("adxl345: power on: %w", err)
	}
	return a, nil
}

// ReadAcceleration returns the current reading in m/s².
func (a *ADXL345) ReadAcceleration() (tilt.Sample, error) {
	var raw [6]byte
	if err := a.dev.Tx([]byte{adxlRegDataX0}, raw[:]); err != nil {
		return tilt.Sample{}, fmt.Errorf("adxl345: read data: %w", err)
	}
	return decodeADXL(raw), nil
}

func (a *ADXL345) readReg(reg byte) (byte, error) {
	var b [1]byte
	if err := a.dev.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (a *ADXL345) writeReg(reg, value byte) error {
	return a.dev.Tx([]byte{reg, value}, nil)
}

// decodeADXL converts the six little-endian data registers to m/s².
func decodeADXL(raw [6]byte) tilt.Sample {
	axis := func(i int) float64 {
		counts := int16(binary.LittleEndian.Uint16(raw[i : i+2]))
		return float64(counts) * adxlScaleG * standardGravity
	}
	return tilt.Sample{X: axis(0), Y: axis(2), Z: axis(4)}
}

// unavailable is a sensor that always fails with the bring-up error, so the
// startup check can report why the accelerometer is missing.
type unavailable struct {
	err error
}

func (u unavailable) ReadAcceleration() (tilt.Sample, error) {
	return tilt.Sample{}, u.err
}
