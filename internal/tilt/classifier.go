// Package tilt classifies accelerometer samples into tilt gestures.
package tilt

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-tilt/internal/gesture"
)

// DefaultThreshold is the tilt threshold in m/s² (roughly 37° off level).
const DefaultThreshold = 6.0

// ErrSensorUnavailable is returned by Probe when the accelerometer cannot be
// reached at startup. It is fatal for a session.
var ErrSensorUnavailable = errors.New("tilt: accelerometer unavailable")

// Sample is one accelerometer reading in m/s².
type Sample struct {
	X, Y, Z float64
}

// Sensor is anything that can produce acceleration readings.
type Sensor interface {
	ReadAcceleration() (Sample, error)
}

// Classify maps a sample to a tilt gesture.
// The X axis wins only when strictly dominant; ties fall to the Y axis.
// Never returns gesture.Twist.
func Classify(s Sample, threshold float64) gesture.Gesture {
	if math.Abs(s.X) > math.Abs(s.Y) {
		switch {
		case s.X < -threshold:
			return gesture.Right
		case s.X > threshold:
			return gesture.Left
		default:
			return gesture.None
		}
	}

	switch {
	case s.Y < -threshold:
		return gesture.Forward
	case s.Y > threshold:
		return gesture.Back
	default:
		return gesture.None
	}
}

// Classifier polls a sensor and classifies each reading.
// Read failures are not errors here: a missing gesture is a valid steady state.
type Classifier struct {
	sensor    Sensor
	threshold float64
	failures  int
	logger    *log.Logger
}

// NewClassifier creates a classifier. A non-positive threshold uses DefaultThreshold.
// A nil logger discards output.
func NewClassifier(sensor Sensor, threshold float64, logger *log.Logger) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Classifier{
		sensor:    sensor,
		threshold: threshold,
		logger:    logger,
	}
}

// Poll reads the sensor once and returns the current gesture, or gesture.None
// when the sensor is absent or the read fails.
func (c *Classifier) Poll() gesture.Gesture {
	if c.sensor == nil {
		return gesture.None
	}
	s, err := c.sensor.ReadAcceleration()
	if err != nil {
		c.failures++
		c.logger.Debug("accelerometer read failed", "err", err, "failures", c.failures)
		return gesture.None
	}
	return Classify(s, c.threshold)
}

// Threshold returns the configured threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Failures returns the number of swallowed read failures.
func (c *Classifier) Failures() int {
	return c.failures
}

// Probe performs the one-time startup check that a sensor exists and answers.
func Probe(sensor Sensor) error {
	if sensor == nil {
		return ErrSensorUnavailable
	}
	if _, err := sensor.ReadAcceleration(); err != nil {
		return fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
	}
	return nil
}
