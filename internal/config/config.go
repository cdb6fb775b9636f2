// Package config provides YAML-based configuration loading and difficulty
// management for Cosmic Tilt.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Hardware   HardwareConfig   `yaml:"hardware"`
	Sim        SimConfig        `yaml:"sim"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GameConfig holds the rules of a session.
type GameConfig struct {
	MaxLevel       int     `yaml:"max_level"`
	ScoreAward     int     `yaml:"score_award"`
	LevelDecay     float64 `yaml:"level_decay"`    // Seconds removed per level
	MinTimeLimit   float64 `yaml:"min_time_limit"` // Floor for the round budget
	TwistThreshold int     `yaml:"twist_threshold"`
	TiltThreshold  float64 `yaml:"tilt_threshold"`
	CountdownFrom  int     `yaml:"countdown_from"`
	SuccessPauseMS int     `yaml:"success_pause_ms"`
}

// DifficultyConfig selects the starting difficulty and the base budget of each level.
type DifficultyConfig struct {
	Default   string    `yaml:"default"`
	BaseTimes BaseTimes `yaml:"base_times"`
}

// BaseTimes is the starting round budget in seconds for each difficulty.
type BaseTimes struct {
	Easy     float64 `yaml:"easy"`
	Med      float64 `yaml:"med"`
	Hard     float64 `yaml:"hard"`
	DiffPlus float64 `yaml:"diff_plus"`
}

// HardwareConfig names the pins and buses used by the device runner.
type HardwareConfig struct {
	EncoderA      string  `yaml:"encoder_a"`
	EncoderB      string  `yaml:"encoder_b"`
	Button        string  `yaml:"button"`
	I2CBus        string  `yaml:"i2c_bus"` // "" = first available bus
	AccelAddr     uint16  `yaml:"accel_addr"`
	OLED          bool    `yaml:"oled"`
	LED           bool    `yaml:"led"`
	LEDSPI        string  `yaml:"led_spi"` // "" = first available port
	LEDBrightness float64 `yaml:"led_brightness"`
}

// SimConfig tunes the keyboard-driven terminal simulator.
type SimConfig struct {
	FPS             int `yaml:"fps"`
	TiltHoldMS      int `yaml:"tilt_hold_ms"`
	KnobStepsPerKey int `yaml:"knob_steps_per_key"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Validate checks that the configuration can drive a playable session.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.MaxLevel < 1:
		return fmt.Errorf("%w: game.max_level must be >= 1, got %d", ErrInvalid, g.MaxLevel)
	case g.ScoreAward < 0:
		return fmt.Errorf("%w: game.score_award must be >= 0, got %d", ErrInvalid, g.ScoreAward)
	case g.LevelDecay < 0:
		return fmt.Errorf("%w: game.level_decay must be >= 0, got %v", ErrInvalid, g.LevelDecay)
	case g.MinTimeLimit <= 0:
		return fmt.Errorf("%w: game.min_time_limit must be > 0, got %v", ErrInvalid, g.MinTimeLimit)
	case g.TwistThreshold < 1:
		return fmt.Errorf("%w: game.twist_threshold must be >= 1, got %d", ErrInvalid, g.TwistThreshold)
	case g.TiltThreshold <= 0:
		return fmt.Errorf("%w: game.tilt_threshold must be > 0, got %v", ErrInvalid, g.TiltThreshold)
	case g.CountdownFrom < 0:
		return fmt.Errorf("%w: game.countdown_from must be >= 0, got %d", ErrInvalid, g.CountdownFrom)
	case g.SuccessPauseMS < 0:
		return fmt.Errorf("%w: game.success_pause_ms must be >= 0, got %d", ErrInvalid, g.SuccessPauseMS)
	}

	for _, d := range Difficulties {
		if c.Difficulty.BaseTimes.For(d) <= 0 {
			return fmt.Errorf("%w: difficulty.base_times.%s must be > 0", ErrInvalid, d.Key())
		}
	}
	if _, err := ParseDifficulty(c.Difficulty.Default); err != nil {
		return fmt.Errorf("%w: difficulty.default: %v", ErrInvalid, err)
	}

	if c.Hardware.LEDBrightness < 0 || c.Hardware.LEDBrightness > 1 {
		return fmt.Errorf("%w: hardware.led_brightness must be within [0, 1], got %v", ErrInvalid, c.Hardware.LEDBrightness)
	}
	switch sim := c.Sim; {
	case sim.FPS <= 0:
		return fmt.Errorf("%w: sim.fps must be > 0, got %d", ErrInvalid, sim.FPS)
	case sim.TiltHoldMS < 0:
		return fmt.Errorf("%w: sim.tilt_hold_ms must be >= 0, got %d", ErrInvalid, sim.TiltHoldMS)
	case sim.KnobStepsPerKey <= 0:
		return fmt.Errorf("%w: sim.knob_steps_per_key must be > 0, got %d", ErrInvalid, sim.KnobStepsPerKey)
	}
	return nil
}

// StartDifficulty returns the configured default difficulty, falling back to Easy.
func (c Config) StartDifficulty() Difficulty {
	d, err := ParseDifficulty(c.Difficulty.Default)
	if err != nil {
		return Easy
	}
	return d
}
