package config

import (
	_ "embed"
)

//go:embed defaults/cosmictilt.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// Keep this aligned with defaults/cosmictilt.yaml.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			MaxLevel:       10,
			ScoreAward:     100,
			LevelDecay:     0.08,
			MinTimeLimit:   0.5,
			TwistThreshold: 4,
			TiltThreshold:  6.0,
			CountdownFrom:  3,
			SuccessPauseMS: 300,
		},
		Difficulty: DifficultyConfig{
			Default: "easy",
			BaseTimes: BaseTimes{
				Easy:     3.0,
				Med:      2.2,
				Hard:     1.5,
				DiffPlus: 0.8,
			},
		},
		Hardware: HardwareConfig{
			EncoderA:      "GPIO17",
			EncoderB:      "GPIO27",
			Button:        "GPIO22",
			AccelAddr:     0x53,
			OLED:          true,
			LEDBrightness: 0.2,
		},
		Sim: SimConfig{
			FPS:             60,
			TiltHoldMS:      300,
			KnobStepsPerKey: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
