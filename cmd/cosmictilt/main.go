// cosmictilt is a motion-reaction game: tilt the board or twist the knob
// the way the screen asks before the time runs out.
//
// Usage:
//
//	cosmictilt sim             - Play in the terminal with the keyboard
//	cosmictilt run             - Play on the handheld (GPIO/I2C/SPI)
//	cosmictilt difficulties    - Show the time budget of every level
//	cosmictilt config          - Print the default or effective config
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - error, warn, info or debug (default: from config)
//	--seed <value>      - RNG seed for reproducible target sequences
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagSeed     int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cosmictilt",
	Short: "Cosmic Tilt - a tilt and twist reaction game",
	Long: `Cosmic Tilt shows a random move (LEFT, RIGHT, FORWARD, BACK or TWIST)
and you have a shrinking amount of time to do it. Clear ten levels to win,
miss one and it's game over.

Available commands:
  sim           - Keyboard-driven simulator in the terminal
  run           - Hardware game loop on the handheld
  difficulties  - Time budget per difficulty and level
  config        - Show configuration

Examples:
  cosmictilt sim
  cosmictilt sim --difficulty hard --seed 42
  cosmictilt run --led
  cosmictilt difficulties
  cosmictilt config --effective --config ./my-tilt.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: error, warn, info, debug")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration named by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a logger on w. --log-level wins over the config.
func newLogger(w io.Writer, cfg config.Config) (*log.Logger, error) {
	name := cfg.Logging.Level
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level), nil
}

// seed returns --seed or a time-based seed.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
