package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
	"github.com/vovakirdan/cosmic-tilt/internal/logging"
	"github.com/vovakirdan/cosmic-tilt/internal/platform/tui"
)

var (
	flagFPS        int
	flagLogFile    string
	flagDifficulty string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play in the terminal",
	Long: `Play Cosmic Tilt with the keyboard standing in for the hardware.

Controls:
  Arrows/WASD  - Tilt left, right, forward, back
  Z / X        - Turn the knob (menu: change difficulty, rounds: TWIST)
  Space/Enter  - Button
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Logs would corrupt the screen, so they only go to --log-file.

Examples:
  cosmictilt sim
  cosmictilt sim --difficulty diff+
  cosmictilt sim --log-file /tmp/tilt.log --log-level debug`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFPS, "fps", 0, "Polling rate (0 = from config)")
	simCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty: easy, med, hard, diff+")
}

func runSim(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("sim needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.Sim.FPS = flagFPS
	}
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		cfg.Difficulty.Default = d.Key()
	}

	logger := logging.Discard()
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if logger, err = newLogger(f, cfg); err != nil {
			return err
		}
	} else if _, err := newLogger(os.Stderr, cfg); err != nil {
		// Still reject a bad --log-level
		return err
	}

	logger.Info("simulator starting", "fps", cfg.Sim.FPS, "difficulty", cfg.StartDifficulty())
	return tui.Run(cfg, seed(), logger)
}
