package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-tilt/internal/console"
	"github.com/vovakirdan/cosmic-tilt/internal/platform/device"
	"github.com/vovakirdan/cosmic-tilt/internal/present"
)

var (
	flagNoOLED bool
	flagLED    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the game on the handheld",
	Long: `Run the game loop on real hardware through periph.io.

Wiring (from config, hardware section):
  Encoder A/B   - GPIO inputs with pull-up
  Button        - GPIO input with pull-up, pressed = low
  ADXL345       - I2C, address 0x53
  SSD1306 OLED  - I2C, 128x64
  NeoPixel      - SPI MOSI (enable with --led)

If the accelerometer does not answer, the display shows
ERROR / ADXL MISSING / CHECK WIRING and the game never starts.

Examples:
  cosmictilt run
  cosmictilt run --led --log-level debug
  cosmictilt run --no-oled`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoOLED, "no-oled", false, "Do not drive the OLED display")
	runCmd.Flags().BoolVar(&flagLED, "led", false, "Drive the NeoPixel status LED")
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoOLED {
		cfg.Hardware.OLED = false
	}
	if flagLED {
		cfg.Hardware.LED = true
	}

	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	board, err := device.Open(cfg.Hardware, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := board.Close(); err != nil {
			logger.Warn("hardware shutdown", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutting down...")
		cancel()
	}()

	sink := present.Multi{board.Renderer(logger), present.LogSink{Logger: logger}}
	runner := console.New(cfg, board.Lines, board.Sensor, console.NewSystemClock(), sink, logger, seed())

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
