package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "Show the time budget per difficulty and level",
	Long: `Prints how many seconds each round allows at every level.

The budget starts at the difficulty's base time and loses a fixed step per
level, never dropping below the configured floor.`,
	RunE: runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Print(difficultyTable(cfg))
	return nil
}

// difficultyTable renders one row per level and one column per difficulty.
func difficultyTable(cfg config.Config) string {
	budget := config.NewBudget(cfg.Game, cfg.Difficulty)

	var b strings.Builder
	fmt.Fprintf(&b, "  %-5s", "Level")
	for _, d := range config.Difficulties {
		fmt.Fprintf(&b, "  %6s", d)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-5s", "-----")
	for range config.Difficulties {
		fmt.Fprintf(&b, "  %6s", "------")
	}
	b.WriteString("\n")

	for level := 1; level <= cfg.Game.MaxLevel; level++ {
		fmt.Fprintf(&b, "  %-5d", level)
		for _, d := range config.Difficulties {
			fmt.Fprintf(&b, "  %5.2fs", budget.Limit(d, level))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTwist needs more than %d knob steps; tilts need %.1f m/s².\n",
		cfg.Game.TwistThreshold, cfg.Game.TiltThreshold)
	return b.String()
}
