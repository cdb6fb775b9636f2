package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-tilt/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print configuration",
	Long: `Prints the built-in default configuration, a good starting point for
~/.cosmictilt/config.yaml. With --effective, prints the configuration
actually loaded (custom path, user file, ./configs or defaults).

Examples:
  cosmictilt config > ~/.cosmictilt/config.yaml
  cosmictilt config --effective --config ./my-tilt.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
