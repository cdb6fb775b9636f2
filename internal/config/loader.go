package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "cosmictilt.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.cosmictilt/config.yaml -> ./configs/cosmictilt.yaml -> embedded default.
// Files are decoded over DefaultConfig, so omitted keys keep their defaults.
func Load(customPath string) (Config, error) {
	// Custom path errors are reported, everything else falls through
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, cfg.Validate()
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, cfg.Validate()
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, cfg.Validate()
}

// Marshal renders a configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func loadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cosmictilt", "config.yaml")
}
