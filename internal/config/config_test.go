package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	parsed, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default YAML does not parse: %v", err)
	}
	if parsed != DefaultConfig() {
		t.Errorf("embedded YAML and DefaultConfig() disagree:\n yaml: %+v\n code: %+v", parsed, DefaultConfig())
	}
}

func TestTimeLimit(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		level    int
		expected float64
	}{
		{"easy level 1", 3.0, 1, 3.0},
		{"easy level 5", 3.0, 5, 2.68},
		{"easy level 10", 3.0, 10, 2.28},
		{"diff+ level 1", 0.8, 1, 0.8},
		{"diff+ floors at 0.5", 0.8, 5, 0.5},
		{"diff+ deep floor", 0.8, 10, 0.5},
		{"level below 1 treated as 1", 2.2, 0, 2.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TimeLimit(tc.base, tc.level, 0.08, 0.5)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("TimeLimit(%v, %d) = %v, expected %v", tc.base, tc.level, got, tc.expected)
			}
		})
	}
}

func TestBudgetUsesDifficultyTable(t *testing.T) {
	cfg := DefaultConfig()
	b := NewBudget(cfg.Game, cfg.Difficulty)

	expectedBase := map[Difficulty]float64{Easy: 3.0, Med: 2.2, Hard: 1.5, DiffPlus: 0.8}
	for d, want := range expectedBase {
		if b.Base(d) != want {
			t.Errorf("Base(%v) = %v, expected %v", d, b.Base(d), want)
		}
	}

	if got := b.Limit(Easy, 5); math.Abs(got-2.68) > 1e-9 {
		t.Errorf("Limit(Easy, 5) = %v, expected 2.68", got)
	}
	if got := b.Limit(Hard, 20); got != 0.5 {
		t.Errorf("Limit(Hard, 20) = %v, expected floor 0.5", got)
	}
}

func TestDifficultyCycle(t *testing.T) {
	tests := []struct {
		from     Difficulty
		delta    int
		expected Difficulty
	}{
		{Easy, 1, Med},
		{Hard, 1, DiffPlus},
		{DiffPlus, 1, Easy},
		{Easy, -1, DiffPlus},
		{Med, -1, Easy},
		{Easy, 4, Easy},
		{Med, -6, DiffPlus},
		{Hard, 0, Hard},
	}
	for _, tc := range tests {
		if got := tc.from.Cycle(tc.delta); got != tc.expected {
			t.Errorf("%v.Cycle(%d) = %v, expected %v", tc.from, tc.delta, got, tc.expected)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
		got, err = ParseDifficulty(d.Key())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.Key(), got, err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty(\"nightmare\") should fail")
	}
}

func TestLoadCustomPathOverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  max_level: 5\ndifficulty:\n  default: hard\n  base_times:\n    hard: 1.2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxLevel != 5 {
		t.Errorf("max_level = %d, expected 5", cfg.Game.MaxLevel)
	}
	if cfg.Difficulty.BaseTimes.Hard != 1.2 {
		t.Errorf("hard base = %v, expected 1.2", cfg.Difficulty.BaseTimes.Hard)
	}
	// Omitted keys keep their defaults
	if cfg.Difficulty.BaseTimes.Easy != 3.0 {
		t.Errorf("easy base = %v, expected default 3.0", cfg.Difficulty.BaseTimes.Easy)
	}
	if cfg.Game.ScoreAward != 100 {
		t.Errorf("score_award = %d, expected default 100", cfg.Game.ScoreAward)
	}
	if cfg.StartDifficulty() != Hard {
		t.Errorf("StartDifficulty() = %v, expected HARD", cfg.StartDifficulty())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [not, a, map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("game:\n  min_time_limit: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max level", func(c *Config) { c.Game.MaxLevel = 0 }},
		{"negative award", func(c *Config) { c.Game.ScoreAward = -1 }},
		{"negative decay", func(c *Config) { c.Game.LevelDecay = -0.1 }},
		{"zero floor", func(c *Config) { c.Game.MinTimeLimit = 0 }},
		{"twist threshold", func(c *Config) { c.Game.TwistThreshold = 0 }},
		{"tilt threshold", func(c *Config) { c.Game.TiltThreshold = 0 }},
		{"countdown", func(c *Config) { c.Game.CountdownFrom = -1 }},
		{"base time", func(c *Config) { c.Difficulty.BaseTimes.Med = 0 }},
		{"default difficulty", func(c *Config) { c.Difficulty.Default = "insane" }},
		{"brightness", func(c *Config) { c.Hardware.LEDBrightness = 1.5 }},
		{"fps", func(c *Config) { c.Sim.FPS = 0 }},
		{"success pause", func(c *Config) { c.Game.SuccessPauseMS = -300 }},
		{"tilt hold", func(c *Config) { c.Sim.TiltHoldMS = -1 }},
		{"knob steps", func(c *Config) { c.Sim.KnobStepsPerKey = 0 }},
		{"reversed knob", func(c *Config) { c.Sim.KnobStepsPerKey = -2 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.MaxLevel = 7
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip changed config:\n got  %+v\n want %+v", back, cfg)
	}
}
