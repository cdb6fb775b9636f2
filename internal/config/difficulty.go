package config

import (
	"fmt"
	"math"
	"strings"
)

// Difficulty is one of the four ordered difficulty levels.
type Difficulty int

const (
	Easy Difficulty = iota
	Med
	Hard
	DiffPlus
)

// Difficulties lists all levels in menu order.
var Difficulties = []Difficulty{Easy, Med, Hard, DiffPlus}

// String returns the on-screen label.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "EASY"
	case Med:
		return "MED"
	case Hard:
		return "HARD"
	case DiffPlus:
		return "DIFF+"
	default:
		return "UNKNOWN"
	}
}

// Key returns the YAML key used for this level.
func (d Difficulty) Key() string {
	switch d {
	case Easy:
		return "easy"
	case Med:
		return "med"
	case Hard:
		return "hard"
	case DiffPlus:
		return "diff_plus"
	default:
		return ""
	}
}

// Cycle moves delta steps through the levels, wrapping at both ends.
func (d Difficulty) Cycle(delta int) Difficulty {
	n := len(Difficulties)
	return Difficulty(((int(d)+delta)%n + n) % n)
}

// ParseDifficulty accepts the label or YAML key of a level, case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "med", "medium":
		return Med, nil
	case "hard":
		return Hard, nil
	case "diff+", "diff_plus", "diffplus":
		return DiffPlus, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q (must be easy, med, hard, or diff+)", s)
	}
}

// For returns the base time of d, or 0 for an unknown level.
func (b BaseTimes) For(d Difficulty) float64 {
	switch d {
	case Easy:
		return b.Easy
	case Med:
		return b.Med
	case Hard:
		return b.Hard
	case DiffPlus:
		return b.DiffPlus
	default:
		return 0
	}
}

// Budget calculates round time limits from difficulty and level.
type Budget struct {
	base  BaseTimes
	decay float64
	floor float64
}

// NewBudget creates a budget calculator from the game and difficulty sections.
func NewBudget(game GameConfig, diff DifficultyConfig) *Budget {
	return &Budget{
		base:  diff.BaseTimes,
		decay: game.LevelDecay,
		floor: game.MinTimeLimit,
	}
}

// Base returns the level-1 budget for d.
func (b *Budget) Base(d Difficulty) float64 {
	return b.base.For(d)
}

// Limit returns the round time limit in seconds for d at level (1-based).
func (b *Budget) Limit(d Difficulty, level int) float64 {
	return TimeLimit(b.base.For(d), level, b.decay, b.floor)
}

// TimeLimit is max(floor, base - (level-1)*decay).
func TimeLimit(base float64, level int, decay, floor float64) float64 {
	if level < 1 {
		level = 1
	}
	return math.Max(floor, base-float64(level-1)*decay)
}
