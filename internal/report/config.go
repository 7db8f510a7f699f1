package report

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Thresholds are the classifier's numeric bars. They are tuned heuristics,
// not invariants, so they live in configuration with these defaults.
type Thresholds struct {
	// Promotion bar: all three must hold for the success tier.
	PromoteAccuracy  int     `toml:"promote-accuracy"`
	PromoteQuestions int     `toml:"promote-questions"`
	PromoteMinutes   float64 `toml:"promote-minutes"`

	// Stricter bar that allows a grade step-up before difficulty tops out.
	SuperAccuracy  int     `toml:"super-accuracy"`
	SuperQuestions int     `toml:"super-questions"`
	SuperMinutes   float64 `toml:"super-minutes"`

	// Below either minimum the signal is too sparse to judge.
	MinQuestions int     `toml:"min-questions"`
	MinMinutes   float64 `toml:"min-minutes"`

	// Needs-practice bar.
	StruggleAccuracy int `toml:"struggle-accuracy"`
	StruggleMistakes int `toml:"struggle-mistakes"`

	// Below this accuracy a topic is still improving.
	ImproveAccuracy int `toml:"improve-accuracy"`

	// The calm tier requires accuracy, volume and time together.
	SteadyAccuracy  int     `toml:"steady-accuracy"`
	SteadyQuestions int     `toml:"steady-questions"`
	SteadyMinutes   float64 `toml:"steady-minutes"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PromoteAccuracy:  92,
		PromoteQuestions: 40,
		PromoteMinutes:   20,

		SuperAccuracy:  97,
		SuperQuestions: 80,
		SuperMinutes:   30,

		MinQuestions: 10,
		MinMinutes:   5,

		StruggleAccuracy: 65,
		StruggleMistakes: 10,

		ImproveAccuracy: 80,

		SteadyAccuracy:  85,
		SteadyQuestions: 15,
		SteadyMinutes:   10,
	}
}

// LoadThresholds reads threshold overrides from a TOML file on top of the
// defaults. A missing file is not an error.
func LoadThresholds(path string) (Thresholds, error) {
	cfg := DefaultThresholds()
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultThresholds(), fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
