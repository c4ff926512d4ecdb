package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the default catch configuration.
// Must stay in sync with defaults/catch.yaml.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Field: CatchField{
			Width:  400,
			CatchY: 500,
		},
		Catcher: CatchCatcher{
			Width: 100,
			Clamp: false,
			Nudge: 25,
		},
		Object: CatchObject{
			Width: 50,
		},
		Physics: CatchPhysics{
			BaseSpeed:    5.0,
			GrowthFactor: 1.2,
		},
		Timing: CatchTiming{
			TickMS:          16,
			GameOverDelayMS: 2000,
		},
		Difficulty: DifficultyConfig{
			MaxSpeed: 0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCatchYAML
}
