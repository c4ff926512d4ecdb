// Package config provides YAML-based game configuration loading and
// difficulty management for the catch game.
package config

// CatchConfig contains all configuration for the catch game.
// Positions and sizes are in field units, not screen cells.
type CatchConfig struct {
	Field      CatchField       `yaml:"field"`
	Catcher    CatchCatcher     `yaml:"catcher"`
	Object     CatchObject      `yaml:"object"`
	Physics    CatchPhysics     `yaml:"physics"`
	Timing     CatchTiming      `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CatchField defines the playfield geometry.
type CatchField struct {
	Width  float64 `yaml:"width"`
	CatchY float64 `yaml:"catch_y"` // Y of the catcher line
}

// CatchCatcher defines the catcher.
type CatchCatcher struct {
	Width float64 `yaml:"width"`
	// Clamp keeps the catcher inside [0, field.width - width]. Off by default:
	// taps near the edge may park the catcher partly off-field.
	Clamp bool    `yaml:"clamp"`
	Nudge float64 `yaml:"nudge"` // Keyboard step
}

// CatchObject defines the falling object. Width only affects drawing; the
// object is a point for catch testing.
type CatchObject struct {
	Width float64 `yaml:"width"`
}

// CatchPhysics defines fall speed and its growth per catch.
type CatchPhysics struct {
	BaseSpeed    float64 `yaml:"base_speed"`    // Units per tick
	GrowthFactor float64 `yaml:"growth_factor"` // Multiplier applied per catch
}

// CatchTiming defines the fixed step and the game-over pause.
type CatchTiming struct {
	TickMS          int `yaml:"tick_ms"`
	GameOverDelayMS int `yaml:"game_over_delay_ms"`
}

// DifficultyConfig defines the speed progression limits.
type DifficultyConfig struct {
	MaxSpeed float64 `yaml:"max_speed"` // 0 = uncapped
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
