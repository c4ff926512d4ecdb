package catch

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// ErrInvalidConfiguration is returned by NewEngine when the parameters
// cannot produce a sane simulation.
var ErrInvalidConfiguration = errors.New("catch: invalid configuration")

// Params fixes the geometry and physics of an engine. All lengths share the
// host's unit space.
type Params struct {
	FieldWidth    float64
	CatcherWidth  float64
	ObjectWidth   float64 // Drawing only; the object is a point for catch tests
	CatchY        float64
	BaseSpeed     float64
	GrowthFactor  float64
	MaxSpeed      float64 // 0 = uncapped
	TickDuration  time.Duration
	GameOverDelay time.Duration
	ClampCatcher  bool
}

// DefaultParams returns the parameters of the default config.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultCatchConfig())
}

// ParamsFromConfig converts a YAML config into engine parameters.
func ParamsFromConfig(cfg config.CatchConfig) Params {
	return Params{
		FieldWidth:    cfg.Field.Width,
		CatcherWidth:  cfg.Catcher.Width,
		ObjectWidth:   cfg.Object.Width,
		CatchY:        cfg.Field.CatchY,
		BaseSpeed:     cfg.Physics.BaseSpeed,
		GrowthFactor:  cfg.Physics.GrowthFactor,
		MaxSpeed:      cfg.Difficulty.MaxSpeed,
		TickDuration:  time.Duration(cfg.Timing.TickMS) * time.Millisecond,
		GameOverDelay: time.Duration(cfg.Timing.GameOverDelayMS) * time.Millisecond,
		ClampCatcher:  cfg.Catcher.Clamp,
	}
}

// maxFieldWidth keeps spawn positions within the int range of Intn on every
// platform.
const maxFieldWidth = 1 << 30

// Validate reports the first parameter that makes the simulation meaningless.
func (p Params) Validate() error {
	finite := []struct {
		name  string
		value float64
	}{
		{"field width", p.FieldWidth},
		{"catcher width", p.CatcherWidth},
		{"object width", p.ObjectWidth},
		{"catch line", p.CatchY},
		{"base speed", p.BaseSpeed},
		{"growth factor", p.GrowthFactor},
		{"max speed", p.MaxSpeed},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfiguration, f.name, f.value)
		}
	}

	switch {
	case p.FieldWidth <= 0:
		return fmt.Errorf("%w: field width must be positive, got %v", ErrInvalidConfiguration, p.FieldWidth)
	case p.FieldWidth > maxFieldWidth:
		return fmt.Errorf("%w: field width must be at most %d, got %v", ErrInvalidConfiguration, maxFieldWidth, p.FieldWidth)
	case p.CatcherWidth <= 0:
		return fmt.Errorf("%w: catcher width must be positive, got %v", ErrInvalidConfiguration, p.CatcherWidth)
	case p.ObjectWidth < 0:
		return fmt.Errorf("%w: object width must not be negative, got %v", ErrInvalidConfiguration, p.ObjectWidth)
	case p.CatchY <= 0:
		return fmt.Errorf("%w: catch line must be below the top, got %v", ErrInvalidConfiguration, p.CatchY)
	case p.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speed must be positive, got %v", ErrInvalidConfiguration, p.BaseSpeed)
	case p.GrowthFactor <= 1:
		return fmt.Errorf("%w: growth factor must be greater than 1, got %v", ErrInvalidConfiguration, p.GrowthFactor)
	case p.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed must not be negative, got %v", ErrInvalidConfiguration, p.MaxSpeed)
	case p.TickDuration <= 0:
		return fmt.Errorf("%w: tick duration must be positive, got %v", ErrInvalidConfiguration, p.TickDuration)
	case p.GameOverDelay < 0:
		return fmt.Errorf("%w: game over delay must not be negative, got %v", ErrInvalidConfiguration, p.GameOverDelay)
	}
	return nil
}

// LoadParams loads the YAML config (see config.LoadCatch), applies the
// preset and the clamp override, and validates the result.
func LoadParams(path string, preset config.DifficultyPreset, clamp bool) (Params, config.CatchConfig, error) {
	cfg, err := config.LoadCatch(path)
	if err != nil {
		return Params{}, cfg, err
	}
	if preset != "" {
		config.ApplyCatchPreset(&cfg, preset)
	}
	if clamp {
		cfg.Catcher.Clamp = true
	}
	p := ParamsFromConfig(cfg)
	if err := p.Validate(); err != nil {
		return Params{}, cfg, err
	}
	return p, cfg, nil
}
