// Package catch implements "catch the falling object": an object drops from
// the top of the field and the player moves a catcher under it. Each catch
// speeds the next fall up; a single miss ends the round, and after a short
// pause the round restarts on its own.
package catch

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
)

// maxStepsPerTick bounds how far Tick catches up after a stalled host.
// Time beyond it is dropped.
const maxStepsPerTick = 8

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseActive   Phase = iota // Object falling, input accepted
	PhaseGameOver              // Frozen until the reset timer runs out
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome tells what a single fixed step did.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeCaught            // Object crossed the line inside the catch window
	OutcomeMissed            // Object crossed the line outside it; round over
	OutcomeRestarted         // Game-over pause ended, fresh round
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCaught:
		return "caught"
	case OutcomeMissed:
		return "missed"
	case OutcomeRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Rand is the random source used to place new objects.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// RoundState is the complete mutable state of a round.
type RoundState struct {
	CatcherX   float64 // Left edge of the catcher
	ObjectX    float64
	ObjectY    float64 // Grows during a fall, 0 at spawn
	FallSpeed  float64 // Units added to ObjectY per step, always > 0
	Score      int     // Catches since the last reset
	Phase      Phase
	ResetTimer time.Duration // Only meaningful in PhaseGameOver
}

// Snapshot is a read-only view of the engine for rendering and tests.
type Snapshot struct {
	Step           uint64
	CatcherX       float64
	ObjectX        float64
	ObjectY        float64
	FallSpeed      float64
	Score          int
	Phase          Phase
	ResetRemaining time.Duration
}

// Engine owns a RoundState and evolves it in fixed steps.
// It is not safe for concurrent use; the host drives it from one loop.
type Engine struct {
	params     Params
	rng        Rand
	difficulty *config.DifficultyManager
	state      RoundState
	accum      time.Duration // Elapsed time not yet consumed by a step
	steps      uint64
}

// NewEngine validates p and returns an engine in a fresh Active round.
func NewEngine(p Params, rng Rand) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params:     p,
		rng:        rng,
		difficulty: config.NewDifficultyManager(p.GrowthFactor, config.DifficultyConfig{MaxSpeed: p.MaxSpeed}),
	}
	e.Reset()
	return e, nil
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// Steps returns the number of fixed steps run so far.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// State returns a copy of the round state.
func (e *Engine) State() RoundState {
	return e.state
}

// Tick advances the simulation by dt, in whole fixed steps. Leftover time is
// carried into the next call. Only the non-trivial outcomes are returned.
func (e *Engine) Tick(dt time.Duration) []Outcome {
	if dt <= 0 {
		return nil
	}
	e.accum += dt

	var outcomes []Outcome
	for n := 0; e.accum >= e.params.TickDuration; n++ {
		if n == maxStepsPerTick {
			e.accum = 0
			break
		}
		e.accum -= e.params.TickDuration
		if o := e.Step(); o != OutcomeNone {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// Step runs exactly one fixed step.
func (e *Engine) Step() Outcome {
	e.steps++

	if e.state.Phase == PhaseGameOver {
		e.state.ResetTimer -= e.params.TickDuration
		if e.state.ResetTimer <= 0 {
			e.Reset()
			return OutcomeRestarted
		}
		return OutcomeNone
	}

	e.state.ObjectY += e.state.FallSpeed
	if e.state.ObjectY < e.params.CatchY {
		return OutcomeNone
	}

	outcome := OutcomeMissed
	if e.CatchWindow().Contains(e.state.ObjectX) {
		e.state.Score++
		e.state.FallSpeed = e.difficulty.NextSpeed(e.state.FallSpeed)
		outcome = OutcomeCaught
	} else {
		e.state.Phase = PhaseGameOver
		e.state.ResetTimer = e.params.GameOverDelay
	}

	e.spawn()
	return outcome
}

// SetCatcherPosition moves the catcher's left edge to x. Ignored during
// game over. x is taken as-is unless ClampCatcher is set.
func (e *Engine) SetCatcherPosition(x float64) {
	if e.state.Phase != PhaseActive {
		return
	}
	if e.params.ClampCatcher {
		x = core.ClampF(x, 0, math.Max(0, e.params.FieldWidth-e.params.CatcherWidth))
	}
	e.state.CatcherX = x
}

// Reset starts a fresh round. The new object position is drawn from the
// random source, never carried over.
func (e *Engine) Reset() {
	e.state = RoundState{
		CatcherX:  0,
		FallSpeed: e.params.BaseSpeed,
		Phase:     PhaseActive,
	}
	e.spawn()
}

// CatchWindow returns the horizontal span that counts as a catch.
func (e *Engine) CatchWindow() core.Span {
	return core.NewSpan(e.state.CatcherX, e.params.CatcherWidth)
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Step:      e.steps,
		CatcherX:  e.state.CatcherX,
		ObjectX:   e.state.ObjectX,
		ObjectY:   e.state.ObjectY,
		FallSpeed: e.state.FallSpeed,
		Score:     e.state.Score,
		Phase:     e.state.Phase,
	}
	if e.state.Phase == PhaseGameOver {
		s.ResetRemaining = max(e.state.ResetTimer, 0)
	}
	return s
}

// spawn puts a new object at the top at a whole-unit X in [0, FieldWidth].
func (e *Engine) spawn() {
	e.state.ObjectY = 0
	e.state.ObjectX = float64(e.rng.Intn(int(e.params.FieldWidth) + 1))
}
