package catch

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/registry"
)

// Registered game IDs.
const (
	GameID        = "catch"
	ClampedGameID = "catch-clamped"
)

// InputRecorder receives every input the game applies to its engine,
// stamped with the engine step it was applied before.
type InputRecorder interface {
	RecordTap(step uint64, x float64)
	RecordRestart(step uint64)
}

// Game adapts the Engine to the platform: it loads config, turns host input
// into engine calls and draws the field.
type Game struct {
	id      string
	title   string
	clamp   bool
	engine  *Engine
	cfg     config.CatchConfig
	runtime core.RuntimeConfig
	layout  layout
	paused  bool
	rounds  int // Rounds lost this session
	best    int // Best score this session
	rec     InputRecorder
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates the standard game. The catcher may leave the field.
func New() *Game {
	return &Game{id: GameID, title: "Catch the Falling Object"}
}

// NewClamped creates a variant that keeps the catcher on the field.
func NewClamped() *Game {
	return &Game{id: ClampedGameID, title: "Catch (clamped catcher)", clamp: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh engine from the loaded config and the runtime seed.
// An unusable config falls back to the defaults; the CLI validates the
// config before a game is started.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	params, cfg, err := LoadParams(configPath, difficultyPreset, g.clamp)
	if err != nil {
		cfg = config.DefaultCatchConfig()
		cfg.Catcher.Clamp = g.clamp
		params = ParamsFromConfig(cfg)
	}
	g.cfg = cfg

	engine, err := NewEngine(params, rand.New(rand.NewSource(runtime.Seed)))
	if err != nil {
		engine, err = NewEngine(DefaultParams(), rand.New(rand.NewSource(runtime.Seed)))
		if err != nil {
			panic(fmt.Sprintf("catch: default parameters rejected: %v", err))
		}
	}
	g.engine = engine
	g.paused = false
	g.rounds = 0
	g.best = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize recomputes the field-to-screen mapping. The round keeps going.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.engine == nil {
		return
	}
	g.layout = newLayout(w, h, g.engine.Params())
}

// SetRecorder attaches r to receive every applied input. Nil detaches.
func (g *Game) SetRecorder(r InputRecorder) {
	g.rec = r
}

// Config returns the resolved config of the current session.
func (g *Game) Config() config.CatchConfig {
	return g.cfg
}

// Seed returns the seed the current session was started with.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Steps returns the engine step count.
func (g *Game) Steps() uint64 {
	return g.engine.Steps()
}

// Step applies one frame of input and advances the engine.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
	}

	snap := g.engine.Snapshot()
	nudge := g.cfg.Catcher.Nudge
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		g.moveCatcher(snap.CatcherX - nudge)
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		g.moveCatcher(snap.CatcherX + nudge)
	}
	if col, ok := in.Pointer(); ok {
		g.moveCatcher(g.layout.fieldX(col))
	}

	var outcomes []Outcome
	if in.Elapsed > 0 {
		outcomes = g.engine.Tick(in.Elapsed)
	} else if o := g.engine.Step(); o != OutcomeNone {
		outcomes = []Outcome{o}
	}
	for _, o := range outcomes {
		if o == OutcomeMissed {
			g.rounds++
			g.best = max(g.best, g.engine.Snapshot().Score)
		}
	}

	return core.StepResult{State: g.State()}
}

// moveCatcher forwards a position to the engine, recording it only when the
// engine would accept it.
func (g *Game) moveCatcher(x float64) {
	if g.engine.Snapshot().Phase != PhaseActive {
		return
	}
	if g.rec != nil {
		g.rec.RecordTap(g.engine.Steps(), x)
	}
	g.engine.SetCatcherPosition(x)
}

// restart abandons the current round.
func (g *Game) restart() {
	if g.rec != nil {
		g.rec.RecordRestart(g.engine.Steps())
	}
	g.engine.Reset()
}

// Snapshot returns the engine snapshot for determinism checks.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Stats returns rounds lost and the best score of this session.
func (g *Game) Stats() (rounds, best int) {
	return g.rounds, g.best
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.engine.Snapshot()
	return core.GameState{
		Score:    s.Score,
		GameOver: s.Phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Register the game variants with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClampedGameID, func() registry.Game {
		return NewClamped()
	})
}
