package catch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/registry"
)

// newGame returns a game reset with the default config, isolated from any
// config in the user's home directory.
func newGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

type recorded struct {
	step    uint64
	restart bool
	x       float64
}

type fakeRecorder struct {
	events []recorded
}

func (r *fakeRecorder) RecordTap(step uint64, x float64) {
	r.events = append(r.events, recorded{step: step, x: x})
}

func (r *fakeRecorder) RecordRestart(step uint64) {
	r.events = append(r.events, recorded{step: step, restart: true})
}

// forceMiss parks the object just above the line, away from the catcher.
func forceMiss(g *Game) {
	g.engine.state.CatcherX = 0
	g.engine.state.ObjectX = 399
	g.engine.state.ObjectY = g.engine.params.CatchY - 1
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{GameID, ClampedGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q should be registered", id)
		}
	}
	g, err := registry.Create(ClampedGameID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != ClampedGameID {
		t.Errorf("ID() = %q, expected %q", g.ID(), ClampedGameID)
	}
}

func TestGameReset(t *testing.T) {
	g := newGame(t, New(), 42)

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("fresh game state = %+v", state)
	}
	if g.Seed() != 42 {
		t.Errorf("Seed() = %d, expected 42", g.Seed())
	}
	if g.Config().Field.Width != 400 {
		t.Errorf("Config().Field.Width = %v, expected 400", g.Config().Field.Width)
	}
	if g.Steps() != 0 {
		t.Errorf("Steps() = %d, expected 0", g.Steps())
	}
}

func TestGameResetFallsBackOnBadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("/definitely/not/here.yaml")
	defer SetConfigPath("")

	g := NewClamped()
	g.Reset(core.DefaultConfig())

	if g.engine == nil {
		t.Fatal("Reset should still build an engine")
	}
	if !g.engine.Params().ClampCatcher {
		t.Error("fallback should keep the variant's clamp setting")
	}
}

func TestLoadParamsRejectsNonFiniteYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		yaml string
	}{
		{"NaN base speed", "physics:\n  base_speed: .nan\n"},
		{"infinite field width", "field:\n  width: .inf\n"},
		{"huge field width", "field:\n  width: 1e19\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catch.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			_, _, err := LoadParams(path, "", false)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("LoadParams error = %v, expected ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestGameResetFallsBackOnNonFiniteConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "catch.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  base_speed: .nan\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(core.DefaultConfig())

	if got := g.Snapshot().FallSpeed; got != 5 {
		t.Errorf("FallSpeed = %v, expected default 5", got)
	}
}

func TestGameDifficultyPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := New()
	g.Reset(core.DefaultConfig())

	if got := g.Snapshot().FallSpeed; got != 6 {
		t.Errorf("hard preset speed = %v, expected 6", got)
	}
}

func TestGamePointerTap(t *testing.T) {
	g := newGame(t, New(), 1)

	// 80 columns over 400 units: column 40 is x=200
	in := core.NewInputFrame()
	in.Tap(40)
	g.Step(in)

	if got := g.Snapshot().CatcherX; got != 200 {
		t.Errorf("CatcherX = %v, expected 200", got)
	}
}

func TestGameKeyboardNudge(t *testing.T) {
	g := newGame(t, New(), 1)

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)
	g.Step(right)
	if got := g.Snapshot().CatcherX; got != 50 {
		t.Errorf("after two right nudges CatcherX = %v, expected 50", got)
	}

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 4; i++ {
		g.Step(left)
	}
	// Unclamped: the catcher walks off the left edge
	if got := g.Snapshot().CatcherX; got != -50 {
		t.Errorf("CatcherX = %v, expected -50", got)
	}

	both := core.NewInputFrame()
	both.Set(core.ActionLeft)
	both.Set(core.ActionRight)
	g.Step(both)
	if got := g.Snapshot().CatcherX; got != -50 {
		t.Errorf("opposite nudges should cancel, CatcherX = %v", got)
	}
}

func TestGameClampedVariant(t *testing.T) {
	g := newGame(t, NewClamped(), 1)

	in := core.NewInputFrame()
	in.Tap(79)
	g.Step(in)

	if got := g.Snapshot().CatcherX; got != 300 {
		t.Errorf("clamped CatcherX = %v, expected 300", got)
	}
}

func TestGameStepAdvancesOneFixedStep(t *testing.T) {
	g := newGame(t, New(), 1)

	g.Step(core.NewInputFrame())
	if g.Steps() != 1 {
		t.Errorf("Steps() = %d, expected 1", g.Steps())
	}
	if got := g.Snapshot().ObjectY; got != 5 {
		t.Errorf("ObjectY = %v, expected 5", got)
	}
}

func TestGameElapsedTime(t *testing.T) {
	g := newGame(t, New(), 1)

	in := core.NewInputFrame()
	in.Elapsed = 50 * time.Millisecond
	g.Step(in)

	if g.Steps() != 3 {
		t.Errorf("Steps() = %d after 50ms, expected 3", g.Steps())
	}
}

func TestGamePause(t *testing.T) {
	g := newGame(t, New(), 1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	steps := g.Steps()
	tap := core.NewInputFrame()
	tap.Tap(30)
	g.Step(tap)

	if g.Steps() != steps {
		t.Errorf("engine advanced while paused: %d -> %d", steps, g.Steps())
	}
	if got := g.Snapshot().CatcherX; got != 0 {
		t.Errorf("tap while paused moved catcher to %v", got)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameOverAndStats(t *testing.T) {
	g := newGame(t, New(), 1)

	g.engine.state.Score = 4
	forceMiss(g)
	result := g.Step(core.NewInputFrame())

	if !result.State.GameOver {
		t.Fatal("Game should be over after a miss")
	}
	if result.State.Score != 4 {
		t.Errorf("game over score = %d, expected 4", result.State.Score)
	}
	rounds, best := g.Stats()
	if rounds != 1 || best != 4 {
		t.Errorf("Stats() = (%d, %d), expected (1, 4)", rounds, best)
	}

	// Taps are ignored until the next round
	in := core.NewInputFrame()
	in.Tap(50)
	g.Step(in)
	if got := g.Snapshot().CatcherX; got != 0 {
		t.Errorf("tap during game over moved catcher to %v", got)
	}

	// The round comes back on its own; best survives
	for i := 0; i < 200 && g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Fatal("round should restart after the delay")
	}
	if _, best := g.Stats(); best != 4 {
		t.Errorf("best = %d after restart, expected 4", best)
	}
}

func TestGameHUDShowsSessionStats(t *testing.T) {
	g := newGame(t, New(), 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if hud := screen.Row(0); strings.Contains(hud, "Lost") || strings.Contains(hud, "Best") {
		t.Errorf("fresh session HUD should not show stats: %q", hud)
	}

	g.engine.state.Score = 4
	forceMiss(g)
	g.Step(core.NewInputFrame())
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Best: 4") {
		t.Errorf("HUD = %q, expected best score", hud)
	}
	if !strings.Contains(hud, "Lost: 1") {
		t.Errorf("HUD = %q, expected rounds lost", hud)
	}
}

func TestGameRestartAction(t *testing.T) {
	g := newGame(t, New(), 1)
	g.engine.state.Score = 3
	g.engine.state.CatcherX = 120

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	s := g.Snapshot()
	if s.Score != 0 || s.CatcherX != 0 {
		t.Errorf("restart left %+v", s)
	}
}

func TestGameRecorder(t *testing.T) {
	g := newGame(t, New(), 1)
	rec := &fakeRecorder{}
	g.SetRecorder(rec)

	g.Step(core.NewInputFrame())
	tap := core.NewInputFrame()
	tap.Tap(20)
	g.Step(tap)

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	forceMiss(g)
	g.Step(core.NewInputFrame())
	ignored := core.NewInputFrame()
	ignored.Tap(10)
	g.Step(ignored)

	want := []recorded{
		{step: 1, x: 100},
		{step: 2, restart: true},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("recorded %+v, expected %+v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %+v, expected %+v", i, rec.events[i], want[i])
		}
	}
}

func TestGameResizeKeepsRound(t *testing.T) {
	g := newGame(t, New(), 1)
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	before := g.Snapshot()

	g.Resize(120, 40)

	if g.Snapshot() != before {
		t.Error("Resize should not touch the round")
	}
	in := core.NewInputFrame()
	in.Tap(60)
	g.Step(in)
	if got := g.Snapshot().CatcherX; got != 200 {
		t.Errorf("after resize, column 60 of 120 should be x=200, got %v", got)
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(t, New(), 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if screen.Get(0, 23) != GroundChar {
		t.Errorf("Ground should be drawn at bottom, got %q", screen.Get(0, 23))
	}
	// Catcher at x=0, 100 units = 20 cells
	for x := 0; x < 20; x++ {
		if screen.Get(x, 22) != CatcherChar {
			t.Fatalf("catcher cell %d = %q", x, screen.Get(x, 22))
		}
	}
	if screen.Get(20, 22) == CatcherChar {
		t.Error("catcher drawn too wide")
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	objCol := int(g.Snapshot().ObjectX * 0.2)
	if objCol < 80 && screen.Get(objCol, 1) != ObjectChar {
		t.Errorf("object should start on the first field row at column %d", objCol)
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := newGame(t, New(), 1)
	forceMiss(g)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
	if !strings.Contains(screen.String(), "next round in 2.0s") {
		t.Errorf("countdown missing:\n%s", screen.String())
	}
}

func TestGameRenderOffFieldCatcher(t *testing.T) {
	g := newGame(t, New(), 1)
	in := core.NewInputFrame()
	in.Tap(75) // x=375, catcher reaches 475
	g.Step(in)

	screen := core.NewScreen(80, 24)
	g.Render(screen) // must not panic

	if screen.Get(79, 22) != CatcherChar {
		t.Error("visible part of the catcher should still be drawn")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newGame(t, New(), 1)
	g.Resize(10, 4)

	screen := core.NewScreen(10, 4)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Too small") {
		t.Errorf("expected too-small notice, got %q", screen.String())
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame(t, New(), 12345)
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%25 == 0 {
				in.Tap(i % 80)
			}
			if i%40 == 0 {
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}
