package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/replay"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

// helpRows is the height of the help footer under the game screen.
const helpRows = 1

// recordable is a game whose inputs can be recorded for replay.
type recordable interface {
	registry.Game
	SetRecorder(r catch.InputRecorder)
	Seed() int64
	Config() config.CatchConfig
	Steps() uint64
}

// Options configures a Model beyond the runtime config.
type Options struct {
	// Store receives the replay on quit. Nil disables saving.
	Store *storage.Store

	// Record turns input recording on.
	Record bool

	// Logger reports replay saving. Defaults to log.Default().
	Logger *log.Logger
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       KeyMap
	help       help.Model
	recorder   *replay.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	replayID   int64 // Set once the recording is saved
}

// NewModel creates a new Bubble Tea model for the given game and starts it.
// The game gets the terminal minus the help footer.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	gameCfg := cfg
	gameCfg.ScreenH = max(0, cfg.ScreenH-helpRows)
	game.Reset(gameCfg)

	m := Model{
		game:       game,
		screen:     core.NewScreen(gameCfg.ScreenW, gameCfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
	m.help.Width = cfg.ScreenW

	if opts.Record {
		if g, ok := game.(recordable); ok {
			rec, err := replay.NewRecorder(g.ID(), g.Seed(), g.Config())
			if err != nil {
				opts.Logger.Warn("recording disabled", "error", err)
			} else {
				g.SetRecorder(rec)
				m.recorder = rec
			}
		}
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.saveRecording()
		return m, tea.Quit
	case core.ActionNone:
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns left clicks and drags into taps on the field.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
		if msg.Y < m.screen.Height() {
			m.inputFrame.Tap(msg.X)
		}
	}
	return m, nil
}

// handleResize processes window resize events. The round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(0, msg.Height-helpRows)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	elapsed := tickInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.inputFrame.Elapsed = elapsed

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRecording stores the session replay, once.
func (m *Model) saveRecording() {
	if m.recorder == nil || m.opts.Store == nil || m.replayID != 0 {
		return
	}
	g, ok := m.game.(recordable)
	if !ok || g.Steps() == 0 {
		return
	}

	id, err := m.opts.Store.SaveReplay(m.recorder.Finish(g.Steps()))
	if err != nil {
		m.opts.Logger.Warn("replay not saved", "error", err)
		return
	}
	m.replayID = id
	m.opts.Logger.Info("replay saved", "id", id, "game", g.ID(), "events", m.recorder.Len())
}

// ReplayID returns the ID of the saved replay, or 0.
func (m Model) ReplayID() int64 {
	return m.replayID
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".catch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given game and returns the ID
// of the saved replay, 0 when none was saved.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (int64, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if m, ok := final.(Model); ok {
		return m.ReplayID(), nil
	}
	return 0, nil
}
