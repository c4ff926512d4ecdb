package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/platform/tui"
	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play the game",
	Long: `Start playing. The variant defaults to "catch".

Controls:
  Mouse click/drag - Move the catcher to the pointer
  Left/Right, A/D  - Nudge the catcher
  P/Esc            - Pause
  R                - Restart the round
  Ctrl+S           - Save a screenshot to ~/.catch/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentler growth, wider catcher
  normal - Config values as-is
  hard   - Faster start, steeper growth, narrower catcher
  fixed  - Speed never grows

Examples:
  catch play
  catch play catch-clamped
  catch play --difficulty easy
  catch play --config ./my-catch.yaml
  catch play --record --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session as a replay")
}

// applyGameFlags validates --config and --difficulty and hands them to the
// game package.
func applyGameFlags() error {
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	if _, _, err := catch.LoadParams(flagConfig, preset, false); err != nil {
		return err
	}
	catch.SetConfigPath(flagConfig)
	catch.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := catch.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'catch list' to see available variants.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open replay database, not recording", "error", err)
			store = nil
		}
	}

	id, runErr := tui.Run(game, cfg, tui.Options{
		Store:  store,
		Record: store != nil,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if id > 0 {
		fmt.Printf("Saved replay #%d (seed %d). Run 'catch replay show %d' to review it.\n", id, seed, id)
	}
}
