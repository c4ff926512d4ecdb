// catch is a terminal "catch the falling object" game.
//
// Usage:
//
//	catch list                  - List game variants
//	catch play [variant]        - Play (default variant: catch)
//	catch serve                 - Start SSH server for remote play
//	catch replay list           - List recorded replays
//	catch replay show <id>      - Re-simulate a replay and print its rounds
//	catch replay export <id>    - Export replay rounds as CSV
//	catch replay delete <id>    - Delete a replay
//	catch config                - Print the resolved game config
//
// Global flags:
//
//	--fps <rate>    - Set frame rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set replay database path (default: ~/.catch/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-catch/internal/games/catch"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "catch"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catch",
	Short: "Catch the falling object in your terminal",
	Long: `Catch is a terminal game: an object falls from the top of the field and
you move the catcher under it. Every catch makes the next fall faster; one
miss ends the round, and a new round starts by itself two seconds later.

Available commands:
  list     - Show the game variants
  play     - Play a variant
  serve    - Start SSH server for remote play
  replay   - List, inspect and export recorded sessions
  config   - Print the resolved game config

Examples:
  catch play
  catch play catch-clamped --difficulty hard
  catch play --record --seed 42
  catch serve --ssh :2222
  catch replay show 3`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catch/replays.db", "Path to replay database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
