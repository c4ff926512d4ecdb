package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/replay"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var (
	flagReplayGame  string
	flagReplayLimit int
	flagExportOut   string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect recorded sessions",
	Long: `Replays store the seed, the config and every input of a session played
with --record. Rounds and scores are recomputed by running the session again.

Examples:
  catch replay list
  catch replay show 3
  catch replay export 3 --out rounds.csv
  catch replay delete 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded replays",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-simulate a replay and print its rounds",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export the rounds of a replay as CSV",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayExport,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayListCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only list replays of this variant")
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")
	replayExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "-", "Output file (- for stdout)")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayExportCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// parseID parses a replay ID argument or exits.
func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}
	return id
}

// loadAndRun loads a replay and re-simulates it, exiting on failure.
func loadAndRun(store *storage.Store, id int64) (*replay.Recording, replay.Result) {
	rec, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'catch replay list' to see recorded replays.")
		os.Exit(1)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	result, err := replay.Run(rec)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error replaying: %v\n", err)
		os.Exit(1)
	}
	return rec, result
}

func runReplayList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	replays, err := store.ListReplays(flagReplayGame, flagReplayLimit)
	if err != nil {
		logger.Error("cannot list replays", "error", err)
		return
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catch play --record' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-14s  %-20s  %-8s  %-6s  %s\n", "ID", "Game", "Seed", "Steps", "Inputs", "Date")
	fmt.Printf("  %-5s  %-14s  %-20s  %-8s  %-6s  %s\n", "--", "----", "----", "-----", "------", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-14s  %-20d  %-8d  %-6d  %s\n",
			r.ID, r.GameID, r.Seed, r.Steps, r.Events, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runReplayShow(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	defer store.Close()

	rec, result := loadAndRun(store, id)

	fmt.Printf("Replay #%d - %s (seed %d)\n", rec.ID, rec.GameID, rec.Seed)
	fmt.Printf("Recorded %s, %d inputs, %d steps\n",
		rec.CreatedAt.Local().Format("2006-01-02 15:04"), len(rec.Events), rec.Steps)
	fmt.Println()

	fmt.Printf("  %-5s  %-6s  %-10s  %-10s  %-6s  %s\n", "Round", "Score", "Start", "End", "Speed", "Result")
	fmt.Printf("  %-5s  %-6s  %-10s  %-10s  %-6s  %s\n", "-----", "-----", "-----", "---", "-----", "------")
	for _, r := range result.Rounds {
		fmt.Printf("  %-5d  %-6d  %-10d  %-10d  %-6.1f  %s\n",
			r.Number, r.Score, r.StartStep, r.EndStep, r.PeakSpeed, r.End)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", result.Best())
}

func runReplayExport(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	defer store.Close()

	_, result := loadAndRun(store, id)

	var w io.Writer = os.Stdout
	if flagExportOut != "-" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			logger.Error("cannot create output file", "path", flagExportOut, "error", err)
			return
		}
		defer f.Close()
		w = f
	}

	if err := replay.ExportCSV(w, result.Rounds); err != nil {
		logger.Error("export failed", "error", err)
		return
	}
	if flagExportOut != "-" {
		logger.Info("exported rounds", "replay", id, "rounds", len(result.Rounds), "path", flagExportOut)
	}
}

func runReplayDelete(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
			return
		}
		logger.Error("cannot delete replay", "error", err)
		return
	}
	fmt.Printf("Deleted replay #%d\n", id)
}
