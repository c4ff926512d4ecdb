package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-catch/internal/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecording(gameID string) *replay.Recording {
	return &replay.Recording{
		GameID: gameID,
		Seed:   42,
		Config: []byte("field:\n    width: 400\n"),
		Events: []replay.Event{
			{Step: 0, Kind: replay.KindTap, X: 120},
			{Step: 57, Kind: replay.KindTap, X: 37.5},
			{Step: 90, Kind: replay.KindRestart},
		},
		Steps:     300,
		CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveReplay(sampleRecording("catch"))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent and data must survive
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadReplay(id); err != nil {
		t.Errorf("LoadReplay() after reopen failed: %v", err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	in := sampleRecording("catch")

	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	out, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}

	if out.ID != id || out.GameID != "catch" || out.Seed != 42 || out.Steps != 300 {
		t.Errorf("Loaded header = %+v", out)
	}
	if string(out.Config) != string(in.Config) {
		t.Errorf("Config = %q, expected %q", out.Config, in.Config)
	}
	if len(out.Events) != len(in.Events) {
		t.Fatalf("Expected %d events, got %d", len(in.Events), len(out.Events))
	}
	for i := range in.Events {
		if out.Events[i] != in.Events[i] {
			t.Errorf("Event %d = %+v, expected %+v", i, out.Events[i], in.Events[i])
		}
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("CreatedAt = %v, expected %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestStoreSaveWithoutEvents(t *testing.T) {
	store := openTestStore(t)
	in := sampleRecording("catch")
	in.Events = nil
	in.CreatedAt = time.Time{}

	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	out, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if len(out.Events) != 0 {
		t.Errorf("Expected no events, got %d", len(out.Events))
	}
	if out.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadReplay(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)

	for _, game := range []string{"catch", "catch-clamped", "catch"} {
		if _, err := store.SaveReplay(sampleRecording(game)); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	all, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(all))
	}
	// Newest first
	if all[0].ID < all[1].ID || all[1].ID < all[2].ID {
		t.Errorf("Replays not ordered newest first: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}
	if all[0].Events != 3 || all[0].Steps != 300 {
		t.Errorf("Summary = %+v", all[0])
	}

	clamped, err := store.ListReplays("catch-clamped", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(clamped) != 1 || clamped[0].GameID != "catch-clamped" {
		t.Errorf("Filtered list = %+v", clamped)
	}

	limited, err := store.ListReplays("", 2)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 replays with limit, got %d", len(limited))
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(sampleRecording("catch"))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.LoadReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_events").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Expected events to be deleted, %d left", n)
	}

	if err := store.DeleteReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreReplayRoundTripRuns(t *testing.T) {
	store := openTestStore(t)

	in := sampleRecording("catch")
	in.Config = nil // Defaults
	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	out, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}

	want, err := replay.Run(in)
	if err != nil {
		t.Fatalf("Run(original) failed: %v", err)
	}
	got, err := replay.Run(out)
	if err != nil {
		t.Fatalf("Run(loaded) failed: %v", err)
	}
	if got.Final != want.Final {
		t.Errorf("Loaded replay diverged: %+v vs %+v", got.Final, want.Final)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.catch/replays.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".catch", "replays.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}
