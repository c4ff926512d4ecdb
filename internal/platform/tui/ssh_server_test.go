package tui

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewSSHServerUnknownGame(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.GameID = "nope"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	if _, err := NewSSHServer(cfg); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestSSHServerReturnsListenError(t *testing.T) {
	// Occupy a port so the server cannot bind it
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer l.Close()

	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = l.Addr().String()
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "replays.db")
	cfg.Record = true

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}

	result := make(chan error, 1)
	go func() {
		result <- srv.serve(make(chan os.Signal))
	}()

	select {
	case err := <-result:
		if err == nil {
			t.Error("serve should report the listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept waiting after the listener failed")
	}
	if srv.store != nil {
		t.Error("store should be closed after the listener failed")
	}
}
