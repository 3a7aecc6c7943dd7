package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherService_StartStop(t *testing.T) {
	dir := t.TempDir()
	watcher := NewWatcherService(dir, nil)

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("Failed to stop watcher: %v", err)
	}
}

func TestWatcherService_MissingDirectory(t *testing.T) {
	watcher := NewWatcherService(filepath.Join(t.TempDir(), "gone"), nil)
	if err := watcher.Start(); err == nil {
		watcher.Stop()
		t.Fatal("Expected an error watching a missing directory")
	}
}

func TestWatcherService_TriggersVerifyOnStationChange(t *testing.T) {
	dir := t.TempDir()
	triggered := make(chan string, 1)

	watcher := NewWatcherService(dir, func(targetDir string) {
		select {
		case triggered <- targetDir:
		default:
		}
	})
	watcher.debounceDelay = 50 * time.Millisecond

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "HEAD.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-triggered:
		if got != dir {
			t.Errorf("Expected callback with %s, got %s", dir, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Verify callback was not triggered in time")
	}
}

func TestWatcherService_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	triggered := make(chan struct{}, 1)

	watcher := NewWatcherService(dir, func(string) {
		select {
		case triggered <- struct{}{}:
		default:
		}
	})
	watcher.debounceDelay = 50 * time.Millisecond

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-triggered:
		t.Fatal("Verify callback fired for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherService_IsRelevantFile(t *testing.T) {
	w := NewWatcherService(t.TempDir(), nil)

	cases := []struct {
		path string
		want bool
	}{
		{"/target/HEAD.mp3", true},
		{"/target/chat.MP3", true},
		{"/target/HEAD.wav", false},
		{"/target/import-cache.json", false},
		{"/target/THEME.mp3", false},
	}
	for _, tc := range cases {
		if got := w.isRelevantFile(tc.path); got != tc.want {
			t.Errorf("isRelevantFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
