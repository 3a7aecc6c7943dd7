// This file tests the audio directory locating heuristic.

package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/libertyfm/libertyfm/internal/library"
	"github.com/libertyfm/libertyfm/internal/testutil"
)

func TestLocateAudioDir_RootItself(t *testing.T) {
	root := testutil.StationDir(t, "HEAD.mp3", "CLASS.mp3")

	dir, matches, err := library.LocateAudioDir(root)
	if err != nil {
		t.Fatalf("LocateAudioDir returned an error: %v", err)
	}
	if dir != root {
		t.Errorf("Expected root %s to win, got %s", root, dir)
	}
	if matches != 2 {
		t.Errorf("Expected 2 matches, got %d", matches)
	}
}

func TestLocateAudioDir_BestCandidateWins(t *testing.T) {
	root := t.TempDir()
	// One station at the root, three under Audio/. The richer candidate
	// must win.
	testutil.WriteFile(t, root, "HEAD.mp3", "x")
	testutil.WriteFile(t, root, filepath.Join("Audio", "HEAD.mp3"), "x")
	testutil.WriteFile(t, root, filepath.Join("Audio", "CLASS.wav"), "x")
	testutil.WriteFile(t, root, filepath.Join("Audio", "CHAT.mp3"), "x")

	dir, matches, err := library.LocateAudioDir(root)
	if err != nil {
		t.Fatalf("LocateAudioDir returned an error: %v", err)
	}
	if dir != filepath.Join(root, "Audio") {
		t.Errorf("Expected Audio subfolder to win, got %s", dir)
	}
	if matches != 3 {
		t.Errorf("Expected 3 matches, got %d", matches)
	}
}

func TestLocateAudioDir_TieResolvesToFirstCandidate(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "HEAD.mp3", "x")
	testutil.WriteFile(t, root, "CLASS.mp3", "x")
	testutil.WriteFile(t, root, filepath.Join("audio", "KJAH.mp3"), "x")
	testutil.WriteFile(t, root, filepath.Join("audio", "RISE.mp3"), "x")

	dir, _, err := library.LocateAudioDir(root)
	if err != nil {
		t.Fatalf("LocateAudioDir returned an error: %v", err)
	}
	// Root is enumerated before the named subfolders, so the 2-2 tie
	// goes to the root.
	if dir != root {
		t.Errorf("Expected tie to resolve to root, got %s", dir)
	}
}

func TestLocateAudioDir_CaseVariantSubfolder(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, filepath.Join("AUDIO", "MSX.wav"), "x")

	dir, matches, err := library.LocateAudioDir(root)
	if err != nil {
		t.Fatalf("LocateAudioDir returned an error: %v", err)
	}
	if dir != filepath.Join(root, "AUDIO") {
		t.Errorf("Expected AUDIO subfolder, got %s", dir)
	}
	if matches != 1 {
		t.Errorf("Expected 1 match, got %d", matches)
	}
}

func TestLocateAudioDir_RecursiveFallback(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join("mods", "restored", "sound data")
	testutil.WriteFile(t, root, filepath.Join(nested, "FLASH.mp3"), "x")
	testutil.WriteFile(t, root, filepath.Join(nested, "GAME.wav"), "x")

	dir, matches, err := library.LocateAudioDir(root)
	if err != nil {
		t.Fatalf("LocateAudioDir returned an error: %v", err)
	}
	if dir != filepath.Join(root, nested) {
		t.Errorf("Expected nested directory to be found, got %s", dir)
	}
	if matches != 2 {
		t.Errorf("Expected 2 matches, got %d", matches)
	}
}

func TestLocateAudioDir_NoCandidates(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "readme.txt", "not audio")

	_, _, err := library.LocateAudioDir(root)
	if !errors.Is(err, library.ErrAudioDirNotFound) {
		t.Fatalf("Expected ErrAudioDirNotFound, got %v", err)
	}
}

func TestLocateAudioDir_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, _, err := library.LocateAudioDir(missing)
	if !errors.Is(err, library.ErrRootNotFound) {
		t.Fatalf("Expected ErrRootNotFound, got %v", err)
	}
}

func TestLocateAudioDir_RootIsFile(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteFile(t, root, "HEAD.mp3", "x")

	_, _, err := library.LocateAudioDir(path)
	if !errors.Is(err, library.ErrRootNotFound) {
		t.Fatalf("Expected ErrRootNotFound for a file root, got %v", err)
	}
}

func TestCountStationMatches_OnePerStation(t *testing.T) {
	// Both extensions present for one station must count once.
	dir := testutil.StationDir(t, "HEAD.mp3", "HEAD.wav", "CLASS.wav")
	if got := library.CountStationMatches(dir); got != 2 {
		t.Errorf("Expected 2 matches, got %d", got)
	}

	if got := library.CountStationMatches(filepath.Join(dir, "missing")); got != 0 {
		t.Errorf("Expected 0 matches for missing directory, got %d", got)
	}
}

func TestCountStationMatches_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "THEME.mp3", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := library.CountStationMatches(dir); got != 0 {
		t.Errorf("Expected 0 matches, got %d", got)
	}
}
