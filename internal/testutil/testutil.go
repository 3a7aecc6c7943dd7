// Package testutil provides shared helpers for package tests: an
// in-memory database with migrations applied, station source trees,
// and stub transcoding tools.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/libertyfm/libertyfm/internal/db"
)

// SetupTestDB creates an in-memory SQLite database and applies all migrations.
// It returns the database connection, ready for use in tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use in-memory database for testing to ensure tests are fast and isolated.
	database, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	// Attach a cleanup function to automatically close the DB when the test completes.
	t.Cleanup(func() {
		database.Close()
	})

	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return database
}

// WriteFile creates a file (and any parent directories) under dir and
// returns its full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// StationDir creates a temporary directory populated with the given
// file names, each holding placeholder audio bytes.
func StationDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		WriteFile(t, dir, name, "audio-bytes:"+name)
	}
	return dir
}

// StubToolScript is a stand-in transcoder: it writes output to its
// last argument and exits 0, like a well-behaved ffmpeg.
const StubToolScript = `#!/bin/sh
for last in "$@"; do :; done
printf 'converted-audio' > "$last"
exit 0
`

// FailingToolScript touches its output file before exiting non-zero,
// so tests can assert the partial destination gets cleaned up.
const FailingToolScript = `#!/bin/sh
for last in "$@"; do :; done
: > "$last"
echo "simulated encoder failure" >&2
exit 3
`

// StubTool writes an executable script into its own temp directory and
// returns the script's full path.
func StubTool(t *testing.T, name, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write stub tool: %v", err)
	}
	return path
}
