package db_test

import (
	"path/filepath"
	"testing"

	"github.com/libertyfm/libertyfm/internal/db"
)

func TestInitDBAndMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := db.InitDB(path)
	if err != nil {
		t.Fatalf("InitDB returned an error: %v", err)
	}
	defer database.Close()

	// Verify foreign keys are enabled
	var foreignKeysEnabled int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeysEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys status: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Errorf("Foreign keys should be enabled, got: %d", foreignKeysEnabled)
	}

	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("RunMigrations returned an error: %v", err)
	}

	// The import_runs table must exist after migrating
	_, err = database.Exec("INSERT INTO import_runs (source_root, audio_dir, tool, target, expected, found, copied, converted) VALUES ('/g', '/g/Audio', 'ffmpeg', '/web', 9, 0, 0, 0)")
	if err != nil {
		t.Fatalf("Failed to insert into import_runs: %v", err)
	}

	// Running migrations again must be a no-op, not an error
	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("Re-running migrations returned an error: %v", err)
	}
}
