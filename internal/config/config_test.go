// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if default values are set
		if cfg.Port != 4173 {
			t.Errorf("Expected default port 4173, got %d", cfg.Port)
		}
		if cfg.Database.Path != "./libertyfm.db" {
			t.Errorf("Expected default db path './libertyfm.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Target.Path != "./web/sounds/gta/3" {
			t.Errorf("Expected default target path './web/sounds/gta/3', got '%s'", cfg.Target.Path)
		}
		if cfg.Tool != "" {
			t.Errorf("Expected no default tool override, got '%s'", cfg.Tool)
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		// Create a temporary config file for this test
		configContent := `
port: 9999
tool: "/opt/ffmpeg/bin/ffmpeg"
database:
  path: "/tmp/test.db"
target:
  path: "/tmp/test-sounds"
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		// Note: `t.TempDir()` is not used here because Viper looks in the CWD.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		// Clean up the file after the test
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if values from the file were loaded
		if cfg.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Port)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Expected db path '/tmp/test.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Target.Path != "/tmp/test-sounds" {
			t.Errorf("Expected target path '/tmp/test-sounds', got '%s'", cfg.Target.Path)
		}
		if cfg.Tool != "/opt/ffmpeg/bin/ffmpeg" {
			t.Errorf("Expected tool '/opt/ffmpeg/bin/ffmpeg', got '%s'", cfg.Tool)
		}
		if cfg.VerifyInterval != 60 {
			t.Errorf("Expected default verify interval of 60, got %d", cfg.VerifyInterval)
		}
	})
}
