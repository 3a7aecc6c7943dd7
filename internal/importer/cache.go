// This file writes the import-cache.json record of the most recent run
// to the target directory. The cache exists for idempotent inspection
// (the web player and the verify sweep read it); nothing in the import
// logic depends on it being present.

package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/libertyfm/libertyfm/internal/models"
)

// CacheFile is the name of the summary record written next to the
// imported audio files.
const CacheFile = "import-cache.json"

// CacheRecord mirrors the on-disk cache layout.
type CacheRecord struct {
	GeneratedAt string                `json:"generated_at"`
	SourceRoot  string                `json:"source_root"`
	AudioDir    string                `json:"audio_dir"`
	Tool        string                `json:"tool"`
	Expected    int                   `json:"expected"`
	Found       int                   `json:"found"`
	Copied      int                   `json:"copied"`
	Converted   int                   `json:"converted"`
	Missing     []models.Station      `json:"missing"`
	Failures    []models.Station      `json:"failures"`
	Details     []models.ImportRecord `json:"details"`
}

// writeCache records the summary in the target directory and notes the
// outcome (path or error) on the summary itself.
func writeCache(targetDir string, summary *models.Summary) {
	payload := CacheRecord{
		GeneratedAt: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		SourceRoot:  summary.SourceRoot,
		AudioDir:    summary.AudioDir,
		Tool:        summary.Tool,
		Expected:    summary.Expected,
		Found:       summary.Found,
		Copied:      summary.Copied,
		Converted:   summary.Converted,
		Missing:     summary.Missing,
		Failures:    summary.Failures,
		Details:     summary.Details,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		summary.CacheError = err.Error()
		return
	}

	cachePath := filepath.Join(targetDir, CacheFile)
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		summary.CacheError = err.Error()
		return
	}
	summary.CacheFile = cachePath
}

// ReadCache loads the cache record from a target directory.
func ReadCache(targetDir string) (*CacheRecord, error) {
	data, err := os.ReadFile(filepath.Join(targetDir, CacheFile))
	if err != nil {
		return nil, err
	}
	var payload CacheRecord
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
