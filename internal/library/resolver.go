// This file resolves the source file for a single station inside a
// chosen audio directory, tolerating case and extension variance.

package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/libertyfm/libertyfm/internal/models"
)

// scanExtensions is the extension preference order for the
// case-insensitive directory scan.
var scanExtensions = []string{".mp3", ".wav"}

// FindSource returns the best matching source file for a station, or
// false when nothing usable exists. Exact-case names are probed first
// (canonical extension before alternate), then the directory is
// scanned case-insensitively in the same extension preference order.
// Non-regular entries are ignored and read errors degrade to "not
// found" rather than propagating.
func FindSource(audioDir string, stem models.Station) (string, bool) {
	for _, ext := range probeExtensions {
		direct := filepath.Join(audioDir, string(stem)+ext)
		if _, err := os.Stat(direct); err == nil {
			return direct, true
		}
	}

	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return "", false
	}

	for _, ext := range scanExtensions {
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), ext) {
				continue
			}
			candidate := strings.TrimSuffix(name, filepath.Ext(name))
			if strings.EqualFold(candidate, string(stem)) {
				return filepath.Join(audioDir, name), true
			}
		}
	}

	return "", false
}
