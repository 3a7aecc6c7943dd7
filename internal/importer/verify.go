// This file re-checks a target directory against the last recorded
// import: files the cache says were imported must still exist. It
// backs the periodic verify job and the destination watcher.

package importer

import (
	"os"
	"path/filepath"

	"github.com/libertyfm/libertyfm/internal/models"
)

// VerifyTarget compares the destination directory against its
// import-cache.json record and returns the stations whose imported
// files have since disappeared. When no cache exists there is nothing
// to verify and the underlying read error is returned.
func VerifyTarget(targetDir string) ([]models.Station, error) {
	record, err := ReadCache(targetDir)
	if err != nil {
		return nil, err
	}

	var drifted []models.Station
	for _, detail := range record.Details {
		if detail.Status != models.StatusCopied && detail.Status != models.StatusConverted {
			continue
		}
		dst := detail.Destination
		if dst == "" {
			dst = filepath.Join(targetDir, string(detail.Stem)+models.CanonicalExt)
		}
		if _, err := os.Stat(dst); err != nil {
			drifted = append(drifted, detail.Stem)
		}
	}
	return drifted, nil
}
