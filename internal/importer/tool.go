// This file resolves the external transcoding tool from the system
// search path.

package importer

import (
	"errors"
	"os/exec"
)

// ErrToolNotFound is returned when no transcoding tool can be resolved
// on the search path. It is a structural error: the run aborts before
// any station is touched.
var ErrToolNotFound = errors.New("ffmpeg (or avconv) not found on PATH. Install ffmpeg: https://ffmpeg.org/download.html")

// toolCandidates is the ordered list of executable names tried on the
// search path. First found wins.
var toolCandidates = []string{"ffmpeg", "ffmpeg.exe", "avconv"}

// ResolveTool locates the transcoding binary. A non-empty preferred
// name or path is tried first; when it does not resolve, the default
// candidates are searched in order.
func ResolveTool(preferred string) (string, error) {
	if preferred != "" {
		if path, err := exec.LookPath(preferred); err == nil {
			return path, nil
		}
	}
	for _, name := range toolCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrToolNotFound
}
