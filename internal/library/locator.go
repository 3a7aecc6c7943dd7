// This file contains the heuristic that locates the station audio
// directory inside an arbitrary, user-supplied game folder. Layouts in
// the wild vary (assets at the root, under an "Audio" folder in any
// case variant, or buried deeper by mod managers), so candidates are
// scored by how many expected station files they contain.

package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/libertyfm/libertyfm/internal/models"
)

var (
	// ErrRootNotFound is returned when the supplied root path does not
	// exist or is not a directory.
	ErrRootNotFound = errors.New("directory not found")

	// ErrAudioDirNotFound is returned when no candidate directory under
	// the root contains a single station file.
	ErrAudioDirNotFound = errors.New("unable to locate station audio files under the provided directory")
)

// Conventional names the game and common repacks use for the audio
// asset folder, checked before falling back to a full tree walk.
var audioDirNames = []string{"audio", "Audio", "AUDIO", "AudioPC", "audiopc"}

// probeExtensions is the fixed probe order for exact-case filename
// checks. The canonical container comes before the alternate.
var probeExtensions = []string{".mp3", ".MP3", ".wav", ".WAV"}

// CountStationMatches scores a directory by the number of stations for
// which a same-stem file with a recognized extension exists. A missing
// or unreadable directory scores zero.
func CountStationMatches(dir string) int {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0
	}
	count := 0
	for _, stem := range models.Stations {
		for _, ext := range probeExtensions {
			if _, err := os.Stat(filepath.Join(dir, string(stem)+ext)); err == nil {
				count++
				break
			}
		}
	}
	return count
}

// LocateAudioDir finds the directory under root that most likely holds
// the station audio assets, returning it together with the match count
// that justified the choice. The root itself and the conventional
// "audio" folder names are tried first; only when every one of those
// scores zero does the search degrade to a full recursive walk. The
// highest score wins and ties resolve to the first candidate seen.
func LocateAudioDir(root string) (string, int, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", 0, fmt.Errorf("%w: %s", ErrRootNotFound, abs)
	}

	bestDir := ""
	bestScore := 0
	consider := func(dir string) {
		if score := CountStationMatches(dir); score > bestScore {
			bestDir = dir
			bestScore = score
		}
	}

	consider(abs)
	for _, name := range audioDirNames {
		consider(filepath.Join(abs, name))
	}

	if bestScore == 0 {
		// Walk errors on individual subtrees are skipped; a partially
		// unreadable tree can still yield a usable candidate.
		filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fs.SkipDir
			}
			if d.IsDir() {
				consider(path)
			}
			return nil
		})
	}

	if bestScore == 0 {
		return "", 0, fmt.Errorf("%w (checked %s)", ErrAudioDirNotFound, abs)
	}
	return bestDir, bestScore, nil
}
