// Package picker models the optional native folder-picker capability.
// The core never depends on a platform GUI; hosts that have one
// provide their own Picker, everything else falls back to plain path
// input.
package picker

import "errors"

var (
	// ErrUnavailable means no picker exists on this host.
	ErrUnavailable = errors.New("no folder picker available")

	// ErrCancelled means the user dismissed the picker without choosing.
	ErrCancelled = errors.New("folder selection cancelled")
)

// Picker asks the user to choose a directory.
type Picker interface {
	PickDirectory() (string, error)
}

// Unavailable is the default Picker on hosts without a native dialog.
type Unavailable struct{}

func (Unavailable) PickDirectory() (string, error) {
	return "", ErrUnavailable
}

// Default returns the picker for this host.
func Default() Picker {
	return Unavailable{}
}
