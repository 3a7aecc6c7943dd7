// This file implements a file system watcher for the import
// destination. It uses OS-level file system events to detect manual
// edits to imported station files and triggers a verify sweep.

package library

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/libertyfm/libertyfm/internal/models"
)

// WatcherService watches the destination directory for file system
// changes and triggers a verify sweep when imported files are added,
// modified, or deleted out from under the importer.
type WatcherService struct {
	targetDir     string
	onDrift       func(targetDir string)
	watcher       *fsnotify.Watcher
	changed       map[string]bool
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a new destination watcher. onDrift is
// invoked (debounced) with the target directory after relevant
// changes settle.
func NewWatcherService(targetDir string, onDrift func(targetDir string)) *WatcherService {
	return &WatcherService{
		targetDir:     targetDir,
		onDrift:       onDrift,
		changed:       make(map[string]bool),
		debounceDelay: 2 * time.Second, // Wait 2 seconds after last change before verifying
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the destination directory for changes.
func (w *WatcherService) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err := watcher.Add(w.targetDir); err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for destination: %s", w.targetDir)

	// Start the event processing goroutine
	go w.processEvents()

	return nil
}

// Stop stops the file watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// processEvents processes file system events and triggers verify sweeps.
func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

// handleEvent processes a single file system event.
func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Ignore Chmod events (these are often triggered by opening folders,
	// reading files, etc.) to prevent false triggers when browsing.
	if event.Op == fsnotify.Chmod {
		return
	}

	hasRelevantOp := (event.Op&fsnotify.Create == fsnotify.Create) ||
		(event.Op&fsnotify.Write == fsnotify.Write) ||
		(event.Op&fsnotify.Remove == fsnotify.Remove) ||
		(event.Op&fsnotify.Rename == fsnotify.Rename)

	if !hasRelevantOp || !w.isRelevantFile(event.Name) {
		return
	}

	w.mu.Lock()
	w.changed[event.Name] = true
	// Reset debounce timer
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerVerify)
	w.mu.Unlock()
}

// isRelevantFile reports whether a path is one of the imported station
// files. Only those can drift from the recorded import.
func (w *WatcherService) isRelevantFile(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, models.CanonicalExt) {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	for _, station := range models.Stations {
		if strings.EqualFold(stem, string(station)) {
			return true
		}
	}
	return false
}

// triggerVerify runs the drift callback for the batched changes.
func (w *WatcherService) triggerVerify() {
	w.mu.Lock()
	if len(w.changed) == 0 {
		w.mu.Unlock()
		return
	}
	count := len(w.changed)
	w.changed = make(map[string]bool)
	w.mu.Unlock()

	log.Printf("Destination changed (%d station file event(s)), running verify sweep", count)
	if w.onDrift != nil {
		w.onDrift(w.targetDir)
	}
}
