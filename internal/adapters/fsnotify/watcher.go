// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches a taxonomy directory, filters out everything that is not a taxonomy
// JSON file, and debounces rapid events (editors often trigger multiple writes per save).
package fsnotify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DebounceInterval is how long a file must stay quiet before onChange fires.
const DebounceInterval = 50 * time.Millisecond

// Editor scratch-file prefixes and suffixes to ignore.
var (
	ignorePrefixes = []string{".", "#", "~"}
	ignoreSuffixes = []string{"~", ".swp", ".swx", ".tmp", ".bak"}
)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring dir (not recursive; taxonomy directories are flat).
// onChange is called with the absolute path of each changed JSON file.
func (w *Watcher) Watch(dir string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "watch", Path: absPath, Err: os.ErrInvalid}
	}
	if err := w.fw.Add(absPath); err != nil {
		return err
	}

	// Events for a file are coalesced until it has been quiet for
	// DebounceInterval, so a truncate-then-write save fires once, after the write.
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		pending := make(map[string]bool)
		timer := time.NewTimer(DebounceInterval)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if shouldIgnorePath(event.Name) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					pending[event.Name] = true
					timer.Reset(DebounceInterval)
				}
			case <-timer.C:
				paths := make([]string, 0, len(pending))
				for p := range pending {
					paths = append(paths, p)
				}
				sort.Strings(paths)
				clear(pending)
				for _, p := range paths {
					onChange(p)
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own; the event is only logged
				log.Warn().Err(err).Str("dir", absPath).Msg("taxonomy watcher error")
			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources. It waits for the event
// loop to exit, so no onChange call runs after Stop returns.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// shouldIgnorePath returns true if the file path should not trigger onChange.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".json") {
		return true
	}
	for _, p := range ignorePrefixes {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	for _, s := range ignoreSuffixes {
		if strings.HasSuffix(base, s) {
			return true
		}
	}
	return false
}
