package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bosh-code/injectcss/core/logger"
)

const debounceDelay = 500 * time.Millisecond

// Watcher watches a source tree and fires OnChange (debounced) when files
// change. The dist directory must be excluded or the injector's own writes
// would retrigger the build.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rootDir  string
	exclude  []string
	onChange func() error

	mu       sync.Mutex
	debounce *time.Timer
}

// New creates a watcher over rootDir. exclude entries are paths relative to
// rootDir; .git and node_modules are always excluded.
func New(rootDir string, exclude []string, onChange func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsw,
		rootDir:  rootDir,
		exclude:  append([]string{".git", "node_modules"}, exclude...),
		onChange: onChange,
	}, nil
}

// Watch blocks, dispatching debounced change callbacks until the watcher
// closes.
func (w *Watcher) Watch() error {
	if err := w.addWatchersRecursively(w.rootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.shouldExcludePath(event.Name) {
				continue
			}
			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					w.watcher.Add(event.Name)
				}
			}
			w.fireDebounced()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) fireDebounced() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		logger.Debug("File changes detected, rebuilding...")
		if err := w.onChange(); err != nil {
			logger.Error("Rebuild failed: %v", err)
		}
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	return w.watcher.Close()
}

func (w *Watcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.Clean(relPath)

	for _, excludePath := range w.exclude {
		excludePath = filepath.Clean(excludePath)
		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}
		logger.Debug("Adding watcher for: %s", path)
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}
