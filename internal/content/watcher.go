package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports files changed inside a theme workspace.
// Every directory below the root is watched, including ones created later.
// The callback receives the slash-separated path relative to the root.
type Watcher struct {
	mu       sync.Mutex
	root     string
	debounce time.Duration
	onChange func(relPath string)
	logger   *slog.Logger

	watcher *fsnotify.Watcher
	timers  map[string]*time.Timer
	stop    chan struct{}
	done    chan struct{}
}

// NewWatcher creates a Watcher for root. Call Start to begin watching.
func NewWatcher(root string, debounce time.Duration, logger *slog.Logger, onChange func(relPath string)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
}

// Start begins watching. It is an error to start a running watcher.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return errors.New("watcher already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(fw, w.root); err != nil {
		fw.Close()
		return err
	}

	w.watcher = fw
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	go w.loop(fw, w.stop, w.done)

	w.logger.Debug("started watching theme workspace", slog.String("root", w.root))
	return nil
}

// Stop ends watching and cancels pending notifications.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.watcher == nil {
		w.mu.Unlock()
		return
	}
	close(w.stop)
	w.watcher.Close()
	done := w.done
	w.watcher = nil
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	<-done
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop(fw *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory",
							slog.String("path", event.Name),
							slog.String("error", err.Error()),
						)
					}
					continue
				}
			}

			w.schedule(filepath.Clean(event.Name))

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme workspace watcher error", slog.String("error", err.Error()))
		}
	}
}

// schedule resets the debounce timer of path. The callback fires when path
// names a regular file or no longer exists, so removals are reported too.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		running := w.watcher != nil
		w.mu.Unlock()

		if !running {
			return
		}
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil, !info.Mode().IsRegular():
			return
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return
		}
		if w.onChange != nil {
			w.onChange(filepath.ToSlash(rel))
		}
	})
}
