// Package watcher reports edits to the settings and project files so open
// widgets can reload them.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lixenwraith/log"

	"github.com/watchfire-io/tasklog/internal/config"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventProjectsChanged EventType = iota
	EventSettingsChanged
)

// DebounceDelay collapses bursts of events for the same file.
const DebounceDelay = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the global directory for settings/projects changes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	logger     *log.Logger
	dir        string
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for the global directory.
func New(logger *log.Logger) (*Watcher, error) {
	dir, err := config.GlobalDir()
	if err != nil {
		return nil, err
	}
	return NewForDir(dir, logger)
}

// NewForDir creates a watcher for an explicit directory.
func NewForDir(dir string, logger *log.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		logger:     logger,
		dir:        dir,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start creates the directory if needed and starts watching it.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}

	go w.processEvents()

	w.logger.Debug("msg", "Watching config directory", "component", "watcher", "dir", w.dir)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("msg", "Watcher error", "component", "watcher", "error", err)
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// SaveYAML writes a temp file and renames it over the target, which
	// shows up as Create on the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	var eventType EventType
	switch filepath.Base(event.Name) {
	case config.ProjectsFileName:
		eventType = EventProjectsChanged
	case config.SettingsFileName:
		eventType = EventSettingsChanged
	default:
		return
	}

	w.debounceEvent(event.Name, func() {
		w.logger.Debug("msg", "Config file changed",
			"component", "watcher",
			"path", event.Name,
			"op", event.Op.String())
		select {
		case w.eventsChan <- Event{Type: eventType, Path: event.Name}:
		case <-w.done:
		}
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	// Cancel existing timer
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}
