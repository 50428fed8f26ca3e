// Package watch reports changes to the directory currently on screen so the
// browser can refresh it.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dirview/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events (an editor save, an archive
// extraction) into one refresh.
const DefaultDebounce = 250 * time.Millisecond

// Change reports that the watched directory changed.
type Change struct {
	Dir       string
	Timestamp time.Time
	Ops       fsnotify.Op
}

// Watcher watches a single directory at a time using fsnotify
type Watcher struct {
	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period after the last event before a Change is delivered
	debounce time.Duration

	// Channel delivering debounced changes
	changes chan Change

	// Channel to signal stop, and the loop's exit signal
	stopChan chan struct{}
	done     chan struct{}

	// Lock for the watched directory and running state
	mutex   sync.Mutex
	dir     string
	running bool
	stopped bool
}

// New creates a watcher. A debounce of zero uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		changes:   make(chan Change, 1),
	}, nil
}

// Watch re-targets the watcher at dir, dropping the previous directory.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	dir = filepath.Clean(dir)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).Debug("failed to stop watching directory")
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dir = dir

	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Dir returns the directory being watched, or "".
func (w *Watcher) Dir() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.dir
}

// Changes returns the channel that delivers debounced changes. It is closed
// by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher stopped")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending fsnotify.Op
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Events queued before a re-target still name the old directory
			if filepath.Dir(event.Name) != w.Dir() && event.Name != w.Dir() {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			pending |= event.Op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			change := Change{Dir: w.Dir(), Timestamp: time.Now(), Ops: pending}
			pending = 0

			// A change already waiting covers this one
			select {
			case w.changes <- change:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop halts the watcher and closes the Changes channel. A stopped watcher
// cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.running = false
	if running {
		close(w.stopChan)
	}
	done := w.done
	w.mutex.Unlock()

	if running {
		<-done
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
}
