package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"dirview/internal/errors"
	"dirview/internal/log"
	"dirview/pkg/types"
)

// Refresher is the part of the navigator the auto-refresh service drives.
// RefreshIfIdle must not displace a navigation that is still in flight.
type Refresher interface {
	RefreshIfIdle(ctx context.Context) (*types.Listing, error)
	CurrentPath() string
}

// Status represents the current state of the auto-refresh service
type Status struct {
	Running      bool      // Whether the service is active
	Dir          string    // Directory being watched
	LastActivity time.Time // Time of the last change seen
	Refreshes    int       // Refreshes that succeeded
}

// AutoRefresh re-lists the current directory whenever it changes on disk.
type AutoRefresh struct {
	nav     Refresher
	watcher *Watcher

	// Called after every refresh attempt that was not superseded
	callback func(*types.Listing, error)

	// Statistics
	refreshes    int
	lastActivity time.Time

	// Lock for modifications
	mutex sync.RWMutex

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewAutoRefresh creates the service. It does nothing until Start.
func NewAutoRefresh(nav Refresher, debounce time.Duration) (*AutoRefresh, error) {
	watcher, err := New(debounce)
	if err != nil {
		return nil, err
	}
	return &AutoRefresh{nav: nav, watcher: watcher}, nil
}

// SetCallback sets a function to be called with each refresh result.
func (a *AutoRefresh) SetCallback(cb func(*types.Listing, error)) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.callback = cb
}

// Track points the watcher at dir. Call it after every committed navigation.
func (a *AutoRefresh) Track(dir string) error {
	return a.watcher.Watch(dir)
}

// Start begins watching the navigator's current directory, if it has one.
func (a *AutoRefresh) Start() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.running {
		return fmt.Errorf("auto-refresh is already running")
	}

	if dir := a.nav.CurrentPath(); dir != "" {
		if err := a.watcher.Watch(dir); err != nil {
			return fmt.Errorf("error watching %s: %w", dir, err)
		}
	}
	if err := a.watcher.Start(); err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	a.running = true

	go a.processChanges(ctx, a.done)
	return nil
}

// Stop halts the service. It cannot be restarted.
func (a *AutoRefresh) Stop() {
	a.mutex.Lock()
	if !a.running {
		a.mutex.Unlock()
		a.watcher.Stop()
		return
	}
	a.running = false
	a.cancel()
	done := a.done
	a.mutex.Unlock()

	a.watcher.Stop()
	<-done
}

// Status returns the current status of the service
func (a *AutoRefresh) Status() Status {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return Status{
		Running:      a.running,
		Dir:          a.watcher.Dir(),
		LastActivity: a.lastActivity,
		Refreshes:    a.refreshes,
	}
}

// processChanges refreshes on every change to the directory still on screen.
func (a *AutoRefresh) processChanges(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	for change := range a.watcher.Changes() {
		if change.Dir != filepath.Clean(a.nav.CurrentPath()) {
			continue
		}

		a.mutex.Lock()
		a.lastActivity = change.Timestamp
		a.mutex.Unlock()

		listing, err := a.nav.RefreshIfIdle(ctx)
		if errors.IsSuperseded(err) || errors.IsCanceled(err) {
			continue
		}
		if err != nil {
			log.LogWithFields(log.F("directory", change.Dir), log.F("error", err)).Warn("auto-refresh failed")
		} else {
			a.mutex.Lock()
			a.refreshes++
			a.mutex.Unlock()

			if listing.Path != change.Dir {
				if err := a.Track(listing.Path); err != nil {
					log.LogWithFields(log.F("directory", listing.Path), log.F("error", err)).Debug("cannot watch refreshed directory")
				}
			}
		}

		a.mutex.RLock()
		cb := a.callback
		a.mutex.RUnlock()
		if cb != nil {
			cb(listing, err)
		}
	}
}
