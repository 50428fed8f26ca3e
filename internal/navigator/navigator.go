// Package navigator keeps the current directory and a browser-style history
// on top of a lister.Lister.
//
// Every operation lists a directory first and commits state only when the
// listing succeeds, so a failed call leaves the navigator exactly as it was.
// Requests may be issued concurrently; only the most recently issued one is
// allowed to commit, older results are dropped with a superseded error.
package navigator

import (
	"context"
	"strings"
	"sync"

	"dirview/internal/errors"
	"dirview/internal/lister"
	"dirview/internal/log"
	"dirview/pkg/types"

	"github.com/mitchellh/go-homedir"
)

// HomeFunc resolves the user's home directory.
type HomeFunc func() (string, error)

// State is a snapshot of the navigation state.
type State struct {
	CurrentPath  string
	History      []string
	HistoryIndex int
}

// CanGoBack reports whether GoBack has somewhere to go.
func (s State) CanGoBack() bool {
	return s.HistoryIndex > 0
}

// CanGoForward reports whether GoForward has somewhere to go.
func (s State) CanGoForward() bool {
	return s.HistoryIndex >= 0 && s.HistoryIndex < len(s.History)-1
}

func (s State) clone() State {
	c := s
	c.History = append([]string(nil), s.History...)
	return c
}

// Navigator owns the navigation state. The zero value is not usable; create
// one with New.
type Navigator struct {
	lister lister.Lister
	home   HomeFunc

	mu      sync.Mutex
	state   State
	current *types.Listing
	seq     uint64
	settled uint64 // newest seq whose listing has returned
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHomeFunc overrides the home directory lookup used by GoHome.
func WithHomeFunc(fn HomeFunc) Option {
	return func(n *Navigator) {
		n.home = fn
	}
}

// New creates a navigator with empty history.
func New(l lister.Lister, opts ...Option) *Navigator {
	n := &Navigator{
		lister: l,
		home:   homedir.Dir,
		state:  State{HistoryIndex: -1},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns a copy of the current navigation state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.clone()
}

// CurrentPath returns the last committed directory, or "" before the first
// successful navigation.
func (n *Navigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.CurrentPath
}

// Current returns the last committed listing, or nil.
func (n *Navigator) Current() *types.Listing {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate lists path and records it in history. Forward history beyond the
// cursor is discarded.
func (n *Navigator) Navigate(ctx context.Context, path string) (*types.Listing, error) {
	seq := n.issue()
	return n.run(ctx, seq, path, func(s *State, listing *types.Listing) {
		s.History = append(s.History[:s.HistoryIndex+1], listing.Path)
		s.HistoryIndex = len(s.History) - 1
		s.CurrentPath = listing.Path
	})
}

// GoBack replays the previous history entry without recording a new one.
func (n *Navigator) GoBack(ctx context.Context) (*types.Listing, error) {
	n.mu.Lock()
	if n.state.HistoryIndex <= 0 {
		n.mu.Unlock()
		return nil, errors.ErrNoHistory
	}
	target := n.state.HistoryIndex - 1
	path := n.state.History[target]
	n.seq++
	seq := n.seq
	n.mu.Unlock()

	return n.run(ctx, seq, path, replay(target))
}

// GoForward replays the next history entry without recording a new one.
func (n *Navigator) GoForward(ctx context.Context) (*types.Listing, error) {
	n.mu.Lock()
	if !n.state.CanGoForward() {
		n.mu.Unlock()
		return nil, errors.ErrNoForwardHistory
	}
	target := n.state.HistoryIndex + 1
	path := n.state.History[target]
	n.seq++
	seq := n.seq
	n.mu.Unlock()

	return n.run(ctx, seq, path, replay(target))
}

// GoUp navigates to the parent of the current directory. At the root it
// lists the root again.
func (n *Navigator) GoUp(ctx context.Context) (*types.Listing, error) {
	current := n.CurrentPath()
	if current == "" {
		return nil, errNoCurrent
	}
	return n.Navigate(ctx, Parent(current))
}

// Pending reports whether the most recently issued request is still waiting
// for its listing.
func (n *Navigator) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.settled != n.seq
}

// Refresh lists the current directory again. History is left alone; an
// authoritative path change reported by the tool is adopted.
func (n *Navigator) Refresh(ctx context.Context) (*types.Listing, error) {
	return n.refresh(ctx, false)
}

// RefreshIfIdle behaves like Refresh unless another request is in flight, in
// which case it returns a superseded error without listing anything. Use it
// for refreshes the user did not ask for.
func (n *Navigator) RefreshIfIdle(ctx context.Context) (*types.Listing, error) {
	return n.refresh(ctx, true)
}

func (n *Navigator) refresh(ctx context.Context, idleOnly bool) (*types.Listing, error) {
	n.mu.Lock()
	path := n.state.CurrentPath
	if path == "" {
		n.mu.Unlock()
		return nil, errNoCurrent
	}
	if idleOnly && n.settled != n.seq {
		n.mu.Unlock()
		log.LogWithFields(log.F("path", path)).Debug("skipping refresh, navigation in flight")
		return nil, errors.NewSupersededError(path)
	}
	n.seq++
	seq := n.seq
	n.mu.Unlock()

	return n.run(ctx, seq, path, func(s *State, listing *types.Listing) {
		s.CurrentPath = listing.Path
		if s.HistoryIndex >= 0 {
			s.History[s.HistoryIndex] = listing.Path
		}
	})
}

// GoHome navigates to the user's home directory.
func (n *Navigator) GoHome(ctx context.Context) (*types.Listing, error) {
	home, err := n.home()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve home directory")
	}
	return n.Navigate(ctx, home)
}

var errNoCurrent = errors.NewNavigationError("no current directory", errors.InvalidPath)

// Parent removes the last slash-delimited segment of path. The parent of the
// root is the root, and a trailing slash is ignored.
func Parent(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	i := strings.LastIndex(trimmed, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	}
	return trimmed[:i]
}

func replay(target int) func(*State, *types.Listing) {
	return func(s *State, listing *types.Listing) {
		s.HistoryIndex = target
		s.History[target] = listing.Path
		s.CurrentPath = listing.Path
	}
}

func (n *Navigator) issue() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	return n.seq
}

// run lists path outside the lock, then commits under it if seq is still
// the newest request.
func (n *Navigator) run(ctx context.Context, seq uint64, path string, commit func(*State, *types.Listing)) (*types.Listing, error) {
	listing, err := n.lister.ListDirectory(ctx, path)

	n.mu.Lock()
	defer n.mu.Unlock()

	if seq != n.seq {
		log.LogWithFields(log.F("path", path)).Debug("discarding superseded listing")
		return nil, errors.NewSupersededError(path)
	}
	n.settled = seq
	if err != nil {
		return nil, err
	}

	commit(&n.state, listing)
	n.current = listing

	log.LogWithFields(
		log.F("path", n.state.CurrentPath),
		log.F("history", len(n.state.History)),
		log.F("index", n.state.HistoryIndex),
	).Debug("navigation committed")

	return listing, nil
}
