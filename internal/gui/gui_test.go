//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"sync"
	"testing"

	"dirview/internal/config"
	"dirview/internal/errors"
	"dirview/internal/navigator"
	"dirview/pkg/types"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLister serves listings from an in-memory tree.
type mapLister struct {
	mu       sync.Mutex
	dirs     map[string][]types.Entry
	failures map[string]error
}

func (l *mapLister) ListDirectory(_ context.Context, path string) (*types.Listing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err, ok := l.failures[path]; ok {
		return nil, err
	}
	entries, ok := l.dirs[path]
	if !ok {
		return nil, errors.NewToolError(2, path+": no such directory")
	}
	return &types.Listing{Path: path, Entries: entries}, nil
}

func newMapLister() *mapLister {
	return &mapLister{
		dirs: map[string][]types.Entry{
			"/home/u": {
				{Name: "notes.txt", Kind: types.KindFile, Size: 2048},
				{Name: "src", Kind: types.KindDirectory},
				{Name: "app.pyc", Kind: types.KindFile},
			},
			"/home/u/src": {},
			"/home":       {{Name: "u", Kind: types.KindDirectory}},
		},
		failures: map[string]error{},
	}
}

func newTestApp(t *testing.T, l *mapLister, patterns ...string) *App {
	t.Helper()
	cfg := config.New()
	cfg.Browser.Watch = false
	cfg.Browser.HidePatterns = patterns

	nav := navigator.New(l, navigator.WithHomeFunc(func() (string, error) { return "/home/u", nil }))
	a, err := newApp(test.NewApp(), cfg, nav)
	require.NoError(t, err)
	a.dispatch = func(f func()) { f() }
	return a
}

func names(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNewApp(t *testing.T) {
	a := newTestApp(t, newMapLister())
	require.NotNil(t, a.GetMainWindow())

	assert.True(t, a.backButton.Disabled())
	assert.True(t, a.forwardButton.Disabled())
	assert.True(t, a.upButton.Disabled(), "nothing is listed yet")
	assert.False(t, a.homeButton.Disabled())
}

func TestNewAppRejectsBadPattern(t *testing.T) {
	cfg := config.New()
	cfg.Browser.Watch = false
	cfg.Browser.HidePatterns = []string{"[unclosed"}

	_, err := newApp(test.NewApp(), cfg, navigator.New(newMapLister()))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestOpenListsHome(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("")

	assert.Equal(t, "/home/u", a.pathEntry.Text)
	assert.Equal(t, []string{"src", "app.pyc", "notes.txt"}, names(a.Entries()))
	assert.Equal(t, 3, a.list.Length())
	assert.True(t, a.list.Visible())
	assert.False(t, a.errorLabel.Visible())
	assert.Equal(t, "3 entries", a.statusLabel.Text)
}

func TestToolbarNavigation(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("/home/u")

	a.list.Select(0)
	assert.Equal(t, "/home/u/src", a.pathEntry.Text)
	assert.True(t, a.emptyLabel.Visible())
	assert.False(t, a.list.Visible())
	assert.False(t, a.backButton.Disabled())

	test.Tap(a.upButton)
	assert.Equal(t, "/home/u", a.pathEntry.Text)

	test.Tap(a.backButton)
	assert.Equal(t, "/home/u/src", a.pathEntry.Text)
	assert.False(t, a.forwardButton.Disabled())

	test.Tap(a.forwardButton)
	assert.Equal(t, "/home/u", a.pathEntry.Text)
	assert.True(t, a.forwardButton.Disabled())

	test.Tap(a.upButton)
	assert.Equal(t, "/home", a.pathEntry.Text)

	test.Tap(a.homeButton)
	assert.Equal(t, "/home/u", a.pathEntry.Text)
	assert.Equal(t, []string{"/home/u", "/home/u/src", "/home/u", "/home", "/home/u"}, a.nav.State().History)
}

func TestSelectingFileDoesNothing(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("/home/u")

	a.list.Select(2)
	assert.Equal(t, "/home/u", a.pathEntry.Text)
	assert.Len(t, a.nav.State().History, 1)
}

func TestPathEntrySubmit(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("/home/u")

	a.pathEntry.SetText("/home")
	a.pathEntry.OnSubmitted(a.pathEntry.Text)
	assert.Equal(t, []string{"u"}, names(a.Entries()))
}

func TestToolErrorReplacesListing(t *testing.T) {
	l := newMapLister()
	a := newTestApp(t, l)
	a.Open("/home/u")

	l.failures["/home/u/src"] = errors.NewToolError(2, "permission denied")
	a.list.Select(0)

	assert.True(t, a.errorLabel.Visible())
	assert.Equal(t, "Error: permission denied", a.errorLabel.Text)
	assert.False(t, a.list.Visible())
	assert.Equal(t, "/home/u", a.nav.CurrentPath(), "a failed navigation leaves state unchanged")

	delete(l.failures, "/home/u/src")
	test.Tap(a.refreshButton)
	assert.False(t, a.errorLabel.Visible())
	assert.True(t, a.list.Visible())
}

func TestHistoryErrorGoesToStatus(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("/home/u")

	a.show(nil, errors.ErrNoHistory)
	assert.False(t, a.errorLabel.Visible())
	assert.True(t, a.list.Visible())
	assert.Contains(t, a.statusLabel.Text, "no previous directory")
}

func TestSupersededIsIgnored(t *testing.T) {
	a := newTestApp(t, newMapLister())
	a.Open("/home/u")

	a.show(nil, errors.NewSupersededError("/elsewhere"))
	assert.False(t, a.errorLabel.Visible())
	assert.Equal(t, "3 entries", a.statusLabel.Text)
}

func TestHiddenPatterns(t *testing.T) {
	a := newTestApp(t, newMapLister(), "*.pyc")
	a.Open("/home/u")

	assert.Equal(t, []string{"src", "notes.txt"}, names(a.Entries()))
	assert.Equal(t, "2 entries (1 hidden)", a.statusLabel.Text)
}

func TestIsGUIAvailable(t *testing.T) {
	assert.True(t, IsGUIAvailable())
}
