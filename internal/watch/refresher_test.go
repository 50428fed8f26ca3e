package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"dirview/internal/watch"
	"dirview/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingNav lists nothing; it counts refreshes of a fixed directory.
type countingNav struct {
	mu        sync.Mutex
	dir       string
	refreshes int
}

func (c *countingNav) RefreshIfIdle(context.Context) (*types.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshes++
	return &types.Listing{Path: c.dir, Entries: []types.Entry{}}, nil
}

func (c *countingNav) CurrentPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

func TestAutoRefresh(t *testing.T) {
	dir := t.TempDir()
	nav := &countingNav{dir: dir}

	auto, err := watch.NewAutoRefresh(nav, 50*time.Millisecond)
	require.NoError(t, err)

	results := make(chan *types.Listing, 4)
	auto.SetCallback(func(l *types.Listing, err error) {
		assert.NoError(t, err)
		results <- l
	})

	require.NoError(t, auto.Start())
	defer auto.Stop()
	assert.Error(t, auto.Start(), "double start")

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644))

	select {
	case l := <-results:
		assert.Equal(t, dir, l.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for auto-refresh")
	}

	status := auto.Status()
	assert.True(t, status.Running)
	assert.Equal(t, filepath.Clean(dir), status.Dir)
	assert.Equal(t, 1, status.Refreshes)
	assert.False(t, status.LastActivity.IsZero())
}

func TestAutoRefreshStop(t *testing.T) {
	nav := &countingNav{}
	auto, err := watch.NewAutoRefresh(nav, 0)
	require.NoError(t, err)

	require.NoError(t, auto.Start(), "starting without a current directory is allowed")
	auto.Stop()
	auto.Stop()

	assert.False(t, auto.Status().Running)
	assert.Equal(t, 0, nav.refreshes)
}
