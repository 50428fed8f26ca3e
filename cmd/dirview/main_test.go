package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirview/internal/config"
	"dirview/internal/errors"
	"dirview/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataListing = `{"path":"/data","total":3,"entries":[
{"name":"b.txt","size":10,"modified":"2024-01-01T09:30:00Z","is_dir":false,"is_symlink":false,"permissions":"rw-r--r--"},
{"name":"a","size":4096,"modified":"2024-01-01T09:30:00Z","is_dir":true,"is_symlink":false},
{"name":"cache.pyc","size":1,"modified":"2024-01-01T09:30:00Z","is_dir":false,"is_symlink":false}
]}`

// execute runs the root command with a private config file path.
func execute(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()
	if configFile == "" {
		configFile = filepath.Join(t.TempDir(), "config.yaml")
	}

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configFile}, args...))
	err := cmd.Execute()
	return testutils.StripANSI(out.String()), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestListCommand(t *testing.T) {
	tool := testutils.FakeToolOutput(t, dataListing)

	out, err := execute(t, "", "--tool", tool, "list", "/data")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "/data", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "d -"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], " a"))
	assert.Contains(t, out, "10 B")
	assert.Less(t, strings.Index(out, " a\n"), strings.Index(out, " b.txt\n"), "directories come first")
	assert.Contains(t, out, "3 entries")
}

func TestListCommandHidePatterns(t *testing.T) {
	tool := testutils.FakeToolOutput(t, dataListing)
	cfg := writeConfig(t, "browser:\n  hide_patterns: [\"*.pyc\"]\n")

	out, err := execute(t, cfg, "--tool", tool, "list", "/data")
	require.NoError(t, err)
	assert.NotContains(t, out, "cache.pyc")
	assert.Contains(t, out, "2 entries (1 hidden)")

	out, err = execute(t, cfg, "--tool", tool, "list", "--all", "/data")
	require.NoError(t, err)
	assert.Contains(t, out, "cache.pyc")
}

func TestListCommandJSON(t *testing.T) {
	tool := testutils.FakeToolOutput(t, dataListing)

	out, err := execute(t, "", "--tool", tool, "list", "--json", "/data")
	require.NoError(t, err)

	var doc struct {
		Path    string `json:"path"`
		Entries []struct {
			Name        string `json:"name"`
			Kind        string `json:"kind"`
			Permissions string `json:"permissions"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "/data", doc.Path)
	require.Len(t, doc.Entries, 3)
	assert.Equal(t, "a", doc.Entries[0].Name)
	assert.Equal(t, "directory", doc.Entries[0].Kind)
	assert.Equal(t, "-", doc.Entries[0].Permissions)
}

func TestListCommandEmpty(t *testing.T) {
	tool := testutils.FakeToolOutput(t, testutils.EmptyListing("/empty"))

	out, err := execute(t, "", "--tool", tool, "list", "/empty")
	require.NoError(t, err)
	assert.Contains(t, out, "This directory is empty")
}

func TestListCommandToolError(t *testing.T) {
	tool := testutils.FakeToolFailure(t, 2, "permission denied")

	_, err := execute(t, "", "--tool", tool, "list", "/root")
	require.Error(t, err)
	assert.True(t, errors.IsToolError(err))
	assert.Equal(t, "permission denied", err.Error())
	assert.Equal(t, 2, exitCode(err))
}

func TestInvalidTimeoutFlag(t *testing.T) {
	_, err := execute(t, "", "--timeout", "-1s", "config", "show")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Equal(t, 3, exitCode(err))
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: lsjson")
	assert.Contains(t, out, "locale: und")

	out, err = execute(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to "+path)
	assert.FileExists(t, path)

	_, err = execute(t, path, "config", "init")
	require.Error(t, err, "an existing file is not overwritten")

	out, err = execute(t, path, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "! Overwriting "+path)

	out, err = execute(t, path, "config", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "  ocean")
	assert.Contains(t, out, "╭", "themes are listed in a box")
}

func TestThemeFlag(t *testing.T) {
	out, err := execute(t, "", "--theme", "ocean", "config", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* ocean")
	assert.Contains(t, out, "  default")

	out, err = execute(t, "", "--theme", "ocean", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: ocean")

	_, err = execute(t, "", "--theme", "neon", "config", "show")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Equal(t, 3, exitCode(err))
}

func TestStartDir(t *testing.T) {
	cfg, err := config.LoadConfigFile(writeConfig(t, "browser:\n  start_dir: /srv\n"))
	require.NoError(t, err)
	opts := &rootOptions{cfg: cfg}

	dir, err := opts.startDir(nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv", dir)

	dir, err = opts.startDir([]string{"/tmp"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp", dir)

	cfg.Browser.StartDir = ""
	dir, err = opts.startDir(nil)
	require.NoError(t, err)
	assert.Empty(t, dir, "an empty start directory means home")
}
