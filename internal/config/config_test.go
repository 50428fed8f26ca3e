package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dirview/internal/config"
	"dirview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
tool:
  path: /opt/bin/lsjson
  timeout: 3s
browser:
  start_dir: /srv
  hide_patterns: ["*.pyc", ".git"]
  locale: de
  watch: false
theme:
  name: ocean
`
	invalidSyntaxYAML = `
tool:
  path: "/opt/bin/lsjson
  timeout: [
`
	negativeTimeoutYAML = `
tool:
  timeout: -1s
`
	badPatternYAML = `
browser:
  hide_patterns: ["[unterminated"]
`
	badLocaleYAML = `
browser:
  locale: "not a locale!"
`
	unknownThemeYAML = `
theme:
  name: neon
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "/opt/bin/lsjson", cfg.Tool.Path)
		assert.Equal(t, config.DefaultToolName, cfg.Tool.Name, "unset keys keep defaults")
		assert.Equal(t, 3*time.Second, cfg.Tool.Timeout)
		assert.Equal(t, "/srv", cfg.Browser.StartDir)
		assert.Equal(t, []string{"*.pyc", ".git"}, cfg.Browser.HidePatterns)
		assert.Equal(t, "de", cfg.Browser.Locale)
		assert.False(t, cfg.Browser.Watch)
		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, "31", cfg.Theme.Primary, "named theme colors are filled in")
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTimeout, cfg.Tool.Timeout)
		assert.True(t, cfg.Browser.Watch)
		assert.Equal(t, "und", cfg.Browser.Locale)
		assert.Equal(t, "default", cfg.Theme.Name)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	invalid := []struct {
		name  string
		yaml  string
		param string
	}{
		{"negative timeout", negativeTimeoutYAML, "tool.timeout"},
		{"bad hide pattern", badPatternYAML, "browser.hide_patterns[0]"},
		{"bad locale", badLocaleYAML, "browser.locale"},
		{"unknown theme", unknownThemeYAML, "neon"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, tt.yaml))
			require.Error(t, err)
			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.Param())
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Tool.Path = "/usr/local/bin/lsjson"
	cfg.Tool.Timeout = 750 * time.Millisecond
	cfg.Browser.HidePatterns = []string{"*.o"}
	cfg.ApplyTheme("dark")
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Tool, loaded.Tool)
	assert.Equal(t, cfg.Browser, loaded.Browser)
	assert.Equal(t, cfg.Theme, loaded.Theme)
}

func TestValidate(t *testing.T) {
	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())

	cfg := config.New()
	require.NoError(t, cfg.Validate())

	cfg.Tool.Name = ""
	assert.Error(t, cfg.Validate(), "a tool must be resolvable")

	cfg.Tool.Path = "/bin/lsjson"
	assert.NoError(t, cfg.Validate())
}

func TestStartDir(t *testing.T) {
	cfg := config.NewTestConfig()
	home, err := cfg.StartDir()
	require.NoError(t, err)
	assert.NotEmpty(t, home)

	cfg.Browser.StartDir = "~/projects"
	dir, err := cfg.StartDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects"), dir)

	cfg.Browser.StartDir = "/var/tmp"
	dir, err = cfg.StartDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp", dir)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("does-not-exist"))
	for _, name := range config.ListThemes() {
		cfg := config.New()
		cfg.ApplyTheme(name)
		assert.Equal(t, name, cfg.Theme.Name)
		assert.NoError(t, cfg.Validate(), name)
	}
}
