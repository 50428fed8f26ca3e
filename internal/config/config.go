package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dirview/internal/errors"

	"github.com/gobwas/glob"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultToolName is the enumeration tool looked up on $PATH when no explicit
// path is configured.
const DefaultToolName = "lsjson"

// DefaultTimeout bounds a single listing.
const DefaultTimeout = 10 * time.Second

// Config represents the application configuration structure.
type Config struct {
	Tool struct {
		Path    string        `yaml:"path"`    // Explicit executable path; empty means look up Name
		Name    string        `yaml:"name"`    // Executable name searched on $PATH
		Timeout time.Duration `yaml:"timeout"` // Per-listing deadline, 0 disables
	} `yaml:"tool"`
	Browser struct {
		StartDir     string   `yaml:"start_dir"`     // Initial directory; empty means home
		HidePatterns []string `yaml:"hide_patterns"` // Glob patterns hidden from display
		Locale       string   `yaml:"locale"`        // BCP-47 tag used to collate names
		Watch        bool     `yaml:"watch"`         // Refresh when the current directory changes
		LogFile      string   `yaml:"log_file"`      // Log destination while the TUI owns the terminal
	} `yaml:"browser"`
	Theme ThemeColors `yaml:"theme"`
}

// ThemeColors holds terminal color codes for the TUI and GUI.
type ThemeColors struct {
	Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary"`  // Primary color for branding
	Success  string `yaml:"success"`  // Success message color
	Warning  string `yaml:"warning"`  // Warning message color
	Error    string `yaml:"error"`    // Error message color
	Info     string `yaml:"info"`     // Informational message color
	Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
	Border   string `yaml:"border"`   // Border color for frames
}

// DefaultPath returns ~/.config/dirview/config.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dirview", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Decode over the defaults so unset keys keep their default values.
	// Theme colors are derived from the theme name unless set explicitly.
	cfg.Theme = ThemeColors{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if cfg.Tool.Name == "" {
		cfg.Tool.Name = DefaultToolName
	}
	if cfg.Browser.Locale == "" {
		cfg.Browser.Locale = "und"
	}
	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Tool.Name = DefaultToolName
	cfg.Tool.Timeout = DefaultTimeout

	cfg.Browser.HidePatterns = []string{}
	cfg.Browser.Locale = "und"
	cfg.Browser.Watch = true

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Tool.Path == "" && c.Tool.Name == "" {
		return errors.NewConfigError("tool path or name is required", "tool.name", errors.InvalidConfig, nil)
	}

	if c.Tool.Timeout < 0 {
		return errors.NewConfigError("timeout must be >= 0", "tool.timeout", errors.InvalidConfig, nil)
	}

	if _, err := language.Parse(c.Browser.Locale); err != nil {
		return errors.NewConfigError("invalid locale", "browser.locale", errors.InvalidConfig, err)
	}

	for i, pattern := range c.Browser.HidePatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError("invalid hide pattern", fmt.Sprintf("browser.hide_patterns[%d]", i), errors.InvalidConfig, err)
		}
	}

	if !knownTheme(c.Theme.Name) {
		return errors.NewConfigError("unknown theme", c.Theme.Name, errors.InvalidConfig, nil)
	}

	return nil
}

// StartDir resolves the configured start directory, expanding a leading ~.
// An empty setting resolves to the home directory.
func (c *Config) StartDir() (string, error) {
	if c.Browser.StartDir == "" {
		return homedir.Dir()
	}
	return homedir.Expand(c.Browser.StartDir)
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Tool.Timeout = 2 * time.Second
	cfg.Browser.Watch = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"border":   "105",
	},
	"light": {
		"primary":  "135",
		"success":  "150",
		"warning":  "222",
		"error":    "210",
		"info":     "117",
		"emphasis": "219",
		"border":   "135",
	},
	"monochrome": {
		"primary":  "245",
		"success":  "252",
		"warning":  "241",
		"error":    "232",
		"info":     "248",
		"emphasis": "255",
		"border":   "245",
	},
	"ocean": {
		"primary":  "31",
		"success":  "36",
		"warning":  "220",
		"error":    "196",
		"info":     "33",
		"emphasis": "51",
		"border":   "31",
	},
}

func knownTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// fillTheme fills every unset theme color from the named theme.
func (c *Config) fillTheme() {
	if c.Theme.Name == "" {
		c.Theme.Name = "default"
	}
	theme := GetTheme(c.Theme.Name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Success, "success")
	fill(&c.Theme.Warning, "warning")
	fill(&c.Theme.Error, "error")
	fill(&c.Theme.Info, "info")
	fill(&c.Theme.Emphasis, "emphasis")
	fill(&c.Theme.Border, "border")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean"}
}
