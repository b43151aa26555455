// Package config loads panelkit configuration through viper. Defaults are
// registered with SetDefaults; the config file and PANELKIT_* environment
// variables override them.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of configuration environment variables, e.g.
// PANELKIT_LOGGING_LEVEL.
const EnvPrefix = "PANELKIT"

// Config represents the complete panelkit configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Panels  PanelsConfig  `mapstructure:"panels"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Enabled controls whether logs are written (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where panelkit.log is written. Empty means the config directory.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB rotates panelkit.log past this size; 0 disables rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files kept (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is a built-in theme name or the path of a YAML theme file
	Theme string `mapstructure:"theme"`
	// ShowHelp shows the key help line under the panels (default: true)
	ShowHelp bool `mapstructure:"show_help"`
	// TabWidth caps the width of tab labels in cells (default: 16, min: 4, max: 64)
	TabWidth int `mapstructure:"tab_width"`
}

// PanelsConfig controls which panels are mounted
type PanelsConfig struct {
	// Dir holds declarative panel definitions. Empty means <config dir>/panels.
	Dir string `mapstructure:"dir"`
	// OpenOnStart lists namespaces opened when the TUI starts
	OpenOnStart []string `mapstructure:"open_on_start"`
	// Builtin lists the built-in panels to mount (default: ["general"])
	Builtin []string `mapstructure:"builtin"`
}

// BuiltinGeneral names the built-in General panel.
const BuiltinGeneral = "general"

// ValidBuiltins returns the names of the built-in panels.
func ValidBuiltins() []string {
	return []string{BuiltinGeneral}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		TUI: TUIConfig{
			Theme:    "default",
			ShowHelp: true,
			TabWidth: 16,
		},
		Panels: PanelsConfig{
			OpenOnStart: []string{},
			Builtin:     []string{BuiltinGeneral},
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)
	viper.SetDefault("tui.tab_width", defaults.TUI.TabWidth)

	// Panels defaults
	viper.SetDefault("panels.dir", defaults.Panels.Dir)
	viper.SetDefault("panels.open_on_start", defaults.Panels.OpenOnStart)
	viper.SetDefault("panels.builtin", defaults.Panels.Builtin)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when it
// cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "panelkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".panelkit"
	}
	return filepath.Join(home, ".config", "panelkit")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory logs are written to.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return ConfigDir()
}

// Rotation returns the log rotation settings.
func (c *Config) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		Compress:   c.Logging.Compress,
	}
}

// PanelsDir returns the directory declarative panels are loaded from.
func (c *Config) PanelsDir() string {
	if c.Panels.Dir != "" {
		return c.Panels.Dir
	}
	return filepath.Join(ConfigDir(), "panels")
}

// BuiltinEnabled reports whether a built-in panel is enabled.
func (c *Config) BuiltinEnabled(name string) bool {
	return slices.Contains(c.Panels.Builtin, name)
}
