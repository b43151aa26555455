// Package config provides CLI commands for managing panelkit configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	appconfig "github.com/Iron-Ham/panelkit/internal/config"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify panelkit configuration",
	Long: `View or modify panelkit configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  panelkit config set tui.theme nord
  panelkit config set tui.tab_width 20
  panelkit config set panels.open_on_start panel/general,panel/notes

Valid keys:
  logging.enabled        - Write logs (true/false)
  logging.level          - debug, info, warn or error
  logging.dir            - Log directory (default: config directory)
  logging.max_size_mb    - Rotate the log past this size, 0 to disable
  logging.max_backups    - Rotated log files to keep
  logging.compress       - Gzip rotated log files (true/false)
  tui.theme              - Built-in theme name or path to a theme file
  tui.show_help          - Show key help (true/false)
  tui.tab_width          - Max tab label width in cells
  panels.dir             - Definition directory (default: <config dir>/panels)
  panels.open_on_start   - Comma-separated namespaces opened at start
  panels.builtin         - Comma-separated built-in panels to mount`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/panelkit/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind describes how a settable key's value is parsed and checked.
type keyKind int

const (
	kindBool keyKind = iota
	kindString
	kindLevel
	kindTheme
	kindTabWidth
	kindNamespaces
	kindBuiltins
	kindCount
)

var settableKeys = map[string]keyKind{
	"logging.enabled":      kindBool,
	"logging.level":        kindLevel,
	"logging.dir":          kindString,
	"logging.max_size_mb":  kindCount,
	"logging.max_backups":  kindCount,
	"logging.compress":     kindBool,
	"tui.theme":            kindTheme,
	"tui.show_help":        kindBool,
	"tui.tab_width":        kindTabWidth,
	"panels.dir":           kindString,
	"panels.open_on_start": kindNamespaces,
	"panels.builtin":       kindBuiltins,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.LogDir())
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(out, "  compress: %v\n", cfg.Logging.Compress)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  show_help: %v\n", cfg.TUI.ShowHelp)
	fmt.Fprintf(out, "  tab_width: %d\n", cfg.TUI.TabWidth)

	fmt.Fprintln(out, "panels:")
	fmt.Fprintf(out, "  dir: %s\n", cfg.PanelsDir())
	fmt.Fprintf(out, "  open_on_start: [%s]\n", strings.Join(cfg.Panels.OpenOnStart, ", "))
	fmt.Fprintf(out, "  builtin: [%s]\n", strings.Join(cfg.Panels.Builtin, ", "))

	return nil
}

// parseValue converts a command-line value for key to its typed form.
func parseValue(key, value string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'panelkit config set --help' to see valid keys", key)
	}

	switch kind {
	case kindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case kindLevel:
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return value, nil
	case kindTheme:
		if !styles.IsValidTheme(value) {
			if _, err := styles.LoadThemeFile(value); err != nil {
				return nil, fmt.Errorf("invalid theme: %s\nValid options: %s or a theme file (%v)",
					value, strings.Join(styles.BuiltinThemes(), ", "), err)
			}
		}
		return value, nil
	case kindTabWidth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < appconfig.MinTabWidth || n > appconfig.MaxTabWidth {
			return nil, fmt.Errorf("invalid value for %s: must be between %d and %d",
				key, appconfig.MinTabWidth, appconfig.MaxTabWidth)
		}
		return n, nil
	case kindCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid value for %s: expected a non-negative integer", key)
		}
		return n, nil
	case kindNamespaces:
		list := splitList(value)
		for _, ns := range list {
			if err := component.ValidateNamespace(ns); err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", key, err)
			}
		}
		return list, nil
	case kindBuiltins:
		list := splitList(value)
		for _, name := range list {
			if !slices.Contains(appconfig.ValidBuiltins(), name) {
				return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
					key, name, strings.Join(appconfig.ValidBuiltins(), ", "))
			}
		}
		return list, nil
	default:
		return value, nil
	}
}

func splitList(value string) []string {
	list := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

const defaultConfigContent = `# panelkit configuration

# Logging settings
logging:
  # Write JSON logs to <dir>/panelkit.log
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Log directory (default: the config directory)
  dir: ""
  # Rotate panelkit.log once it passes this many megabytes (0 disables)
  max_size_mb: 10
  # Rotated files to keep
  max_backups: 3
  # Gzip rotated files
  compress: false

# TUI (terminal user interface) settings
tui:
  # Built-in theme (default, dracula, nord, solarized-light) or a theme file path
  theme: default
  # Show the key help line
  show_help: true
  # Maximum tab label width in cells (4-64)
  tab_width: 16

# Panel settings
panels:
  # Directory holding panel definitions (.yaml, .yml, .json, .jsonc)
  # (default: <config dir>/panels)
  dir: ""
  # Namespaces opened when the TUI starts
  open_on_start: []
  # Built-in panels to mount
  builtin:
    - general
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'panelkit config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_TUI_THEME)\n", appconfig.EnvPrefix, appconfig.EnvPrefix)

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"logging.enabled":      d.Logging.Enabled,
		"logging.level":        d.Logging.Level,
		"logging.dir":          d.Logging.Dir,
		"logging.max_size_mb":  d.Logging.MaxSizeMB,
		"logging.max_backups":  d.Logging.MaxBackups,
		"logging.compress":     d.Logging.Compress,
		"tui.theme":            d.TUI.Theme,
		"tui.show_help":        d.TUI.ShowHelp,
		"tui.tab_width":        d.TUI.TabWidth,
		"panels.dir":           d.Panels.Dir,
		"panels.open_on_start": d.Panels.OpenOnStart,
		"panels.builtin":       d.Panels.Builtin,
	}
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	defaults := defaultValues()

	if len(args) == 0 {
		for key, value := range defaults {
			viper.Set(key, value)
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'panelkit config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
