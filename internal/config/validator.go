package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.tab_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Tab width bounds.
const (
	MinTabWidth = 4
	MaxTabWidth = 64
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validatePanels()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be 0 (no rotation) or positive",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// A theme is a built-in name or a path to a theme file
	if c.TUI.Theme != "" && !styles.IsValidTheme(c.TUI.Theme) {
		if _, err := os.Stat(c.TUI.Theme); err != nil {
			errors = append(errors, ValidationError{
				Field:   "tui.theme",
				Value:   c.TUI.Theme,
				Message: fmt.Sprintf("must be a theme file or one of: %s", strings.Join(styles.BuiltinThemes(), ", ")),
			})
		}
	}

	if c.TUI.TabWidth < MinTabWidth || c.TUI.TabWidth > MaxTabWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.tab_width",
			Value:   c.TUI.TabWidth,
			Message: fmt.Sprintf("must be between %d and %d", MinTabWidth, MaxTabWidth),
		})
	}

	return errors
}

// validatePanels validates the PanelsConfig
func (c *Config) validatePanels() []ValidationError {
	var errors []ValidationError

	for i, ns := range c.Panels.OpenOnStart {
		if err := component.ValidateNamespace(ns); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("panels.open_on_start[%d]", i),
				Value:   ns,
				Message: "must be a slash-delimited namespace",
			})
		}
	}

	for i, name := range c.Panels.Builtin {
		if !slices.Contains(ValidBuiltins(), name) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("panels.builtin[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBuiltins(), ", ")),
			})
		}
	}

	return errors
}
