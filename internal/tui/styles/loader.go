package styles

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"`
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors contains the color definitions of a theme, in #RGB or
// #RRGGBB format. Empty colors fall back to the default palette.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Surface   string `yaml:"surface,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes and validates a YAML theme.
func ParseTheme(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.NewValidationError("theme name is required").WithField("name")
	}
	if t.Version != "1" {
		return errors.NewValidationError("unsupported theme version (supported: 1)").
			WithField("version").
			WithValue(t.Version)
	}
	if t.Colors.Primary == "" {
		return errors.NewValidationError("color is required").WithField("colors.primary")
	}

	colors := []struct{ name, value string }{
		{"colors.primary", t.Colors.Primary},
		{"colors.secondary", t.Colors.Secondary},
		{"colors.warning", t.Colors.Warning},
		{"colors.error", t.Colors.Error},
		{"colors.muted", t.Colors.Muted},
		{"colors.surface", t.Colors.Surface},
		{"colors.text", t.Colors.Text},
		{"colors.border", t.Colors.Border},
	}
	for _, c := range colors {
		if c.value != "" && !hexColorRegex.MatchString(c.value) {
			return errors.NewValidationError("invalid color format (expected #RGB or #RRGGBB)").
				WithField(c.name).
				WithValue(c.value)
		}
	}
	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	d := DefaultPalette()
	return &ColorPalette{
		Primary:   colorOrDefault(t.Colors.Primary, d.Primary),
		Secondary: colorOrDefault(t.Colors.Secondary, d.Secondary),
		Warning:   colorOrDefault(t.Colors.Warning, d.Warning),
		Error:     colorOrDefault(t.Colors.Error, d.Error),
		Muted:     colorOrDefault(t.Colors.Muted, d.Muted),
		Surface:   colorOrDefault(t.Colors.Surface, d.Surface),
		Text:      colorOrDefault(t.Colors.Text, d.Text),
		Border:    colorOrDefault(t.Colors.Border, d.Border),
	}
}

func colorOrDefault(color string, fallback lipgloss.Color) lipgloss.Color {
	if color == "" {
		return fallback
	}
	return lipgloss.Color(color)
}

// Resolve returns the palette for a theme setting: a built-in theme name or
// the path of a YAML theme file.
func Resolve(theme string) (*ColorPalette, error) {
	if theme == "" || IsValidTheme(theme) {
		return GetPalette(ThemeName(theme)), nil
	}
	file, err := LoadThemeFile(theme)
	if err != nil {
		return nil, err
	}
	return file.ToPalette(), nil
}

// ExportTheme renders a built-in theme as a YAML theme file, suitable as a
// starting point for a custom theme.
func ExportTheme(name ThemeName) ([]byte, error) {
	if !IsValidTheme(string(name)) {
		return nil, errors.NewNotFoundError("theme", string(name))
	}
	p := GetPalette(name)
	file := ThemeFile{
		Name:    string(name),
		Version: "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
		},
	}
	return yaml.Marshal(file)
}
