package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	themeFile := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(themeFile, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty level allowed", func(c *Config) { c.Logging.Level = "" }, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"uppercase level", func(c *Config) { c.Logging.Level = "DEBUG" }, "logging.level"},
		{"rotation disabled", func(c *Config) { c.Logging.MaxSizeMB = 0 }, ""},
		{"negative log size", func(c *Config) { c.Logging.MaxSizeMB = -1 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -2 }, "logging.max_backups"},
		{"builtin theme", func(c *Config) { c.TUI.Theme = "dracula" }, ""},
		{"theme file", func(c *Config) { c.TUI.Theme = themeFile }, ""},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme"},
		{"tab width too small", func(c *Config) { c.TUI.TabWidth = MinTabWidth - 1 }, "tui.tab_width"},
		{"tab width too large", func(c *Config) { c.TUI.TabWidth = MaxTabWidth + 1 }, "tui.tab_width"},
		{"tab width at bounds", func(c *Config) { c.TUI.TabWidth = MaxTabWidth }, ""},
		{"bad open namespace", func(c *Config) { c.Panels.OpenOnStart = []string{"panel//x"} }, "panels.open_on_start[0]"},
		{"unknown builtin", func(c *Config) { c.Panels.Builtin = []string{"general", "weather"} }, "panels.builtin[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want one error", errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	if got := (ValidationErrors{}).Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}

	one := ValidationErrors{{Field: "tui.tab_width", Value: 2, Message: "must be between 4 and 64"}}
	if got := one.Error(); got != "tui.tab_width: must be between 4 and 64 (got: 2)" {
		t.Errorf("Error() = %q", got)
	}
}
