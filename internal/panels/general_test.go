package panels

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/host"
	"github.com/Iron-Ham/panelkit/internal/logging"
)

func mountGeneral(t *testing.T) (*host.Host, *General) {
	t.Helper()
	h := host.New(host.Options{})
	g := NewGeneral(h, Info{
		Theme:  "nord",
		Panels: func() []string { return []string{GeneralNamespace, "panel/history"} },
	}, nil)
	if _, err := h.Mount(g); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return h, g
}

func TestGeneral_Registration(t *testing.T) {
	h, _ := mountGeneral(t)

	for _, route := range []string{"panel/general/settings", "panel/general/style", "panel/general/advanced"} {
		if !h.Router().Has(route) {
			t.Errorf("route %q not registered", route)
		}
	}
	for _, cmd := range []string{"open", "close", "lock", "unlock"} {
		if !h.Dispatcher().Has("panel/general/" + cmd) {
			t.Errorf("command %q not registered", cmd)
		}
	}
	c, _ := h.Component(GeneralNamespace)
	if c.DefaultRoute() != "panel/general/settings" {
		t.Errorf("DefaultRoute() = %q", c.DefaultRoute())
	}
}

func TestGeneral_OpenOnTab(t *testing.T) {
	h, g := mountGeneral(t)

	if _, err := h.Run("panel/general/open", commands.Args{"tab": "style"}); err != nil {
		t.Fatalf("open error = %v", err)
	}
	c, _ := h.Component(GeneralNamespace)
	if !c.IsOpen() || c.CurrentTab() != TabStyle {
		t.Errorf("IsOpen() = %v, CurrentTab() = %q", c.IsOpen(), c.CurrentTab())
	}
	if g.Body() != "Theme: nord" {
		t.Errorf("Body() = %q", g.Body())
	}

	if _, err := h.Run("panel/general/open", commands.Args{"tab": "nope"}); err == nil {
		t.Error("opening on an unknown tab should fail")
	}
}

func TestGeneral_Lock(t *testing.T) {
	h, g := mountGeneral(t)

	if _, err := h.Run("panel/general/lock", nil); err != nil {
		t.Fatal(err)
	}
	opened, err := h.Run("panel/general/open", nil)
	if err != nil || opened != false {
		t.Errorf("locked open = %v, %v", opened, err)
	}

	h.Run("panel/general/unlock", nil)
	opened, _ = h.Run("panel/general/open", nil)
	if opened != true {
		t.Error("unlocked panel should open")
	}
	if !strings.Contains(g.Body(), "unlocked") {
		t.Errorf("settings body = %q", g.Body())
	}

	h.Run("panel/general/lock", nil)
	if !strings.Contains(g.Body(), "Panel:       locked") {
		t.Errorf("locking should re-render the settings tab, got %q", g.Body())
	}

	closed, _ := h.Run("panel/general/close", nil)
	if closed != true {
		t.Error("a locked panel can still close")
	}
}

func TestGeneral_NextTabShortcut(t *testing.T) {
	h, g := mountGeneral(t)
	h.Open(GeneralNamespace)

	c, _ := h.Component(GeneralNamespace)
	want := []string{TabStyle, TabAdvanced, TabSettings}
	for _, tab := range want {
		g.Shortcuts()[0].Handler()
		if c.CurrentTab() != tab {
			t.Errorf("CurrentTab() = %q, want %q", c.CurrentTab(), tab)
		}
	}
	if !strings.Contains(g.Body(), "Config file") {
		t.Errorf("Body() = %q", g.Body())
	}
}

func TestGeneral_NextTabFollowsTabChanges(t *testing.T) {
	h, g := mountGeneral(t)
	h.Open(GeneralNamespace)

	c, _ := h.Component(GeneralNamespace)
	c.AddTab("extra", component.TabConfig{Title: "Extra"})
	c.RemoveTab(TabStyle)

	var got []string
	for range 4 {
		g.Shortcuts()[0].Handler()
		got = append(got, c.CurrentTab())
	}
	want := []string{TabAdvanced, "extra", TabSettings, TabAdvanced}
	if !slices.Equal(got, want) {
		t.Errorf("tab cycle = %v, want %v", got, want)
	}
}

// unroutedHost fails every navigation.
type unroutedHost struct{ *host.Host }

func (unroutedHost) Navigate(string) error { return errors.New("no route") }

func TestGeneral_NextTabLogsNavigationError(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, logging.LevelDebug, logging.DefaultRotation())
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	h := host.New(host.Options{})
	g := NewGeneral(unroutedHost{h}, Info{}, logger)
	if _, err := h.Mount(g); err != nil {
		t.Fatal(err)
	}

	g.Shortcuts()[0].Handler()

	entries, err := logging.ReadEntries(filepath.Join(dir, logging.FileName), 0)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, e := range entries {
		if e.Message == "next tab failed" && e.Component == GeneralNamespace {
			found = e.Level == logging.LevelWarn && e.Attrs["error"] == "no route"
		}
	}
	if !found {
		t.Errorf("no warning logged for the failed navigation, entries = %v", entries)
	}
}

func TestGeneral_AdvancedListsPanels(t *testing.T) {
	_, g := mountGeneral(t)

	g.RenderTab(TabAdvanced)
	if !strings.Contains(g.Body(), "panel/history") {
		t.Errorf("Body() = %q", g.Body())
	}
	g.RenderTab("unknown")
	if g.Body() != "" {
		t.Errorf("unknown tab body = %q", g.Body())
	}
}
