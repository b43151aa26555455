// Package panels contains the panels built into panelkit.
package panels

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/logging"
)

// GeneralNamespace is the namespace of the General panel.
const GeneralNamespace = "panel/general"

// Tab ids of the General panel.
const (
	TabSettings = "settings"
	TabStyle    = "style"
	TabAdvanced = "advanced"
)

// Host is what the General panel drives.
type Host interface {
	Open(namespace string) (bool, error)
	Close(namespace string) (bool, error)
	Navigate(route string) error
	Component(namespace string) (*component.Component, bool)
}

// Info is shown on the General panel's tabs.
type Info struct {
	Theme      string
	ConfigFile string
	LogFile    string
	Panels     func() []string
}

// General is the built-in settings panel. It can be locked, which vetoes
// opening it until it is unlocked.
type General struct {
	component.Base

	host   Host
	info   Info
	logger *logging.Logger

	mu     sync.Mutex
	locked bool
	tab    string
	body   string
}

// NewGeneral creates the General panel definition. A nil logger discards.
func NewGeneral(host Host, info Info, logger *logging.Logger) *General {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &General{host: host, info: info, logger: logger.WithComponent(GeneralNamespace)}
}

// Namespace implements component.Definition.
func (g *General) Namespace() string { return GeneralNamespace }

// Title returns the display title.
func (g *General) Title() string { return "General" }

// TabsWrapperSelector implements component.Definition.
func (g *General) TabsWrapperSelector() string { return "general-tabs" }

// DefaultRouteSuffix opens the panel on the settings tab.
func (g *General) DefaultRouteSuffix() string { return TabSettings }

// InitialTabs implements component.Definition.
func (g *General) InitialTabs() []component.TabEntry {
	return []component.TabEntry{
		{ID: TabSettings, Config: component.TabConfig{Title: "Settings"}},
		{ID: TabStyle, Config: component.TabConfig{Title: "Style"}},
		{ID: TabAdvanced, Config: component.TabConfig{Title: "Advanced"}},
	}
}

// Commands implements component.Definition.
func (g *General) Commands() []component.Command {
	return []component.Command{
		{Name: "open", Description: "Open the panel, optionally on tab=<id>", Handler: g.open},
		{Name: "close", Description: "Close the panel", Handler: g.close},
		{Name: "lock", Description: "Prevent the panel from opening", Handler: g.setLocked(true)},
		{Name: "unlock", Description: "Allow the panel to open", Handler: g.setLocked(false)},
	}
}

// Shortcuts implements component.Definition.
func (g *General) Shortcuts() []component.Shortcut {
	return []component.Shortcut{
		{ID: "next-tab", Keys: []string{"ctrl+g"}, Help: "next general tab", Handler: g.nextTab},
	}
}

// RenderTab implements component.Definition.
func (g *General) RenderTab(tabID string) {
	body := g.render(tabID)

	g.mu.Lock()
	g.tab, g.body = tabID, body
	g.mu.Unlock()
}

// Body returns the content of the last rendered tab.
func (g *General) Body() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.body
}

// Dependency implements component.Definition. A locked panel cannot open.
func (g *General) Dependency() bool {
	return !g.Locked()
}

// Locked reports whether the panel is locked.
func (g *General) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.locked
}

func (g *General) render(tabID string) string {
	switch tabID {
	case TabSettings:
		state := "unlocked"
		if g.Locked() {
			state = "locked"
		}
		return fmt.Sprintf("Config file: %s\nLog file:    %s\nPanel:       %s",
			orNone(g.info.ConfigFile), orNone(g.info.LogFile), state)
	case TabStyle:
		return fmt.Sprintf("Theme: %s", orNone(g.info.Theme))
	case TabAdvanced:
		var panels []string
		if g.info.Panels != nil {
			panels = g.info.Panels()
		}
		if len(panels) == 0 {
			return "Mounted panels: (none)"
		}
		return "Mounted panels:\n  " + strings.Join(panels, "\n  ")
	default:
		return ""
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (g *General) open(args commands.Args) (any, error) {
	opened, err := g.host.Open(GeneralNamespace)
	if err != nil || !opened {
		return opened, err
	}
	if tab := args.String("tab"); tab != "" {
		if err := g.host.Navigate(component.JoinRoute(GeneralNamespace, tab)); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (g *General) close(commands.Args) (any, error) {
	return g.host.Close(GeneralNamespace)
}

func (g *General) setLocked(locked bool) commands.Handler {
	return func(commands.Args) (any, error) {
		g.mu.Lock()
		g.locked = locked
		tab := g.tab
		g.mu.Unlock()

		if tab == TabSettings {
			g.RenderTab(tab)
		}
		return locked, nil
	}
}

// nextTab cycles through the component's current tabs, including any added
// after mount.
func (g *General) nextTab() {
	c, ok := g.host.Component(GeneralNamespace)
	if !ok {
		return
	}
	ids := c.TabIDs()
	if len(ids) == 0 {
		return
	}

	g.mu.Lock()
	i := slices.Index(ids, g.tab)
	g.mu.Unlock()

	route := c.TabRoute(ids[(i+1)%len(ids)])
	if err := g.host.Navigate(route); err != nil {
		g.logger.Warn("next tab failed", "route", route, "error", err.Error())
	}
}
