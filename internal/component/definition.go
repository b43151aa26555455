package component

import "github.com/Iron-Ham/panelkit/internal/commands"

// TabConfig is the configuration stored for a tab. The registry never
// interprets it; Title is used by tab strips when rendering selectors.
type TabConfig struct {
	Title   string
	Options map[string]any
}

// TabEntry pairs a tab id with its configuration.
type TabEntry struct {
	ID     string
	Config TabConfig
}

// Route is a custom route declared by a definition. Suffix is appended to the
// component namespace; an empty suffix routes the namespace itself.
type Route struct {
	Suffix  string
	Handler func()
}

// Command is a command declared by a definition. The dispatcher qualifies
// Name with the component namespace.
type Command struct {
	Name        string
	Description string
	Handler     commands.Handler
}

// Shortcut maps a shortcut identifier to a handler. Keys use bubbletea key
// names ("ctrl+s", "f2", "?"). The component only exposes shortcuts; binding
// them is left to a keybinding collaborator.
type Shortcut struct {
	ID      string
	Keys    []string
	Help    string
	Handler func()
}

// Definition describes a concrete panel. Embed [Base] to inherit defaults for
// everything except Namespace.
type Definition interface {
	// Namespace returns the slash-delimited identifier of the panel. The
	// first segment names its root container.
	Namespace() string

	// InitialTabs returns the tabs the registry starts with, in order.
	InitialTabs() []TabEntry

	// Routes returns custom routes registered after the tab routes.
	Routes() []Route

	// Commands returns commands registered after all routes.
	Commands() []Command

	// Shortcuts returns the key shortcuts exposed to the keybinder.
	Shortcuts() []Shortcut

	// TabsWrapperSelector scopes the tab selectors this panel binds.
	TabsWrapperSelector() string

	// RenderTab is called every time a tab is activated.
	RenderTab(tabID string)

	// Dependency is evaluated by Open; returning false vetoes opening.
	Dependency() bool
}

// Base provides the default behaviour of a Definition. Its Namespace returns
// the empty string, which [New] rejects with errors.ErrNotImplemented.
type Base struct{}

func (Base) Namespace() string           { return "" }
func (Base) InitialTabs() []TabEntry     { return nil }
func (Base) Routes() []Route             { return nil }
func (Base) Commands() []Command         { return nil }
func (Base) Shortcuts() []Shortcut       { return nil }
func (Base) TabsWrapperSelector() string { return "" }
func (Base) RenderTab(string)            {}
func (Base) Dependency() bool            { return true }
