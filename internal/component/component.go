package component

import (
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/logging"
)

// Options configures a Component.
type Options struct {
	// Manager is the owning manager. It is required and opaque to the component.
	Manager any

	// Definition supplies the namespace and the declared tabs, routes,
	// commands and shortcuts.
	Definition Definition

	Router     Router
	Dispatcher Dispatcher
	Tracker    Tracker

	// Tabs is optional; without it ActivateTab skips selector binding.
	Tabs TabStrip

	// OnTabsChanged is optional. It is called after AddTab, AddTabAt and
	// any RemoveTab that removed a tab.
	OnTabsChanged func(*Component)

	// Logger is optional; nil discards output.
	Logger *logging.Logger
}

// Component registers a Definition with its collaborators and tracks the
// panel's open state, current tab and default route.
type Component struct {
	manager    any
	def        Definition
	namespace  string
	router     Router
	dispatcher Dispatcher
	tracker    Tracker
	strip      TabStrip
	logger     *logging.Logger
	onTabs     func(*Component)

	tabs         *TabRegistry
	isOpen       bool
	currentTab   string
	defaultRoute string
	initialized  bool
}

// New constructs a Component and runs its one-time initialization.
//
// It fails with errors.ErrMissingManager when opts.Manager is nil (checked
// before anything else) and with errors.ErrNotImplemented when the
// definition does not provide a namespace.
func New(opts Options) (*Component, error) {
	if opts.Manager == nil {
		return nil, errors.NewComponentError("cannot construct component", errors.ErrMissingManager)
	}
	if opts.Definition == nil || opts.Definition.Namespace() == "" {
		return nil, errors.NewComponentError("cannot construct component", errors.ErrNotImplemented)
	}

	ns := opts.Definition.Namespace()
	if err := ValidateNamespace(ns); err != nil {
		return nil, err
	}
	switch {
	case opts.Router == nil:
		return nil, errors.NewValidationError("router is required").WithField("Router")
	case opts.Dispatcher == nil:
		return nil, errors.NewValidationError("dispatcher is required").WithField("Dispatcher")
	case opts.Tracker == nil:
		return nil, errors.NewValidationError("activation tracker is required").WithField("Tracker")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	c := &Component{
		manager:    opts.Manager,
		def:        opts.Definition,
		namespace:  ns,
		router:     opts.Router,
		dispatcher: opts.Dispatcher,
		tracker:    opts.Tracker,
		strip:      opts.Tabs,
		onTabs:     opts.OnTabsChanged,
		logger:     logger.WithComponent(ns),
		tabs:       NewTabRegistry(opts.Definition.InitialTabs()),
	}
	c.init()
	return c, nil
}

// init registers tab routes, then custom routes, then commands. It runs once.
func (c *Component) init() {
	if c.initialized {
		return
	}
	c.initialized = true

	for _, id := range c.tabs.IDs() {
		c.registerTabRoute(id)
	}

	for _, r := range c.def.Routes() {
		if r.Handler == nil {
			c.logger.Warn("skipping route without handler", "suffix", r.Suffix)
			continue
		}
		route := JoinRoute(c.namespace, r.Suffix)
		c.router.Register(c, route, r.Handler)
		c.logger.Debug("route registered", "route", route)
	}

	for _, cmd := range c.def.Commands() {
		if cmd.Handler == nil {
			c.logger.Warn("skipping command without handler", "command", cmd.Name)
			continue
		}
		c.dispatcher.Register(c, cmd.Name, cmd.Handler)
		c.logger.Debug("command registered", "command", cmd.Name)
	}
}

func (c *Component) registerTabRoute(id string) {
	route := c.TabRoute(id)
	c.router.Register(c, route, func() { c.ActivateTab(id) })
	c.logger.Debug("tab route registered", "tab", id, "route", route)
}

// Namespace returns the component namespace.
func (c *Component) Namespace() string {
	return c.namespace
}

// RootContainer returns the first namespace segment.
func (c *Component) RootContainer() string {
	return RootContainer(c.namespace)
}

// Manager returns the manager supplied at construction.
func (c *Component) Manager() any {
	return c.manager
}

// Definition returns the wrapped definition.
func (c *Component) Definition() Definition {
	return c.def
}

// -----------------------------------------------------------------------------
// Tabs
// -----------------------------------------------------------------------------

// Tabs returns the tabs in order.
func (c *Component) Tabs() []TabEntry {
	return c.tabs.Entries()
}

// TabIDs returns the tab ids in order.
func (c *Component) TabIDs() []string {
	return c.tabs.IDs()
}

// Tab returns the configuration of a tab.
func (c *Component) Tab(id string) (TabConfig, bool) {
	return c.tabs.Get(id)
}

// HasTab reports whether id is in the tab registry.
func (c *Component) HasTab(id string) bool {
	return c.tabs.Has(id)
}

// AddTab inserts or overwrites a tab. New ids are appended; existing ids keep
// their position. The tab route is registered again either way.
func (c *Component) AddTab(id string, cfg TabConfig) {
	c.tabs.Set(id, cfg)
	c.registerTabRoute(id)
	c.tabsChanged()
}

// AddTabAt inserts or overwrites a tab and moves it to the zero-based
// position, clamped to the registry bounds. Other tabs keep their relative
// order.
func (c *Component) AddTabAt(id string, cfg TabConfig, position int) {
	c.tabs.Insert(id, cfg, position)
	c.registerTabRoute(id)
	c.tabsChanged()
}

// RemoveTab deletes a tab. Its route stays registered with the router and
// the current tab is left unchanged.
func (c *Component) RemoveTab(id string) {
	if c.tabs.Remove(id) {
		c.logger.Debug("tab removed", "tab", id)
		c.tabsChanged()
	}
}

func (c *Component) tabsChanged() {
	if c.onTabs != nil {
		c.onTabs(c)
	}
}

// TabRoute returns the route of a tab: namespace + "/" + id.
func (c *Component) TabRoute(id string) string {
	return c.namespace + Separator + id
}

// ActivateTab makes id the current tab, renders it and rebinds the tab
// selectors under the definition's wrapper selector so that selecting a tab
// navigates to its route. id is not checked against the registry.
func (c *Component) ActivateTab(id string) {
	c.currentTab = id
	c.def.RenderTab(id)

	if c.strip == nil {
		return
	}
	wrapper := c.TabsWrapper()
	c.strip.Unbind(wrapper)
	c.strip.Bind(wrapper, func(tabID string) {
		route := c.TabRoute(tabID)
		if err := c.router.To(route); err != nil {
			c.logger.Warn("tab navigation failed", "route", route, "error", err.Error())
		}
	})
	c.strip.MarkActive(wrapper, id)
}

// TabsWrapper returns the wrapper selector the tab selectors are bound under:
// the definition's TabsWrapperSelector, or the namespace when that is empty.
func (c *Component) TabsWrapper() string {
	if w := c.def.TabsWrapperSelector(); w != "" {
		return w
	}
	return c.namespace
}

// CurrentTab returns the last activated tab id, or "".
func (c *Component) CurrentTab() string {
	return c.currentTab
}

// SetDefaultRoute stores namespace + "/" + suffix as the default route.
func (c *Component) SetDefaultRoute(suffix string) {
	c.defaultRoute = c.namespace + Separator + suffix
}

// DefaultRoute returns the default route, or "" when never set.
func (c *Component) DefaultRoute() string {
	return c.defaultRoute
}

// Shortcuts returns the shortcuts declared by the definition.
func (c *Component) Shortcuts() []Shortcut {
	return c.def.Shortcuts()
}

// Routes returns the custom routes declared by the definition.
func (c *Component) Routes() []Route {
	return c.def.Routes()
}

// Commands returns the commands declared by the definition.
func (c *Component) Commands() []Command {
	return c.def.Commands()
}

// -----------------------------------------------------------------------------
// Activation
// -----------------------------------------------------------------------------

// Activate marks the namespace active in the tracker.
func (c *Component) Activate() {
	c.tracker.Activate(c.namespace)
}

// Inactivate marks the namespace inactive in the tracker.
func (c *Component) Inactivate() {
	c.tracker.Inactivate(c.namespace)
}

// IsActive reports whether the tracker considers the namespace active.
func (c *Component) IsActive() bool {
	return c.tracker.IsActive(c.namespace)
}

// OnRoute is called by the router when a route of this component becomes
// current.
func (c *Component) OnRoute() {
	c.Activate()
}

// OnCloseRoute is called by the router when navigation leaves this component.
func (c *Component) OnCloseRoute() {
	c.Inactivate()
}

// -----------------------------------------------------------------------------
// Open / close
// -----------------------------------------------------------------------------

// Open transitions the panel to open. It returns false, leaving the panel
// closed, when the definition's Dependency vetoes it.
func (c *Component) Open() bool {
	if !c.def.Dependency() {
		c.logger.Debug("open vetoed by dependency")
		return false
	}
	c.isOpen = true
	c.Activate()
	return true
}

// Close transitions an open panel to closed, inactivates it and clears its
// current route. Closing a closed panel returns false and has no effect.
func (c *Component) Close() bool {
	if !c.isOpen {
		return false
	}

	c.isOpen = false
	c.Inactivate()
	c.router.ClearCurrent(c.namespace)
	return true
}

// IsOpen reports whether the panel is open.
func (c *Component) IsOpen() bool {
	return c.isOpen
}
