// Package host owns the single process-wide panel registry: the event bus,
// router, command dispatcher, activation tracker, tab strip and keybinder
// shared by every mounted component. It is created at application start,
// passed by reference to each component as its manager, and torn down with
// Shutdown.
package host

import (
	"sync"

	"github.com/Iron-Ham/panelkit/internal/activation"
	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/event"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/Iron-Ham/panelkit/internal/router"
	"github.com/Iron-Ham/panelkit/internal/shortcuts"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/Iron-Ham/panelkit/internal/tui/tabstrip"
	"github.com/google/uuid"
)

// DefaultRouted is implemented by definitions that declare a default route
// suffix. Mount applies it with SetDefaultRoute.
type DefaultRouted interface {
	DefaultRouteSuffix() string
}

// Options configures a Host.
type Options struct {
	// Logger is optional; nil discards output.
	Logger *logging.Logger

	// Bus is optional; a new bus is created when nil.
	Bus *event.Bus

	// Styles and TabWidth configure the tab strip.
	Styles   *styles.Styles
	TabWidth int
}

// Host is the registry every component is mounted into.
type Host struct {
	id     string
	logger *logging.Logger

	bus        *event.Bus
	router     *router.Router
	dispatcher *commands.Dispatcher
	tracker    *activation.Tracker
	strip      *tabstrip.Strip
	keys       *shortcuts.Keybinder

	mu         sync.RWMutex
	components map[string]*component.Component
	mounting   map[string]bool // namespaces reserved by an in-flight Mount
	order      []string
	closed     bool
}

// New creates a Host and its collaborators.
func New(opts Options) *Host {
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithHost(id)

	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(logger)
	}

	tracker := activation.New(bus, logger)
	h := &Host{
		id:         id,
		logger:     logger,
		bus:        bus,
		router:     router.New(bus, logger),
		dispatcher: commands.NewDispatcher(bus, logger),
		tracker:    tracker,
		strip:      tabstrip.New(opts.Styles, opts.TabWidth),
		keys:       shortcuts.New(tracker, logger),
		components: make(map[string]*component.Component),
		mounting:   make(map[string]bool),
	}
	logger.Info("host created")
	return h
}

// ID returns the host instance id.
func (h *Host) ID() string { return h.id }

// Bus returns the event bus.
func (h *Host) Bus() *event.Bus { return h.bus }

// Router returns the router.
func (h *Host) Router() *router.Router { return h.router }

// Dispatcher returns the command dispatcher.
func (h *Host) Dispatcher() *commands.Dispatcher { return h.dispatcher }

// Tracker returns the activation tracker.
func (h *Host) Tracker() *activation.Tracker { return h.tracker }

// Strip returns the tab strip.
func (h *Host) Strip() *tabstrip.Strip { return h.strip }

// Keys returns the shortcut keybinder.
func (h *Host) Keys() *shortcuts.Keybinder { return h.keys }

// Mount constructs a component for def with the host as its manager, binds
// its shortcuts and publishes its tabs into the strip.
func (h *Host) Mount(def component.Definition) (*component.Component, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, errors.NewComponentError("cannot mount component", errors.ErrHostClosed)
	}
	reserved := ""
	if def != nil && def.Namespace() != "" {
		reserved = def.Namespace()
		if _, exists := h.components[reserved]; exists || h.mounting[reserved] {
			h.mu.Unlock()
			return nil, errors.NewAlreadyExistsError("component", reserved).
				WithCause(errors.ErrComponentExists)
		}
		h.mounting[reserved] = true
	}
	h.mu.Unlock()

	c, err := component.New(component.Options{
		Manager:       h,
		Definition:    def,
		Router:        h.router,
		Dispatcher:    h.dispatcher,
		Tracker:       h.tracker,
		Tabs:          h.strip,
		OnTabsChanged: h.SyncTabs,
		Logger:        h.logger,
	})

	h.mu.Lock()
	delete(h.mounting, reserved)
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}
	ns := c.Namespace()
	h.components[ns] = c
	h.order = append(h.order, ns)
	h.mu.Unlock()

	if d, ok := def.(DefaultRouted); ok && d.DefaultRouteSuffix() != "" {
		c.SetDefaultRoute(d.DefaultRouteSuffix())
	}
	h.SyncTabs(c)
	h.keys.Bind(ns, c.Shortcuts())

	h.logger.Info("component mounted", "namespace", ns, "tabs", len(c.TabIDs()))
	h.bus.Publish(event.NewComponentMountedEvent(ns, c.TabIDs()))
	return c, nil
}

// SyncTabs publishes the component's current tabs into the strip. Mounted
// components call it on every tab change.
func (h *Host) SyncTabs(c *component.Component) {
	entries := c.Tabs()
	items := make([]tabstrip.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, tabstrip.Item{ID: e.ID, Title: e.Config.Title})
	}
	h.strip.SetItems(c.TabsWrapper(), items)
}

// Component returns a mounted component.
func (h *Host) Component(namespace string) (*component.Component, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.components[namespace]
	return c, ok
}

// Components returns the mounted components in mount order.
func (h *Host) Components() []*component.Component {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*component.Component, 0, len(h.order))
	for _, ns := range h.order {
		out = append(out, h.components[ns])
	}
	return out
}

func (h *Host) lookup(namespace string) (*component.Component, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil, errors.NewComponentError("host unavailable", errors.ErrHostClosed).WithNamespace(namespace)
	}
	c, ok := h.components[namespace]
	if !ok {
		return nil, errors.NewNotFoundError("component", namespace)
	}
	return c, nil
}

// Open opens a panel and navigates to its landing tab: the default route
// when one is set, otherwise the first tab unless a tab is already current.
// It reports false when the panel's dependency vetoed opening.
func (h *Host) Open(namespace string) (bool, error) {
	c, err := h.lookup(namespace)
	if err != nil {
		return false, err
	}
	if !c.Open() {
		h.logger.Info("panel open vetoed", "namespace", namespace)
		return false, nil
	}

	if landing := h.landing(c); landing != "" {
		if err := h.router.To(landing); err != nil {
			h.logger.Warn("landing navigation failed", "namespace", namespace, "route", landing, "error", err.Error())
		}
	}

	h.bus.Publish(event.NewPanelOpenedEvent(namespace))
	return true, nil
}

func (h *Host) landing(c *component.Component) string {
	if route := c.DefaultRoute(); route != "" && h.router.Has(route) {
		return route
	}
	if c.CurrentTab() != "" {
		return c.TabRoute(c.CurrentTab())
	}
	if ids := c.TabIDs(); len(ids) > 0 {
		return c.TabRoute(ids[0])
	}
	return ""
}

// Close closes a panel. It reports false when the panel was not open.
func (h *Host) Close(namespace string) (bool, error) {
	c, err := h.lookup(namespace)
	if err != nil {
		return false, err
	}
	if !c.Close() {
		return false, nil
	}
	h.bus.Publish(event.NewPanelClosedEvent(namespace))
	return true, nil
}

// Navigate routes to a registered route.
func (h *Host) Navigate(route string) error {
	if h.isClosed() {
		return errors.NewComponentError("host unavailable", errors.ErrHostClosed)
	}
	return h.router.To(route)
}

// Run executes a dispatcher command.
func (h *Host) Run(command string, args commands.Args) (any, error) {
	if h.isClosed() {
		return nil, errors.NewComponentError("host unavailable", errors.ErrHostClosed)
	}
	return h.dispatcher.Run(command, args)
}

// IsActive reports whether a namespace is active.
func (h *Host) IsActive(namespace string) bool {
	return h.tracker.IsActive(namespace)
}

func (h *Host) isClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// Shutdown closes every open panel, clears the bus and rejects further use.
// It is safe to call more than once.
func (h *Host) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	open := make([]*component.Component, 0, len(h.order))
	for _, ns := range h.order {
		if c := h.components[ns]; c.IsOpen() {
			open = append(open, c)
		}
	}
	h.mu.Unlock()

	for _, c := range open {
		c.Close()
	}
	h.bus.Clear()
	h.logger.Info("host shut down", "closed_panels", len(open))
}
