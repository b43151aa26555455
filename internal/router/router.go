// Package router provides the navigation collaborator. Routes are
// slash-delimited strings whose first segment names a root container; each
// container has at most one current route.
package router

import (
	"slices"
	"strings"
	"sync"

	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/event"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/gobwas/glob"
)

// Owner is notified when navigation enters or leaves one of its routes.
type Owner interface {
	Namespace() string
	OnRoute()
	OnCloseRoute()
}

type route struct {
	owner   Owner
	handler func()
}

// Router holds the route table and the current route of every container.
type Router struct {
	mu      sync.Mutex
	routes  map[string]route
	current map[string]string // container -> route
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates an empty router. bus and logger may be nil.
func New(bus *event.Bus, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Router{
		routes:  make(map[string]route),
		current: make(map[string]string),
		bus:     bus,
		logger:  logger,
	}
}

// Container returns the root container of a route or namespace.
func Container(path string) string {
	container, _, _ := strings.Cut(path, "/")
	return container
}

// Register adds a route. The last registration of a route wins.
func (r *Router) Register(owner Owner, path string, handler func()) {
	r.mu.Lock()
	_, replaced := r.routes[path]
	r.routes[path] = route{owner: owner, handler: handler}
	r.mu.Unlock()

	r.logger.Debug("route registered", "route", path, "replaced", replaced)
}

// To navigates to a route. A different owner holding the current route of
// the same container is sent OnCloseRoute first; then the new owner gets
// OnRoute and the route handler runs. Callbacks run without the router lock
// held, so they may navigate again.
func (r *Router) To(path string) error {
	container := Container(path)

	r.mu.Lock()
	target, ok := r.routes[path]
	if !ok {
		suggestions := r.siblings(path)
		r.mu.Unlock()
		return errors.NewNotFoundError("route", path).
			WithCause(errors.ErrRouteNotFound).
			WithSuggestions(suggestions)
	}
	var previous Owner
	if prev, held := r.current[container]; held {
		previous = r.routes[prev].owner
	}
	r.current[container] = path
	r.mu.Unlock()

	if previous != nil && !sameOwner(previous, target.owner) {
		previous.OnCloseRoute()
	}
	if target.owner != nil {
		target.owner.OnRoute()
	}
	if target.handler != nil {
		target.handler()
	}

	// A handler that navigated elsewhere has already published its route.
	r.mu.Lock()
	superseded := r.current[container] != path
	r.mu.Unlock()
	if superseded {
		r.logger.Debug("navigation superseded", "route", path, "container", container)
		return nil
	}

	ns := ""
	if target.owner != nil {
		ns = target.owner.Namespace()
	}
	r.logger.Debug("navigated", "route", path, "container", container)
	r.publish(event.NewRouteChangedEvent(container, path, ns))
	return nil
}

// siblings returns registered routes sharing the parent of path. The caller
// holds r.mu.
func (r *Router) siblings(path string) []string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return nil
	}
	parent := path[:i+1]
	var out []string
	for p := range r.routes {
		if strings.HasPrefix(p, parent) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// ClearCurrent drops the current route of the namespace's container if that
// route belongs to the namespace. Routes of other namespaces are left alone.
func (r *Router) ClearCurrent(namespace string) {
	container := Container(namespace)

	r.mu.Lock()
	cleared := ""
	if cur, ok := r.current[container]; ok {
		if owner := r.routes[cur].owner; owner != nil && owner.Namespace() == namespace {
			delete(r.current, container)
			cleared = cur
		}
	}
	r.mu.Unlock()

	if cleared != "" {
		r.logger.Debug("route cleared", "route", cleared, "namespace", namespace)
	}
	r.publish(event.NewRouteClearedEvent(container, cleared, namespace))
}

// Current returns the current route of a container.
func (r *Router) Current(container string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, ok := r.current[container]
	return path, ok
}

// IsCurrent reports whether path is the current route of its container.
func (r *Router) IsCurrent(path string) bool {
	cur, ok := r.Current(Container(path))
	return ok && cur == path
}

// Has reports whether a route is registered.
func (r *Router) Has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.routes[path]
	return ok
}

// OwnerOf returns the namespace that registered a route.
func (r *Router) OwnerOf(path string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.routes[path]
	if !ok || rt.owner == nil {
		return "", ok
	}
	return rt.owner.Namespace(), true
}

// Routes returns every registered route, sorted.
func (r *Router) Routes() []string {
	r.mu.Lock()
	out := make([]string, 0, len(r.routes))
	for p := range r.routes {
		out = append(out, p)
	}
	r.mu.Unlock()

	slices.Sort(out)
	return out
}

// Match returns the sorted routes matching a glob pattern. "*" stops at "/",
// "**" crosses it.
func (r *Router) Match(pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.NewValidationError("invalid route pattern").
			WithField("pattern").
			WithValue(pattern).
			WithCause(err)
	}

	var out []string
	for _, p := range r.Routes() {
		if g.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Router) publish(e event.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

func sameOwner(a, b Owner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Namespace() == b.Namespace()
}
