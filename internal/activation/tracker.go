// Package activation provides the activation tracker collaborator: the set of
// namespaces currently active. Keybindings and declarative dependencies
// consult it to decide whether a panel is in play.
package activation

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/panelkit/internal/event"
	"github.com/Iron-Ham/panelkit/internal/logging"
)

// Tracker records active namespaces.
type Tracker struct {
	mu     sync.RWMutex
	active map[string]struct{}
	bus    *event.Bus
	logger *logging.Logger
}

// New creates a tracker with nothing active. bus and logger may be nil.
func New(bus *event.Bus, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Tracker{
		active: make(map[string]struct{}),
		bus:    bus,
		logger: logger,
	}
}

// Activate marks a namespace active. Only a state change is published.
func (t *Tracker) Activate(namespace string) {
	t.mu.Lock()
	_, already := t.active[namespace]
	t.active[namespace] = struct{}{}
	t.mu.Unlock()

	if already {
		return
	}
	t.logger.Debug("namespace activated", "namespace", namespace)
	if t.bus != nil {
		t.bus.Publish(event.NewComponentActivatedEvent(namespace))
	}
}

// Inactivate marks a namespace inactive. Only a state change is published.
func (t *Tracker) Inactivate(namespace string) {
	t.mu.Lock()
	_, was := t.active[namespace]
	delete(t.active, namespace)
	t.mu.Unlock()

	if !was {
		return
	}
	t.logger.Debug("namespace inactivated", "namespace", namespace)
	if t.bus != nil {
		t.bus.Publish(event.NewComponentInactivatedEvent(namespace))
	}
}

// IsActive reports whether a namespace is active.
func (t *Tracker) IsActive(namespace string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.active[namespace]
	return ok
}

// Active returns the active namespaces, sorted.
func (t *Tracker) Active() []string {
	t.mu.RLock()
	out := make([]string, 0, len(t.active))
	for ns := range t.active {
		out = append(out, ns)
	}
	t.mu.RUnlock()

	slices.Sort(out)
	return out
}
