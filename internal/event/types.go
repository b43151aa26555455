package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeComponentActivated   = "component.activated"
	TypeComponentInactivated = "component.inactivated"
	TypeComponentMounted     = "component.mounted"
	TypeRouteChanged         = "route.changed"
	TypeRouteCleared         = "route.cleared"
	TypeCommandRun           = "command.run"
	TypePanelOpened          = "panel.opened"
	TypePanelClosed          = "panel.closed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Activation Events
// -----------------------------------------------------------------------------

// ComponentActivatedEvent is emitted when a namespace becomes active.
type ComponentActivatedEvent struct {
	baseEvent
	Namespace string
}

// NewComponentActivatedEvent creates a ComponentActivatedEvent.
func NewComponentActivatedEvent(namespace string) ComponentActivatedEvent {
	return ComponentActivatedEvent{
		baseEvent: newBaseEvent(TypeComponentActivated),
		Namespace: namespace,
	}
}

// ComponentInactivatedEvent is emitted when a namespace stops being active.
type ComponentInactivatedEvent struct {
	baseEvent
	Namespace string
}

// NewComponentInactivatedEvent creates a ComponentInactivatedEvent.
func NewComponentInactivatedEvent(namespace string) ComponentInactivatedEvent {
	return ComponentInactivatedEvent{
		baseEvent: newBaseEvent(TypeComponentInactivated),
		Namespace: namespace,
	}
}

// -----------------------------------------------------------------------------
// Navigation Events
// -----------------------------------------------------------------------------

// RouteChangedEvent is emitted after the router made a route current.
type RouteChangedEvent struct {
	baseEvent
	Container string // Root container the route lives in
	Route     string // Full route string
	Namespace string // Namespace of the owning component
}

// NewRouteChangedEvent creates a RouteChangedEvent.
func NewRouteChangedEvent(container, route, namespace string) RouteChangedEvent {
	return RouteChangedEvent{
		baseEvent: newBaseEvent(TypeRouteChanged),
		Container: container,
		Route:     route,
		Namespace: namespace,
	}
}

// RouteClearedEvent is emitted when a namespace gives up its current route.
type RouteClearedEvent struct {
	baseEvent
	Container string
	Route     string // The route that was current, empty if none
	Namespace string
}

// NewRouteClearedEvent creates a RouteClearedEvent.
func NewRouteClearedEvent(container, route, namespace string) RouteClearedEvent {
	return RouteClearedEvent{
		baseEvent: newBaseEvent(TypeRouteCleared),
		Container: container,
		Route:     route,
		Namespace: namespace,
	}
}

// -----------------------------------------------------------------------------
// Command Events
// -----------------------------------------------------------------------------

// CommandRunEvent is emitted after a dispatcher command returned.
type CommandRunEvent struct {
	baseEvent
	Command  string
	Duration time.Duration
	Err      error
}

// NewCommandRunEvent creates a CommandRunEvent.
func NewCommandRunEvent(command string, duration time.Duration, err error) CommandRunEvent {
	return CommandRunEvent{
		baseEvent: newBaseEvent(TypeCommandRun),
		Command:   command,
		Duration:  duration,
		Err:       err,
	}
}

// -----------------------------------------------------------------------------
// Host Events
// -----------------------------------------------------------------------------

// ComponentMountedEvent is emitted when the host mounts a component.
type ComponentMountedEvent struct {
	baseEvent
	Namespace string
	Tabs      []string
}

// NewComponentMountedEvent creates a ComponentMountedEvent.
func NewComponentMountedEvent(namespace string, tabs []string) ComponentMountedEvent {
	return ComponentMountedEvent{
		baseEvent: newBaseEvent(TypeComponentMounted),
		Namespace: namespace,
		Tabs:      tabs,
	}
}

// PanelOpenedEvent is emitted when a panel transitions to open.
type PanelOpenedEvent struct {
	baseEvent
	Namespace string
}

// NewPanelOpenedEvent creates a PanelOpenedEvent.
func NewPanelOpenedEvent(namespace string) PanelOpenedEvent {
	return PanelOpenedEvent{
		baseEvent: newBaseEvent(TypePanelOpened),
		Namespace: namespace,
	}
}

// PanelClosedEvent is emitted when a panel transitions to closed.
type PanelClosedEvent struct {
	baseEvent
	Namespace string
}

// NewPanelClosedEvent creates a PanelClosedEvent.
func NewPanelClosedEvent(namespace string) PanelClosedEvent {
	return PanelClosedEvent{
		baseEvent: newBaseEvent(TypePanelClosed),
		Namespace: namespace,
	}
}
