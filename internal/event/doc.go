// Package event provides a pub-sub event bus used by the panel host and its
// collaborators to announce lifecycle changes.
//
// The router, command dispatcher and activation tracker publish events here so
// the TUI (and the log) can follow navigation without the collaborators knowing
// about either of them.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Activation:
//   - [ComponentActivatedEvent], [ComponentInactivatedEvent]
//
// Navigation:
//   - [RouteChangedEvent]: a route became current inside its root container
//   - [RouteClearedEvent]: a namespace dropped its current route
//
// Commands:
//   - [CommandRunEvent]: a dispatcher command finished
//
// Host:
//   - [ComponentMountedEvent], [PanelOpenedEvent], [PanelClosedEvent]
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//
//	bus.Subscribe(event.TypeRouteChanged, func(e event.Event) {
//	    changed := e.(event.RouteChangedEvent)
//	    logger.Debug("route", "route", changed.Route)
//	})
//
//	bus.Publish(event.NewRouteChangedEvent("panel", "panel/general/style", "panel/general"))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - component.activated, component.inactivated, component.mounted
//   - route.changed, route.cleared
//   - command.run
//   - panel.opened, panel.closed
package event
