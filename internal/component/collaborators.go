package component

import (
	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/router"
)

// Router is the navigation collaborator. The component only adds routes.
type Router interface {
	Register(owner router.Owner, route string, handler func())
	To(route string) error
	ClearCurrent(namespace string)
}

// Dispatcher is the command collaborator.
type Dispatcher interface {
	Register(owner commands.Owner, name string, handler commands.Handler)
}

// Tracker records which namespaces are active.
type Tracker interface {
	Activate(namespace string)
	Inactivate(namespace string)
	IsActive(namespace string) bool
}

// TabStrip is the surface that renders tab selectors grouped by wrapper
// selector. ActivateTab rebinds the selection handler of its wrapper on every
// call and marks exactly one selector active.
type TabStrip interface {
	Unbind(wrapper string)
	Bind(wrapper string, onSelect func(tabID string))
	MarkActive(wrapper, tabID string)
}
