// Package component implements the panel component registry.
//
// A concrete panel is described by a [Definition]: a namespace plus the tabs,
// routes, commands and shortcuts it declares. [New] wraps a definition in a
// [Component] that registers those declarations with three collaborators it
// is given at construction (a router, a command dispatcher and an activation
// tracker) and then manages the panel's open/closed state and current tab.
//
// Registration order during initialization is fixed: tab routes, then custom
// routes, then commands. When two registrations produce the same route string
// the collaborator keeps the last one.
//
// The component never removes entries from its collaborators. Removing a tab
// leaves its route registered, and neither [Component.RemoveTab] nor
// [Component.ActivateTab] validates against the tab registry.
package component
