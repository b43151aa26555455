// Package definition loads declarative panel definitions from YAML or JSONC
// files and turns them into component definitions. A definition names its
// tabs, routes, commands and shortcuts; every route, command and shortcut is
// bound to one action: navigate to a route, run a command, or open or close
// the panel.
//
// Example:
//
//	namespace: panel/history
//	wrapper: history
//	default_route: actions
//	tabs:
//	  - id: actions
//	    title: Actions
//	    content: Recent actions
//	routes:
//	  - route: latest
//	    navigate: actions
//	commands:
//	  - name: close
//	    action: close
//	shortcuts:
//	  - id: show
//	    keys: [ctrl+h]
//	    command: panel/history/show
//	dependency:
//	  requires_active: panel/general
package definition

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/errors"
)

// Panel actions.
const (
	ActionOpen  = "open"
	ActionClose = "close"
)

// Spec is a parsed panel definition.
type Spec struct {
	Namespace    string         `yaml:"namespace"`
	Title        string         `yaml:"title,omitempty"`
	Wrapper      string         `yaml:"wrapper,omitempty"`
	DefaultRoute string         `yaml:"default_route,omitempty"`
	Tabs         []TabSpec      `yaml:"tabs,omitempty"`
	Routes       []RouteSpec    `yaml:"routes,omitempty"`
	Commands     []CommandSpec  `yaml:"commands,omitempty"`
	Shortcuts    []ShortcutSpec `yaml:"shortcuts,omitempty"`
	Dependency   DependencySpec `yaml:"dependency,omitempty"`

	// Source is the file the definition was read from.
	Source string `yaml:"-"`
}

// TabSpec declares a tab.
type TabSpec struct {
	ID      string         `yaml:"id"`
	Title   string         `yaml:"title,omitempty"`
	Content string         `yaml:"content,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Action is the effect of a route, command or shortcut. Exactly one field
// must be set. Navigate and Command targets without a "/" are relative to
// the panel namespace.
type Action struct {
	Navigate string `yaml:"navigate,omitempty"`
	Command  string `yaml:"command,omitempty"`
	Action   string `yaml:"action,omitempty"`
}

// RouteSpec declares a custom route. An empty Route names the namespace.
type RouteSpec struct {
	Route  string `yaml:"route"`
	Action `yaml:",inline"`
}

// CommandSpec declares a command.
type CommandSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Action      `yaml:",inline"`
}

// ShortcutSpec declares a key shortcut.
type ShortcutSpec struct {
	ID     string   `yaml:"id"`
	Keys   []string `yaml:"keys"`
	Help   string   `yaml:"help,omitempty"`
	Action `yaml:",inline"`
}

// DependencySpec gates Open.
type DependencySpec struct {
	// RequiresActive vetoes Open unless this namespace is active.
	RequiresActive string `yaml:"requires_active,omitempty"`
}

func (a Action) count() int {
	n := 0
	for _, v := range []string{a.Navigate, a.Command, a.Action} {
		if v != "" {
			n++
		}
	}
	return n
}

// String describes the action for listings.
func (a Action) String() string {
	switch {
	case a.Navigate != "":
		return "navigate " + a.Navigate
	case a.Command != "":
		return "command " + a.Command
	case a.Action != "":
		return a.Action
	default:
		return "none"
	}
}

// Validate reports every problem of the definition, joined.
func (s *Spec) Validate() error {
	v := &validator{source: s.Source}

	if err := component.ValidateNamespace(s.Namespace); err != nil {
		v.add(err)
	}

	tabIDs := make([]string, 0, len(s.Tabs))
	for i, tab := range s.Tabs {
		field := fmt.Sprintf("tabs[%d].id", i)
		switch {
		case tab.ID == "":
			v.fail(field, tab.ID, "tab id is required")
		case strings.Contains(tab.ID, component.Separator) || hasSpace(tab.ID):
			v.fail(field, tab.ID, "tab id must not contain '/' or whitespace")
		case slices.Contains(tabIDs, tab.ID):
			v.fail(field, tab.ID, "duplicate tab id")
		}
		tabIDs = append(tabIDs, tab.ID)
	}

	var routes []string
	for i, r := range s.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if slices.Contains(routes, r.Route) {
			v.fail(field+".route", r.Route, "duplicate route")
		}
		if slices.Contains(tabIDs, r.Route) {
			v.fail(field+".route", r.Route, "route shadows a tab route")
		}
		routes = append(routes, r.Route)
		v.action(field, r.Action)
		if r.Navigate != "" && s.qualify(r.Navigate) == component.JoinRoute(s.Namespace, r.Route) {
			v.fail(field+".navigate", r.Navigate, "route navigates to itself")
		}
	}

	if s.DefaultRoute != "" && !slices.Contains(tabIDs, s.DefaultRoute) && !slices.Contains(routes, s.DefaultRoute) {
		v.fail("default_route", s.DefaultRoute, "default route must name a tab or a route")
	}

	var names []string
	for i, c := range s.Commands {
		field := fmt.Sprintf("commands[%d]", i)
		switch {
		case c.Name == "" || hasSpace(c.Name):
			v.fail(field+".name", c.Name, "command name is required and must not contain whitespace")
		case slices.Contains(names, c.Name):
			v.fail(field+".name", c.Name, "duplicate command")
		}
		names = append(names, c.Name)
		v.action(field, c.Action)
		if c.Command != "" && s.qualify(c.Command) == component.JoinRoute(s.Namespace, c.Name) {
			v.fail(field+".command", c.Command, "command runs itself")
		}
	}

	for i, sc := range s.Shortcuts {
		field := fmt.Sprintf("shortcuts[%d]", i)
		if sc.ID == "" {
			v.fail(field+".id", sc.ID, "shortcut id is required")
		}
		if len(sc.Keys) == 0 {
			v.fail(field+".keys", nil, "shortcut needs at least one key")
		}
		v.action(field, sc.Action)
	}

	if dep := s.Dependency.RequiresActive; dep != "" {
		if err := component.ValidateNamespace(dep); err != nil {
			v.add(err)
		}
	}

	return errors.Join(v.errs...)
}

// qualify resolves a navigate or command target against the namespace.
func (s *Spec) qualify(target string) string {
	if strings.Contains(target, component.Separator) {
		return target
	}
	return component.JoinRoute(s.Namespace, target)
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

type validator struct {
	source string
	errs   []error
}

func (v *validator) add(err error) {
	if v.source != "" {
		err = errors.Wrap(err, v.source)
	}
	v.errs = append(v.errs, err)
}

func (v *validator) fail(field string, value any, msg string) {
	e := errors.NewValidationError(msg).WithField(field)
	if value != nil {
		e = e.WithValue(value)
	}
	v.add(e)
}

func (v *validator) action(field string, a Action) {
	switch a.count() {
	case 0:
		v.fail(field, nil, "one of navigate, command or action is required")
		return
	case 1:
	default:
		v.fail(field, a.String(), "only one of navigate, command or action may be set")
		return
	}
	if a.Action != "" && a.Action != ActionOpen && a.Action != ActionClose {
		v.fail(field+".action", a.Action, "action must be open or close")
	}
}
