package definition

import (
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/logging"
)

// Actions is what a declarative panel drives. The host implements it.
type Actions interface {
	Navigate(route string) error
	Run(command string, args commands.Args) (any, error)
	Open(namespace string) (bool, error)
	Close(namespace string) (bool, error)
	IsActive(namespace string) bool
}

// maxActionDepth bounds how deeply declared actions may trigger each other,
// e.g. a route navigating to a route that navigates back.
const maxActionDepth = 16

// Panel is a component.Definition built from a Spec.
type Panel struct {
	spec    *Spec
	actions Actions
	logger  *logging.Logger
	depth   atomic.Int32

	mu   sync.Mutex
	tab  string
	body string
}

// Build returns the definition of spec. Handlers resolve their targets when
// they run, so a spec may reference panels mounted after it.
func Build(spec *Spec, actions Actions, logger *logging.Logger) *Panel {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Panel{
		spec:    spec,
		actions: actions,
		logger:  logger.WithComponent(spec.Namespace),
	}
}

// Spec returns the parsed definition the panel was built from.
func (p *Panel) Spec() *Spec { return p.spec }

// Namespace implements component.Definition.
func (p *Panel) Namespace() string { return p.spec.Namespace }

// Title returns the display title, defaulting to the namespace.
func (p *Panel) Title() string {
	if p.spec.Title != "" {
		return p.spec.Title
	}
	return p.spec.Namespace
}

// InitialTabs implements component.Definition.
func (p *Panel) InitialTabs() []component.TabEntry {
	out := make([]component.TabEntry, 0, len(p.spec.Tabs))
	for _, t := range p.spec.Tabs {
		out = append(out, component.TabEntry{
			ID:     t.ID,
			Config: component.TabConfig{Title: t.Title, Options: t.Options},
		})
	}
	return out
}

// Routes implements component.Definition.
func (p *Panel) Routes() []component.Route {
	out := make([]component.Route, 0, len(p.spec.Routes))
	for _, r := range p.spec.Routes {
		out = append(out, component.Route{Suffix: r.Route, Handler: p.fire(r.Action)})
	}
	return out
}

// Commands implements component.Definition.
func (p *Panel) Commands() []component.Command {
	out := make([]component.Command, 0, len(p.spec.Commands))
	for _, c := range p.spec.Commands {
		out = append(out, component.Command{
			Name:        c.Name,
			Description: c.Description,
			Handler:     p.handler(c.Action),
		})
	}
	return out
}

// Shortcuts implements component.Definition.
func (p *Panel) Shortcuts() []component.Shortcut {
	out := make([]component.Shortcut, 0, len(p.spec.Shortcuts))
	for _, s := range p.spec.Shortcuts {
		out = append(out, component.Shortcut{
			ID:      s.ID,
			Keys:    s.Keys,
			Help:    s.Help,
			Handler: p.fire(s.Action),
		})
	}
	return out
}

// TabsWrapperSelector implements component.Definition.
func (p *Panel) TabsWrapperSelector() string { return p.spec.Wrapper }

// DefaultRouteSuffix returns the declared default route.
func (p *Panel) DefaultRouteSuffix() string { return p.spec.DefaultRoute }

// RenderTab implements component.Definition. It records the tab content.
func (p *Panel) RenderTab(tabID string) {
	body := ""
	for _, t := range p.spec.Tabs {
		if t.ID == tabID {
			body = t.Content
			break
		}
	}

	p.mu.Lock()
	p.tab, p.body = tabID, body
	p.mu.Unlock()
}

// Body returns the content of the last rendered tab.
func (p *Panel) Body() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.body
}

// Dependency implements component.Definition.
func (p *Panel) Dependency() bool {
	dep := p.spec.Dependency.RequiresActive
	return dep == "" || p.actions.IsActive(dep)
}

func (p *Panel) qualify(target string) string {
	return p.spec.qualify(target)
}

func (p *Panel) run(a Action, args commands.Args) (any, error) {
	if p.depth.Add(1) > maxActionDepth {
		p.depth.Add(-1)
		return nil, errors.Wrapf(errors.ErrActionCycle, "%s: %s", p.spec.Namespace, a.String())
	}
	defer p.depth.Add(-1)

	switch {
	case a.Navigate != "":
		return nil, p.actions.Navigate(p.qualify(a.Navigate))
	case a.Command != "":
		return p.actions.Run(p.qualify(a.Command), args)
	case a.Action == ActionOpen:
		return p.actions.Open(p.spec.Namespace)
	case a.Action == ActionClose:
		return p.actions.Close(p.spec.Namespace)
	default:
		return nil, errors.NewValidationError("unsupported action").WithValue(a.String())
	}
}

func (p *Panel) handler(a Action) commands.Handler {
	return func(args commands.Args) (any, error) {
		return p.run(a, args)
	}
}

func (p *Panel) fire(a Action) func() {
	return func() {
		if _, err := p.run(a, nil); err != nil {
			p.logger.Warn("panel action failed", "action", a.String(), "error", err.Error())
		}
	}
}
