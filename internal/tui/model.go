// Package tui renders the mounted panels of a host as a bubbletea program:
// a panel list, the focused panel's tab strip and body, a ':' command prompt
// and the key help of every active component.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/event"
	"github.com/Iron-Ham/panelkit/internal/host"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
)

// maxActivity is the number of bus events kept for the activity line.
const maxActivity = 50

// Options configures a Model.
type Options struct {
	Styles   *styles.Styles
	ShowHelp bool
}

// Model holds the TUI application state
type Model struct {
	host   *host.Host
	styles *styles.Styles

	keys   keyMap
	help   help.Model
	prompt textinput.Model

	// UI state
	focused     int
	width       int
	height      int
	ready       bool
	quitting    bool
	showHelp    bool
	commandMode bool

	status    string
	statusErr bool

	activity *activity
	subID    string
}

// NewModel creates a model over h and subscribes to its bus.
func NewModel(h *host.Host, opts Options) Model {
	st := opts.Styles
	if st == nil {
		st = styles.New(nil)
	}

	prompt := textinput.New()
	prompt.Prompt = ":"
	prompt.Placeholder = "namespace/command key=value"
	prompt.PromptStyle = st.Prompt

	act := &activity{}
	subID := h.Bus().SubscribeAll(act.record)

	return Model{
		host:     h,
		styles:   st,
		keys:     defaultKeyMap(),
		help:     help.New(),
		prompt:   prompt,
		showHelp: opts.ShowHelp,
		activity: act,
		subID:    subID,
	}
}

// Focused returns the focused component, or nil when nothing is mounted.
func (m Model) Focused() *component.Component {
	comps := m.host.Components()
	if len(comps) == 0 {
		return nil
	}
	if m.focused >= len(comps) {
		return comps[len(comps)-1]
	}
	return comps[m.focused]
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// CommandMode reports whether the ':' prompt is open.
func (m Model) CommandMode() bool {
	return m.commandMode
}

// Activity returns the recorded bus events, oldest first.
func (m Model) Activity() []string {
	return m.activity.lines()
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// detach drops the model's bus subscription.
func (m Model) detach() {
	m.host.Bus().Unsubscribe(m.subID)
}

// activity is shared by every copy of the model; bus handlers may run on
// goroutines other than the program's.
type activity struct {
	mu      sync.Mutex
	entries []string
}

func (a *activity) record(e event.Event) {
	line := describe(e)
	if line == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, line)
	if len(a.entries) > maxActivity {
		a.entries = a.entries[len(a.entries)-maxActivity:]
	}
}

func (a *activity) lines() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.entries...)
}

func (a *activity) last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1]
}

func describe(e event.Event) string {
	switch ev := e.(type) {
	case event.PanelOpenedEvent:
		return "opened " + ev.Namespace
	case event.PanelClosedEvent:
		return "closed " + ev.Namespace
	case event.RouteChangedEvent:
		return "route " + ev.Route
	case event.CommandRunEvent:
		if ev.Err != nil {
			return fmt.Sprintf("%s failed: %v", ev.Command, ev.Err)
		}
		return fmt.Sprintf("%s (%s)", ev.Command, ev.Duration.Round(time.Microsecond))
	case event.ComponentMountedEvent:
		return "mounted " + ev.Namespace
	default:
		return ""
	}
}
