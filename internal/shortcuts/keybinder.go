// Package shortcuts binds the key shortcuts exposed by components to
// bubbletea key messages. A shortcut only fires while its namespace is active
// in the activation tracker.
package shortcuts

import (
	"slices"
	"strings"
	"sync"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ActiveChecker reports whether a namespace is active.
type ActiveChecker interface {
	IsActive(namespace string) bool
}

type binding struct {
	namespace string
	id        string
	key       key.Binding
	handler   func()
}

// Keybinder owns the shortcut bindings of every mounted component.
type Keybinder struct {
	mu       sync.RWMutex
	bindings []binding
	active   ActiveChecker
	logger   *logging.Logger
}

// New creates a Keybinder gated by active.
func New(active ActiveChecker, logger *logging.Logger) *Keybinder {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Keybinder{active: active, logger: logger}
}

// Bind adds the shortcuts of a namespace, replacing any bound before.
// Shortcuts without keys or handler are skipped.
func (k *Keybinder) Bind(namespace string, shortcuts []component.Shortcut) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.bindings = slices.DeleteFunc(k.bindings, func(b binding) bool {
		return b.namespace == namespace
	})
	for _, s := range shortcuts {
		if len(s.Keys) == 0 || s.Handler == nil {
			k.logger.Warn("skipping incomplete shortcut", "namespace", namespace, "shortcut", s.ID)
			continue
		}
		helpText := s.Help
		if helpText == "" {
			helpText = s.ID
		}
		k.bindings = append(k.bindings, binding{
			namespace: namespace,
			id:        s.ID,
			key: key.NewBinding(
				key.WithKeys(s.Keys...),
				key.WithHelp(strings.Join(s.Keys, "/"), helpText),
			),
			handler: s.Handler,
		})
		k.logger.Debug("shortcut bound", "namespace", namespace, "shortcut", s.ID, "keys", s.Keys)
	}
}

// Unbind removes every shortcut of a namespace.
func (k *Keybinder) Unbind(namespace string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = slices.DeleteFunc(k.bindings, func(b binding) bool {
		return b.namespace == namespace
	})
}

// Handle runs the first binding, in bind order, that matches msg and whose
// namespace is active. It reports whether a shortcut fired.
func (k *Keybinder) Handle(msg tea.KeyMsg) bool {
	k.mu.RLock()
	var fire func()
	var fired binding
	for _, b := range k.bindings {
		if key.Matches(msg, b.key) && k.active.IsActive(b.namespace) {
			fire, fired = b.handler, b
			break
		}
	}
	k.mu.RUnlock()

	if fire == nil {
		return false
	}
	k.logger.Debug("shortcut fired", "namespace", fired.namespace, "shortcut", fired.id, "key", msg.String())
	fire()
	return true
}

// Bindings returns the key bindings of active namespaces in bind order.
func (k *Keybinder) Bindings() []key.Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []key.Binding
	for _, b := range k.bindings {
		if k.active.IsActive(b.namespace) {
			out = append(out, b.key)
		}
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (k *Keybinder) ShortHelp() []key.Binding {
	return k.Bindings()
}

// FullHelp implements help.KeyMap with one column per active namespace.
func (k *Keybinder) FullHelp() [][]key.Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var columns [][]key.Binding
	index := make(map[string]int)
	for _, b := range k.bindings {
		if !k.active.IsActive(b.namespace) {
			continue
		}
		i, ok := index[b.namespace]
		if !ok {
			i = len(columns)
			index[b.namespace] = i
			columns = append(columns, nil)
		}
		columns[i] = append(columns[i], b.key)
	}
	return columns
}
