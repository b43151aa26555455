// Package commands provides the command dispatcher collaborator. Components
// register named handlers once at initialization; the TUI command prompt, the
// CLI and declarative shortcuts run them by qualified name.
package commands

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/event"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps the "did you mean" list of an unknown command.
const maxSuggestions = 3

// suggestDistance is the largest edit distance still offered as a suggestion.
const suggestDistance = 3

// Args carries named command arguments.
type Args map[string]any

// String returns the string value of key, or "".
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Bool returns the boolean value of key, or false.
func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Handler runs a command.
type Handler func(args Args) (any, error)

// Owner is whoever registers a command. Commands are stored under
// Owner.Namespace() + "/" + name.
type Owner interface {
	Namespace() string
}

type entry struct {
	owner   string
	handler Handler
}

// Dispatcher is the process-wide command table.
type Dispatcher struct {
	mu       sync.RWMutex
	commands map[string]entry
	bus      *event.Bus
	logger   *logging.Logger
}

// NewDispatcher creates an empty dispatcher. bus and logger may be nil.
func NewDispatcher(bus *event.Bus, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Dispatcher{
		commands: make(map[string]entry),
		bus:      bus,
		logger:   logger,
	}
}

// Qualify returns the table key a command registered by owner is stored under.
func Qualify(owner Owner, name string) string {
	if owner == nil || owner.Namespace() == "" {
		return name
	}
	return owner.Namespace() + "/" + name
}

// Register adds a command. An existing command with the same qualified name
// is replaced.
func (d *Dispatcher) Register(owner Owner, name string, handler Handler) {
	key := Qualify(owner, name)
	ownerNS := ""
	if owner != nil {
		ownerNS = owner.Namespace()
	}

	d.mu.Lock()
	_, replaced := d.commands[key]
	d.commands[key] = entry{owner: ownerNS, handler: handler}
	d.mu.Unlock()

	d.logger.Debug("command registered", "command", key, "replaced", replaced)
}

// Run executes a command by qualified name. The handler runs without the
// dispatcher lock held, so handlers may run other commands.
func (d *Dispatcher) Run(name string, args Args) (any, error) {
	name = strings.TrimSpace(name)

	d.mu.RLock()
	e, ok := d.commands[name]
	d.mu.RUnlock()

	if !ok || e.handler == nil {
		return nil, errors.NewNotFoundError("command", name).
			WithCause(errors.ErrCommandNotFound).
			WithSuggestions(d.Suggest(name))
	}

	if args == nil {
		args = Args{}
	}

	start := time.Now()
	result, err := e.handler(args)
	elapsed := time.Since(start)

	if err != nil {
		d.logger.Warn("command failed", "command", name, "error", err.Error())
	} else {
		d.logger.Debug("command run", "command", name, "duration_ms", elapsed.Milliseconds())
	}
	if d.bus != nil {
		d.bus.Publish(event.NewCommandRunEvent(name, elapsed, err))
	}
	return result, err
}

// Has reports whether a command is registered.
func (d *Dispatcher) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.commands[name]
	return ok
}

// Owner returns the namespace that registered a command.
func (d *Dispatcher) Owner(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.commands[name]
	return e.owner, ok
}

// List returns all qualified command names, sorted.
func (d *Dispatcher) List() []string {
	d.mu.RLock()
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	d.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Suggest returns up to three registered commands close to name, by edit
// distance, with prefix matches first.
func (d *Dispatcher) Suggest(name string) []string {
	if name == "" {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, registered := range d.List() {
		if strings.HasPrefix(registered, name) {
			candidates = append(candidates, candidate{registered, 0})
			continue
		}
		if dist := levenshtein.ComputeDistance(name, registered); dist <= suggestDistance {
			candidates = append(candidates, candidate{registered, dist})
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(len(candidates), maxSuggestions))
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}
