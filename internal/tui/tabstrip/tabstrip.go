// Package tabstrip renders tab selectors grouped by wrapper selector. A
// component binds one selection handler per wrapper; selecting a tab, by key
// or programmatically, calls that handler.
package tabstrip

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ellipsis marks a truncated label.
const ellipsis = "…"

// Item is one tab selector.
type Item struct {
	ID    string
	Title string
}

// Label returns the title, or the id when the title is empty.
func (i Item) Label() string {
	if i.Title == "" {
		return i.ID
	}
	return i.Title
}

type group struct {
	items    []Item
	onSelect func(tabID string)
	active   string
}

// Strip holds the selector groups of every wrapper.
type Strip struct {
	mu       sync.Mutex
	groups   map[string]*group
	styles   *styles.Styles
	maxLabel int
}

// New creates an empty strip. maxLabel caps label width in cells; zero or
// less disables truncation.
func New(st *styles.Styles, maxLabel int) *Strip {
	if st == nil {
		st = styles.New(nil)
	}
	return &Strip{
		groups:   make(map[string]*group),
		styles:   st,
		maxLabel: maxLabel,
	}
}

func (s *Strip) group(wrapper string) *group {
	g, ok := s.groups[wrapper]
	if !ok {
		g = &group{}
		s.groups[wrapper] = g
	}
	return g
}

// SetItems replaces the selectors of a wrapper. The binding and the active
// mark are kept.
func (s *Strip) SetItems(wrapper string, items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.group(wrapper).items = slices.Clone(items)
}

// Items returns the selectors of a wrapper.
func (s *Strip) Items(wrapper string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.groups[wrapper]; ok {
		return slices.Clone(g.items)
	}
	return nil
}

// Bind sets the selection handler of a wrapper.
func (s *Strip) Bind(wrapper string, onSelect func(tabID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.group(wrapper).onSelect = onSelect
}

// Unbind drops the selection handler of a wrapper.
func (s *Strip) Unbind(wrapper string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.groups[wrapper]; ok {
		g.onSelect = nil
	}
}

// Bound reports whether a wrapper has a selection handler.
func (s *Strip) Bound(wrapper string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[wrapper]
	return ok && g.onSelect != nil
}

// MarkActive marks exactly one selector of a wrapper active.
func (s *Strip) MarkActive(wrapper, tabID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.group(wrapper).active = tabID
}

// Active returns the active selector of a wrapper.
func (s *Strip) Active(wrapper string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.groups[wrapper]; ok {
		return g.active
	}
	return ""
}

// Select runs the wrapper's handler for tabID. It reports false when the
// wrapper is unbound or has no such selector. The handler runs without the
// strip lock held, so it may rebind the wrapper.
func (s *Strip) Select(wrapper, tabID string) bool {
	s.mu.Lock()
	g, ok := s.groups[wrapper]
	if !ok || g.onSelect == nil || !slices.ContainsFunc(g.items, func(i Item) bool { return i.ID == tabID }) {
		s.mu.Unlock()
		return false
	}
	onSelect := g.onSelect
	s.mu.Unlock()

	onSelect(tabID)
	return true
}

// Next selects the selector after the active one, wrapping around.
func (s *Strip) Next(wrapper string) bool {
	return s.step(wrapper, 1)
}

// Prev selects the selector before the active one, wrapping around.
func (s *Strip) Prev(wrapper string) bool {
	return s.step(wrapper, -1)
}

func (s *Strip) step(wrapper string, delta int) bool {
	s.mu.Lock()
	g, ok := s.groups[wrapper]
	if !ok || len(g.items) == 0 {
		s.mu.Unlock()
		return false
	}
	i := slices.IndexFunc(g.items, func(it Item) bool { return it.ID == g.active })
	var next int
	if i < 0 {
		next = 0
		if delta < 0 {
			next = len(g.items) - 1
		}
	} else {
		next = (i + delta + len(g.items)) % len(g.items)
	}
	target := g.items[next].ID
	s.mu.Unlock()

	return s.Select(wrapper, target)
}

// View renders the selectors of a wrapper on one line no wider than width.
// A width of zero or less is unbounded.
func (s *Strip) View(wrapper string, width int) string {
	s.mu.Lock()
	g, ok := s.groups[wrapper]
	if !ok || len(g.items) == 0 {
		s.mu.Unlock()
		return ""
	}
	items := slices.Clone(g.items)
	active := g.active
	s.mu.Unlock()

	tabs := make([]string, 0, len(items))
	for _, item := range items {
		label := item.Label()
		if s.maxLabel > 0 {
			label = ansi.Truncate(label, s.maxLabel, ellipsis)
		}
		style := s.styles.TabInactive
		if item.ID == active {
			style = s.styles.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if width > 0 && ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, ellipsis)
	}
	return line
}
