package shortcuts

import (
	"testing"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type activeSet map[string]bool

func (a activeSet) IsActive(ns string) bool { return a[ns] }

func ctrl(r tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: r} }

func TestKeybinder_HandleOnlyActive(t *testing.T) {
	active := activeSet{}
	kb := New(active, nil)

	fired := ""
	kb.Bind("panel/general", []component.Shortcut{
		{ID: "open", Keys: []string{"ctrl+g"}, Handler: func() { fired = "general" }},
	})
	kb.Bind("panel/history", []component.Shortcut{
		{ID: "open", Keys: []string{"ctrl+g"}, Handler: func() { fired = "history" }},
	})

	if kb.Handle(ctrl(tea.KeyCtrlG)) {
		t.Fatal("no namespace is active, nothing should fire")
	}

	active["panel/history"] = true
	if !kb.Handle(ctrl(tea.KeyCtrlG)) || fired != "history" {
		t.Errorf("fired = %q, want history", fired)
	}

	active["panel/general"] = true
	if !kb.Handle(ctrl(tea.KeyCtrlG)) || fired != "general" {
		t.Errorf("first bound active shortcut should win, fired = %q", fired)
	}

	if kb.Handle(ctrl(tea.KeyCtrlH)) {
		t.Error("unbound key should not fire")
	}
}

func TestKeybinder_BindReplacesAndSkips(t *testing.T) {
	active := activeSet{"p": true}
	kb := New(active, nil)

	kb.Bind("p", []component.Shortcut{
		{ID: "a", Keys: []string{"f2"}, Handler: func() {}},
		{ID: "b", Keys: []string{"f3"}, Handler: func() {}},
	})
	kb.Bind("p", []component.Shortcut{
		{ID: "c", Keys: []string{"f4"}, Handler: func() {}},
		{ID: "no-keys", Handler: func() {}},
		{ID: "no-handler", Keys: []string{"f5"}},
	})

	if got := len(kb.Bindings()); got != 1 {
		t.Errorf("Bindings() has %d entries, want 1", got)
	}
	if kb.Handle(tea.KeyMsg{Type: tea.KeyF2}) {
		t.Error("replaced shortcut should not fire")
	}

	kb.Unbind("p")
	if len(kb.Bindings()) != 0 {
		t.Error("Unbind should drop every shortcut of the namespace")
	}
}

func TestKeybinder_HelpKeyMap(t *testing.T) {
	active := activeSet{"a": true, "b": true}
	kb := New(active, nil)
	kb.Bind("a", []component.Shortcut{
		{ID: "one", Keys: []string{"f1"}, Help: "first", Handler: func() {}},
		{ID: "two", Keys: []string{"f2"}, Handler: func() {}},
	})
	kb.Bind("b", []component.Shortcut{
		{ID: "three", Keys: []string{"f3"}, Handler: func() {}},
	})
	kb.Bind("c", []component.Shortcut{
		{ID: "four", Keys: []string{"f4"}, Handler: func() {}},
	})

	var keyMap help.KeyMap = kb

	if got := len(keyMap.ShortHelp()); got != 3 {
		t.Errorf("ShortHelp() has %d bindings, want 3", got)
	}
	columns := keyMap.FullHelp()
	if len(columns) != 2 || len(columns[0]) != 2 || len(columns[1]) != 1 {
		t.Fatalf("FullHelp() shape = %v", columns)
	}
	if h := columns[0][0].Help(); h.Key != "f1" || h.Desc != "first" {
		t.Errorf("help = %+v", h)
	}
	if h := columns[0][1].Help(); h.Desc != "two" {
		t.Errorf("help without text should fall back to the id, got %q", h.Desc)
	}
}
