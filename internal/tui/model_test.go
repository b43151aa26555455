package tui

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/definition"
	"github.com/Iron-Ham/panelkit/internal/host"
	"github.com/Iron-Ham/panelkit/internal/panels"
	tea "github.com/charmbracelet/bubbletea"
)

const notesYAML = `
namespace: panel/notes
title: Notes
tabs:
  - id: inbox
    content: nothing new
  - id: archive
`

func newTestModel(t *testing.T) (Model, *host.Host) {
	t.Helper()
	h := host.New(host.Options{})
	t.Cleanup(h.Shutdown)

	if _, err := h.Mount(panels.NewGeneral(h, panels.Info{Theme: "default"}, nil)); err != nil {
		t.Fatalf("Mount(general) error = %v", err)
	}
	spec, err := definition.Parse([]byte(notesYAML), "notes.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := h.Mount(definition.Build(spec, h, nil)); err != nil {
		t.Fatalf("Mount(notes) error = %v", err)
	}

	m := NewModel(h, Options{ShowHelp: true})
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 30}), h
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mustComponent(t *testing.T, h *host.Host, ns string) *component.Component {
	t.Helper()
	c, ok := h.Component(ns)
	if !ok {
		t.Fatalf("component %q not mounted", ns)
	}
	return c
}

func TestModel_FocusCycles(t *testing.T) {
	m, _ := newTestModel(t)

	want := []string{"panel/notes", panels.GeneralNamespace, "panel/notes"}
	for _, ns := range want {
		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.Focused().Namespace(); got != ns {
			t.Fatalf("Focused() = %q, want %q", got, ns)
		}
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.Focused().Namespace(); got != panels.GeneralNamespace {
		t.Errorf("after shift+tab Focused() = %q", got)
	}
}

func TestModel_OpenCloseFocused(t *testing.T) {
	m, h := newTestModel(t)
	general := mustComponent(t, h, panels.GeneralNamespace)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !general.IsOpen() {
		t.Fatal("enter should open the focused panel")
	}
	if m.Status() != "opened panel/general" {
		t.Errorf("Status() = %q", m.Status())
	}
	if general.CurrentTab() != panels.TabSettings {
		t.Errorf("CurrentTab() = %q, want the default route's tab", general.CurrentTab())
	}

	m = send(m, keyRunes(":"))
	m = send(m, keyRunes("panel/general/lock"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.Status(), "unavailable") {
		t.Errorf("vetoed open Status() = %q", m.Status())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if general.IsOpen() {
		t.Error("esc should close the focused panel")
	}
	if m.Status() != "closed panel/general" {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestModel_TabKeys(t *testing.T) {
	m, h := newTestModel(t)
	general := mustComponent(t, h, panels.GeneralNamespace)

	// Closed panels ignore tab navigation.
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if general.CurrentTab() != "" {
		t.Fatalf("CurrentTab() = %q on a closed panel", general.CurrentTab())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	tests := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyRight, panels.TabStyle},
		{tea.KeyRight, panels.TabAdvanced},
		{tea.KeyRight, panels.TabSettings},
		{tea.KeyLeft, panels.TabAdvanced},
	}
	for _, tt := range tests {
		m = send(m, tea.KeyMsg{Type: tt.key})
		if got := general.CurrentTab(); got != tt.want {
			t.Fatalf("CurrentTab() = %q, want %q", got, tt.want)
		}
	}
	if got, _ := h.Router().Current("panel"); got != "panel/general/advanced" {
		t.Errorf("current route = %q", got)
	}
}

func TestModel_ComponentShortcutFirst(t *testing.T) {
	m, h := newTestModel(t)
	general := mustComponent(t, h, panels.GeneralNamespace)

	// Inactive components do not receive their shortcuts.
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if general.CurrentTab() != "" {
		t.Fatalf("shortcut fired while inactive")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if general.CurrentTab() != panels.TabStyle {
		t.Errorf("CurrentTab() = %q, want %q", general.CurrentTab(), panels.TabStyle)
	}
}

func TestModel_CommandPrompt(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantStatus string
		wantErr    bool
	}{
		{"runs command", "panel/general/lock", "panel/general/lock: true", false},
		{"passes args", "panel/general/open tab=advanced", "panel/general/open: true", false},
		{"unknown command", "panel/general/lokc", "did you mean", true},
		{"bad args", "panel/general/open tab", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)

			m = send(m, keyRunes(":"))
			if !m.CommandMode() {
				t.Fatal("':' should open the prompt")
			}
			m = send(m, keyRunes(tt.line))
			m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

			if m.CommandMode() {
				t.Error("enter should close the prompt")
			}
			if m.statusErr != tt.wantErr {
				t.Errorf("statusErr = %v, want %v (status %q)", m.statusErr, tt.wantErr, m.Status())
			}
			if !strings.Contains(m.Status(), tt.wantStatus) {
				t.Errorf("Status() = %q, want it to contain %q", m.Status(), tt.wantStatus)
			}
		})
	}
}

func TestModel_CommandPromptEscape(t *testing.T) {
	m, h := newTestModel(t)

	m = send(m, keyRunes(":"))
	m = send(m, keyRunes("panel/general/open"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.CommandMode() {
		t.Error("esc should close the prompt")
	}
	if mustComponent(t, h, panels.GeneralNamespace).IsOpen() {
		t.Error("esc should not run the command")
	}

	m = send(m, keyRunes(":"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Status() != "" {
		t.Errorf("empty line Status() = %q", m.Status())
	}
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	for _, want := range []string{"General", "Notes", "closed, press enter to open"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	for _, want := range []string{"inbox", "archive", "nothing new"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() of open panel missing %q", want)
		}
	}

	m = send(m, keyRunes("q"))
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModel_Activity(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	lines := m.Activity()
	if len(lines) == 0 {
		t.Fatal("Activity() is empty after opening a panel")
	}
	found := false
	for _, l := range lines {
		if l == "route panel/general/settings" {
			found = true
		}
	}
	if !found {
		t.Errorf("Activity() = %v, want the route change", lines)
	}
}

func TestModel_ConfigMsg(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, ConfigMsg{ShowHelp: false})
	if m.showHelp {
		t.Error("ConfigMsg should apply ShowHelp")
	}
	if m.Status() != "configuration reloaded" {
		t.Errorf("Status() = %q", m.Status())
	}
}
