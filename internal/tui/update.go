package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfigMsg applies reloaded UI settings.
type ConfigMsg struct {
	Styles   *styles.Styles
	ShowHelp bool
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-4, 10)
		m.ready = true
		return m, nil

	case ConfigMsg:
		if msg.Styles != nil {
			m.styles = msg.Styles
			m.prompt.PromptStyle = msg.Styles.Prompt
		}
		m.showHelp = msg.ShowHelp
		m.setStatus("configuration reloaded")
		return m, nil

	case tea.KeyMsg:
		if m.commandMode {
			return m.handleCommandInput(msg)
		}
		return m.handleNormalMode(msg)
	}

	return m, nil
}

// handleNormalMode routes a key to component shortcuts first, then to the
// global bindings.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.host.Keys().Handle(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.detach()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Command):
		m.commandMode = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextPanel):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		c := m.Focused()
		if c == nil || !c.IsOpen() {
			return m, nil
		}
		strip := m.host.Strip()
		if key.Matches(msg, m.keys.NextTab) {
			strip.Next(c.TabsWrapper())
		} else {
			strip.Prev(c.TabsWrapper())
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		c := m.Focused()
		if c == nil {
			return m, nil
		}
		opened, err := m.host.Open(c.Namespace())
		switch {
		case err != nil:
			m.setError(err)
		case !opened:
			m.setStatus("%s is unavailable", c.Namespace())
		default:
			m.setStatus("opened %s", c.Namespace())
		}
		return m, nil

	case key.Matches(msg, m.keys.Close):
		c := m.Focused()
		if c == nil {
			return m, nil
		}
		closed, err := m.host.Close(c.Namespace())
		switch {
		case err != nil:
			m.setError(err)
		case closed:
			m.setStatus("closed %s", c.Namespace())
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) {
	n := len(m.host.Components())
	if n == 0 {
		return
	}
	m.focused = (m.focused + delta + n) % n
}

// handleCommandInput handles keystrokes when in command mode (after pressing ':')
func (m Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandMode = false
		m.prompt.Blur()
		return m, nil

	case tea.KeyEnter:
		m.commandMode = false
		m.prompt.Blur()
		line := m.prompt.Value()
		m.prompt.SetValue("")
		return m.executeCommand(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// executeCommand runs a command line through the host's dispatcher.
func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	name, args, err := commands.SplitLine(line)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	result, err := m.host.Run(name, args)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if result != nil {
		m.setStatus("%s: %s", name, fmt.Sprint(result))
	} else {
		m.setStatus("%s: ok", name)
	}
	return m, nil
}

var _ tea.Model = Model{}
