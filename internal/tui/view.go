package tui

import (
	"strings"

	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	SidebarWidth    = 28
	SidebarMinWidth = 16
)

// Titled is implemented by definitions with a display title.
type Titled interface {
	Title() string
}

// Bodied is implemented by definitions that render the content of their
// current tab.
type Bodied interface {
	Body() string
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.styles.Title.Render("panelkit")
	sidebar := m.renderSidebar()
	content := m.renderContent()
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", content)

	sections := []string{header, main, m.renderStatus()}
	if m.commandMode {
		sections = append(sections, m.prompt.View())
	}
	if m.showHelp {
		sections = append(sections, m.help.View(helpKeys{global: m.keys, shortcuts: m.host.Keys()}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) sidebarWidth() int {
	if m.width <= 0 {
		return SidebarWidth
	}
	return max(SidebarMinWidth, min(SidebarWidth, m.width/3))
}

// renderSidebar lists every mounted panel with its open state.
func (m Model) renderSidebar() string {
	comps := m.host.Components()
	if len(comps) == 0 {
		return m.styles.Muted.Render("no panels mounted")
	}

	focused := m.Focused()
	var b strings.Builder
	for i, c := range comps {
		marker, style := "○", m.styles.PanelClosed
		if c.IsOpen() {
			marker, style = "●", m.styles.PanelOpen
		}
		cursor := "  "
		if c == focused {
			cursor, style = "▸ ", m.styles.PanelFocused
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		label := util.Truncate(title(c), m.sidebarWidth()-4)
		b.WriteString(style.Render(cursor + marker + " " + label))
	}
	return lipgloss.NewStyle().Width(m.sidebarWidth()).Render(b.String())
}

// renderContent draws the focused panel's tab strip and body.
func (m Model) renderContent() string {
	c := m.Focused()
	if c == nil {
		return ""
	}

	width := 0
	if m.width > 0 {
		width = max(m.width-m.sidebarWidth()-5, 10)
	}

	lines := []string{m.styles.Subtitle.Render(c.Namespace())}
	if !c.IsOpen() {
		lines = append(lines, m.styles.Muted.Render("closed, press enter to open"))
		return m.box(width, lines)
	}

	if strip := m.host.Strip().View(c.TabsWrapper(), width); strip != "" {
		lines = append(lines, strip)
	}
	if b, ok := c.Definition().(Bodied); ok {
		if body := b.Body(); body != "" {
			lines = append(lines, body)
		}
	}
	return m.box(width, lines)
}

func (m Model) box(width int, lines []string) string {
	style := m.styles.ContentBox
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderStatus() string {
	text := m.status
	style := m.styles.StatusBar
	if m.statusErr {
		style = style.Foreground(m.styles.Palette.Error)
	}
	if text == "" {
		text = m.activity.last()
	}
	text = util.SingleLine(text)
	if m.width > 0 {
		text = util.Truncate(text, m.width-2)
		style = style.Width(m.width)
	}
	return style.Render(text)
}

func title(c *component.Component) string {
	if t, ok := c.Definition().(Titled); ok && t.Title() != "" {
		return t.Title()
	}
	return c.Namespace()
}
