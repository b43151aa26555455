package styles

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// Tab styles
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Panel list in the sidebar
	PanelOpen    lipgloss.Style
	PanelClosed  lipgloss.Style
	PanelFocused lipgloss.Style

	ContentBox lipgloss.Style
	StatusBar  lipgloss.Style
	Prompt     lipgloss.Style
}

// New derives Styles from a palette. A nil palette uses the default.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Success: lipgloss.NewStyle().Foreground(p.Secondary),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),

		PanelOpen: lipgloss.NewStyle().
			Foreground(p.Secondary),
		PanelClosed: lipgloss.NewStyle().
			Foreground(p.Muted),
		PanelFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		ContentBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
	}
}
