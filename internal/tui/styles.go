package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = "86"
	colorMuted   = "241"
	colorSuccess = "42"
	colorWarning = "214"
	colorDanger  = "196"
)

// Styles contains all styles for the tracker TUI.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Validation lipgloss.Style
	Loading    lipgloss.Style
	Up         lipgloss.Style
	Down       lipgloss.Style
	Heading    lipgloss.Style
	Banner     lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
		Validation: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)),
		Up: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),
		Down: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)),
		Heading: lipgloss.NewStyle().
			Bold(true),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorDanger)).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
	}
}
