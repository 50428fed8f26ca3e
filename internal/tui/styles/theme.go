package styles

import (
	"dirview/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the active styles. It starts with the default palette and is
// replaced by Apply when a configuration is loaded.
var Theme = New(config.New().Theme)

// New builds styles from the configured theme colors.
func New(theme config.ThemeColors) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),
		Path: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Info)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Emphasis)).
			Bold(true),
		Unselected: lipgloss.NewStyle(),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Info)).
			Bold(true),
		Symlink: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Border)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),
	}
}

// Apply replaces the active styles and the box border color.
func Apply(theme config.ThemeColors) {
	Theme = New(theme)
	BoxStyle = BoxStyle.BorderForeground(lipgloss.Color(theme.Border))
}
