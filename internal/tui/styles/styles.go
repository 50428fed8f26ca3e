package styles

import "github.com/charmbracelet/lipgloss"

// Styles defines the core UI styles
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Path       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Directory  lipgloss.Style
	Symlink    lipgloss.Style
	Error      lipgloss.Style
	Empty      lipgloss.Style
	Help       lipgloss.Style
}

// BoxStyle frames the quick start guide
var BoxStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7B61FF"))
