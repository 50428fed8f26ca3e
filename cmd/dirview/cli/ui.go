// Package cli holds the terminal output helpers shared by the dirview
// commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"dirview/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// CurrentTheme is the active color set, starting with the default theme.
var CurrentTheme = config.New().Theme

// UseTheme makes theme the current theme.
func UseTheme(theme config.ThemeColors) {
	CurrentTheme = theme
}

func color(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintln(w, color(CurrentTheme.Success).Render("✓ "+message))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, color(CurrentTheme.Error).Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, color(CurrentTheme.Warning).Render("! "+message))
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintln(w, color(CurrentTheme.Info).Render("ℹ "+message))
}

// PrintHeader prints a section header
func PrintHeader(w io.Writer, message string) {
	fmt.Fprintln(w, color(CurrentTheme.Primary).Bold(true).Render(message))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(message)))
}

// DrawBox draws a rounded box around content in the theme's border color.
func DrawBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Padding(0, 1).
		Render(content)
}

// Highlight renders s in the emphasis color.
func Highlight(s string) string {
	return color(CurrentTheme.Emphasis).Render(s)
}

// Logo returns the banner shown above the root help.
func Logo() string {
	logo := `
     _ _           _
  __| (_)_ ____   _(_) _____      __
 / _' | | '__\ \ / / |/ _ \ \ /\ / /
| (_| | | |   \ V /| |  __/\ V  V /
 \__,_|_|_|    \_/ |_|\___| \_/\_/
`
	return color(CurrentTheme.Primary).Render(logo)
}
