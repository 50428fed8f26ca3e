package views

import (
	"strings"

	"dirview/internal/tui/common"
	"dirview/internal/tui/styles"
)

// RenderMainView renders the whole screen: title, path, the listing or the
// last error in its place, the filter prompt and help.
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render("dirview"))
	sb.WriteString("  ")
	dir := m.CurrentDir()
	if dir == "" {
		dir = "(no directory)"
	}
	sb.WriteString(styles.Theme.Path.Render(dir))
	sb.WriteString("\n\n")

	if err := m.Err(); err != nil {
		sb.WriteString(RenderError(err))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.BrowserView())
	}

	if m.Mode() == common.Filter {
		sb.WriteString("\n" + m.FilterView())
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + m.HelpView())

	return styles.Theme.App.Render(sb.String())
}

// RenderError renders a listing failure in place of the listing.
func RenderError(err error) string {
	return styles.Theme.Error.Render("Error: "+err.Error()) + "\n" +
		styles.Theme.Help.Render("Press r to retry or b to go back.")
}

func RenderHelp() string {
	return styles.BoxStyle.Render(styles.Theme.Help.Render(`Quick Start Guide:
  Move with j/k, open a directory with enter, go to the parent with h.
  b and f walk the history, r lists the directory again, ~ goes home.
  / filters the visible names with a glob such as *.go, esc clears it.`))
}
