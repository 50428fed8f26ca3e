package components

import (
	"dirview/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type StatusBar struct {
	text    string
	isError bool
	spinner spinner.Model
	loading bool
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Help

	return &StatusBar{
		spinner: s,
	}
}

// StartLoading shows the spinner with text and returns the tick that
// animates it.
func (s *StatusBar) StartLoading(text string) tea.Cmd {
	s.text = text
	s.isError = false
	wasLoading := s.loading
	s.loading = true
	if wasLoading {
		return nil
	}
	return s.spinner.Tick
}

func (s *StatusBar) StopLoading() {
	s.loading = false
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

// SetError shows text in the error style.
func (s *StatusBar) SetError(text string) {
	s.text = text
	s.isError = true
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	if s.text == "" && !s.loading {
		return ""
	}

	if s.loading {
		return styles.Theme.Help.Render(s.spinner.View() + " " + s.text)
	}
	if s.isError {
		return styles.Theme.Error.Render(s.text)
	}
	return styles.Theme.Help.Render(s.text)
}
