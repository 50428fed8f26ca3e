package tui

import (
	"fmt"
	"io"

	"dirview/internal/config"
	"dirview/internal/format"
	"dirview/internal/lister"
	"dirview/internal/log"
	"dirview/internal/navigator"
	"dirview/internal/tui/styles"
	"dirview/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal browser at startDir (home when empty) and blocks
// until the user quits.
func Run(cfg *config.Config, startDir string) error {
	// Log lines written to stderr would corrupt the alternate screen
	if cfg.Browser.LogFile != "" {
		closer, err := log.ToFile(cfg.Browser.LogFile)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	styles.Apply(cfg.Theme)

	hidden, err := format.NewMatcher(cfg.Browser.HidePatterns)
	if err != nil {
		return err
	}

	opts := Options{
		StartDir: startDir,
		Sorter:   format.NewSorterForLocale(cfg.Browser.Locale),
		Hidden:   hidden,
	}

	if cfg.Browser.Watch {
		w, err := watch.New(watch.DefaultDebounce)
		if err != nil {
			log.Warnf("auto-refresh disabled: %v", err)
		} else if err := w.Start(); err != nil {
			w.Stop()
			log.Warnf("auto-refresh disabled: %v", err)
		} else {
			defer w.Stop()
			opts.Watcher = w
		}
	}

	nav := navigator.New(lister.NewFromConfig(cfg))
	p := tea.NewProgram(New(nav, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
