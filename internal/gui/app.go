//go:build !nogui
// +build !nogui

// Package gui is the desktop frontend built on fyne.
package gui

import (
	"context"
	"fmt"
	"path"
	"sync"

	"dirview/internal/config"
	"dirview/internal/errors"
	"dirview/internal/format"
	"dirview/internal/lister"
	"dirview/internal/log"
	"dirview/internal/navigator"
	"dirview/internal/watch"
	"dirview/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize/english"
)

// EmptyText is shown for a directory with no visible entries.
const EmptyText = "This directory is empty"

// Ensure App implements the Interface
var _ Interface = (*App)(nil)

// App is the GUI application. One App is created per process and run once.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	nav        *navigator.Navigator
	sorter     *format.Sorter
	hidden     *format.Matcher
	auto       *watch.AutoRefresh

	// dispatch runs navigation work off the UI goroutine
	dispatch func(func())

	// Widgets
	pathEntry     *widget.Entry
	list          *widget.List
	errorLabel    *widget.Label
	emptyLabel    *widget.Label
	statusLabel   *widget.Label
	backButton    *widget.Button
	forwardButton *widget.Button
	upButton      *widget.Button
	refreshButton *widget.Button
	homeButton    *widget.Button

	// Entries on display, written from navigation goroutines
	mu      sync.RWMutex
	entries []types.Entry
}

// NewApp creates the application with its own fyne app instance.
func NewApp(cfg *config.Config) (*App, error) {
	nav := navigator.New(lister.NewFromConfig(cfg))
	return newApp(app.NewWithID("io.github.dirview"), cfg, nav)
}

func newApp(fyneApp fyne.App, cfg *config.Config, nav *navigator.Navigator) (*App, error) {
	hidden, err := format.NewMatcher(cfg.Browser.HidePatterns)
	if err != nil {
		return nil, err
	}

	a := &App{
		fyneApp:  fyneApp,
		cfg:      cfg,
		nav:      nav,
		sorter:   format.NewSorterForLocale(cfg.Browser.Locale),
		hidden:   hidden,
		dispatch: func(f func()) { go f() },
	}
	a.mainWindow = fyneApp.NewWindow("dirview")

	if cfg.Browser.Watch {
		auto, err := watch.NewAutoRefresh(nav, watch.DefaultDebounce)
		if err != nil {
			log.Warnf("auto-refresh disabled: %v", err)
		} else {
			auto.SetCallback(a.show)
			a.auto = auto
		}
	}

	a.setupMainWindow()
	return a, nil
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run lists startDir (home when empty), shows the window and blocks until it
// is closed.
func (a *App) Run(startDir string) error {
	a.Open(startDir)

	if a.auto != nil {
		if err := a.auto.Start(); err != nil {
			log.Warnf("auto-refresh disabled: %v", err)
		}
		defer a.auto.Stop()
	}

	a.mainWindow.ShowAndRun()
	return nil
}

// Open starts the first navigation.
func (a *App) Open(startDir string) {
	if startDir == "" {
		a.do(a.nav.GoHome)
		return
	}
	a.navigateTo(startDir)
}

// setupMainWindow builds the toolbar, the path entry and the listing.
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(900, 700))

	a.backButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { a.do(a.nav.GoBack) })
	a.forwardButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { a.do(a.nav.GoForward) })
	a.upButton = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { a.do(a.nav.GoUp) })
	a.refreshButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() { a.do(a.nav.Refresh) })
	a.homeButton = widget.NewButtonWithIcon("", theme.HomeIcon(), func() { a.do(a.nav.GoHome) })
	helpButton := widget.NewButtonWithIcon("", theme.HelpIcon(), func() {
		a.ShowInfo("Double-check the path above and press Enter to jump to it.\n" +
			"Select a folder to open it. Back, Forward and Up walk the history.")
	})

	a.pathEntry = widget.NewEntry()
	a.pathEntry.SetPlaceHolder("Path")
	a.pathEntry.OnSubmitted = a.navigateTo

	a.list = widget.NewList(
		func() int {
			a.mu.RLock()
			defer a.mu.RUnlock()
			return len(a.entries)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel("📄"),
				widget.NewLabel("Template file name"),
				layout.NewSpacer(),
				widget.NewLabel("1023.9 KB"),
				widget.NewLabel("2006-01-02 15:04"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			e, ok := a.entryAt(id)
			if !ok {
				return
			}
			row := obj.(*fyne.Container).Objects
			row[0].(*widget.Label).SetText(format.Icon(e.Kind))
			row[1].(*widget.Label).SetText(e.Name)
			row[3].(*widget.Label).SetText(format.SizeColumn(e))
			row[4].(*widget.Label).SetText(format.Timestamp(e))
		},
	)
	a.list.OnSelected = func(id widget.ListItemID) {
		a.list.Unselect(id)
		a.openEntry(id)
	}

	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Importance = widget.DangerImportance
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Hide()

	a.emptyLabel = widget.NewLabelWithStyle(EmptyText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	a.emptyLabel.Hide()

	a.statusLabel = widget.NewLabel("")

	toolbar := container.NewHBox(
		a.backButton,
		a.forwardButton,
		a.upButton,
		a.refreshButton,
		a.homeButton,
		layout.NewSpacer(),
		helpButton,
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, a.pathEntry),
		a.statusLabel,
		nil,
		nil,
		container.NewStack(a.list, a.errorLabel, a.emptyLabel),
	)
	a.mainWindow.SetContent(content)
	a.updateButtons()
}

func (a *App) entryAt(id widget.ListItemID) (types.Entry, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if id < 0 || id >= len(a.entries) {
		return types.Entry{}, false
	}
	return a.entries[id], true
}

// openEntry enters the selected directory or symlink. Files are ignored.
func (a *App) openEntry(id widget.ListItemID) {
	e, ok := a.entryAt(id)
	if !ok || e.Kind == types.KindFile {
		return
	}
	current := a.nav.CurrentPath()
	if current == "" {
		return
	}
	a.navigateTo(path.Join(current, e.Name))
}

func (a *App) navigateTo(dir string) {
	a.do(func(ctx context.Context) (*types.Listing, error) {
		return a.nav.Navigate(ctx, dir)
	})
}

// do runs one navigation through dispatch and shows its result.
func (a *App) do(fn func(context.Context) (*types.Listing, error)) {
	a.statusLabel.SetText("Loading…")
	a.dispatch(func() {
		a.show(fn(context.Background()))
	})
}

// show renders a navigation result. Listing failures replace the listing;
// history errors only reach the status line.
func (a *App) show(listing *types.Listing, err error) {
	if errors.IsSuperseded(err) {
		return
	}
	defer a.updateButtons()

	if err != nil {
		log.LogWithFields(log.F("error", err)).Debug("navigation failed")
		switch errors.KindOf(err) {
		case errors.NoHistory, errors.NoForwardHistory, errors.InvalidPath:
			a.statusLabel.SetText(err.Error())
		default:
			a.errorLabel.SetText("Error: " + err.Error())
			a.errorLabel.Show()
			a.list.Hide()
			a.emptyLabel.Hide()
			a.statusLabel.SetText("")
		}
		return
	}

	entries := a.sorter.Sort(a.hidden.Apply(listing.Entries))
	a.mu.Lock()
	a.entries = entries
	a.mu.Unlock()

	a.errorLabel.Hide()
	a.pathEntry.SetText(listing.Path)
	a.list.UnselectAll()
	a.list.Refresh()
	if len(entries) == 0 {
		a.list.Hide()
		a.emptyLabel.Show()
	} else {
		a.emptyLabel.Hide()
		a.list.Show()
		a.list.ScrollToTop()
	}

	status := english.Plural(len(entries), "entry", "entries")
	if hidden := listing.Len() - len(entries); hidden > 0 {
		status += fmt.Sprintf(" (%d hidden)", hidden)
	}
	a.statusLabel.SetText(status)

	if a.auto != nil {
		if err := a.auto.Track(listing.Path); err != nil {
			log.LogWithFields(log.F("directory", listing.Path), log.F("error", err)).Debug("cannot watch directory")
		}
	}
}

func (a *App) updateButtons() {
	state := a.nav.State()
	enable(a.backButton, state.CanGoBack())
	enable(a.forwardButton, state.CanGoForward())
	hasCurrent := state.CurrentPath != ""
	enable(a.upButton, hasCurrent)
	enable(a.refreshButton, hasCurrent)
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// Entries returns the entries on display.
func (a *App) Entries() []types.Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]types.Entry(nil), a.entries...)
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithFields(log.F("title", title), log.F("error", err)).Error("gui error")
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("dirview", message, a.mainWindow)
}

// Run creates the process-wide GUI application and blocks until its window
// is closed.
func Run(cfg *config.Config, startDir string) error {
	a, err := NewApp(cfg)
	if err != nil {
		return err
	}
	return a.Run(startDir)
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
