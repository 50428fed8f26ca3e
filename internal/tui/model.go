// Package tui is the terminal frontend: a bubbletea program over a
// navigator.Navigator.
package tui

import (
	"context"
	"fmt"
	"path"
	"strings"

	"dirview/internal/errors"
	"dirview/internal/format"
	"dirview/internal/log"
	"dirview/internal/navigator"
	"dirview/internal/tui/common"
	"dirview/internal/tui/components"
	"dirview/internal/tui/messages"
	"dirview/internal/tui/views"
	"dirview/internal/watch"
	"dirview/pkg/types"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"
)

// Options configures a Model.
type Options struct {
	StartDir string
	Sorter   *format.Sorter
	Hidden   *format.Matcher
	Watcher  *watch.Watcher // optional; nil disables auto-refresh
}

type Model struct {
	// Core state
	ctx     context.Context
	nav     *navigator.Navigator
	sorter  *format.Sorter
	hidden  *format.Matcher
	watcher *watch.Watcher

	startDir string
	listing  *types.Listing
	err      error

	// UI state
	mode     common.Mode
	showHelp bool
	filter   textinput.Model
	pattern  *format.Matcher // names kept by the interactive filter
	keys     KeyMap
	help     help.Model
	browser  *components.FileBrowser
}

// New creates the model. Nothing is listed until Init runs.
func New(nav *navigator.Navigator, opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "glob, e.g. *.go"
	ti.Cursor.SetMode(cursor.CursorStatic)

	sorter := opts.Sorter
	if sorter == nil {
		sorter = format.NewSorterForLocale("und")
	}

	return &Model{
		ctx:      context.Background(),
		nav:      nav,
		sorter:   sorter,
		hidden:   opts.Hidden,
		watcher:  opts.Watcher,
		startDir: opts.StartDir,
		mode:     common.Normal,
		filter:   ti,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		browser:  components.NewFileBrowser(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.startDir != "" {
		cmds = append(cmds, m.navigate(messages.OpNavigate, "Listing "+m.startDir, func(ctx context.Context) (*types.Listing, error) {
			return m.nav.Navigate(ctx, m.startDir)
		}))
	} else {
		cmds = append(cmds, m.navigate(messages.OpHome, "Listing home", m.nav.GoHome))
	}
	cmds = append(cmds, m.waitForChange())
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.browser.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case messages.DirectoryChangeMsg:
		return m, m.handleDirectoryChange(msg)

	case messages.FileChangeMsg:
		if m.browser.StatusBar().Loading() {
			return m, m.waitForChange()
		}
		return m, tea.Batch(m.refresh(), m.waitForChange())

	case messages.ErrorMsg:
		m.browser.StatusBar().SetError(msg.Err.Error())
		return m, nil

	case tea.KeyMsg:
		if m.mode == common.Filter {
			return m.handleFilterKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, m.browser.Update(msg)
}

func (m *Model) handleDirectoryChange(msg messages.DirectoryChangeMsg) tea.Cmd {
	// A newer request is still in flight and will report for itself
	if errors.IsSuperseded(msg.Err) {
		return nil
	}

	status := m.browser.StatusBar()
	status.StopLoading()

	if msg.Err != nil {
		log.LogWithFields(log.F("op", msg.Op), log.F("error", msg.Err)).Debug("navigation failed")
		switch errors.KindOf(msg.Err) {
		case errors.NoHistory, errors.NoForwardHistory, errors.InvalidPath:
			status.SetError(msg.Err.Error())
		default:
			m.err = msg.Err
			status.SetText("")
		}
		return nil
	}

	m.err = nil
	m.listing = msg.Listing
	if msg.Op != messages.OpRefresh {
		m.browser.FileList().Reset()
	}
	m.rebuild()
	status.SetText(m.summary())

	if m.watcher != nil {
		if err := m.watcher.Watch(msg.Listing.Path); err != nil {
			log.LogWithFields(log.F("directory", msg.Listing.Path), log.F("error", err)).Debug("cannot watch directory")
		}
	}
	return nil
}

// rebuild recomputes the visible entries: hidden patterns, then the
// interactive filter, then display order.
func (m *Model) rebuild() {
	if m.listing == nil {
		m.browser.SetEntries(nil)
		return
	}
	entries := m.hidden.Apply(m.listing.Entries)
	entries = m.pattern.Keep(entries)
	m.browser.SetEntries(m.sorter.Sort(entries))
}

func (m *Model) summary() string {
	if m.listing == nil {
		return ""
	}
	visible := len(m.browser.FileList().Entries())
	text := english.Plural(visible, "entry", "entries")
	if hidden := m.listing.Len() - visible; hidden > 0 {
		text += fmt.Sprintf(" (%d hidden)", hidden)
	}
	if e, ok := m.browser.FileList().Current(); ok && !e.Modified.IsZero() {
		text += " · " + e.Name + " modified " + format.Relative(e.Modified)
	}
	return text
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.browser.FileList()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Up):
		list.MoveCursor(-1)
		m.browser.StatusBar().SetText(m.summary())
	case key.Matches(msg, m.keys.Down):
		list.MoveCursor(1)
		m.browser.StatusBar().SetText(m.summary())
	case key.Matches(msg, m.keys.GotoTop):
		list.Top()
	case key.Matches(msg, m.keys.GotoBottom):
		list.Bottom()
	case key.Matches(msg, m.keys.Open):
		return m, m.open()
	case key.Matches(msg, m.keys.Parent):
		return m, m.navigate(messages.OpUp, "Listing parent", m.nav.GoUp)
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(messages.OpBack, "Going back", m.nav.GoBack)
	case key.Matches(msg, m.keys.Forward):
		return m, m.navigate(messages.OpForward, "Going forward", m.nav.GoForward)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Home):
		return m, m.navigate(messages.OpHome, "Listing home", m.nav.GoHome)
	case key.Matches(msg, m.keys.Filter):
		m.mode = common.Filter
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilter()
	}
	return m, nil
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilter()
		return m, nil
	case key.Matches(msg, m.keys.ApplyFilter):
		m.mode = common.Normal
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

// applyFilter keeps only names matching the glob. Text without glob
// metacharacters matches as a substring.
func (m *Model) applyFilter(text string) {
	if text == "" {
		m.pattern = nil
		m.rebuild()
		return
	}
	if !strings.ContainsAny(text, "*?[{") {
		text = "*" + text + "*"
	}

	include, err := format.NewMatcher([]string{text})
	if err != nil {
		// Keep the previous filter while the pattern is incomplete
		return
	}
	m.pattern = include
	m.rebuild()
	m.browser.StatusBar().SetText(m.summary())
}

func (m *Model) clearFilter() {
	m.mode = common.Normal
	m.filter.Blur()
	m.filter.SetValue("")
	m.pattern = nil
	m.rebuild()
	m.browser.StatusBar().SetText(m.summary())
}

// open enters the entry under the cursor. Symlinks are followed by the tool;
// plain files are not opened.
func (m *Model) open() tea.Cmd {
	e, ok := m.browser.FileList().Current()
	if !ok || m.listing == nil || e.Kind == types.KindFile {
		return nil
	}
	target := path.Join(m.listing.Path, e.Name)
	return m.navigate(messages.OpNavigate, "Listing "+target, func(ctx context.Context) (*types.Listing, error) {
		return m.nav.Navigate(ctx, target)
	})
}

func (m *Model) refresh() tea.Cmd {
	return m.navigate(messages.OpRefresh, "Refreshing", m.nav.Refresh)
}

// navigate runs fn off the UI goroutine and reports through a
// DirectoryChangeMsg.
func (m *Model) navigate(op messages.Op, text string, fn func(context.Context) (*types.Listing, error)) tea.Cmd {
	ctx := m.ctx
	run := func() tea.Msg {
		listing, err := fn(ctx)
		return messages.DirectoryChangeMsg{Op: op, Listing: listing, Err: err}
	}
	return tea.Batch(m.browser.StatusBar().StartLoading(text), run)
}

// waitForChange delivers the next watcher change as a FileChangeMsg.
func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return messages.FileChangeMsg{Change: change}
	}
}

// Getters

func (m *Model) CurrentDir() string {
	return m.nav.CurrentPath()
}

func (m *Model) Err() error {
	return m.err
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Entries() []types.Entry {
	return m.browser.FileList().Entries()
}

func (m *Model) Cursor() int {
	return m.browser.FileList().Cursor()
}

func (m *Model) Status() string {
	return m.browser.StatusBar().Text()
}

func (m *Model) BrowserView() string {
	return m.browser.View()
}

func (m *Model) FilterView() string {
	return m.filter.View()
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}
