package components

import (
	"fmt"
	"strings"

	"dirview/internal/format"
	"dirview/internal/tui/styles"
	"dirview/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// EmptyText is shown for a directory with no visible entries.
const EmptyText = "This directory is empty"

// FileList renders entries with a cursor, scrolling to keep it visible.
type FileList struct {
	entries []types.Entry
	cursor  int
	offset  int
	height  int
}

func NewFileList() *FileList {
	return &FileList{height: 20}
}

// SetEntries replaces the entries. The cursor is kept when it still fits.
func (fl *FileList) SetEntries(entries []types.Entry) {
	fl.entries = entries
	fl.clamp()
}

// Reset moves the cursor back to the first entry.
func (fl *FileList) Reset() {
	fl.cursor = 0
	fl.offset = 0
}

func (fl *FileList) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	fl.height = height
	fl.clamp()
}

func (fl *FileList) MoveCursor(delta int) {
	fl.cursor += delta
	fl.clamp()
}

func (fl *FileList) Top() {
	fl.cursor = 0
	fl.clamp()
}

func (fl *FileList) Bottom() {
	fl.cursor = len(fl.entries) - 1
	fl.clamp()
}

func (fl *FileList) clamp() {
	if fl.cursor >= len(fl.entries) {
		fl.cursor = len(fl.entries) - 1
	}
	if fl.cursor < 0 {
		fl.cursor = 0
	}
	if fl.cursor < fl.offset {
		fl.offset = fl.cursor
	}
	if fl.cursor >= fl.offset+fl.height {
		fl.offset = fl.cursor - fl.height + 1
	}
	if fl.offset < 0 {
		fl.offset = 0
	}
}

func (fl *FileList) Cursor() int {
	return fl.cursor
}

func (fl *FileList) Entries() []types.Entry {
	return fl.entries
}

// Current returns the entry under the cursor.
func (fl *FileList) Current() (types.Entry, bool) {
	if fl.cursor >= 0 && fl.cursor < len(fl.entries) {
		return fl.entries[fl.cursor], true
	}
	return types.Entry{}, false
}

func (fl *FileList) View() string {
	if len(fl.entries) == 0 {
		return styles.Theme.Empty.Render(EmptyText) + "\n"
	}

	nameWidth := 0
	for _, e := range fl.entries {
		nameWidth = max(nameWidth, lipgloss.Width(e.Name))
	}
	nameWidth = min(nameWidth, 48)

	var s strings.Builder
	end := min(fl.offset+fl.height, len(fl.entries))
	for i := fl.offset; i < end; i++ {
		e := fl.entries[i]

		cursor := " "
		style := nameStyle(e.Kind)
		if i == fl.cursor {
			cursor = ">"
			style = styles.Theme.Selected
		}

		name := e.Name
		if pad := nameWidth - lipgloss.Width(name); pad > 0 {
			name += strings.Repeat(" ", pad)
		}

		fmt.Fprintf(&s, "%s %s %s %9s  %s\n",
			cursor,
			format.Icon(e.Kind),
			style.Render(name),
			format.SizeColumn(e),
			format.Timestamp(e))
	}

	return s.String()
}

func nameStyle(kind types.Kind) lipgloss.Style {
	switch kind {
	case types.KindDirectory:
		return styles.Theme.Directory
	case types.KindSymlink:
		return styles.Theme.Symlink
	}
	return styles.Theme.Unselected
}
