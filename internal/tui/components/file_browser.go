package components

import (
	"dirview/internal/tui/styles"
	"dirview/pkg/types"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// FileBrowser frames the file list in a viewport above the status bar.
type FileBrowser struct {
	viewport  viewport.Model
	fileList  *FileList
	statusBar *StatusBar
	height    int
	width     int
}

func NewFileBrowser() *FileBrowser {
	vp := viewport.New(80, 20)
	vp.Style = styles.Theme.App

	return &FileBrowser{
		viewport:  vp,
		fileList:  NewFileList(),
		statusBar: NewStatusBar(),
		width:     80,
		height:    22,
	}
}

func (fb *FileBrowser) SetSize(width, height int) {
	fb.width = width
	fb.height = height
	fb.viewport.Width = width
	fb.viewport.Height = max(height-2, 1) // Leave room for status bar
	fb.fileList.SetHeight(fb.viewport.Height)
}

func (fb *FileBrowser) FileList() *FileList {
	return fb.fileList
}

func (fb *FileBrowser) StatusBar() *StatusBar {
	return fb.statusBar
}

// SetEntries shows a new set of entries.
func (fb *FileBrowser) SetEntries(entries []types.Entry) {
	fb.fileList.SetEntries(entries)
}

func (fb *FileBrowser) Update(msg tea.Msg) tea.Cmd {
	return fb.statusBar.Update(msg)
}

func (fb *FileBrowser) View() string {
	fb.viewport.SetContent(fb.fileList.View())
	return fb.viewport.View() + "\n" + fb.statusBar.View()
}
