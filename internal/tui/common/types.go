package common

// Mode is the input mode of the browser.
type Mode int

const (
	Normal Mode = iota
	Filter
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	CurrentDir() string
	Err() error
	Mode() Mode
	ShowHelp() bool
	BrowserView() string
	FilterView() string
	HelpView() string
}
