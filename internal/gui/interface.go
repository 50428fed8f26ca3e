package gui

// Interface defines the contract for GUI operations
type Interface interface {
	Run(startDir string) error
	ShowError(title string, err error)
	ShowInfo(message string)
}
