//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"dirview/internal/config"
)

// Run is a stub implementation for builds with GUI disabled
func Run(cfg *config.Config, startDir string) error {
	fmt.Println("GUI is disabled in this build. Please use the tui command.")
	return fmt.Errorf("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
