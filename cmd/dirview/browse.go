package main

import (
	"dirview/internal/gui"
	"dirview/internal/tui"

	"github.com/spf13/cobra"
)

// newTUICmd represents the TUI command
func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [directory]",
		Short: "Browse in the terminal",
		Long:  `Start the terminal browser at a directory, the configured start_dir or home.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.startDir(args)
			if err != nil {
				return err
			}
			return tui.Run(opts.cfg, dir)
		},
	}
}

// newGUICmd creates the GUI command for the CLI
func newGUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [directory]",
		Short: "Browse in a desktop window",
		Long:  `Open the desktop browser at a directory, the configured start_dir or home.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.startDir(args)
			if err != nil {
				return err
			}
			return gui.Run(opts.cfg, dir)
		},
	}
}
