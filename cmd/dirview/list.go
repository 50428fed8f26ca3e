package main

import (
	"encoding/json"
	"fmt"

	"dirview/cmd/dirview/cli"
	"dirview/internal/format"
	"dirview/internal/lister"
	"dirview/pkg/types"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

// newListCmd lists one directory and prints it in long form.
func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List a directory once",
		Long: `List a directory through the enumeration tool and print it sorted,
directories first. Defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			listing, err := lister.NewFromConfig(opts.cfg).ListDirectory(cmd.Context(), dir)
			if err != nil {
				return err
			}

			entries := listing.Entries
			if !all {
				hidden, err := format.NewMatcher(opts.cfg.Browser.HidePatterns)
				if err != nil {
					return err
				}
				entries = hidden.Apply(entries)
			}
			entries = format.NewSorterForLocale(opts.cfg.Browser.Locale).Sort(entries)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(types.Listing{Path: listing.Path, Entries: entries})
			}

			cli.PrintHeader(out, listing.Path)
			if len(entries) == 0 {
				cli.PrintInfo(out, "This directory is empty")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, format.Long(e))
			}

			summary := english.Plural(len(entries), "entry", "entries")
			if hidden := listing.Len() - len(entries); hidden > 0 {
				summary += fmt.Sprintf(" (%d hidden)", hidden)
			}
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized listing as JSON")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "show entries matched by hide patterns")

	return cmd
}
