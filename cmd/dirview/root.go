package main

import (
	"time"

	"dirview/cmd/dirview/cli"
	"dirview/internal/config"
	"dirview/internal/log"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions carries the persistent flags and the loaded configuration to
// the subcommands.
type rootOptions struct {
	cfgFile string
	debug   bool
	tool    string
	theme   string
	timeout time.Duration

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "dirview",
		Short:         "Browse directories through an external listing tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: cli.Logo() + `
dirview lists directories with an external enumeration tool and lets you
walk them with back, forward, up, refresh and home, from the terminal or
from a desktop window.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/dirview/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.tool, "tool", "", "path to the enumeration tool (overrides tool.path)")
	flags.StringVar(&opts.theme, "theme", "", "color theme (overrides theme.name)")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "per-listing timeout, 0 disables (overrides tool.timeout)")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newGUICmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// load reads the configuration and applies flag overrides on top of it.
func (o *rootOptions) load(cmd *cobra.Command) error {
	log.SetDebug(o.debug)

	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tool") {
		o.cfg.Tool.Path = o.tool
	}
	if flags.Changed("timeout") {
		o.cfg.Tool.Timeout = o.timeout
	}
	if flags.Changed("theme") {
		o.cfg.ApplyTheme(o.theme)
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	cli.UseTheme(o.cfg.Theme)
	log.LogWithFields(
		log.F("tool", o.cfg.Tool.Path),
		log.F("name", o.cfg.Tool.Name),
		log.F("timeout", o.cfg.Tool.Timeout),
	).Debug("configuration loaded")
	return nil
}

// startDir picks the directory a browser opens in: the argument, then the
// configured start_dir. Empty means home.
func (o *rootOptions) startDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if o.cfg.Browser.StartDir == "" {
		return "", nil
	}
	return o.cfg.StartDir()
}
