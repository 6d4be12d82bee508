// Package cmd implements the togglectl commands.
//
// The root command loads settings (flags, TOGGLECTL_ environment variables
// and an optional togglectl.toml) before any subcommand runs.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/page"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app is the state shared by one command tree.
type app struct {
	v        *viper.Viper
	settings Settings
	log      *logrus.Logger
}

// NewRootCmd builds the togglectl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: newViper()}
	var settingsPath string

	root := &cobra.Command{
		Use:   "togglectl",
		Short: "Run page documents against the toggle runtime",
		Long: `togglectl loads a page document (markup, widget defaults and an
interaction script in YAML or TOML), runs it against the toggle runtime
and prints the notifications the widgets emitted.

Settings come from flags, TOGGLECTL_* environment variables and an
optional togglectl.toml in the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(a.v, settingsPath)
			if err != nil {
				return err
			}
			log, err := s.Logger()
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			errors.SetHandler(&errors.LogHandler{Logger: log})
			a.settings, a.log = s, log
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&settingsPath, "config", "", "settings file (default ./togglectl.toml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Duration("padding", 0, "extra wait added to transition durations")
	flags.String("defaults", "", "widget defaults file (YAML or TOML)")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("transition.padding", flags.Lookup("padding"))
	_ = a.v.BindPFlag("widgets.defaults", flags.Lookup("defaults"))

	root.AddCommand(newRunCmd(a), newInspectCmd(a), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadPage reads the page at path and checks its runtime requirement.
func loadPage(path string) (*page.Page, error) {
	p, err := page.Load(path)
	if err != nil {
		return nil, err
	}
	if err := page.CheckRuntime(p.Runtime); err != nil {
		return nil, err
	}
	return p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "togglectl version %s (built %s, runtime %s)\n", Version, BuildTime, page.Version)
			return nil
		},
	}
}
