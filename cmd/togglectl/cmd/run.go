package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <page>",
		Short: "Run a page and print the notification trace",
		Long: `Run loads a page, installs the alert and offcanvas widgets, dispatches the
document load event and executes the page script. Steps run on a real event
loop unless --virtual is set, in which case wait steps advance a virtual
clock instantly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPage(args[0])
			if err != nil {
				return err
			}
			run := runVirtual
			if !a.settings.Runtime.VirtualTime {
				run = runLoop
			}
			s, err := run(cmd.Context(), p, a.settings, a.log)
			if s != nil {
				title := p.Title
				if title == "" {
					title = args[0]
				}
				writeTrace(cmd.OutOrStdout(), title, s.trace)
			}
			return err
		},
	}
	cmd.Flags().Bool("virtual", false, "run on virtual time")
	_ = a.v.BindPFlag("runtime.virtual_time", cmd.Flags().Lookup("virtual"))
	return cmd
}
