package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/widgets/alert"
	"github.com/go-drift/toggle/pkg/widgets/offcanvas"
)

func newInspectCmd(a *app) *cobra.Command {
	var script bool
	cmd := &cobra.Command{
		Use:   "inspect <page>",
		Short: "Print every widget element with its state",
		Long: `Inspect loads a page on virtual time, dispatches the document load event
and prints each widget element with the state derived from its marker
classes. With --script the page script runs first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPage(args[0])
			if err != nil {
				return err
			}
			if !script {
				p.Script = nil
			}
			s, err := runVirtual(cmd.Context(), p, a.settings, a.log)
			if err != nil {
				return err
			}
			writeWidgets(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&script, "script", false, "run the page script before inspecting")
	return cmd
}

type widgetRow struct {
	kind    string
	element string
	state   string
}

func widgetRows(s *session) ([]widgetRow, error) {
	var rows []widgetRow
	for _, el := range s.tree.QuerySelectorAll("." + offcanvas.ClassName) {
		o, err := offcanvas.GetOrCreate(s.ctx, el, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", describe(el), err)
		}
		rows = append(rows, widgetRow{string(offcanvas.Kind), describe(el), o.State().String()})
	}
	for _, el := range s.tree.QuerySelectorAll("." + alert.ClassName) {
		rows = append(rows, widgetRow{string(alert.Kind), describe(el), alertState(s, el)})
	}
	return rows, nil
}

func alertState(s *session, el dom.Element) string {
	if a, ok := alert.Get(s.ctx, el); ok && a.Closing() {
		return "closing"
	}
	if el.HasClass("show") {
		return "shown"
	}
	return "hidden"
}

func writeWidgets(w io.Writer, s *session) {
	fmt.Fprintln(w, titleStyle.Render("widgets"))
	rows, err := widgetRows(s)
	if err != nil {
		fmt.Fprintln(w, vetoStyle.Render("  "+err.Error()))
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, indexStyle.Render("  (none)"))
		return
	}
	for _, r := range rows {
		fmt.Fprintln(w, "  "+pad(preEventStyle.Render(r.kind), 10)+" "+pad(r.element, 16)+" "+postEventStyle.Render(r.state))
	}
}
