package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/events"
)

var (
	primary = lipgloss.Color("212")
	warning = lipgloss.Color("214")
	muted   = lipgloss.Color("241")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	indexStyle     = lipgloss.NewStyle().Foreground(muted)
	preEventStyle  = lipgloss.NewStyle().Foreground(muted)
	postEventStyle = lipgloss.NewStyle().Foreground(primary)
	vetoStyle      = lipgloss.NewStyle().Foreground(warning).Bold(true)
)

// describe names el the way a selector would: #id when it has one,
// otherwise tag.class.
func describe(el dom.Element) string {
	if el == nil {
		return "-"
	}
	if id, ok := el.Attr("id"); ok && id != "" {
		return "#" + id
	}
	parts := append([]string{strings.ToLower(el.TagName())}, el.Classes()...)
	return strings.Join(parts, ".")
}

// pad right-pads s to width cells, measuring styled text correctly.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func writeTrace(w io.Writer, title string, trace []events.Record) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(trace) == 0 {
		fmt.Fprintln(w, indexStyle.Render("  (no notifications)"))
		return
	}
	for i, rec := range trace {
		style := postEventStyle
		if rec.Cancelable {
			style = preEventStyle
		}
		line := "  " + pad(indexStyle.Render(fmt.Sprintf("%3d", i+1)), 4) +
			" " + pad(style.Render(rec.Name), 20) +
			" " + describe(rec.Target)
		if rec.Related != nil {
			line += " <- " + describe(rec.Related)
		}
		if rec.Prevented {
			line += " " + vetoStyle.Render("prevented")
		}
		fmt.Fprintln(w, line)
	}
}
