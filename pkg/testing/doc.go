// Package testing provides a harness for widget tests.
//
// # Quick Start
//
// Create a harness, build markup, install widgets and interact:
//
//	func TestPanel(t *testing.T) {
//	    h := toggletest.NewHarness(t)
//	    panel := h.Add(nil, "div", map[string]string{"id": "panel", "class": "offcanvas"})
//	    button := h.Add(nil, "button", map[string]string{
//	        "data-toggle": "offcanvas",
//	        "data-target": "#panel",
//	    })
//	    offcanvas.Install(h.Ctx)
//
//	    h.Click(button)
//	    h.Settle()
//
//	    if !panel.HasClass("show") {
//	        t.Error("expected the panel to be shown")
//	    }
//	}
//
// # Time
//
// Transition fallbacks run on virtual timers. Advance moves time by a fixed
// amount; Settle drains every pending timer:
//
//	h.Advance(300 * time.Millisecond)
//	h.Settle()
//
// # Notifications
//
// The Recorder sees every notification emitted through the runtime bus,
// including those dispatched on detached elements:
//
//	got := h.Recorder.Matching("offcanvas")
//
// # Snapshots
//
// Snapshot captures the document, focus and trace as YAML. MatchesFile
// compares against a golden file; set TOGGLE_UPDATE_SNAPSHOTS=1 to rewrite
// golden files instead:
//
//	h.Snapshot().MatchesFile(t, "testdata/menu_open.yaml")
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import toggletest "github.com/go-drift/toggle/pkg/testing"
package testing
