package lifecycle

import (
	"strings"

	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/focus"
	"github.com/go-drift/toggle/pkg/registry"
)

// ToggleSelector matches the triggers of kind.
func ToggleSelector(kind registry.Kind) string {
	return `[` + config.AttrToggle + `="` + string(kind) + `"]`
}

// DismissSelector matches the dismiss controls of kind.
func DismissSelector(kind registry.Kind) string {
	return `[` + config.AttrDismiss + `="` + string(kind) + `"]`
}

// TargetSelector returns the selector a trigger points at: its data-target
// attribute, or the fragment of its href. It returns "" when neither names a
// target.
func TargetSelector(trigger dom.Element) string {
	if sel, ok := trigger.Attr(config.AttrTarget); ok && sel != "" && sel != "#" {
		return strings.TrimSpace(sel)
	}
	href, ok := trigger.Attr("href")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(href, '#'); i > 0 {
		href = href[i:]
	}
	if !strings.HasPrefix(href, "#") && !strings.HasPrefix(href, ".") || href == "#" {
		return ""
	}
	return strings.TrimSpace(href)
}

// Target resolves the element a trigger points at, or nil.
func Target(doc dom.Document, trigger dom.Element) dom.Element {
	sel := TargetSelector(trigger)
	if sel == "" {
		return nil
	}
	return doc.QuerySelector(sel)
}

// Resolver returns the engine for a target element, creating it if needed.
type Resolver func(target dom.Element) (*Engine, error)

// InstallTriggers installs the delegated click listener for the triggers of
// kind. It is installed once per runtime and kind; it reports whether this
// call installed it.
//
// A click on a trigger suppresses anchor navigation, ignores disabled
// triggers, lets the target react to a different open instance of the kind,
// arranges for focus to return to the trigger once the target is hidden, and
// toggles the target.
func InstallTriggers(ctx *component.Context, kind registry.Kind, resolve Resolver) bool {
	return ctx.Install("triggers."+string(kind), func() *events.Subscription {
		return ctx.Bus.Delegate(dom.EventClick, ToggleSelector(kind), func(ev *eventloop.Event, trigger dom.Element) {
			if dom.IsAnchor(trigger) {
				ev.PreventDefault()
			}
			if dom.IsDisabled(trigger) {
				return
			}
			log := ctx.Log.WithField("widget", string(kind))
			target := Target(ctx.Doc, trigger)
			if target == nil {
				log.WithField("selector", TargetSelector(trigger)).Warn("trigger has no target")
				return
			}
			e, err := resolve(target)
			if err != nil {
				errors.Report(&errors.ToggleError{
					Op:     "lifecycle.trigger",
					Kind:   errors.KindConfig,
					Widget: string(kind),
					Err:    err,
				})
				return
			}

			if open, ok := ctx.Registry.Open(kind).(*Engine); ok && open != e {
				e.conflict(open, trigger)
			}

			ctx.Bus.One(target, events.Name(EventHidden, string(kind)), func(*eventloop.Event) {
				focus.ReturnTo(trigger)
			})

			if err := e.Toggle(trigger); err != nil {
				log.WithError(err).Warn("toggle failed")
			}
		})
	})
}

// installDismiss makes dismiss controls inside the element hide it.
func installDismiss(e *Engine) *events.Subscription {
	bus := e.Context().Bus
	return bus.DelegateWithin(e.Element(), dom.EventClick, DismissSelector(e.Kind()), func(ev *eventloop.Event, control dom.Element) {
		if dom.IsAnchor(control) {
			ev.PreventDefault()
		}
		if dom.IsDisabled(control) {
			return
		}
		_ = e.Hide(nil)
	})
}
