// Package alert implements dismissible alerts. An alert does not cycle
// between shown and hidden: closing it removes the element from the document
// and disposes the instance.
package alert

import (
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/bridge"
	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/lifecycle"
	"github.com/go-drift/toggle/pkg/registry"
	"github.com/go-drift/toggle/pkg/transition"
)

// Kind is the widget kind.
const Kind registry.Kind = "alert"

// ClassName marks alert elements.
const ClassName = "alert"

// Notifications.
const (
	EventClose  = "close"
	EventClosed = "closed"
)

const classShow = "show"

// Alert is an alert instance.
type Alert struct {
	component.Base

	closing bool
	pending *transition.Completion
}

func newAlert(ctx *component.Context, el dom.Element) *Alert {
	return &Alert{Base: component.NewBase(ctx, el, Kind)}
}

// GetOrCreate returns the alert bound to el, creating it when none exists.
func GetOrCreate(ctx *component.Context, el dom.Element) (*Alert, error) {
	return registry.GetOrCreateAs(ctx.Registry, el, Kind, func() (*Alert, error) {
		return newAlert(ctx, el), nil
	})
}

// Get returns the alert bound to el.
func Get(ctx *component.Context, el dom.Element) (*Alert, bool) {
	return registry.Lookup[*Alert](ctx.Registry, el, Kind)
}

// Closing reports whether a close has been accepted and is waiting to
// settle.
func (a *Alert) Closing() bool { return a.closing }

// Pending reports whether a close is waiting for its transition.
func (a *Alert) Pending() bool { return !a.pending.Done() }

// Close fades the alert out and removes it. Listeners on close may veto.
// An alert with the fade class is removed once its transition settles;
// any other alert is removed before Close returns.
func (a *Alert) Close() error {
	if a.Disposed() {
		return errors.ErrDisposed
	}
	if a.closing {
		a.Log().Debug("close ignored, already closing")
		return nil
	}
	if !a.Confirm(EventClose, nil) {
		return nil
	}
	a.closing = true

	el := a.Element()
	el.RemoveClass(classShow)
	a.Log().Debug("closing")
	a.pending = a.Context().Scheduler.Queue(el, a.destroy, el.HasClass(lifecycle.ClassFade))
	return nil
}

func (a *Alert) destroy() {
	a.Element().Remove()
	a.Notify(EventClosed, nil)
	if err := a.Base.Dispose(nil, nil); err != nil {
		a.Log().WithError(err).Debug("alert already disposed")
	}
}

// Dispose releases the instance without touching the element. An alert
// that is closing is settled instead, which removes and disposes it.
func (a *Alert) Dispose() error {
	if a.Disposed() {
		return errors.ErrDisposed
	}
	if a.Pending() {
		a.pending.Flush()
		return nil
	}
	return a.Base.Dispose(nil, nil)
}

// CloseTarget returns the alert a dismiss control closes: its data-target or
// href target, or else the closest enclosing alert.
func CloseTarget(doc dom.Document, control dom.Element) dom.Element {
	if lifecycle.TargetSelector(control) != "" {
		return lifecycle.Target(doc, control)
	}
	return control.Closest("." + ClassName)
}

// Install makes dismiss controls close their alert. It reports whether this
// call installed the listener.
func Install(ctx *component.Context) bool {
	return ctx.Install("dismiss."+string(Kind), func() *events.Subscription {
		return ctx.Bus.Delegate(dom.EventClick, lifecycle.DismissSelector(Kind), func(ev *eventloop.Event, control dom.Element) {
			if dom.IsAnchor(control) {
				ev.PreventDefault()
			}
			if dom.IsDisabled(control) {
				return
			}
			target := CloseTarget(ctx.Doc, control)
			if target == nil {
				ctx.Log.WithField("widget", string(Kind)).Warn("dismiss control has no alert")
				return
			}
			a, err := GetOrCreate(ctx, target)
			if err != nil {
				errors.Report(&errors.ToggleError{Op: "alert.dismiss", Kind: errors.KindHost, Widget: string(Kind), Err: err})
				return
			}
			if err := a.Close(); err != nil {
				a.Log().WithError(err).Warn("close failed")
			}
		})
	})
}

// Plugin exposes alerts through the legacy bridge.
func Plugin(ctx *component.Context) *bridge.Plugin {
	return &bridge.Plugin{
		Kind: Kind,
		Create: func(el dom.Element, _ map[string]any) (registry.Instance, error) {
			a, err := GetOrCreate(ctx, el)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		Commands: map[bridge.Command]bridge.Handler{
			bridge.CommandClose: func(inst registry.Instance, _ dom.Element) error {
				return inst.(*Alert).Close()
			},
			bridge.CommandDispose: func(inst registry.Instance, _ dom.Element) error {
				return inst.(*Alert).Dispose()
			},
		},
	}
}
