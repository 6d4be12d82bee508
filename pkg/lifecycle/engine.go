// Package lifecycle implements the show/hide state machine shared by
// toggleable widgets.
//
// Visual state is never stored. It is derived from two marker classes on the
// element, the shown class and the transitioning class:
//
//	Hidden             neither
//	ShowingTransition  transitioning
//	Shown              shown
//	HidingTransition   transitioning and shown
//
// Show is accepted only from Hidden and Hide only from Shown; any other call
// is a silent no-op. Completion of a cycle is deferred to the transition
// scheduler and runs exactly once. Widgets specialize the engine through
// [Hooks].
package lifecycle

import (
	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/registry"
	"github.com/go-drift/toggle/pkg/transition"
)

// Notification events emitted by the engine.
const (
	EventShow   = "show"
	EventShown  = "shown"
	EventHide   = "hide"
	EventHidden = "hidden"
)

// ClassFade opts an element into animated transitions.
const ClassFade = "fade"

// Option names shared by every engine widget.
const (
	OptionShowClass          = "showClass"
	OptionTransitioningClass = "transitioningClass"
)

var engineOptions = []config.Option{
	{Name: OptionShowClass, Type: config.String, Default: "show"},
	{Name: OptionTransitioningClass, Type: config.String, Default: "transitioning"},
}

// Schema returns the configuration schema for widget: the engine options
// followed by opts.
func Schema(widget string, opts ...config.Option) config.Schema {
	return config.Schema{Widget: widget, Options: engineOptions}.Extend(opts...)
}

// State is the derived visual state of an instance.
type State int

const (
	Hidden State = iota
	ShowingTransition
	Shown
	HidingTransition
	// Disposed is reported after a successful Dispose.
	Disposed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case ShowingTransition:
		return "showing"
	case Shown:
		return "shown"
	case HidingTransition:
		return "hiding"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Engine is one toggleable instance bound to an element.
type Engine struct {
	component.Base

	config             config.Values
	hooks              Hooks
	pending            *transition.Completion
	showClass          string
	transitioningClass string
}

// New resolves the configuration of el against schema and returns an engine
// driving hooks. The engine is not registered; widgets register the value
// they expose. A configuration type mismatch aborts construction.
func New(ctx *component.Context, el dom.Element, schema config.Schema, hooks Hooks, override any) (*Engine, error) {
	cfg, err := config.Resolve(schema, el, override, ctx.Layers(schema.Widget)...)
	if err != nil {
		ctx.Log.WithError(err).WithField("widget", schema.Widget).Warn("invalid configuration")
		return nil, err
	}
	if hooks == nil {
		hooks = NopHooks{}
	}
	e := &Engine{
		Base:               component.NewBase(ctx, el, registry.Kind(schema.Widget)),
		config:             cfg,
		hooks:              hooks,
		showClass:          cfg.String(OptionShowClass),
		transitioningClass: cfg.String(OptionTransitioningClass),
	}
	e.Listeners().Add(installDismiss(e))
	return e, nil
}

// Config returns the resolved configuration.
func (e *Engine) Config() config.Values { return e.config }

// Hooks returns the hooks the engine drives.
func (e *Engine) Hooks() Hooks { return e.hooks }

// ShowClass returns the configured shown marker class.
func (e *Engine) ShowClass() string { return e.showClass }

// TransitioningClass returns the configured transitioning marker class.
func (e *Engine) TransitioningClass() string { return e.transitioningClass }

// Animated reports whether the element opts into animated transitions.
func (e *Engine) Animated() bool { return e.Element().HasClass(ClassFade) }

// State derives the visual state from the marker classes.
func (e *Engine) State() State {
	if e.Disposed() {
		return Disposed
	}
	el := e.Element()
	shown := el.HasClass(e.showClass)
	switch {
	case el.HasClass(e.transitioningClass) && shown:
		return HidingTransition
	case el.HasClass(e.transitioningClass):
		return ShowingTransition
	case shown:
		return Shown
	default:
		return Hidden
	}
}

// IsShown reports whether the shown marker is present.
func (e *Engine) IsShown() bool { return e.Element().HasClass(e.showClass) }

// Pending reports whether a transition is waiting to settle.
func (e *Engine) Pending() bool { return !e.pending.Done() }

// Show starts a show cycle. related is passed to listeners as the related
// element (typically the trigger). It returns nil when the call is ignored
// or vetoed.
func (e *Engine) Show(related dom.Element) error {
	if e.Disposed() {
		return errors.ErrDisposed
	}
	if st := e.State(); st != Hidden {
		e.Log().WithField("state", st.String()).Debug("show ignored")
		return nil
	}
	if !e.Confirm(EventShow, related) {
		return nil
	}
	e.Context().Registry.MarkOpen(e)
	e.hooks.BeforeShow()

	el := e.Element()
	el.RemoveClass(e.transitioningClass)
	el.AddClass(e.transitioningClass)
	e.Log().Debug("showing")
	e.pending = e.Context().Scheduler.Queue(el, func() {
		el.RemoveClass(e.transitioningClass)
		el.AddClass(e.showClass)
		e.hooks.AfterShow()
		e.Notify(EventShown, related)
	}, e.Animated())
	return nil
}

// Hide starts a hide cycle. It returns nil when the call is ignored or
// vetoed. The instance stays marked open until the cycle completes, so a
// trigger for another instance of the kind settles it first.
func (e *Engine) Hide(related dom.Element) error {
	if e.Disposed() {
		return errors.ErrDisposed
	}
	if st := e.State(); st != Shown {
		e.Log().WithField("state", st.String()).Debug("hide ignored")
		return nil
	}
	if !e.Confirm(EventHide, related) {
		return nil
	}
	el := e.Element()
	el.Blur()
	el.AddClass(e.transitioningClass)
	e.hooks.BeforeHide()
	e.Log().Debug("hiding")
	e.pending = e.Context().Scheduler.Queue(el, func() {
		el.RemoveClass(e.transitioningClass, e.showClass)
		e.Context().Registry.ClearOpen(e)
		e.hooks.AfterHide()
		e.Notify(EventHidden, related)
	}, e.Animated())
	return nil
}

// Toggle hides a shown instance and shows any other.
func (e *Engine) Toggle(related dom.Element) error {
	if e.Disposed() {
		return errors.ErrDisposed
	}
	if e.IsShown() {
		return e.Hide(related)
	}
	return e.Show(related)
}

// Settle completes a pending transition synchronously.
func (e *Engine) Settle() {
	if p := e.pending; p != nil {
		p.Flush()
	}
}

// ForceHide settles any pending transition, hides the instance and settles
// the hide. Listeners may still veto the hide.
func (e *Engine) ForceHide() error {
	if e.Disposed() {
		return errors.ErrDisposed
	}
	e.Settle()
	if err := e.Hide(nil); err != nil {
		return err
	}
	e.Settle()
	return nil
}

// Dispose releases the instance. A shown instance is hidden first. Guards
// and listeners on dispose may keep the instance alive; a listener veto
// comes after the hide, so the instance survives hidden.
func (e *Engine) Dispose() error {
	return e.Base.Dispose(func() {
		e.Settle()
		if e.State() == Shown {
			_ = e.Hide(nil)
			e.Settle()
		}
	}, func() {
		e.hooks.Release()
		e.Context().Registry.ClearOpen(e)
	})
}

// conflict lets e react to another open instance before it is toggled.
func (e *Engine) conflict(open *Engine, trigger dom.Element) {
	e.Log().WithField("open", string(open.Element().ID())).Debug("conflicting instance open")
	e.hooks.OnConflictingInstanceOpen(open, trigger)
}
