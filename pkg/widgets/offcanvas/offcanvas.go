// Package offcanvas implements a sliding side panel with a backdrop, scroll
// lock, focus trap and escape dismissal. At most one offcanvas is open at a
// time when opened through triggers.
package offcanvas

import (
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/backdrop"
	"github.com/go-drift/toggle/pkg/bridge"
	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/focus"
	"github.com/go-drift/toggle/pkg/lifecycle"
	"github.com/go-drift/toggle/pkg/registry"
	"github.com/go-drift/toggle/pkg/scrollbar"
)

// Kind is the widget kind.
const Kind registry.Kind = "offcanvas"

// ClassName marks offcanvas elements.
const ClassName = "offcanvas"

// Options.
const (
	OptionBackdrop = "backdrop"
	OptionKeyboard = "keyboard"
	OptionScroll   = "scroll"
)

var schema = lifecycle.Schema(string(Kind),
	config.Option{Name: OptionBackdrop, Type: config.Bool, Default: true},
	config.Option{Name: OptionKeyboard, Type: config.Bool, Default: true},
	config.Option{Name: OptionScroll, Type: config.Bool, Default: false},
)

// Keys of the resources every offcanvas in a runtime shares.
const (
	sharedTrap   = "offcanvas.focustrap"
	sharedScroll = "offcanvas.scrollbar"
)

// Offcanvas is a panel instance.
type Offcanvas struct {
	*lifecycle.Engine

	backdrop *backdrop.Backdrop
	trap     *focus.Trap
	scroll   *scrollbar.Helper
}

var _ lifecycle.Hooks = (*Offcanvas)(nil)

func newOffcanvas(ctx *component.Context, el dom.Element, override any) (*Offcanvas, error) {
	o := &Offcanvas{}
	e, err := lifecycle.New(ctx, el, schema, o, override)
	if err != nil {
		return nil, err
	}
	o.Engine = e
	o.backdrop = backdrop.New(ctx.Doc, ctx.Scheduler, backdrop.Config{
		Visible:  e.Config().Bool(OptionBackdrop),
		Animated: true,
		Root:     el.Parent(),
		OnClick:  func() { _ = o.Hide(nil) },
	})
	o.trap = component.SharedAs(ctx, sharedTrap, func() *focus.Trap { return focus.NewTrap(ctx.Doc) })
	o.scroll = component.SharedAs(ctx, sharedScroll, func() *scrollbar.Helper { return scrollbar.New(ctx.Doc) })
	o.Listeners().Add(ctx.Bus.On(el, dom.EventKeyDown, func(ev *eventloop.Event) {
		if o.Config().Bool(OptionKeyboard) && dom.Detail(ev).Key == dom.KeyEscape {
			_ = o.Hide(nil)
		}
	}))
	return o, nil
}

// GetOrCreate returns the offcanvas bound to el, creating it with override
// when none exists.
func GetOrCreate(ctx *component.Context, el dom.Element, override any) (*Offcanvas, error) {
	return registry.GetOrCreateAs(ctx.Registry, el, Kind, func() (*Offcanvas, error) {
		return newOffcanvas(ctx, el, override)
	})
}

// Get returns the offcanvas bound to el.
func Get(ctx *component.Context, el dom.Element) (*Offcanvas, bool) {
	return registry.Lookup[*Offcanvas](ctx.Registry, el, Kind)
}

// Backdrop returns the owned backdrop.
func (o *Offcanvas) Backdrop() *backdrop.Backdrop { return o.backdrop }

// Trap returns the focus trap shared by the offcanvas panels of the runtime.
func (o *Offcanvas) Trap() *focus.Trap { return o.trap }

// Trapping reports whether the shared trap currently holds this panel.
func (o *Offcanvas) Trapping() bool { return o.trap.Holds(o.Element()) }

// ScrollLocked reports whether this panel holds the scroll lock.
func (o *Offcanvas) ScrollLocked() bool { return o.scroll.Holds(o.Element()) }

func (o *Offcanvas) BeforeShow() {
	el := o.Element()
	el.SetStyle("visibility", "visible")
	o.backdrop.Show(nil)
	if !o.Config().Bool(OptionScroll) {
		o.scroll.Acquire(el)
		o.trap.Activate(el)
	}
	el.RemoveAttr("aria-hidden")
	el.SetAttr("aria-modal", "true")
	el.SetAttr("role", "dialog")
}

func (o *Offcanvas) AfterShow() {}

func (o *Offcanvas) BeforeHide() {
	o.backdrop.Hide(nil)
}

func (o *Offcanvas) AfterHide() {
	el := o.Element()
	el.SetAttr("aria-hidden", "true")
	el.RemoveAttr("aria-modal")
	el.RemoveAttr("role")
	el.SetStyle("visibility", "hidden")
	o.scroll.Release(el)
	o.trap.Release(el)
}

// OnConflictingInstanceOpen hides the open panel before this one opens.
func (o *Offcanvas) OnConflictingInstanceOpen(open *lifecycle.Engine, _ dom.Element) {
	if err := open.ForceHide(); err != nil {
		o.Log().WithError(err).Warn("could not hide open offcanvas")
	}
}

func (o *Offcanvas) Release() {
	o.backdrop.Dispose()
	o.trap.Release(o.Element())
	o.scroll.Release(o.Element())
}

// Install wires the offcanvas markup protocol into ctx: trigger delegation
// and showing panels already marked open when the document loads.
func Install(ctx *component.Context) {
	lifecycle.InstallTriggers(ctx, Kind, func(target dom.Element) (*lifecycle.Engine, error) {
		o, err := GetOrCreate(ctx, target, nil)
		if err != nil {
			return nil, err
		}
		return o.Engine, nil
	})
	ctx.Install("load."+string(Kind), func() *events.Subscription {
		return ctx.Bus.OnDocument(dom.EventLoad, func(*eventloop.Event) {
			ShowMarked(ctx)
		})
	})
}

// ShowMarked shows every offcanvas whose markup already carries its shown
// class. The class is cleared first so the full show cycle runs.
func ShowMarked(ctx *component.Context) {
	for _, el := range ctx.Doc.QuerySelectorAll("." + ClassName) {
		if !el.HasClass(markedClass(ctx, el)) {
			continue
		}
		o, err := GetOrCreate(ctx, el, nil)
		if err != nil {
			errors.Report(&errors.ToggleError{Op: "offcanvas.load", Kind: errors.KindConfig, Widget: string(Kind), Err: err})
			continue
		}
		if o.State() != lifecycle.Shown {
			continue
		}
		el.RemoveClass(o.ShowClass())
		_ = o.Show(nil)
	}
}

// markedClass returns the shown class el would be configured with.
func markedClass(ctx *component.Context, el dom.Element) string {
	if o, ok := Get(ctx, el); ok {
		return o.ShowClass()
	}
	if v, ok := config.DataAttributes(el)[lifecycle.OptionShowClass].(string); ok {
		return v
	}
	if v, ok := ctx.Defaults.For(string(Kind))[lifecycle.OptionShowClass].(string); ok {
		return v
	}
	return "show"
}

// Plugin exposes offcanvas through the legacy bridge.
func Plugin(ctx *component.Context) *bridge.Plugin {
	on := func(fn func(o *Offcanvas, el dom.Element) error) bridge.Handler {
		return func(inst registry.Instance, el dom.Element) error {
			return fn(inst.(*Offcanvas), el)
		}
	}
	return &bridge.Plugin{
		Kind: Kind,
		Create: func(el dom.Element, cfg map[string]any) (registry.Instance, error) {
			var override any
			if cfg != nil {
				override = cfg
			}
			o, err := GetOrCreate(ctx, el, override)
			if err != nil {
				return nil, err
			}
			return o, nil
		},
		Commands: map[bridge.Command]bridge.Handler{
			bridge.CommandToggle:  on(func(o *Offcanvas, el dom.Element) error { return o.Toggle(el) }),
			bridge.CommandShow:    on(func(o *Offcanvas, el dom.Element) error { return o.Show(el) }),
			bridge.CommandHide:    on(func(o *Offcanvas, el dom.Element) error { return o.Hide(el) }),
			bridge.CommandDispose: on(func(o *Offcanvas, _ dom.Element) error { return o.Dispose() }),
		},
	}
}
