package component

import (
	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/registry"
)

// Notification event names shared by every widget.
const (
	EventDispose  = "dispose"
	EventDisposed = "disposed"
)

// Base carries what every widget instance has: its element, kind, runtime
// and per-instance listeners. Widgets embed it.
type Base struct {
	el        dom.Element
	kind      registry.Kind
	ctx       *Context
	log       *logrus.Entry
	listeners events.Group
	disposed  bool
}

// NewBase binds a base to el.
func NewBase(ctx *Context, el dom.Element, kind registry.Kind) Base {
	return Base{
		el:   el,
		kind: kind,
		ctx:  ctx,
		log:  ctx.Log.WithFields(logrus.Fields{"widget": string(kind), "element": string(el.ID())}),
	}
}

func (b *Base) Element() dom.Element     { return b.el }
func (b *Base) Kind() registry.Kind      { return b.kind }
func (b *Base) Context() *Context        { return b.ctx }
func (b *Base) Log() *logrus.Entry       { return b.log }
func (b *Base) Disposed() bool           { return b.disposed }
func (b *Base) Listeners() *events.Group { return &b.listeners }

// EventName returns the namespaced name of event for this widget's kind.
func (b *Base) EventName(event string) string {
	return events.Name(event, string(b.kind))
}

// Confirm runs guards and the cancelable pre-event for event.
func (b *Base) Confirm(event string, related dom.Element) bool {
	return b.ctx.Bus.Confirm(b.el, b.EventName(event), related)
}

// Notify emits the post-event for event.
func (b *Base) Notify(event string, related dom.Element) {
	b.ctx.Bus.Notify(b.el, b.EventName(event), related)
}

// Dispose runs the shared teardown:
//
//  1. dispose guards are checked; a veto leaves the instance live
//  2. before runs (a widget settles and hides itself here)
//  3. the cancelable dispose notification is emitted; preventing it leaves
//     the instance live
//  4. release runs, per-instance listeners and guards are removed and the
//     registry entry is deleted
//  5. disposed is emitted
//
// Only a guard aborts with no side effects. Preventing the dispose
// notification keeps the instance registered and listening, but whatever
// before did (a forced hide, for widgets) has already happened.
//
// Further calls return errors.ErrDisposed.
func (b *Base) Dispose(before, release func()) error {
	if b.disposed {
		return errors.ErrDisposed
	}
	name := b.EventName(EventDispose)
	if !b.ctx.Bus.Check(b.el, name) {
		return nil
	}
	if before != nil {
		before()
	}
	if !b.ctx.Bus.Emit(b.el, name, nil, true) {
		b.log.Debug("dispose prevented")
		return nil
	}
	if release != nil {
		release()
	}
	b.listeners.RemoveAll()
	b.ctx.Bus.DropGuards(b.el)
	b.ctx.Registry.Remove(b.el, b.kind)
	b.disposed = true
	b.log.Debug("disposed")
	b.Notify(EventDisposed, nil)
	return nil
}
