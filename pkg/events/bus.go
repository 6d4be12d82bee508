// Package events provides the namespaced notification bus used by widgets.
//
// Notifications are named "<event>.<kind>" (for example "show.offcanvas") and
// travel through the host tree with [dom.Dispatch], so listeners may sit on
// the element, any ancestor, or the document. Pre-events are cancelable and
// post-events are not.
//
// Veto happens in two separate steps. Guards registered with [Bus.Guard] are
// consulted first, before any state is touched; only when every guard accepts
// is the cancelable notification dispatched, and listeners may still prevent
// its default. [Bus.Confirm] runs both steps.
package events

import (
	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/dom"
)

// Name builds the namespaced notification name for an event of a widget kind.
func Name(event, kind string) string {
	return event + "." + kind
}

// Handler receives a dispatched event.
type Handler = eventloop.EventListenerFunc

// Record describes a notification emitted through the bus. It is delivered
// to taps after dispatch completes.
type Record struct {
	Name       string
	Target     dom.Element
	Related    dom.Element
	Cancelable bool
	// Prevented reports that a listener prevented the default.
	Prevented bool
}

// Guard is a veto pre-check. Returning false rejects the operation.
type Guard func() bool

type guardKey struct {
	el   dom.ElementID
	name string
}

type guardEntry struct {
	id uint64
	fn Guard
}

// Bus emits notifications for one document. It must be used from a single
// goroutine.
type Bus struct {
	doc    dom.Document
	log    *logrus.Entry
	guards map[guardKey][]guardEntry
	taps   map[uint64]func(Record)
	tapSeq []uint64
	nextID uint64
}

// NewBus creates a bus for doc. A nil log discards debug output.
func NewBus(doc dom.Document, log *logrus.Entry) *Bus {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Bus{
		doc:    doc,
		log:    log,
		guards: make(map[guardKey][]guardEntry),
		taps:   make(map[uint64]func(Record)),
	}
}

// Document returns the document the bus dispatches into.
func (b *Bus) Document() dom.Document { return b.doc }

func (b *Bus) id() uint64 {
	b.nextID++
	return b.nextID
}

// Guard registers a pre-check for notification name on el.
func (b *Bus) Guard(el dom.Element, name string, fn Guard) *Subscription {
	key := guardKey{el: el.ID(), name: name}
	id := b.id()
	b.guards[key] = append(b.guards[key], guardEntry{id: id, fn: fn})
	return newSubscription(func() bool {
		entries := b.guards[key]
		for i, g := range entries {
			if g.id == id {
				b.guards[key] = append(entries[:i:i], entries[i+1:]...)
				if len(b.guards[key]) == 0 {
					delete(b.guards, key)
				}
				return true
			}
		}
		return false
	})
}

// DropGuards removes every guard registered on el.
func (b *Bus) DropGuards(el dom.Element) {
	for key := range b.guards {
		if key.el == el.ID() {
			delete(b.guards, key)
		}
	}
}

// Check runs the guards for name on el and reports whether all accepted.
func (b *Bus) Check(el dom.Element, name string) bool {
	for _, g := range b.guards[guardKey{el: el.ID(), name: name}] {
		if !g.fn() {
			b.log.WithField("event", name).Debug("vetoed by guard")
			return false
		}
	}
	return true
}

// Confirm runs the guards and then emits the cancelable notification. It
// reports whether the operation may proceed.
func (b *Bus) Confirm(el dom.Element, name string, related dom.Element) bool {
	if !b.Check(el, name) {
		return false
	}
	return b.Emit(el, name, related, true)
}

// Notify emits a non-cancelable notification.
func (b *Bus) Notify(el dom.Element, name string, related dom.Element) {
	b.Emit(el, name, related, false)
}

// Emit dispatches name on el and reports whether its default is intact.
func (b *Bus) Emit(el dom.Element, name string, related dom.Element, cancelable bool) bool {
	ev := dom.NewEvent(name, cancelable, &dom.EventDetail{Target: el, Related: related})
	ok := dom.Dispatch(el, ev)
	if !ok {
		b.log.WithField("event", name).Debug("prevented by listener")
	}
	rec := Record{Name: name, Target: el, Related: related, Cancelable: cancelable, Prevented: !ok}
	for _, id := range b.tapSeq {
		if tap, live := b.taps[id]; live {
			tap(rec)
		}
	}
	return ok
}

// Tap registers an observer that sees every notification emitted through the
// bus, including those dispatched on detached elements.
func (b *Bus) Tap(fn func(Record)) *Subscription {
	id := b.id()
	b.taps[id] = fn
	b.tapSeq = append(b.tapSeq, id)
	return newSubscription(func() bool {
		if _, ok := b.taps[id]; !ok {
			return false
		}
		delete(b.taps, id)
		for i, v := range b.tapSeq {
			if v == id {
				b.tapSeq = append(b.tapSeq[:i:i], b.tapSeq[i+1:]...)
				break
			}
		}
		return true
	})
}

// On listens for name on el.
func (b *Bus) On(el dom.Element, name string, fn Handler) *Subscription {
	return listen(el.Events(), name, fn, false)
}

// One listens for a single occurrence of name on el.
func (b *Bus) One(el dom.Element, name string, fn Handler) *Subscription {
	return listen(el.Events(), name, fn, true)
}

// OnDocument listens for name on the document.
func (b *Bus) OnDocument(name string, fn Handler) *Subscription {
	return listen(b.doc.Events(), name, fn, false)
}

// Delegate listens for eventType on the document and calls fn with the
// nearest inclusive ancestor of the event target matching selector.
func (b *Bus) Delegate(eventType, selector string, fn func(ev *eventloop.Event, matched dom.Element)) *Subscription {
	return b.OnDocument(eventType, func(ev *eventloop.Event) {
		target := dom.Detail(ev).Target
		if target == nil {
			return
		}
		if matched := target.Closest(selector); matched != nil {
			fn(ev, matched)
		}
	})
}

// DelegateWithin is Delegate scoped to el: fn runs only when the matched
// element is inside el.
func (b *Bus) DelegateWithin(el dom.Element, eventType, selector string, fn func(ev *eventloop.Event, matched dom.Element)) *Subscription {
	return b.On(el, eventType, func(ev *eventloop.Event) {
		target := dom.Detail(ev).Target
		if target == nil {
			return
		}
		if matched := target.Closest(selector); matched != nil && el.Contains(matched) {
			fn(ev, matched)
		}
	})
}

func listen(target *eventloop.EventTarget, name string, fn Handler, once bool) *Subscription {
	var id eventloop.ListenerID
	if once {
		id = target.AddEventListenerOnce(name, fn)
	} else {
		id = target.AddEventListener(name, fn)
	}
	return newSubscription(func() bool {
		return target.RemoveEventListenerByID(name, id)
	})
}
