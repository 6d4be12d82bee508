// Package backdrop provides the overlay shown beneath a modal panel.
package backdrop

import (
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/transition"
)

// DefaultClassName is the class of the backdrop element.
const DefaultClassName = "modal-backdrop"

// Config describes a backdrop.
type Config struct {
	// Visible enables the backdrop. When false Show and Hide only run their
	// callbacks and nothing is appended.
	Visible bool

	// Animated adds the fade class so show and hide wait for a transition.
	Animated bool

	// Root is the element the backdrop is appended to. Nil uses the body.
	Root dom.Element

	// ClassName is the backdrop class. Empty uses DefaultClassName.
	ClassName string

	// OnClick is called when the backdrop is clicked.
	OnClick func()
}

// Backdrop is an overlay element owned by one widget. It is created lazily
// on the first Show and removed from the document after Hide settles.
type Backdrop struct {
	cfg      Config
	doc      dom.Document
	sched    *transition.Scheduler
	el       dom.Element
	click    eventloop.ListenerID
	appended bool
	pending  *transition.Completion
}

// New returns a backdrop for doc. Nothing is appended until Show.
func New(doc dom.Document, sched *transition.Scheduler, cfg Config) *Backdrop {
	if cfg.ClassName == "" {
		cfg.ClassName = DefaultClassName
	}
	if cfg.Root == nil {
		cfg.Root = doc.Body()
	}
	return &Backdrop{cfg: cfg, doc: doc, sched: sched}
}

// Visible reports whether the backdrop is enabled.
func (b *Backdrop) Visible() bool { return b.cfg.Visible }

// Appended reports whether the backdrop element is in the document.
func (b *Backdrop) Appended() bool { return b.appended }

// Element returns the backdrop element, or nil before the first Show.
func (b *Backdrop) Element() dom.Element { return b.el }

// Show appends the backdrop, adds the show class and calls done once the
// transition settles.
func (b *Backdrop) Show(done func()) {
	if !b.cfg.Visible {
		run(done)
		return
	}
	b.settle()
	b.append()
	b.el.AddClass("show")
	b.pending = b.sched.Queue(b.el, func() { run(done) }, b.cfg.Animated)
}

// Hide removes the show class and, once settled, detaches the backdrop and
// calls done.
func (b *Backdrop) Hide(done func()) {
	if !b.cfg.Visible {
		run(done)
		return
	}
	b.settle()
	if !b.appended {
		run(done)
		return
	}
	b.el.RemoveClass("show")
	b.pending = b.sched.Queue(b.el, func() {
		b.Dispose()
		run(done)
	}, b.cfg.Animated)
}

// Dispose detaches the backdrop immediately.
func (b *Backdrop) Dispose() {
	if !b.appended {
		return
	}
	b.appended = false
	b.settle()
	b.el.Events().RemoveEventListenerByID(dom.EventClick, b.click)
	b.el.Remove()
}

func (b *Backdrop) append() {
	if b.appended {
		return
	}
	if b.el == nil {
		b.el = b.doc.CreateElement("div")
		b.el.AddClass(b.cfg.ClassName)
		if b.cfg.Animated {
			b.el.AddClass("fade")
		}
	}
	b.cfg.Root.AppendChild(b.el)
	b.click = b.el.Events().AddEventListener(dom.EventClick, func(*eventloop.Event) {
		if b.cfg.OnClick != nil {
			b.cfg.OnClick()
		}
	})
	b.appended = true
}

// settle flushes a transition still in flight.
func (b *Backdrop) settle() {
	if p := b.pending; p != nil {
		b.pending = nil
		p.Flush()
	}
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
