// Package focus provides focus trapping and focus return for widgets.
package focus

import (
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/dom"
)

// Trap keeps focus inside one element. It owns at most one document focusin
// listener at a time, so widgets that trap focus share one Trap per document:
// activating it for a new element takes the listener over from the previous
// owner.
type Trap struct {
	doc      dom.Document
	el       dom.Element
	listener eventloop.ListenerID
	active   bool
}

// NewTrap creates an inactive trap for doc.
func NewTrap(doc dom.Document) *Trap {
	return &Trap{doc: doc}
}

// Activate traps focus in el and focuses it. The installed listener is
// removed first, whichever element it was trapping.
func (t *Trap) Activate(el dom.Element) {
	t.Deactivate()
	t.el = el
	t.listener = t.doc.Events().AddEventListener(dom.EventFocusIn, func(ev *eventloop.Event) {
		target := dom.Detail(ev).Target
		if target == nil || dom.Same(target, t.el) || t.el.Contains(target) {
			return
		}
		t.el.Focus()
	})
	t.active = true
	el.Focus()
}

// Release deactivates the trap if it is trapping el. It reports whether the
// listener was removed; a release by a previous owner leaves the current one
// in place.
func (t *Trap) Release(el dom.Element) bool {
	if !t.Holds(el) {
		return false
	}
	t.Deactivate()
	return true
}

// Holds reports whether the trap is active on el.
func (t *Trap) Holds(el dom.Element) bool {
	return t.active && el != nil && dom.Same(t.el, el)
}

// Deactivate removes the focusin listener. It is a no-op when inactive.
func (t *Trap) Deactivate() {
	if !t.active {
		return
	}
	t.doc.Events().RemoveEventListenerByID(dom.EventFocusIn, t.listener)
	t.active = false
	t.el = nil
}

// Active reports whether the trap is installed.
func (t *Trap) Active() bool { return t.active }

// Element returns the trapped element, or nil.
func (t *Trap) Element() dom.Element { return t.el }

// ReturnTo focuses el if it is visible.
func ReturnTo(el dom.Element) bool {
	if el == nil || !el.IsVisible() {
		return false
	}
	el.Focus()
	return true
}
