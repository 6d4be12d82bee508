package dom

import (
	eventloop "github.com/joeycumines/go-eventloop"
)

// Host event types dispatched by the in-memory tree and consumed by widgets.
const (
	EventClick         = "click"
	EventKeyDown       = "keydown"
	EventFocusIn       = "focusin"
	EventFocusOut      = "focusout"
	EventTransitionEnd = "transitionend"
	EventLoad          = "load"
)

// KeyEscape is the key name carried by escape keydown events.
const KeyEscape = "Escape"

// EventDetail is the payload attached to every event dispatched through [Dispatch].
type EventDetail struct {
	// Target is the node the event originated on; nil means the document.
	Target Element
	// Related is an optional secondary node (e.g. the trigger of a show).
	Related Element
	// Key is the key name for keyboard events.
	Key string
}

// NewEvent builds a bubbling event carrying detail.
func NewEvent(eventType string, cancelable bool, detail *EventDetail) *eventloop.Event {
	if detail == nil {
		detail = &EventDetail{}
	}
	return eventloop.NewCustomEventWithOptions(eventType, detail, true, cancelable).EventPtr()
}

// Detail returns the [EventDetail] of ev, or an empty detail when ev was not
// built by [NewEvent].
func Detail(ev *eventloop.Event) *EventDetail {
	if ev != nil {
		if d, ok := ev.Detail().(*EventDetail); ok {
			return d
		}
	}
	return &EventDetail{}
}

// Dispatch delivers ev to target, then to each ancestor, then to the document
// when target is attached. Propagation stops early if a listener stops it.
// The result follows [eventloop.EventTarget.DispatchEvent]: false only when
// the event is cancelable and a listener prevented its default.
func Dispatch(target Element, ev *eventloop.Event) bool {
	if target == nil || ev == nil {
		return true
	}
	node := target
	var last Element
	for node != nil {
		node.Events().DispatchEvent(ev)
		if ev.IsPropagationStopped() {
			return !ev.Cancelable || !ev.DefaultPrevented
		}
		last = node
		node = node.Parent()
	}
	if doc := target.Document(); doc != nil && last != nil && Same(last, doc.Body()) {
		doc.Events().DispatchEvent(ev)
	}
	return !ev.Cancelable || !ev.DefaultPrevented
}

// DispatchDocument delivers ev to the document target only.
func DispatchDocument(doc Document, ev *eventloop.Event) bool {
	if doc == nil || ev == nil {
		return true
	}
	doc.Events().DispatchEvent(ev)
	return !ev.Cancelable || !ev.DefaultPrevented
}

// Click dispatches a cancelable click on el and reports whether its default
// action was left intact.
func Click(el Element) bool {
	return Dispatch(el, NewEvent(EventClick, true, &EventDetail{Target: el}))
}

// KeyDown dispatches a cancelable keydown for key on el.
func KeyDown(el Element, key string) bool {
	return Dispatch(el, NewEvent(EventKeyDown, true, &EventDetail{Target: el, Key: key}))
}

// TransitionEnd dispatches the animation-completion signal on el.
func TransitionEnd(el Element) {
	Dispatch(el, NewEvent(EventTransitionEnd, false, &EventDetail{Target: el}))
}
