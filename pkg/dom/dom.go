// Package dom defines the host-environment surface consumed by the toggle
// runtime and ships an in-memory implementation of it.
//
// The runtime never owns host nodes. Widgets keep non-owning [Element]
// references and talk to the host only through the interfaces below, so any
// environment that can answer them (a browser bridge, a terminal UI, the
// in-memory [Tree]) can drive the widgets.
//
// # Events
//
// Every element and the document carry an [eventloop.EventTarget]. [Dispatch]
// delivers an event to the element and then bubbles it through its ancestors
// and finally to the document, mirroring DOM propagation. Event payloads travel
// as [EventDetail] values attached to an [eventloop.CustomEvent].
package dom

import (
	eventloop "github.com/joeycumines/go-eventloop"
)

// ElementID is a stable identifier for a host node. It never changes for the
// lifetime of the node and is the key used by the instance registry.
type ElementID string

// Element is a host node as seen by the runtime.
type Element interface {
	// ID returns the node's stable identifier.
	ID() ElementID
	// TagName returns the upper-case tag name (e.g. "DIV", "A").
	TagName() string

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	// Classes returns the class list in insertion order.
	Classes() []string

	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Attrs returns a copy of all attributes.
	Attrs() map[string]string

	// Style returns an inline style property, or "" when unset.
	Style(prop string) string
	// SetStyle sets an inline style property; an empty value removes it.
	SetStyle(prop, value string)

	// Parent returns the parent element, or nil for detached nodes and the body.
	Parent() Element
	Children() []Element
	AppendChild(child Element)
	// Remove detaches the node from its parent.
	Remove()
	// Contains reports whether other is this node or one of its descendants.
	Contains(other Element) bool
	// Matches reports whether the node matches a selector.
	Matches(selector string) bool
	// Closest returns the nearest inclusive ancestor matching selector.
	Closest(selector string) Element

	Focus()
	Blur()
	// IsVisible reports whether the node is attached and not hidden by
	// display or visibility rules on itself or its ancestors.
	IsVisible() bool

	Events() *eventloop.EventTarget
	Document() Document
}

// Document is the host document the runtime operates in.
type Document interface {
	Body() Element
	Events() *eventloop.EventTarget
	CreateElement(tag string) Element
	// QuerySelector returns the first attached element matching selector, or nil.
	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element
	// ActiveElement returns the focused element, or nil when focus rests on
	// the document itself.
	ActiveElement() Element
	// ScrollbarWidth returns the width of the document scrollbar in pixels.
	ScrollbarWidth() float64
}

// IsDisabled reports whether el should ignore activation: it is nil, carries
// the disabled class, or has a disabled attribute not set to "false".
func IsDisabled(el Element) bool {
	if el == nil {
		return true
	}
	if el.HasClass("disabled") {
		return true
	}
	if v, ok := el.Attr("disabled"); ok {
		return v != "false"
	}
	return false
}

// IsAnchor reports whether el navigates on click by default.
func IsAnchor(el Element) bool {
	if el == nil {
		return false
	}
	switch el.TagName() {
	case "A", "AREA":
		return true
	}
	return false
}

// Same reports whether a and b refer to the same node. Nil values are equal
// only to each other.
func Same(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
