// Package scrollbar locks and restores document scrolling.
package scrollbar

import (
	"strconv"
	"strings"

	"github.com/go-drift/toggle/pkg/dom"
)

// FixedSelector matches elements that need the scrollbar width compensated
// while scrolling is locked.
const FixedSelector = ".fixed-top, .fixed-bottom, .is-fixed"

type saved struct {
	el    dom.Element
	prop  string
	value string
}

// Helper hides the body scrollbar and compensates for its width.
//
// Hide and Reset act on the document directly. Widgets that can overlap (one
// hiding while another shows) share a Helper and go through Acquire and
// Release instead: the first holder locks, the last one to release restores.
type Helper struct {
	doc     dom.Document
	saved   []saved
	locked  bool
	holders map[dom.ElementID]struct{}
}

// New returns a helper for doc.
func New(doc dom.Document) *Helper {
	return &Helper{doc: doc, holders: make(map[dom.ElementID]struct{})}
}

// Acquire locks scrolling on behalf of owner. Acquiring twice for the same
// owner counts once.
func (h *Helper) Acquire(owner dom.Element) {
	if _, ok := h.holders[owner.ID()]; ok {
		return
	}
	h.holders[owner.ID()] = struct{}{}
	h.Hide()
}

// Release drops owner's hold and restores scrolling once no holder is left.
// It reports whether owner held the lock.
func (h *Helper) Release(owner dom.Element) bool {
	if _, ok := h.holders[owner.ID()]; !ok {
		return false
	}
	delete(h.holders, owner.ID())
	if len(h.holders) == 0 {
		h.Reset()
	}
	return true
}

// Holds reports whether owner holds the lock.
func (h *Helper) Holds(owner dom.Element) bool {
	_, ok := h.holders[owner.ID()]
	return ok
}

// Holders returns the number of owners holding the lock.
func (h *Helper) Holders() int { return len(h.holders) }

// Locked reports whether Hide is in effect.
func (h *Helper) Locked() bool { return h.locked }

// Hide locks scrolling. Calling it again while locked does nothing.
func (h *Helper) Hide() {
	if h.locked {
		return
	}
	h.locked = true
	width := h.doc.ScrollbarWidth()
	body := h.doc.Body()
	h.set(body, "overflow", "hidden")
	if width <= 0 {
		return
	}
	h.pad(body, width)
	for _, el := range h.doc.QuerySelectorAll(FixedSelector) {
		h.pad(el, width)
	}
}

// Reset restores every value changed by Hide.
func (h *Helper) Reset() {
	if !h.locked {
		return
	}
	for i := len(h.saved) - 1; i >= 0; i-- {
		s := h.saved[i]
		s.el.SetStyle(s.prop, s.value)
	}
	h.saved = nil
	h.locked = false
}

func (h *Helper) set(el dom.Element, prop, value string) {
	h.saved = append(h.saved, saved{el: el, prop: prop, value: el.Style(prop)})
	el.SetStyle(prop, value)
}

func (h *Helper) pad(el dom.Element, width float64) {
	current := parsePixels(el.Style("padding-right"))
	h.set(el, "padding-right", formatPixels(current+width))
}

func parsePixels(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func formatPixels(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}
