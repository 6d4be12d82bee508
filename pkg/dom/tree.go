package dom

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	eventloop "github.com/joeycumines/go-eventloop"
)

// Tree is an in-memory [Document]. It is not safe for concurrent use; like a
// browser document it belongs to a single event loop goroutine.
type Tree struct {
	body      *Node
	events    *eventloop.EventTarget
	active    *Node
	scrollbar float64
	selectors *selectorCache
}

var _ Document = (*Tree)(nil)

// NewTree creates an empty document with a BODY element.
func NewTree() *Tree {
	t := &Tree{
		events:    eventloop.NewEventTarget(),
		selectors: newSelectorCache(),
	}
	t.body = t.newNode("body")
	return t
}

// Node is an element of a [Tree].
type Node struct {
	id       ElementID
	tree     *Tree
	tag      string
	classes  []string
	attrs    map[string]string
	style    map[string]string
	parent   *Node
	children []*Node
	events   *eventloop.EventTarget
}

var _ Element = (*Node)(nil)

func (t *Tree) newNode(tag string) *Node {
	return &Node{
		id:     ElementID(uuid.NewString()),
		tree:   t,
		tag:    strings.ToUpper(tag),
		attrs:  make(map[string]string),
		style:  make(map[string]string),
		events: eventloop.NewEventTarget(),
	}
}

// Body returns the root element.
func (t *Tree) Body() Element { return t.body }

// Events returns the document event target.
func (t *Tree) Events() *eventloop.EventTarget { return t.events }

// CreateElement returns a new detached element owned by this tree.
func (t *Tree) CreateElement(tag string) Element { return t.newNode(tag) }

// NewElement is CreateElement with the concrete type, for building fixtures.
func (t *Tree) NewElement(tag string) *Node { return t.newNode(tag) }

// SetScrollbarWidth sets the value reported by ScrollbarWidth.
func (t *Tree) SetScrollbarWidth(w float64) { t.scrollbar = w }

// ScrollbarWidth returns the configured scrollbar width.
func (t *Tree) ScrollbarWidth() float64 { return t.scrollbar }

// ActiveElement returns the focused element, or nil.
func (t *Tree) ActiveElement() Element {
	if t.active == nil {
		return nil
	}
	return t.active
}

// QuerySelector returns the first attached element in document order matching selector.
func (t *Tree) QuerySelector(selector string) Element {
	s := t.selectors.get(selector)
	if s == nil {
		return nil
	}
	var found *Node
	t.body.walk(func(n *Node) bool {
		if s.Match(n) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

// QuerySelectorAll returns every attached element matching selector in document order.
func (t *Tree) QuerySelectorAll(selector string) []Element {
	s := t.selectors.get(selector)
	if s == nil {
		return nil
	}
	var out []Element
	t.body.walk(func(n *Node) bool {
		if s.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// GetElementByID returns the attached element whose id attribute equals id.
func (t *Tree) GetElementByID(id string) *Node {
	var found *Node
	t.body.walk(func(n *Node) bool {
		if v, ok := n.attrs["id"]; ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants depth-first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

func (n *Node) ID() ElementID                  { return n.id }
func (n *Node) TagName() string                { return n.tag }
func (n *Node) Events() *eventloop.EventTarget { return n.events }
func (n *Node) Document() Document             { return n.tree }

func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

func (n *Node) AddClass(names ...string) {
	for _, name := range names {
		if name != "" && !n.HasClass(name) {
			n.classes = append(n.classes, name)
		}
	}
}

func (n *Node) RemoveClass(names ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

func (n *Node) Classes() []string { return slices.Clone(n.classes) }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) SetAttr(name, value string) {
	if name == "class" {
		n.classes = nil
		n.AddClass(strings.Fields(value)...)
		return
	}
	n.attrs[name] = value
}

func (n *Node) RemoveAttr(name string) { delete(n.attrs, name) }

func (n *Node) Attrs() map[string]string { return maps.Clone(n.attrs) }

func (n *Node) Style(prop string) string { return n.style[prop] }

// Styles returns a copy of the inline style properties.
func (n *Node) Styles() map[string]string { return maps.Clone(n.style) }

func (n *Node) SetStyle(prop, value string) {
	if value == "" {
		delete(n.style, prop)
		return
	}
	n.style[prop] = value
}

func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// AppendChild moves child under n. Children owned by another tree are ignored.
func (n *Node) AppendChild(child Element) {
	c, ok := child.(*Node)
	if !ok || c.tree != n.tree || c == n || c.Contains(n) {
		return
	}
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
}

// Append is AppendChild for fixtures; it returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
	if a := n.tree.active; a != nil && n.Contains(a) {
		n.tree.active = nil
	}
}

func (n *Node) Contains(other Element) bool {
	for o := other; o != nil; o = o.Parent() {
		if o.ID() == n.id {
			return true
		}
	}
	return false
}

func (n *Node) Matches(selector string) bool {
	return n.tree.selectors.get(selector).Match(n)
}

func (n *Node) Closest(selector string) Element {
	s := n.tree.selectors.get(selector)
	for p := n; p != nil; p = p.parent {
		if s.Match(p) {
			return p
		}
	}
	return nil
}

// attached reports whether n is reachable from the body.
func (n *Node) attached() bool {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p == n.tree.body
}

// Focus makes n the active element and dispatches focusout on the previous
// element and a bubbling focusin on n. Detached nodes cannot take focus.
func (n *Node) Focus() {
	if !n.attached() || n.tree.active == n {
		return
	}
	if prev := n.tree.active; prev != nil {
		n.tree.active = nil
		Dispatch(prev, NewEvent(EventFocusOut, false, &EventDetail{Target: prev, Related: n}))
	}
	n.tree.active = n
	Dispatch(n, NewEvent(EventFocusIn, false, &EventDetail{Target: n}))
}

// Blur drops focus from n if it holds it.
func (n *Node) Blur() {
	if n.tree.active != n {
		return
	}
	n.tree.active = nil
	Dispatch(n, NewEvent(EventFocusOut, false, &EventDetail{Target: n}))
}

func (n *Node) IsVisible() bool {
	if !n.attached() {
		return false
	}
	visibilityDecided := false
	for p := n; p != nil; p = p.parent {
		if p.style["display"] == "none" {
			return false
		}
		if _, hidden := p.attrs["hidden"]; hidden {
			return false
		}
		if !visibilityDecided {
			switch p.style["visibility"] {
			case "hidden":
				return false
			case "visible":
				visibilityDecided = true
			}
		}
	}
	return true
}
