// Package registry maps host elements to live widget instances.
//
// A [Registry] is owned by one runtime context. It holds at most one instance
// per (element, kind) pair and remembers which instance of each kind is
// currently open. It is not safe for concurrent use; all calls happen on the
// runtime's goroutine.
package registry

import (
	"fmt"
	"slices"

	"github.com/go-drift/toggle/pkg/dom"
)

// Kind names a widget kind ("alert", "offcanvas").
type Kind string

func (k Kind) String() string { return string(k) }

// Instance is a live widget bound to an element.
type Instance interface {
	Element() dom.Element
	Kind() Kind
}

type key struct {
	id   dom.ElementID
	kind Kind
}

// Registry is an arena of widget instances.
type Registry struct {
	entries map[key]Instance
	order   []key
	open    map[Kind]Instance
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[key]Instance),
		open:    make(map[Kind]Instance),
	}
}

// Get returns the instance of kind bound to el.
func (r *Registry) Get(el dom.Element, kind Kind) (Instance, bool) {
	if el == nil {
		return nil, false
	}
	inst, ok := r.entries[key{el.ID(), kind}]
	return inst, ok
}

// Put binds inst to its element, replacing any previous instance of the same
// kind.
func (r *Registry) Put(inst Instance) {
	k := key{inst.Element().ID(), inst.Kind()}
	if _, exists := r.entries[k]; !exists {
		r.order = append(r.order, k)
	}
	r.entries[k] = inst
}

// Remove unbinds the instance of kind from el and reports whether one existed.
// If that instance was marked open, the mark is cleared too.
func (r *Registry) Remove(el dom.Element, kind Kind) bool {
	k := key{el.ID(), kind}
	if _, ok := r.entries[k]; !ok {
		return false
	}
	delete(r.entries, k)
	r.order = slices.DeleteFunc(r.order, func(o key) bool { return o == k })
	if open := r.open[kind]; open != nil && dom.Same(open.Element(), el) {
		delete(r.open, kind)
	}
	return true
}

// GetOrCreate returns the instance of kind bound to el, calling create and
// registering its result when there is none. created reports whether create
// ran successfully.
func (r *Registry) GetOrCreate(el dom.Element, kind Kind, create func() (Instance, error)) (inst Instance, created bool, err error) {
	if inst, ok := r.Get(el, kind); ok {
		return inst, false, nil
	}
	inst, err = create()
	if err != nil {
		return nil, false, err
	}
	r.Put(inst)
	return inst, true, nil
}

// GetOrCreateAs is GetOrCreate for a concrete instance type.
func GetOrCreateAs[T Instance](r *Registry, el dom.Element, kind Kind, create func() (T, error)) (T, error) {
	inst, _, err := r.GetOrCreate(el, kind, func() (Instance, error) {
		return create()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		var zero T
		return zero, &KindMismatchError{Kind: kind, Got: inst}
	}
	return typed, nil
}

// Lookup returns the instance of kind bound to el as T.
func Lookup[T Instance](r *Registry, el dom.Element, kind Kind) (T, bool) {
	inst, ok := r.Get(el, kind)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := inst.(T)
	return typed, ok
}

// MarkOpen records inst as the open instance of its kind.
func (r *Registry) MarkOpen(inst Instance) {
	r.open[inst.Kind()] = inst
}

// ClearOpen clears the open mark for inst's kind if inst holds it.
func (r *Registry) ClearOpen(inst Instance) {
	if open := r.open[inst.Kind()]; open != nil && dom.Same(open.Element(), inst.Element()) {
		delete(r.open, inst.Kind())
	}
}

// Open returns the open instance of kind, or nil.
func (r *Registry) Open(kind Kind) Instance {
	return r.open[kind]
}

// Len returns the number of registered instances.
func (r *Registry) Len() int { return len(r.entries) }

// All returns the registered instances in registration order.
func (r *Registry) All() []Instance {
	out := make([]Instance, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}

// KindMismatchError reports a registered instance of an unexpected type.
type KindMismatchError struct {
	Kind Kind
	Got  Instance
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("registry: %s instance has unexpected type %T", e.Kind, e.Got)
}
