package config

import (
	"maps"

	"github.com/go-drift/toggle/pkg/dom"
)

// Values is a resolved configuration. It is immutable.
type Values struct {
	widget string
	m      map[string]any
}

// Widget returns the widget kind the values were resolved for.
func (v Values) Widget() string { return v.widget }

// Raw returns the value of name and whether it is set.
func (v Values) Raw(name string) (any, bool) {
	val, ok := v.m[name]
	return val, ok
}

// Bool returns name as a bool, or false.
func (v Values) Bool(name string) bool {
	b, _ := v.m[name].(bool)
	return b
}

// String returns name as a string, or "".
func (v Values) String(name string) string {
	s, _ := v.m[name].(string)
	return s
}

// Number returns name as a float64, or 0.
func (v Values) Number(name string) float64 {
	f, _ := v.m[name].(float64)
	return f
}

// Element returns name as an element, or nil.
func (v Values) Element(name string) dom.Element {
	el, _ := v.m[name].(dom.Element)
	return el
}

// Map returns a copy of every value.
func (v Values) Map() map[string]any {
	return maps.Clone(v.m)
}
