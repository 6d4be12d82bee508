// Package config resolves widget configuration.
//
// A widget declares a [Schema]: its option names, the set of types each
// option accepts, and defaults. [Resolve] merges, in increasing precedence,
// the schema defaults, optional extra layers (typically loaded with
// [LoadDefaults]), the data attributes on the element, and a caller
// override, then validates every declared option. Unknown options are
// carried through unvalidated.
package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
)

// Type is a set of accepted value types.
type Type uint8

const (
	Bool Type = 1 << iota
	String
	Number
	Element
	Null
)

var typeNames = []struct {
	t    Type
	name string
}{
	{Bool, "boolean"},
	{String, "string"},
	{Number, "number"},
	{Element, "element"},
	{Null, "null"},
}

// String renders the set as "boolean|string".
func (t Type) String() string {
	var parts []string
	for _, n := range typeNames {
		if t&n.t != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// TypeOf returns the single type of v, or 0 when v has no declared type.
func TypeOf(v any) Type {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case string:
		return String
	case float64:
		return Number
	case dom.Element:
		return Element
	}
	return 0
}

// typeName names the runtime type of v for error messages.
func typeName(v any) string {
	if t := TypeOf(v); t != 0 {
		return t.String()
	}
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

// Option declares one configuration option.
type Option struct {
	Name    string
	Type    Type
	Default any
}

// Schema is the set of options a widget accepts.
type Schema struct {
	Widget  string
	Options []Option
}

// Extend returns a copy of s with opts appended.
func (s Schema) Extend(opts ...Option) Schema {
	out := Schema{Widget: s.Widget, Options: make([]Option, 0, len(s.Options)+len(opts))}
	out.Options = append(out.Options, s.Options...)
	out.Options = append(out.Options, opts...)
	return out
}

// Resolve merges and validates a configuration for el. override may be a
// map[string]any; any other value (including a command name) contributes
// nothing. el may be nil.
func Resolve(schema Schema, el dom.Element, override any, layers ...map[string]any) (Values, error) {
	merged := make(map[string]any, len(schema.Options))
	for _, opt := range schema.Options {
		merged[opt.Name] = normalize(opt.Default)
	}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = normalize(v)
		}
	}
	if el != nil {
		maps.Copy(merged, DataAttributes(el))
	}
	if m, ok := override.(map[string]any); ok {
		for k, v := range m {
			merged[k] = normalize(v)
		}
	}

	for _, opt := range schema.Options {
		v := merged[opt.Name]
		if TypeOf(v)&opt.Type == 0 {
			return Values{}, &errors.ConfigTypeError{
				Widget:   schema.Widget,
				Option:   opt.Name,
				Value:    v,
				Expected: opt.Type.String(),
				Got:      typeName(v),
			}
		}
	}
	return Values{widget: schema.Widget, m: merged}, nil
}

// normalize folds the numeric types decoders produce into float64.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}
