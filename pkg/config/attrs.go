package config

import (
	"strconv"
	"strings"

	"github.com/go-drift/toggle/pkg/dom"
)

// Markup protocol attributes. They address triggers and targets and are
// never read as options.
const (
	AttrToggle  = "data-toggle"
	AttrTarget  = "data-target"
	AttrDismiss = "data-dismiss"
)

const dataPrefix = "data-"

// DataAttributes returns the option attributes of el with camelCase names
// and normalized values.
func DataAttributes(el dom.Element) map[string]any {
	out := make(map[string]any)
	for name, value := range el.Attrs() {
		if !strings.HasPrefix(name, dataPrefix) {
			continue
		}
		switch name {
		case AttrToggle, AttrTarget, AttrDismiss:
			continue
		}
		key := Camel(strings.TrimPrefix(name, dataPrefix))
		if key == "" {
			continue
		}
		out[key] = Normalize(value)
	}
	return out
}

// Camel converts a kebab-case name to camelCase ("show-class" to "showClass").
func Camel(name string) string {
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = sb.Len() > 0
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// Normalize converts an attribute string to its typed value: "true" and
// "false" become bools, decimal numbers become float64, "" and "null" become
// nil, and anything else stays a string.
func Normalize(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	case "", "null":
		return nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == value {
		return f
	}
	return value
}
