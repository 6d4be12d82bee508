package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults holds per-widget option overrides keyed by widget kind.
//
// Example YAML:
//
//	offcanvas:
//	  backdrop: false
//	  showClass: open
type Defaults map[string]map[string]any

// For returns the overrides for widget, or nil.
func (d Defaults) For(widget string) map[string]any {
	if d == nil {
		return nil
	}
	return d[widget]
}

// LoadDefaults reads a defaults file. The format follows the extension:
// .yaml and .yml are YAML, .toml is TOML.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefaults(data, filepath.Ext(path))
}

// ParseDefaults decodes data in the given format ("yaml", "yml" or "toml",
// with or without a leading dot).
func ParseDefaults(data []byte, format string) (Defaults, error) {
	var raw map[string]map[string]any
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse defaults: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse defaults: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse defaults: unsupported format %q", format)
	}
	return NewDefaults(raw), nil
}

// NewDefaults builds defaults from decoded per-widget option maps,
// normalizing numbers to float64.
func NewDefaults(raw map[string]map[string]any) Defaults {
	out := make(Defaults, len(raw))
	for widget, opts := range raw {
		layer := make(map[string]any, len(opts))
		for k, v := range opts {
			layer[k] = normalize(v)
		}
		out[widget] = layer
	}
	return out
}
