// Package page loads page documents: a markup fixture, widget defaults and
// an interaction script, written in YAML or TOML. The togglectl command runs
// them against an in-memory document.
package page

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/errors"
)

// Page is a parsed page document.
type Page struct {
	// Runtime is the minimum runtime version the page needs ("v1.2.0").
	Runtime        string                    `yaml:"runtime,omitempty" toml:"runtime,omitempty"`
	Title          string                    `yaml:"title,omitempty" toml:"title,omitempty"`
	ScrollbarWidth float64                   `yaml:"scrollbar_width,omitempty" toml:"scrollbar_width,omitempty"`
	Defaults       map[string]map[string]any `yaml:"defaults,omitempty" toml:"defaults,omitempty"`
	Body           []Node                    `yaml:"body" toml:"body"`
	Script         []Step                    `yaml:"script,omitempty" toml:"script,omitempty"`
}

// Node is one element of the markup fixture.
type Node struct {
	Tag      string            `yaml:"tag" toml:"tag"`
	ID       string            `yaml:"id,omitempty" toml:"id,omitempty"`
	Class    string            `yaml:"class,omitempty" toml:"class,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" toml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty" toml:"style,omitempty"`
	Children []Node            `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Action names a script step.
type Action string

const (
	ActionClick         Action = "click"
	ActionKey           Action = "key"
	ActionFocus         Action = "focus"
	ActionWait          Action = "wait"
	ActionInvoke        Action = "invoke"
	ActionTransitionEnd Action = "transitionend"
)

// Step is one scripted interaction.
type Step struct {
	Action Action `yaml:"action" toml:"action"`
	// Target selects the element acted on. Key steps default to the focused
	// element.
	Target string `yaml:"target,omitempty" toml:"target,omitempty"`
	Key    string `yaml:"key,omitempty" toml:"key,omitempty"`
	// Duration is a Go duration ("300ms") for wait steps.
	Duration string `yaml:"duration,omitempty" toml:"duration,omitempty"`
	// Widget, Command and Config drive invoke steps through the bridge.
	Widget  string         `yaml:"widget,omitempty" toml:"widget,omitempty"`
	Command string         `yaml:"command,omitempty" toml:"command,omitempty"`
	Config  map[string]any `yaml:"config,omitempty" toml:"config,omitempty"`
}

// Wait returns the parsed duration of a wait step.
func (s Step) Wait() (time.Duration, error) {
	d, err := time.ParseDuration(s.Duration)
	if err != nil {
		return 0, fmt.Errorf("duration %q: %w", s.Duration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", s.Duration)
	}
	return d, nil
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(string(s.Action))
	if s.Widget != "" {
		b.WriteString(" " + s.Widget)
	}
	if s.Target != "" {
		b.WriteString(" " + s.Target)
	}
	switch {
	case s.Key != "":
		b.WriteString(" " + s.Key)
	case s.Duration != "":
		b.WriteString(" " + s.Duration)
	case s.Command != "":
		b.WriteString(" " + s.Command)
	}
	return b.String()
}

func (s Step) validate() error {
	switch s.Action {
	case ActionClick, ActionFocus, ActionTransitionEnd:
		if s.Target == "" {
			return fmt.Errorf("%s needs a target", s.Action)
		}
	case ActionKey:
		if s.Key == "" {
			return fmt.Errorf("key needs a key")
		}
	case ActionWait:
		_, err := s.Wait()
		return err
	case ActionInvoke:
		if s.Widget == "" || s.Target == "" {
			return fmt.Errorf("invoke needs a widget and a target")
		}
		if s.Command != "" && s.Config != nil {
			return fmt.Errorf("invoke takes a command or a config, not both")
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// WidgetDefaults returns the page's widget defaults.
func (p *Page) WidgetDefaults() config.Defaults {
	if p.Defaults == nil {
		return nil
	}
	return config.NewDefaults(p.Defaults)
}

// Load reads a page document. The format follows the extension: .yaml and
// .yml are YAML, .toml is TOML.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pageError("page.Load", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes and validates a page document in the given format ("yaml",
// "yml" or "toml", with or without a leading dot).
func Parse(data []byte, format string) (*Page, error) {
	var p Page
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, pageError("page.Parse", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, pageError("page.Parse", err)
		}
	default:
		return nil, pageError("page.Parse", fmt.Errorf("unsupported format %q", format))
	}
	if err := p.validate(); err != nil {
		return nil, pageError("page.Parse", err)
	}
	return &p, nil
}

func (p *Page) validate() error {
	if len(p.Body) == 0 {
		return fmt.Errorf("page has no body")
	}
	var check func(path string, nodes []Node) error
	check = func(path string, nodes []Node) error {
		for i, n := range nodes {
			at := fmt.Sprintf("%s[%d]", path, i)
			if strings.TrimSpace(n.Tag) == "" {
				return fmt.Errorf("%s: missing tag", at)
			}
			if err := check(at+".children", n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check("body", p.Body); err != nil {
		return err
	}
	for i, s := range p.Script {
		if err := s.validate(); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}
	return nil
}

func pageError(op string, err error) error {
	return &errors.ToggleError{Op: op, Kind: errors.KindPage, Err: err}
}
