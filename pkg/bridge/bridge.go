// Package bridge exposes widgets through a single-argument call convention
// for legacy integrations.
//
// Invoking a plugin with a map applies it as configuration to a created or
// reused instance for each element. Invoking it with a string runs the named
// command from a closed set. Names that are not commands of the widget,
// names starting with an underscore and "constructor" are rejected with an
// [errors.UnknownMethodError] before any instance is touched.
package bridge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/registry"
)

// Command is a bridge command.
type Command int

const (
	CommandToggle Command = iota + 1
	CommandShow
	CommandHide
	CommandClose
	CommandDispose
)

var commandNames = map[Command]string{
	CommandToggle:  "toggle",
	CommandShow:    "show",
	CommandHide:    "hide",
	CommandClose:   "close",
	CommandDispose: "dispose",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand returns the command named name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Handler runs a command on inst. el is the element the plugin was invoked
// on and is passed to widgets as the related element.
type Handler func(inst registry.Instance, el dom.Element) error

// Plugin is one widget's bridge.
type Plugin struct {
	Kind registry.Kind

	// Create returns the instance bound to el, creating it with config when
	// none exists.
	Create func(el dom.Element, config map[string]any) (registry.Instance, error)

	// Commands are the commands the widget supports.
	Commands map[Command]Handler
}

// Names returns the supported command names, sorted.
func (p *Plugin) Names() []string {
	names := make([]string, 0, len(p.Commands))
	for c := range p.Commands {
		names = append(names, c.String())
	}
	slices.Sort(names)
	return names
}

// Invoke applies arg to every element: nil or a map creates or reuses an
// instance, a string runs a command. It stops at the first error.
func (p *Plugin) Invoke(elements []dom.Element, arg any) error {
	var (
		cmd Command
		cfg map[string]any
	)
	switch v := arg.(type) {
	case nil:
	case map[string]any:
		cfg = v
	case string:
		c, err := p.command(v)
		if err != nil {
			return err
		}
		cmd = c
	default:
		return &errors.ToggleError{
			Op:     "bridge.Invoke",
			Kind:   errors.KindCommand,
			Widget: string(p.Kind),
			Err:    fmt.Errorf("%w: unsupported argument of type %T", errors.ErrType, arg),
		}
	}

	for _, el := range elements {
		inst, err := p.Create(el, cfg)
		if err != nil {
			return err
		}
		if cmd == 0 {
			continue
		}
		if err := p.Commands[cmd](inst, el); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) command(name string) (Command, error) {
	private := strings.HasPrefix(name, "_") || name == "constructor"
	if c, ok := ParseCommand(name); ok && !private {
		if _, supported := p.Commands[c]; supported {
			return c, nil
		}
	}
	err := &errors.UnknownMethodError{Widget: string(p.Kind), Method: name}
	if !private {
		err.Suggestion = p.suggest(name)
	}
	return 0, err
}

// suggest returns the closest supported command name, or "".
func (p *Plugin) suggest(name string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(strings.ToLower(name), p.Names())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Plugins maps widget kinds to their bridges.
type Plugins map[registry.Kind]*Plugin

// Register adds p.
func (ps Plugins) Register(p *Plugin) { ps[p.Kind] = p }

// Invoke finds the plugin for kind and invokes it.
func (ps Plugins) Invoke(kind registry.Kind, elements []dom.Element, arg any) error {
	p, ok := ps[kind]
	if !ok {
		return &errors.ToggleError{
			Op:     "bridge.Invoke",
			Kind:   errors.KindCommand,
			Widget: string(kind),
			Err:    fmt.Errorf("%w: no plugin registered", errors.ErrType),
		}
	}
	return p.Invoke(elements, arg)
}
