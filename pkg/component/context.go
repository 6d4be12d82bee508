// Package component holds the runtime context shared by every widget and the
// base embedded by widget instances.
package component

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/registry"
	"github.com/go-drift/toggle/pkg/transition"
)

// Options configures a [Context].
type Options struct {
	// Timers drives transition fallbacks. Required.
	Timers transition.Timers
	// Padding is added to declared transition durations. Negative selects
	// transition.DefaultPadding.
	Padding time.Duration
	// Logger receives runtime logs. Nil discards them.
	Logger logrus.FieldLogger
	// Defaults are per-widget option overrides applied below markup attributes.
	Defaults config.Defaults
}

// Context is one runtime: a document, its bus, scheduler and instance arena.
// Widgets installed on a context share these. A Context must be used from a
// single goroutine.
type Context struct {
	Doc       dom.Document
	Bus       *events.Bus
	Scheduler *transition.Scheduler
	Registry  *registry.Registry
	Log       *logrus.Entry
	Defaults  config.Defaults

	installed map[string]*events.Subscription
	shared    map[string]any
}

// NewContext creates a runtime for doc.
func NewContext(doc dom.Document, opts Options) *Context {
	var log *logrus.Entry
	if opts.Logger != nil {
		log = opts.Logger.WithField("component", "toggle")
	} else {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Context{
		Doc:       doc,
		Bus:       events.NewBus(doc, log),
		Scheduler: transition.NewScheduler(opts.Timers, opts.Padding, log),
		Registry:  registry.New(),
		Log:       log,
		Defaults:  opts.Defaults,
		installed: make(map[string]*events.Subscription),
		shared:    make(map[string]any),
	}
}

// Install registers a document-scoped listener once per key. It reports
// whether install ran.
func (c *Context) Install(key string, install func() *events.Subscription) bool {
	if _, ok := c.installed[key]; ok {
		return false
	}
	c.installed[key] = install()
	return true
}

// Installed reports whether key has been installed.
func (c *Context) Installed(key string) bool {
	_, ok := c.installed[key]
	return ok
}

// Uninstall removes every listener registered with Install.
func (c *Context) Uninstall() {
	for key, sub := range c.installed {
		sub.Remove()
		delete(c.installed, key)
	}
}

// SharedAs returns the resource stored under key, creating it on first use.
// Widgets of one kind use it for document-wide state that must have a single
// owner per runtime, such as the focus trap listener. It panics if key holds
// a value of another type.
func SharedAs[T any](c *Context, key string, create func() T) T {
	if v, ok := c.shared[key]; ok {
		return v.(T)
	}
	v := create()
	c.shared[key] = v
	return v
}

// Layers returns the defaults layers for widget, ready for config.Resolve.
func (c *Context) Layers(widget string) []map[string]any {
	if layer := c.Defaults.For(widget); layer != nil {
		return []map[string]any{layer}
	}
	return nil
}
