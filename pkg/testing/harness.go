package testing

import (
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/transition"
)

// SettleLimit bounds how far Settle advances the clock.
const SettleLimit = time.Minute

// Harness is an isolated runtime for widget tests: an in-memory document,
// virtual timers, a runtime context and a notification recorder.
type Harness struct {
	Tree     *dom.Tree
	Timers   *transition.VirtualTimers
	Ctx      *component.Context
	Recorder *Recorder
}

// HarnessOption customizes a harness.
type HarnessOption func(*component.Options)

// WithDefaults applies per-widget defaults to the runtime.
func WithDefaults(d config.Defaults) HarnessOption {
	return func(o *component.Options) { o.Defaults = d }
}

// WithLogger routes runtime logs to l.
func WithLogger(l logrus.FieldLogger) HarnessOption {
	return func(o *component.Options) { o.Logger = l }
}

// NewHarness builds a harness and removes its document listeners when the
// test ends.
func NewHarness(t testing.TB, opts ...HarnessOption) *Harness {
	t.Helper()
	tree := dom.NewTree()
	timers := transition.NewVirtualTimers()
	o := component.Options{Timers: timers, Padding: -1}
	for _, opt := range opts {
		opt(&o)
	}
	ctx := component.NewContext(tree, o)
	h := &Harness{
		Tree:     tree,
		Timers:   timers,
		Ctx:      ctx,
		Recorder: NewRecorder(ctx.Bus),
	}
	t.Cleanup(func() {
		h.Recorder.Stop()
		ctx.Uninstall()
	})
	return h
}

// Add creates an element under parent (the body when nil). attrs may carry
// "class" and any other attribute; they are applied in sorted order.
func (h *Harness) Add(parent dom.Element, tag string, attrs map[string]string) *dom.Node {
	n := h.Tree.NewElement(tag)
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		n.SetAttr(k, attrs[k])
	}
	if parent == nil {
		parent = h.Tree.Body()
	}
	parent.AppendChild(n)
	return n
}

// Advance moves virtual time forward by d.
func (h *Harness) Advance(d time.Duration) int {
	return h.Timers.Advance(d)
}

// Settle runs every pending timer, up to SettleLimit of virtual time.
func (h *Harness) Settle() {
	for range 64 {
		if h.Timers.Pending() == 0 {
			return
		}
		h.Timers.Advance(SettleLimit)
	}
}

// Click dispatches a click on el.
func (h *Harness) Click(el dom.Element) bool { return dom.Click(el) }

// Key dispatches a keydown on el.
func (h *Harness) Key(el dom.Element, key string) bool { return dom.KeyDown(el, key) }

// Load dispatches the document load event.
func (h *Harness) Load() {
	dom.DispatchDocument(h.Tree, dom.NewEvent(dom.EventLoad, false, nil))
}
