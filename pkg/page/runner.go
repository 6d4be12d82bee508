package page

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/bridge"
	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/registry"
	"github.com/go-drift/toggle/pkg/widgets/alert"
	"github.com/go-drift/toggle/pkg/widgets/offcanvas"
)

// Build creates an in-memory document holding the page body.
func (p *Page) Build() *dom.Tree {
	tree := dom.NewTree()
	tree.SetScrollbarWidth(p.ScrollbarWidth)
	for _, n := range p.Body {
		tree.Body().AppendChild(build(tree, n))
	}
	return tree
}

func build(tree *dom.Tree, n Node) *dom.Node {
	el := tree.NewElement(n.Tag)
	for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
		el.SetAttr(k, n.Attrs[k])
	}
	if n.ID != "" {
		el.SetAttr("id", n.ID)
	}
	if n.Class != "" {
		el.SetAttr("class", n.Class)
	}
	for _, k := range slices.Sorted(maps.Keys(n.Style)) {
		el.SetStyle(k, n.Style[k])
	}
	for _, c := range n.Children {
		el.Append(build(tree, c))
	}
	return el
}

// Runner executes script steps against a runtime.
type Runner struct {
	Ctx     *component.Context
	Plugins bridge.Plugins

	// Do runs fn where the runtime may be touched. Nil calls fn directly.
	Do func(ctx context.Context, fn func() error) error
	// Wait lets d of runtime time pass. Required for wait steps.
	Wait func(ctx context.Context, d time.Duration) error

	Log *logrus.Entry
}

// Run executes steps in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Log != nil {
			r.Log.WithField("step", i).Debug(s.String())
		}
		if err := r.step(ctx, s); err != nil {
			return pageError("page.Run", fmt.Errorf("script[%d] %s: %w", i, s, err))
		}
	}
	return nil
}

func (r *Runner) step(ctx context.Context, s Step) error {
	if s.Action == ActionWait {
		d, err := s.Wait()
		if err != nil {
			return err
		}
		if r.Wait == nil {
			return fmt.Errorf("no clock to wait on")
		}
		return r.Wait(ctx, d)
	}
	do := r.Do
	if do == nil {
		do = func(_ context.Context, fn func() error) error { return fn() }
	}
	return do(ctx, func() error { return r.apply(s) })
}

func (r *Runner) apply(s Step) error {
	doc := r.Ctx.Doc
	target := func() (dom.Element, error) {
		el := doc.QuerySelector(s.Target)
		if el == nil {
			return nil, fmt.Errorf("no element matches %q", s.Target)
		}
		return el, nil
	}

	switch s.Action {
	case ActionClick:
		el, err := target()
		if err != nil {
			return err
		}
		dom.Click(el)
	case ActionFocus:
		el, err := target()
		if err != nil {
			return err
		}
		el.Focus()
	case ActionTransitionEnd:
		el, err := target()
		if err != nil {
			return err
		}
		dom.TransitionEnd(el)
	case ActionKey:
		var el dom.Element
		if s.Target != "" {
			e, err := target()
			if err != nil {
				return err
			}
			el = e
		} else if el = doc.ActiveElement(); el == nil {
			el = doc.Body()
		}
		dom.KeyDown(el, s.Key)
	case ActionInvoke:
		elements := doc.QuerySelectorAll(s.Target)
		if len(elements) == 0 {
			return fmt.Errorf("no element matches %q", s.Target)
		}
		var arg any
		if s.Command != "" {
			arg = s.Command
		} else if s.Config != nil {
			arg = s.Config
		}
		return r.Plugins.Invoke(registry.Kind(s.Widget), elements, arg)
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// Install installs every widget on ctx and returns their bridges.
func Install(ctx *component.Context) bridge.Plugins {
	alert.Install(ctx)
	offcanvas.Install(ctx)
	plugins := bridge.Plugins{}
	plugins.Register(alert.Plugin(ctx))
	plugins.Register(offcanvas.Plugin(ctx))
	return plugins
}
