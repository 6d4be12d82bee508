package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/toggle/pkg/bridge"
	"github.com/go-drift/toggle/pkg/component"
	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/events"
	"github.com/go-drift/toggle/pkg/loop"
	"github.com/go-drift/toggle/pkg/page"
	"github.com/go-drift/toggle/pkg/transition"
)

// settleLimit bounds how much virtual time runs after the script.
const settleLimit = time.Minute

// pollInterval is how often the loop runtime is checked for idleness.
const pollInterval = 10 * time.Millisecond

// session is one page running on one runtime.
type session struct {
	page    *page.Page
	tree    *dom.Tree
	ctx     *component.Context
	plugins bridge.Plugins
	trace   []events.Record
}

func newSession(p *page.Page, timers transition.Timers, s Settings, log logrus.FieldLogger) (*session, error) {
	defaults, err := s.WidgetDefaults(p.WidgetDefaults())
	if err != nil {
		return nil, err
	}
	tree := p.Build()
	ctx := component.NewContext(tree, component.Options{
		Timers:   timers,
		Padding:  s.Transition.Padding,
		Logger:   log,
		Defaults: defaults,
	})
	ss := &session{page: p, tree: tree, ctx: ctx}
	ctx.Bus.Tap(func(rec events.Record) { ss.trace = append(ss.trace, rec) })
	ss.plugins = page.Install(ctx)
	return ss, nil
}

func (s *session) load() {
	dom.DispatchDocument(s.tree, dom.NewEvent(dom.EventLoad, false, nil))
}

// busy reports whether any instance still waits on a transition.
func (s *session) busy() bool {
	for _, inst := range s.ctx.Registry.All() {
		if p, ok := inst.(interface{ Pending() bool }); ok && p.Pending() {
			return true
		}
	}
	return false
}

func (s *session) runner(log logrus.FieldLogger) *page.Runner {
	return &page.Runner{
		Ctx:     s.ctx,
		Plugins: s.plugins,
		Log:     log.WithField("page", s.page.Title),
	}
}

// runVirtual runs p on virtual timers. Wait steps advance the clock and any
// transition still pending after the script is settled.
func runVirtual(ctx context.Context, p *page.Page, st Settings, log logrus.FieldLogger) (*session, error) {
	timers := transition.NewVirtualTimers()
	s, err := newSession(p, timers, st, log)
	if err != nil {
		return nil, err
	}
	s.load()
	r := s.runner(log)
	r.Wait = func(_ context.Context, d time.Duration) error {
		timers.Advance(d)
		return nil
	}
	if err := r.Run(ctx, p.Script); err != nil {
		return s, err
	}
	for range 64 {
		if timers.Pending() == 0 {
			break
		}
		timers.Advance(settleLimit)
	}
	return s, nil
}

// runLoop runs p on a real event loop. The loop and the script run in one
// errgroup; the script shuts the loop down once the runtime is idle.
func runLoop(ctx context.Context, p *page.Page, st Settings, log logrus.FieldLogger) (*session, error) {
	d, err := loop.New(log.WithField("page", p.Title))
	if err != nil {
		return nil, err
	}

	var s *session
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(gctx) })
	g.Go(func() error {
		defer func() {
			sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			_ = d.Shutdown(sctx)
		}()
		if err := d.Do(gctx, func() error {
			var err error
			if s, err = newSession(p, d, st, log); err != nil {
				return err
			}
			s.load()
			return nil
		}); err != nil {
			return err
		}

		r := s.runner(log)
		r.Do = d.Do
		r.Wait = d.Sleep
		if err := r.Run(gctx, p.Script); err != nil {
			return err
		}
		return idle(gctx, d, s, st.Transition.Padding)
	})
	err = g.Wait()
	return s, err
}

// idle waits until no instance is mid-transition, then one more padding so
// owned elements such as backdrops finish too.
func idle(ctx context.Context, d *loop.Driver, s *session, padding time.Duration) error {
	for {
		var busy bool
		if err := d.Do(ctx, func() error {
			busy = s.busy()
			return nil
		}); err != nil {
			return err
		}
		if !busy {
			return d.Sleep(ctx, padding)
		}
		if err := d.Sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
}
