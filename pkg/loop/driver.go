// Package loop runs a toggle runtime on a real event loop. Every runtime call
// must happen on the loop goroutine; [Driver.Do] hops onto it from any other
// goroutine and [Driver.AfterFunc] provides the wall-clock timers transition
// fallbacks wait on.
package loop

import (
	"context"
	"fmt"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/errors"
	"github.com/go-drift/toggle/pkg/transition"
)

// Driver owns an event loop and its timer API.
type Driver struct {
	loop *eventloop.Loop
	js   *eventloop.JS
	log  *logrus.Entry
}

var _ transition.Timers = (*Driver)(nil)

// New creates a driver. The loop does not run until [Driver.Run].
func New(log *logrus.Entry) (*Driver, error) {
	l, err := eventloop.New()
	if err != nil {
		return nil, fmt.Errorf("loop: create: %w", err)
	}
	js, err := eventloop.NewJS(l)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("loop: timers: %w", err)
	}
	if log == nil {
		lg := logrus.New()
		lg.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(lg)
	}
	return &Driver{loop: l, js: js, log: log.WithField("component", "loop")}, nil
}

// Run blocks running the loop until ctx is done or the driver shuts down.
// Stopping through either is not an error.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Debug("loop running")
	err := d.loop.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, eventloop.ErrLoopTerminated) {
		err = nil
	}
	d.log.WithError(err).Debug("loop stopped")
	return err
}

// AfterFunc schedules fn on the loop after delay, rounded up to whole
// milliseconds. Panics in fn are reported and recovered. It must be called on
// the loop goroutine.
func (d *Driver) AfterFunc(delay time.Duration, fn func()) (stop func()) {
	ms := int((delay + time.Millisecond - 1) / time.Millisecond)
	id, err := d.js.SetTimeout(func() {
		defer errors.Recover("loop.timer")
		fn()
	}, ms)
	if err != nil {
		d.log.WithError(err).Warn("timer not scheduled")
		return func() {}
	}
	return func() { _ = d.js.ClearTimeout(id) }
}

// Do runs fn on the loop and waits for it. A panic in fn is reported and
// returned as a *errors.PanicError.
func (d *Driver) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	if err := d.loop.Submit(func() {
		var err error
		defer func() { done <- err }()
		defer errors.RecoverWithCallback("loop.Do", func(p *errors.PanicError) { err = p })
		err = fn()
	}); err != nil {
		return fmt.Errorf("loop: submit: %w", err)
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sleep waits for delay of loop time. Timers queued on the loop before it
// that fall due within delay have run when Sleep returns.
func (d *Driver) Sleep(ctx context.Context, delay time.Duration) error {
	fired := make(chan struct{})
	if err := d.Do(ctx, func() error {
		d.AfterFunc(delay, func() { close(fired) })
		return nil
	}); err != nil {
		return err
	}
	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains queued work and stops the loop.
func (d *Driver) Shutdown(ctx context.Context) error {
	return d.loop.Shutdown(ctx)
}
