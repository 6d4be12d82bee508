package loop

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/toggle/pkg/errors"
)

func start(t *testing.T) (*Driver, context.Context) {
	t.Helper()
	d, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	t.Cleanup(func() {
		sctx, scancel := context.WithTimeout(context.Background(), time.Second)
		defer scancel()
		_ = d.Shutdown(sctx)
		cancel()
		<-done
	})
	return d, ctx
}

// capturePanics routes reported panics to the returned channel.
func capturePanics(t *testing.T) <-chan *errors.PanicError {
	t.Helper()
	panics := make(chan *errors.PanicError, 4)
	errors.SetHandler(errors.HandlerFuncs{OnPanic: func(err *errors.PanicError) { panics <- err }})
	t.Cleanup(func() { errors.SetHandler(nil) })
	return panics
}

func TestDo(t *testing.T) {
	d, ctx := start(t)
	ran := false
	if err := d.Do(ctx, func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("Do should run fn before returning")
	}

	want := stderrors.New("boom")
	if err := d.Do(ctx, func() error { return want }); err != want {
		t.Errorf("Do error = %v, want %v", err, want)
	}
}

func TestDoRecoversPanic(t *testing.T) {
	panics := capturePanics(t)
	d, ctx := start(t)
	err := d.Do(ctx, func() error { panic("bad listener") })
	var pe *errors.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PanicError", err)
	}
	if pe.Op != "loop.Do" || pe.Value != "bad listener" {
		t.Errorf("panic error = %+v", pe)
	}
	select {
	case <-panics:
	case <-time.After(time.Second):
		t.Error("panic should be reported to the handler")
	}
}

func TestAfterFunc(t *testing.T) {
	d, ctx := start(t)
	order := make(chan string, 2)
	if err := d.Do(ctx, func() error {
		d.AfterFunc(20*time.Millisecond, func() { order <- "late" })
		d.AfterFunc(time.Millisecond, func() { order <- "early" })
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"early", "late"} {
		select {
		case got := <-order:
			if got != want {
				t.Errorf("fired %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timer %q never fired", want)
		}
	}
}

func TestAfterFuncStop(t *testing.T) {
	d, ctx := start(t)
	fired := make(chan struct{}, 1)
	if err := d.Do(ctx, func() error {
		stop := d.AfterFunc(5*time.Millisecond, func() { fired <- struct{}{} })
		stop()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := d.Sleep(ctx, 30*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
		t.Error("stopped timer fired")
	default:
	}
}

func TestAfterFuncRecoversPanic(t *testing.T) {
	panics := capturePanics(t)
	d, ctx := start(t)
	if err := d.Do(ctx, func() error {
		d.AfterFunc(0, func() { panic("timer") })
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	select {
	case pe := <-panics:
		if pe.Op != "loop.timer" {
			t.Errorf("op = %q, want loop.timer", pe.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer panic not reported")
	}
	if err := d.Do(ctx, func() error { return nil }); err != nil {
		t.Errorf("loop should keep running after a timer panic: %v", err)
	}
}
