package alert_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/dom"
	"github.com/go-drift/toggle/pkg/errors"
	toggletest "github.com/go-drift/toggle/pkg/testing"
	"github.com/go-drift/toggle/pkg/widgets/alert"
)

func newAlert(h *toggletest.Harness, class string) (*dom.Node, *dom.Node) {
	el := h.Add(nil, "div", map[string]string{"id": "notice", "class": class})
	button := h.Add(el, "button", map[string]string{"class": "btn-close", "data-dismiss": "alert"})
	return el, button
}

func TestCloseWithoutFadeIsSynchronous(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, _ := newAlert(h, "alert show")
	a, err := alert.GetOrCreate(h.Ctx, el)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if el.Parent() != nil {
		t.Error("alert should be detached before Close returns")
	}
	want := []string{"close.alert", "closed.alert", "dispose.alert", "disposed.alert"}
	if diff := cmp.Diff(want, h.Recorder.Names()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if !a.Disposed() || h.Ctx.Registry.Len() != 0 {
		t.Error("closed alert should be disposed and unregistered")
	}
	if err := a.Close(); !errors.Is(err, errors.ErrDisposed) {
		t.Errorf("Close after close = %v, want ErrDisposed", err)
	}
}

func TestCloseWithFadeWaitsForTransition(t *testing.T) {
	tests := []struct {
		name   string
		settle func(h *toggletest.Harness, el *dom.Node)
	}{
		{
			name:   "transitionend",
			settle: func(_ *toggletest.Harness, el *dom.Node) { dom.TransitionEnd(el) },
		},
		{
			name:   "timeout",
			settle: func(h *toggletest.Harness, _ *dom.Node) { h.Advance(155 * time.Millisecond) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := toggletest.NewHarness(t)
			el, _ := newAlert(h, "alert fade show")
			el.SetStyle("transition-duration", "150ms")
			a, _ := alert.GetOrCreate(h.Ctx, el)

			_ = a.Close()
			if el.HasClass("show") {
				t.Error("show class should be removed at once")
			}
			if el.Parent() == nil || !a.Closing() {
				t.Fatal("alert should stay attached until the transition settles")
			}
			if err := a.Close(); err != nil {
				t.Fatal(err)
			}

			tt.settle(h, el)
			if el.Parent() != nil || !a.Disposed() {
				t.Error("alert should be removed and disposed once settled")
			}
			want := []string{"close.alert", "closed.alert", "dispose.alert", "disposed.alert"}
			if diff := cmp.Diff(want, h.Recorder.Names()); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCloseVeto(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, _ := newAlert(h, "alert show")
	a, _ := alert.GetOrCreate(h.Ctx, el)
	h.Ctx.Bus.On(el, "close.alert", func(ev *eventloop.Event) { ev.PreventDefault() })

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if el.Parent() == nil || !el.HasClass("show") || a.Closing() {
		t.Error("vetoed close must leave the alert untouched")
	}
	if diff := cmp.Diff([]string{"close.alert"}, h.Recorder.Names()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestGuardVeto(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, _ := newAlert(h, "alert show")
	a, _ := alert.GetOrCreate(h.Ctx, el)
	h.Ctx.Bus.Guard(el, "close.alert", func() bool { return false })

	_ = a.Close()
	if el.Parent() == nil || len(h.Recorder.Names()) != 0 {
		t.Error("a guard veto runs before any notification")
	}
}

func TestDismissControl(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, button := newAlert(h, "alert show")
	if !alert.Install(h.Ctx) {
		t.Fatal("first install should run")
	}
	if alert.Install(h.Ctx) {
		t.Error("second install must not run")
	}

	h.Click(button)
	if el.Parent() != nil {
		t.Error("dismiss control should close its alert")
	}
}

func TestDismissControlTargets(t *testing.T) {
	h := toggletest.NewHarness(t)
	alert.Install(h.Ctx)
	el := h.Add(nil, "div", map[string]string{"id": "banner", "class": "alert"})
	link := h.Add(nil, "a", map[string]string{"href": "#banner", "data-dismiss": "alert"})
	disabled := h.Add(nil, "button", map[string]string{"data-target": "#banner", "data-dismiss": "alert", "disabled": ""})
	orphan := h.Add(nil, "button", map[string]string{"data-dismiss": "alert"})

	h.Click(disabled)
	if el.Parent() == nil {
		t.Fatal("disabled control must be ignored")
	}
	h.Click(orphan)
	if h.Ctx.Registry.Len() != 0 {
		t.Error("control without an alert should do nothing")
	}
	if h.Click(link) {
		t.Error("anchor dismiss should prevent navigation")
	}
	if el.Parent() != nil {
		t.Error("href target should be closed")
	}
}

func TestDisposeKeepsElement(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, button := newAlert(h, "alert show")
	alert.Install(h.Ctx)
	a, _ := alert.GetOrCreate(h.Ctx, el)

	if err := a.Dispose(); err != nil {
		t.Fatal(err)
	}
	if el.Parent() == nil {
		t.Error("dispose should not detach the element")
	}
	if _, ok := alert.Get(h.Ctx, el); ok {
		t.Error("disposed alert should be unregistered")
	}
	if err := a.Dispose(); !errors.Is(err, errors.ErrDisposed) {
		t.Errorf("second dispose = %v, want ErrDisposed", err)
	}

	// a dismiss click creates a fresh instance
	h.Click(button)
	if el.Parent() != nil {
		t.Error("fresh instance should close the alert")
	}
}

func TestDisposeWhileClosing(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, _ := newAlert(h, "alert fade show")
	el.SetStyle("transition-duration", "1s")
	a, _ := alert.GetOrCreate(h.Ctx, el)
	_ = a.Close()

	if err := a.Dispose(); err != nil {
		t.Fatal(err)
	}
	want := []string{"close.alert", "closed.alert", "dispose.alert", "disposed.alert"}
	if diff := cmp.Diff(want, h.Recorder.Names()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if h.Timers.Pending() != 0 {
		t.Error("settling should cancel the fallback timer")
	}
}

func TestPlugin(t *testing.T) {
	h := toggletest.NewHarness(t)
	el, _ := newAlert(h, "alert show")
	p := alert.Plugin(h.Ctx)

	err := p.Invoke([]dom.Element{el}, "hide")
	var ume *errors.UnknownMethodError
	if !errors.As(err, &ume) {
		t.Fatalf("hide = %v, want UnknownMethodError", err)
	}
	if h.Ctx.Registry.Len() != 0 {
		t.Error("rejected command must not create an instance")
	}
	if err := p.Invoke([]dom.Element{el}, "close"); err != nil {
		t.Fatal(err)
	}
	if el.Parent() != nil {
		t.Error("close command should remove the alert")
	}
}
