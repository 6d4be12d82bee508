package events

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/go-drift/toggle/pkg/dom"
)

func setup() (*dom.Tree, *dom.Node, *Bus) {
	tree := dom.NewTree()
	el := tree.NewElement("div")
	tree.Body().AppendChild(el)
	return tree, el, NewBus(tree, nil)
}

func TestName(t *testing.T) {
	if got := Name("show", "offcanvas"); got != "show.offcanvas" {
		t.Errorf("Name = %q, want show.offcanvas", got)
	}
}

func TestConfirmPreventedByListener(t *testing.T) {
	_, el, bus := setup()
	bus.On(el, "hide.panel", func(ev *eventloop.Event) { ev.PreventDefault() })
	if bus.Confirm(el, "hide.panel", nil) {
		t.Error("Confirm should report a prevented default")
	}
	if !bus.Confirm(el, "show.panel", nil) {
		t.Error("Confirm without listeners should accept")
	}
}

func TestGuardVetoSkipsDispatch(t *testing.T) {
	_, el, bus := setup()
	dispatched := 0
	bus.On(el, "show.panel", func(*eventloop.Event) { dispatched++ })
	sub := bus.Guard(el, "show.panel", func() bool { return false })

	if bus.Confirm(el, "show.panel", nil) {
		t.Error("guard veto should reject")
	}
	if dispatched != 0 {
		t.Errorf("dispatched = %d, want 0 after a guard veto", dispatched)
	}

	if !sub.Remove() {
		t.Error("first Remove should report the guard was attached")
	}
	if sub.Remove() {
		t.Error("second Remove should be a no-op")
	}
	if !bus.Confirm(el, "show.panel", nil) || dispatched != 1 {
		t.Errorf("after removing the guard, Confirm should dispatch once (dispatched=%d)", dispatched)
	}
}

func TestDropGuards(t *testing.T) {
	_, el, bus := setup()
	bus.Guard(el, "show.panel", func() bool { return false })
	bus.Guard(el, "hide.panel", func() bool { return false })
	bus.DropGuards(el)
	if !bus.Check(el, "show.panel") || !bus.Check(el, "hide.panel") {
		t.Error("DropGuards should clear every guard on the element")
	}
}

func TestNotifyIsNotCancelable(t *testing.T) {
	_, el, bus := setup()
	var got *eventloop.Event
	bus.On(el, "shown.panel", func(ev *eventloop.Event) {
		ev.PreventDefault()
		got = ev
	})
	bus.Notify(el, "shown.panel", nil)
	if got == nil {
		t.Fatal("listener not called")
	}
	if got.Cancelable || got.DefaultPrevented {
		t.Error("post-events must not be cancelable")
	}
}

func TestOneFiresOnce(t *testing.T) {
	_, el, bus := setup()
	n := 0
	bus.One(el, "hidden.panel", func(*eventloop.Event) { n++ })
	bus.Notify(el, "hidden.panel", nil)
	bus.Notify(el, "hidden.panel", nil)
	if n != 1 {
		t.Errorf("one-shot listener ran %d times, want 1", n)
	}
}

func TestTapSeesDetachedElements(t *testing.T) {
	tree, el, bus := setup()
	var docSeen bool
	tree.Events().AddEventListener("closed.alert", func(*eventloop.Event) { docSeen = true })
	var records []string
	sub := bus.Tap(func(r Record) { records = append(records, r.Name) })

	el.Remove()
	bus.Notify(el, "closed.alert", nil)
	bus.Notify(el, "disposed.alert", nil)
	sub.Remove()
	bus.Notify(el, "ignored.alert", nil)

	if docSeen {
		t.Error("detached notifications should not reach the document")
	}
	if diff := cmp.Diff([]string{"closed.alert", "disposed.alert"}, records); diff != "" {
		t.Errorf("tap records mismatch (-want +got):\n%s", diff)
	}
}

func TestTapRecordsPrevented(t *testing.T) {
	_, el, bus := setup()
	bus.On(el, "hide.panel", func(ev *eventloop.Event) { ev.PreventDefault() })
	var rec Record
	bus.Tap(func(r Record) { rec = r })
	bus.Confirm(el, "hide.panel", nil)
	if !rec.Cancelable || !rec.Prevented {
		t.Errorf("record = %+v, want cancelable and prevented", rec)
	}
}

func TestDelegate(t *testing.T) {
	tree, el, bus := setup()
	trigger := tree.NewElement("button")
	trigger.SetAttr("data-toggle", "panel")
	icon := tree.NewElement("span")
	trigger.Append(icon)
	el.Append(trigger)

	var matched dom.Element
	sub := bus.Delegate(dom.EventClick, `[data-toggle="panel"]`, func(_ *eventloop.Event, m dom.Element) {
		matched = m
	})
	dom.Click(icon)
	if !dom.Same(matched, trigger) {
		t.Errorf("matched = %v, want the trigger", matched)
	}

	matched = nil
	dom.Click(el)
	if matched != nil {
		t.Error("clicks outside a trigger should not match")
	}

	sub.Remove()
	dom.Click(icon)
	if matched != nil {
		t.Error("removed delegate should not run")
	}
}

func TestDelegateWithin(t *testing.T) {
	tree, el, bus := setup()
	inside := tree.NewElement("button")
	inside.SetAttr("data-dismiss", "panel")
	el.Append(inside)
	outside := tree.NewElement("button")
	outside.SetAttr("data-dismiss", "panel")
	tree.Body().AppendChild(outside)

	n := 0
	bus.DelegateWithin(el, dom.EventClick, `[data-dismiss="panel"]`, func(*eventloop.Event, dom.Element) { n++ })
	dom.Click(inside)
	dom.Click(outside)
	if n != 1 {
		t.Errorf("scoped delegate ran %d times, want 1", n)
	}
}

func TestGroupRemoveAll(t *testing.T) {
	_, el, bus := setup()
	var g Group
	n := 0
	g.Add(bus.On(el, "a", func(*eventloop.Event) { n++ }), bus.On(el, "b", func(*eventloop.Event) { n++ }))
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	g.RemoveAll()
	bus.Notify(el, "a", nil)
	bus.Notify(el, "b", nil)
	if n != 0 || g.Len() != 0 {
		t.Errorf("after RemoveAll: calls=%d len=%d", n, g.Len())
	}
	if el.Events().ListenerCount("a") != 0 {
		t.Error("listener should be detached from the target")
	}
}
