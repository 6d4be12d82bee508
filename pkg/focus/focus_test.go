package focus

import (
	"testing"

	"github.com/go-drift/toggle/pkg/dom"
)

func fixture() (*dom.Tree, *dom.Node, *dom.Node, *dom.Node) {
	tree := dom.NewTree()
	panel := tree.NewElement("div")
	inner := tree.NewElement("input")
	panel.Append(inner)
	outside := tree.NewElement("button")
	tree.Body().AppendChild(panel)
	tree.Body().AppendChild(outside)
	return tree, panel, inner, outside
}

func TestTrapRedirectsFocus(t *testing.T) {
	tree, panel, inner, outside := fixture()
	trap := NewTrap(tree)
	trap.Activate(panel)

	if !dom.Same(tree.ActiveElement(), panel) {
		t.Fatal("Activate should focus the trapped element")
	}
	inner.Focus()
	if !dom.Same(tree.ActiveElement(), inner) {
		t.Error("focus inside the trapped element must be left alone")
	}
	outside.Focus()
	if !dom.Same(tree.ActiveElement(), panel) {
		t.Errorf("focus outside should be redirected, active = %v", tree.ActiveElement())
	}
}

func TestTrapSingleListener(t *testing.T) {
	tree, panel, _, _ := fixture()
	trap := NewTrap(tree)
	trap.Activate(panel)
	trap.Activate(panel)
	if n := tree.Events().ListenerCount(dom.EventFocusIn); n != 1 {
		t.Errorf("focusin listeners = %d, want 1", n)
	}
	trap.Deactivate()
	trap.Deactivate()
	if n := tree.Events().ListenerCount(dom.EventFocusIn); n != 0 {
		t.Errorf("focusin listeners after Deactivate = %d, want 0", n)
	}
	if trap.Active() || trap.Element() != nil {
		t.Error("trap should be inactive")
	}
}

func TestTrapHandOver(t *testing.T) {
	tree, panel, _, outside := fixture()
	other := tree.NewElement("div")
	tree.Body().AppendChild(other)
	trap := NewTrap(tree)

	trap.Activate(panel)
	trap.Activate(other)
	if n := tree.Events().ListenerCount(dom.EventFocusIn); n != 1 {
		t.Fatalf("focusin listeners = %d, want 1", n)
	}
	if !trap.Holds(other) || trap.Holds(panel) {
		t.Error("the last activation should own the trap")
	}
	if !dom.Same(tree.ActiveElement(), other) {
		t.Errorf("active = %v, want the new owner", tree.ActiveElement())
	}

	if trap.Release(panel) {
		t.Error("a previous owner must not release the trap")
	}
	outside.Focus()
	if !dom.Same(tree.ActiveElement(), other) {
		t.Error("the current owner should still trap focus")
	}
	if !trap.Release(other) || trap.Active() {
		t.Error("the owner should release the trap")
	}
	if n := tree.Events().ListenerCount(dom.EventFocusIn); n != 0 {
		t.Errorf("focusin listeners after Release = %d, want 0", n)
	}
}

func TestTrapReleased(t *testing.T) {
	tree, panel, _, outside := fixture()
	trap := NewTrap(tree)
	trap.Activate(panel)
	trap.Deactivate()
	outside.Focus()
	if !dom.Same(tree.ActiveElement(), outside) {
		t.Error("a released trap must not redirect focus")
	}
}

func TestReturnTo(t *testing.T) {
	tree, _, _, outside := fixture()
	if !ReturnTo(outside) || !dom.Same(tree.ActiveElement(), outside) {
		t.Error("visible element should receive focus")
	}
	hidden := tree.NewElement("button")
	hidden.SetStyle("display", "none")
	tree.Body().AppendChild(hidden)
	if ReturnTo(hidden) {
		t.Error("hidden element must not receive focus")
	}
	if ReturnTo(nil) {
		t.Error("nil must not receive focus")
	}
}
