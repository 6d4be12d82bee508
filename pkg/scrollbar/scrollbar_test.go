package scrollbar

import (
	"testing"

	"github.com/go-drift/toggle/pkg/dom"
)

func TestHideAndReset(t *testing.T) {
	tree := dom.NewTree()
	tree.SetScrollbarWidth(15)
	body := tree.Body()
	body.SetStyle("padding-right", "10px")
	navbar := tree.NewElement("nav")
	navbar.AddClass("fixed-top")
	tree.Body().AppendChild(navbar)

	h := New(tree)
	h.Hide()
	h.Hide()

	if got := body.Style("overflow"); got != "hidden" {
		t.Errorf("body overflow = %q, want hidden", got)
	}
	if got := body.Style("padding-right"); got != "25px" {
		t.Errorf("body padding-right = %q, want 25px", got)
	}
	if got := navbar.Style("padding-right"); got != "15px" {
		t.Errorf("fixed padding-right = %q, want 15px", got)
	}
	if !h.Locked() {
		t.Error("helper should report locked")
	}

	h.Reset()
	if got := body.Style("overflow"); got != "" {
		t.Errorf("overflow after Reset = %q, want empty", got)
	}
	if got := body.Style("padding-right"); got != "10px" {
		t.Errorf("body padding-right after Reset = %q, want 10px", got)
	}
	if got := navbar.Style("padding-right"); got != "" {
		t.Errorf("fixed padding-right after Reset = %q, want empty", got)
	}
	if h.Locked() {
		t.Error("helper should be unlocked")
	}
}

func TestHideWithoutScrollbar(t *testing.T) {
	tree := dom.NewTree()
	h := New(tree)
	h.Hide()
	if got := tree.Body().Style("padding-right"); got != "" {
		t.Errorf("padding-right = %q, want no compensation", got)
	}
	if got := tree.Body().Style("overflow"); got != "hidden" {
		t.Errorf("overflow = %q, want hidden", got)
	}
	h.Reset()
	h.Reset()
	if got := tree.Body().Style("overflow"); got != "" {
		t.Errorf("overflow after Reset = %q", got)
	}
}

func TestAcquireRelease(t *testing.T) {
	tree := dom.NewTree()
	tree.SetScrollbarWidth(15)
	body := tree.Body()
	first := tree.NewElement("div")
	second := tree.NewElement("div")

	h := New(tree)
	h.Acquire(first)
	h.Acquire(second)
	h.Acquire(second)
	if got := body.Style("padding-right"); got != "15px" {
		t.Errorf("padding-right = %q, want one compensation", got)
	}
	if h.Holders() != 2 {
		t.Errorf("holders = %d, want 2", h.Holders())
	}

	tests := []struct {
		name         string
		release      *dom.Node
		wantReleased bool
		wantOverflow string
	}{
		{"first holder", first, true, "hidden"},
		{"already released", first, false, "hidden"},
		{"last holder", second, true, ""},
	}
	for _, tt := range tests {
		if got := h.Release(tt.release); got != tt.wantReleased {
			t.Errorf("%s: Release = %v, want %v", tt.name, got, tt.wantReleased)
		}
		if got := body.Style("overflow"); got != tt.wantOverflow {
			t.Errorf("%s: overflow = %q, want %q", tt.name, got, tt.wantOverflow)
		}
	}
	if h.Locked() || body.Style("padding-right") != "" {
		t.Errorf("locked=%v padding=%q after every release", h.Locked(), body.Style("padding-right"))
	}
}
