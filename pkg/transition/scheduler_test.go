package transition

import (
	"testing"
	"time"

	"github.com/go-drift/toggle/pkg/dom"
)

func animatedElement(duration, delay string) (*dom.Tree, *dom.Node) {
	tree := dom.NewTree()
	el := tree.NewElement("div")
	el.AddClass("fade")
	if duration != "" {
		el.SetStyle("transition-duration", duration)
	}
	if delay != "" {
		el.SetStyle("transition-delay", delay)
	}
	tree.Body().AppendChild(el)
	return tree, el
}

func TestDuration(t *testing.T) {
	tests := []struct {
		duration string
		delay    string
		want     time.Duration
	}{
		{"", "", 0},
		{"0s", "0s", 0},
		{"0.3s", "", 300 * time.Millisecond},
		{"0.3", "", 300 * time.Millisecond},
		{"150ms", "50ms", 200 * time.Millisecond},
		{"0.2s, 1s", "", 200 * time.Millisecond},
		{"", "0.1s", 100 * time.Millisecond},
		{"bogus", "", 0},
		{"-1s", "", 0},
	}
	for _, tt := range tests {
		_, el := animatedElement(tt.duration, tt.delay)
		if got := Duration(el); got != tt.want {
			t.Errorf("Duration(%q, %q) = %v, want %v", tt.duration, tt.delay, got, tt.want)
		}
	}
}

func TestQueueImmediate(t *testing.T) {
	timers := NewVirtualTimers()
	s := NewScheduler(timers, -1, nil)
	_, el := animatedElement("1s", "")
	n := 0
	c := s.Queue(el, func() { n++ }, false)
	if n != 1 || !c.Done() || c.Source() != SourceImmediate {
		t.Errorf("immediate queue: calls=%d done=%v source=%v", n, c.Done(), c.Source())
	}
	if timers.Pending() != 0 {
		t.Error("non-animated completions must not schedule a timer")
	}
}

func TestQueueSignalWins(t *testing.T) {
	timers := NewVirtualTimers()
	s := NewScheduler(timers, -1, nil)
	_, el := animatedElement("0.3s", "")
	n := 0
	c := s.Queue(el, func() { n++ }, true)
	if c.Done() {
		t.Fatal("animated completion should be pending")
	}
	dom.TransitionEnd(el)
	timers.Advance(time.Second)
	dom.TransitionEnd(el)

	if n != 1 {
		t.Errorf("completion ran %d times, want 1", n)
	}
	if c.Source() != SourceSignal {
		t.Errorf("Source = %v, want signal", c.Source())
	}
	if timers.Pending() != 0 {
		t.Error("fallback timer should be cancelled once the signal wins")
	}
	if el.Events().ListenerCount(dom.EventTransitionEnd) != 0 {
		t.Error("signal listener should be removed after settling")
	}
}

func TestQueueTimeoutWins(t *testing.T) {
	timers := NewVirtualTimers()
	s := NewScheduler(timers, -1, nil)
	_, el := animatedElement("0.3s", "")
	n := 0
	c := s.Queue(el, func() { n++ }, true)

	timers.Advance(300 * time.Millisecond)
	if c.Done() {
		t.Fatal("fallback must include the padding")
	}
	timers.Advance(DefaultPadding)
	dom.TransitionEnd(el)

	if n != 1 || c.Source() != SourceTimeout {
		t.Errorf("calls=%d source=%v, want 1 timeout", n, c.Source())
	}
}

func TestQueueIgnoresDescendantSignal(t *testing.T) {
	tree, el := animatedElement("0.3s", "")
	child := tree.NewElement("span")
	el.Append(child)
	s := NewScheduler(NewVirtualTimers(), -1, nil)
	c := s.Queue(el, func() {}, true)
	dom.TransitionEnd(child)
	if c.Done() {
		t.Error("a descendant's transitionend must not settle the parent")
	}
}

func TestFlush(t *testing.T) {
	timers := NewVirtualTimers()
	s := NewScheduler(timers, -1, nil)
	_, el := animatedElement("0.3s", "")
	n := 0
	c := s.Queue(el, func() { n++ }, true)
	if !c.Flush() {
		t.Error("first Flush should settle")
	}
	if c.Flush() || c.Resolve(SourceSignal) {
		t.Error("settled completions ignore later producers")
	}
	timers.Advance(time.Second)
	if n != 1 || c.Source() != SourceForced {
		t.Errorf("calls=%d source=%v, want 1 forced", n, c.Source())
	}
}

func TestVirtualTimersOrder(t *testing.T) {
	v := NewVirtualTimers()
	var order []int
	v.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	v.AfterFunc(10*time.Millisecond, func() {
		order = append(order, 1)
		v.AfterFunc(5*time.Millisecond, func() { order = append(order, 3) })
	})
	stop := v.AfterFunc(15*time.Millisecond, func() { order = append(order, 99) })
	stop()

	if ran := v.Advance(20 * time.Millisecond); ran != 3 {
		t.Errorf("Advance ran %d callbacks, want 3", ran)
	}
	want := []int{1, 3, 2}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourcePending:   "pending",
		SourceSignal:    "signal",
		SourceTimeout:   "timeout",
		SourceImmediate: "immediate",
		SourceForced:    "forced",
	}
	for src, want := range tests {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", src, got, want)
		}
	}
}
