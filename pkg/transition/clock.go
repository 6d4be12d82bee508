package transition

import (
	"slices"
	"time"
)

// Timers schedules callbacks on the goroutine that owns the runtime.
// AfterFunc returns a function that cancels the callback if it has not run.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// VirtualTimers is a manually advanced [Timers] implementation. Callbacks run
// synchronously inside Advance, in deadline order.
type VirtualTimers struct {
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	at  time.Time
	seq uint64
	fn  func()
}

// NewVirtualTimers returns timers starting at a fixed epoch.
func NewVirtualTimers() *VirtualTimers {
	return &VirtualTimers{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current virtual time.
func (v *VirtualTimers) Now() time.Time { return v.now }

// Pending returns the number of scheduled callbacks.
func (v *VirtualTimers) Pending() int { return len(v.timers) }

// AfterFunc schedules fn to run once the clock has advanced by d.
func (v *VirtualTimers) AfterFunc(d time.Duration, fn func()) func() {
	v.seq++
	t := &virtualTimer{at: v.now.Add(max(d, 0)), seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return func() {
		v.timers = slices.DeleteFunc(v.timers, func(o *virtualTimer) bool { return o == t })
	}
}

// Advance moves the clock forward by d, running every callback that falls
// due. Callbacks scheduled while advancing run too if their deadline is
// reached. It returns the number of callbacks run.
func (v *VirtualTimers) Advance(d time.Duration) int {
	target := v.now.Add(d)
	ran := 0
	for {
		next := v.next(target)
		if next == nil {
			break
		}
		v.timers = slices.DeleteFunc(v.timers, func(o *virtualTimer) bool { return o == next })
		v.now = next.at
		next.fn()
		ran++
	}
	v.now = target
	return ran
}

func (v *VirtualTimers) next(limit time.Time) *virtualTimer {
	var best *virtualTimer
	for _, t := range v.timers {
		if t.at.After(limit) {
			continue
		}
		if best == nil || t.at.Before(best.at) || t.at.Equal(best.at) && t.seq < best.seq {
			best = t
		}
	}
	return best
}
