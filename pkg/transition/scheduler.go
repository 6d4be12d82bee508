// Package transition defers the settle step of a class-driven animation.
//
// A [Scheduler] turns "classes toggled" into "visually settled": it waits for
// the element's transitionend signal or a timeout computed from the element's
// declared transition timing, whichever comes first, and runs the completion
// exactly once.
package transition

import (
	"strconv"
	"strings"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/toggle/pkg/dom"
)

// DefaultPadding is added to the declared duration before the fallback fires.
const DefaultPadding = 5 * time.Millisecond

// Scheduler queues completions for one runtime.
type Scheduler struct {
	timers  Timers
	padding time.Duration
	log     *logrus.Entry
}

// NewScheduler creates a scheduler using timers for the fallback. A negative
// padding selects [DefaultPadding].
func NewScheduler(timers Timers, padding time.Duration, log *logrus.Entry) *Scheduler {
	if padding < 0 {
		padding = DefaultPadding
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Scheduler{timers: timers, padding: padding, log: log}
}

// Timers returns the timer source.
func (s *Scheduler) Timers() Timers { return s.timers }

// Queue arranges for complete to run once el settles. When animated is false
// complete runs before Queue returns.
func (s *Scheduler) Queue(el dom.Element, complete func(), animated bool) *Completion {
	c := newCompletion(complete)
	if !animated {
		c.Resolve(SourceImmediate)
		return c
	}

	wait := Duration(el) + s.padding
	target := el.Events()
	id := target.AddEventListener(dom.EventTransitionEnd, func(ev *eventloop.Event) {
		// Ignore transitions bubbling up from descendants.
		if !dom.Same(dom.Detail(ev).Target, el) {
			return
		}
		if c.Resolve(SourceSignal) {
			s.log.WithField("source", SourceSignal.String()).Debug("transition settled")
		}
	})
	c.onSettle(func() { target.RemoveEventListenerByID(dom.EventTransitionEnd, id) })

	stop := s.timers.AfterFunc(wait, func() {
		if c.Resolve(SourceTimeout) {
			s.log.WithField("source", SourceTimeout.String()).Debug("transition settled")
		}
	})
	c.onSettle(stop)
	return c
}

// Duration returns the declared transition-duration plus transition-delay of
// el. Only the first value of a comma-separated list counts. Values are
// seconds ("0.3s", "0.3") or milliseconds ("300ms"). When both are zero the
// element is treated as not animated and Duration returns 0.
func Duration(el dom.Element) time.Duration {
	duration := parseTime(el.Style("transition-duration"))
	delay := parseTime(el.Style("transition-delay"))
	if duration == 0 && delay == 0 {
		return 0
	}
	return duration + delay
}

func parseTime(v string) time.Duration {
	v, _, _ = strings.Cut(v, ",")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil {
		return max(d, 0)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
