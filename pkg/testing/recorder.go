package testing

import (
	"strings"

	"github.com/go-drift/toggle/pkg/events"
)

// Recorder collects the names of notifications emitted through a bus.
type Recorder struct {
	records []events.Record
	sub     *events.Subscription
}

// NewRecorder starts recording bus.
func NewRecorder(bus *events.Bus) *Recorder {
	r := &Recorder{}
	r.sub = bus.Tap(func(rec events.Record) {
		r.records = append(r.records, rec)
	})
	return r
}

// Names returns the recorded notification names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Name
	}
	return out
}

// Matching returns recorded names that end in "."+kind.
func (r *Recorder) Matching(kind string) []string {
	var out []string
	for _, name := range r.Names() {
		if strings.HasSuffix(name, "."+kind) {
			out = append(out, name)
		}
	}
	return out
}

// Records returns a copy of the recorded notifications.
func (r *Recorder) Records() []events.Record {
	return append([]events.Record(nil), r.records...)
}

// Reset discards recorded notifications.
func (r *Recorder) Reset() { r.records = nil }

// Stop detaches the recorder from the bus.
func (r *Recorder) Stop() { r.sub.Remove() }
