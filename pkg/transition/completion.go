package transition

// Source identifies what settled a [Completion].
type Source int

const (
	// SourcePending means the completion has not settled yet.
	SourcePending Source = iota
	// SourceSignal is the transitionend signal on the element.
	SourceSignal
	// SourceTimeout is the fallback timer.
	SourceTimeout
	// SourceImmediate is used for elements that do not animate.
	SourceImmediate
	// SourceForced is a synchronous flush.
	SourceForced
)

func (s Source) String() string {
	switch s {
	case SourceSignal:
		return "signal"
	case SourceTimeout:
		return "timeout"
	case SourceImmediate:
		return "immediate"
	case SourceForced:
		return "forced"
	default:
		return "pending"
	}
}

// Completion is a single-fire future for the settle step of a transition.
// The first call to Resolve runs the callback; later calls are ignored.
type Completion struct {
	fn      func()
	source  Source
	cleanup []func()
}

func newCompletion(fn func()) *Completion {
	return &Completion{fn: fn}
}

// Resolve settles the completion from src and reports whether this call won.
func (c *Completion) Resolve(src Source) bool {
	if c == nil || c.source != SourcePending {
		return false
	}
	c.source = src
	for _, f := range c.cleanup {
		f()
	}
	c.cleanup = nil
	if c.fn != nil {
		c.fn()
	}
	return true
}

// Flush settles a pending completion synchronously.
func (c *Completion) Flush() bool {
	return c.Resolve(SourceForced)
}

// Done reports whether the completion has settled.
func (c *Completion) Done() bool {
	return c == nil || c.source != SourcePending
}

// Source returns what settled the completion.
func (c *Completion) Source() Source {
	if c == nil {
		return SourcePending
	}
	return c.source
}

func (c *Completion) onSettle(f func()) {
	c.cleanup = append(c.cleanup, f)
}
