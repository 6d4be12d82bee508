package events

// Subscription is the handle for a listener, guard or tap. Removing it twice
// is harmless.
type Subscription struct {
	remove  func() bool
	removed bool
}

func newSubscription(remove func() bool) *Subscription {
	return &Subscription{remove: remove}
}

// Remove detaches the subscription and reports whether it was still attached.
func (s *Subscription) Remove() bool {
	if s == nil || s.removed {
		return false
	}
	s.removed = true
	return s.remove()
}

// Removed reports whether Remove has been called.
func (s *Subscription) Removed() bool {
	return s == nil || s.removed
}

// Group collects subscriptions released together.
type Group struct {
	subs []*Subscription
}

// Add appends subs to the group.
func (g *Group) Add(subs ...*Subscription) {
	g.subs = append(g.subs, subs...)
}

// Len returns the number of subscriptions in the group.
func (g *Group) Len() int { return len(g.subs) }

// RemoveAll removes every subscription and empties the group.
func (g *Group) RemoveAll() {
	for _, s := range g.subs {
		s.Remove()
	}
	g.subs = nil
}
