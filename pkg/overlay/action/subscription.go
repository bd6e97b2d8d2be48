package action

// Subscription is a handle returned by Subscribe. Cancel is idempotent.
type Subscription struct {
	list *observerList
	id   uint64
}

// Cancel stops further notifications.
func (s *Subscription) Cancel() {
	if s == nil || s.list == nil {
		return
	}
	s.list.remove(s.id)
	s.list = nil
}

// Active reports whether the subscription still receives notifications.
func (s *Subscription) Active() bool {
	return s != nil && s.list != nil
}

// Subscriptions is an owned bag of handles released together, typically
// from the owner's teardown.
type Subscriptions struct {
	handles []*Subscription
}

// Add keeps s until CancelAll.
func (b *Subscriptions) Add(s *Subscription) {
	b.handles = append(b.handles, s)
}

// Len returns the number of held handles.
func (b *Subscriptions) Len() int {
	return len(b.handles)
}

// CancelAll cancels and forgets every held handle.
func (b *Subscriptions) CancelAll() {
	for _, s := range b.handles {
		s.Cancel()
	}
	b.handles = nil
}

type observer struct {
	id uint64
	fn func(bool)
}

// observerList notifies in subscription order.
type observerList struct {
	nextID    uint64
	observers []observer
}

func (l *observerList) add(fn func(bool)) *Subscription {
	l.nextID++
	l.observers = append(l.observers, observer{id: l.nextID, fn: fn})
	return &Subscription{list: l, id: l.nextID}
}

func (l *observerList) remove(id uint64) {
	for i, o := range l.observers {
		if o.id == id {
			l.observers = append(l.observers[:i:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *observerList) len() int {
	return len(l.observers)
}

// notify iterates over a snapshot so an observer may cancel itself (or
// another observer) while being notified.
func (l *observerList) notify(enabled bool) {
	snapshot := append([]observer(nil), l.observers...)
	for _, o := range snapshot {
		if !l.has(o.id) {
			continue
		}
		o.fn(enabled)
	}
}

func (l *observerList) has(id uint64) bool {
	for _, o := range l.observers {
		if o.id == id {
			return true
		}
	}
	return false
}
