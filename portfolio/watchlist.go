package portfolio

// List is an observable ordered sequence. Set replaces the items and
// synchronously notifies every live subscriber, in subscription order.
// There is no queueing or goroutine hand-off: callbacks run on the
// caller's goroutine before Set returns.
type List[T any] struct {
	items []T
	subs  []*Subscription[T]
}

// Subscription is the handle returned by Subscribe. The owner keeps it
// and calls Cancel when it no longer wants updates.
type Subscription[T any] struct {
	list *List[T]
	fn   func([]T)
}

func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// Items returns a copy of the current sequence.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the current item count.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Set replaces the sequence and notifies subscribers with the new items.
func (l *List[T]) Set(items []T) {
	l.items = items
	for _, s := range l.subs {
		if s.fn != nil {
			s.fn(l.items)
		}
	}
}

// Subscribe registers fn and returns its cancellation handle. fn is not
// invoked with the current items; only subsequent Set calls reach it.
func (l *List[T]) Subscribe(fn func([]T)) *Subscription[T] {
	s := &Subscription[T]{list: l, fn: fn}
	l.subs = append(l.subs, s)
	return s
}

// Cancel detaches the subscription. Safe to call more than once.
func (s *Subscription[T]) Cancel() {
	if s.list == nil {
		return
	}
	subs := s.list.subs
	for i, cur := range subs {
		if cur == s {
			s.list.subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	s.list = nil
	s.fn = nil
}
