package store

import (
	"sort"
	"sync"
)

// Change describes a committed mutation. It only carries the store generation.
type Change struct {
	Generation uint64
}

// Listener receives change notifications.
type Listener func(Change)

// Subscription is a revocable listener registration.
type Subscription struct {
	n  *notifier
	id uint64
	fn Listener

	mu     sync.Mutex
	closed bool
}

// Cancel removes the subscription. Once Cancel returns no further notifications
// are delivered, including one that was in flight. It must not be called from
// inside the subscription's own listener.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.n.remove(s.id)

	// Waits for an in-flight delivery to finish.
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Subscription) deliver(c Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.fn(c)
}

// notifier fans out changes to subscribers in registration order.
type notifier struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]*Subscription
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[uint64]*Subscription)}
}

func (n *notifier) subscribe(fn Listener) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	sub := &Subscription{n: n, id: n.next, fn: fn}
	n.subs[sub.id] = sub
	return sub
}

func (n *notifier) remove(id uint64) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

func (n *notifier) publish(c Change) {
	n.mu.Lock()
	subs := make([]*Subscription, 0, len(n.subs))
	for _, s := range n.subs {
		subs = append(subs, s)
	}
	n.mu.Unlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	for _, s := range subs {
		s.deliver(c)
	}
}

func (n *notifier) len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
