// If you are AI: This file implements Subscriptions, the contentless wake-up
// registry a Stream's Publisher pokes after every write so listeners know to
// re-check storage (spec.md §4.4). Pokes carry no payload; they are hints.

package tailstream

import "sync"

// Subscriber is a single registered wake-up target. Poke is called with no
// arguments and must not block; implementations typically bump a counter on a
// WaitableCell and let listeners re-check HasData themselves.
type Subscriber interface {
	Poke()
}

// Subscriptions is a thread-safe set of Subscribers for one stream. Publishers
// call PokeAll after every successful write; listeners Register on creation and
// Unregister on teardown.
type Subscriptions struct {
	mu   sync.Mutex
	next int
	subs map[int]Subscriber
}

// NewSubscriptions constructs an empty subscriber set.
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{subs: make(map[int]Subscriber)}
}

// Register adds sub to the set and returns a handle to later Unregister it.
func (s *Subscriptions) Register(sub Subscriber) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = sub
	return id
}

// Unregister removes the subscriber added under the given handle. It is a
// no-op if the handle is unknown or was already removed.
func (s *Subscriptions) Unregister(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Count returns the number of currently registered subscribers.
func (s *Subscriptions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// PokeAll wakes every currently registered subscriber. Pokes are idempotent
// and lossy by design: a listener that misses a poke will still observe new
// data on its next polling pass (spec.md §9).
func (s *Subscriptions) PokeAll() {
	s.mu.Lock()
	targets := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		targets = append(targets, sub)
	}
	s.mu.Unlock()

	for _, sub := range targets {
		sub.Poke()
	}
}
