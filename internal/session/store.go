// Package session provides the authoritative holder of the current
// authenticated principal. The identity adapter is the only writer; route
// guards and other consumers subscribe for transitions and must re-derive
// their state from each notification rather than caching a stale principal.
package session

import (
	"sync"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
)

// Snapshot is a consistent view of the account state.
type Snapshot struct {
	Principal *auth.Principal
	// Bootstrapping is true until the first auth-state notification arrives.
	Bootstrapping bool
}

// Store holds the current principal and notifies subscribers on change.
// Notifications are serialized under the store mutex: each transition is
// delivered exactly once to every subscriber registered at that moment.
type Store struct {
	mu            sync.Mutex
	principal     *auth.Principal
	bootstrapping bool
	nextID        int
	subscribers   map[int]func(Snapshot)
}

// NewStore creates a store in the bootstrapping state.
func NewStore() *Store {
	return &Store{
		bootstrapping: true,
		subscribers:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current account state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Principal: s.principal, Bootstrapping: s.bootstrapping}
}

// Set records an auth-state transition and notifies all subscribers once.
// A nil principal means signed out. The first call ends bootstrapping.
func (s *Store) Set(p *auth.Principal) {
	s.mu.Lock()
	s.principal = p
	s.bootstrapping = false
	snap := Snapshot{Principal: p, Bootstrapping: false}
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Subscribe registers fn for future transitions and returns an unsubscribe
// handle. Callers must unsubscribe on teardown to avoid leaks.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
