package cart

import (
	"context"
	"sync"
	"time"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
)

// Store owns a single cart and applies transitions to it in call order.
type Store struct {
	mu    sync.RWMutex
	state domain.Cart
}

// NewStore returns a store holding an empty cart.
func NewStore() *Store {
	return &Store{state: emptyCart()}
}

// Dispatch applies a and returns the new cart.
func (s *Store) Dispatch(a Action) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return snapshot(s.state)
}

// DispatchChecked applies actions in order, but only if check accepts the
// cart as it stands. A rejected check leaves the cart unchanged.
func (s *Store) DispatchChecked(check func(domain.Cart) error, actions ...Action) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := check(s.state); err != nil {
		return domain.Cart{}, err
	}
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	return snapshot(s.state), nil
}

// State returns a copy of the current cart.
func (s *Store) State() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

// Checkout passes the current cart to fn and clears it once fn succeeds.
// The store stays locked while fn runs, so a concurrent Dispatch lands after
// the clear instead of being wiped by it.
func (s *Store) Checkout(fn func(domain.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(snapshot(s.state)); err != nil {
		return err
	}
	s.state = Reduce(s.state, ClearCart())
	return nil
}

func emptyCart() domain.Cart {
	return domain.Cart{Items: []domain.CartItem{}}
}

func snapshot(c domain.Cart) domain.Cart {
	return domain.Cart{Items: cloneItems(c.Items), Total: c.Total}
}

// DefaultIdleTimeout is how long an untouched session cart is kept.
const DefaultIdleTimeout = 24 * time.Hour

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry hands out one Store per browsing session and forgets sessions
// that have been idle for longer than its idle timeout.
type Registry struct {
	mu          sync.Mutex
	entries     map[string]*entry
	idleTimeout time.Duration
	now         func() time.Time
}

func NewRegistry(idleTimeout time.Duration) *Registry {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Registry{
		entries:     make(map[string]*entry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns the session's store, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore()}
		r.entries[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.store
}

// Peek returns the session's cart without registering a store for unknown
// sessions; those read as an empty cart.
func (r *Registry) Peek(sessionID string) domain.Cart {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	if ok {
		e.lastSeen = r.now()
	}
	r.mu.Unlock()

	if !ok {
		return emptyCart()
	}
	return e.store.State()
}

// Sweep removes idle sessions and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTimeout)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
