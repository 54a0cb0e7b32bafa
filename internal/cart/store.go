// Package cart keeps the session's shopping cart in memory.
package cart

import (
	"sync"

	"marmita-storefront/internal/observable"
	"marmita-storefront/internal/product"

	"github.com/shopspring/decimal"
)

// Store owns the cart state. Every mutation replaces the whole snapshot and
// publishes it to subscribers before returning; readers see either the old
// or the new snapshot. Subscribers must not mutate the store from inside
// the callback.
type Store struct {
	mu    sync.Mutex
	state *observable.Value[State]
}

func NewStore() *Store {
	return &Store{state: observable.New(State{})}
}

// Add puts one unit of p in the cart. A product already in the cart keeps the
// name and price it had when first added. Products without an id or with a
// negative price are ignored.
func (s *Store) Add(p product.Product) {
	if p.ID == "" || p.Price.IsNegative() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Get()
	if l, ok := cur.Line(p.ID); ok {
		l.Quantity++
		s.state.Set(cur.with(l))
		return
	}

	s.state.Set(cur.with(Line{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	}))
}

// Update sets the quantity of an existing line; quantity <= 0 removes it.
// Unknown ids are left alone.
func (s *Store) Update(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Get()
	l, ok := cur.Line(id)
	if !ok {
		return
	}

	if quantity <= 0 {
		s.state.Set(cur.without(id))
		return
	}

	l.Quantity = quantity
	s.state.Set(cur.with(l))
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Get()
	if _, ok := cur.Line(id); !ok {
		return
	}
	s.state.Set(cur.without(id))
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Set(State{})
}

// Deduct takes the quantities in lines out of the cart in one publish. Lines
// that drop to zero are removed; units added since lines were read stay.
func (s *Store) Deduct(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Get()
	next := cur
	for _, l := range lines {
		existing, ok := next.Line(l.ID)
		if !ok {
			continue
		}
		existing.Quantity -= l.Quantity
		if existing.Quantity <= 0 {
			next = next.without(l.ID)
		} else {
			next = next.with(existing)
		}
	}
	if next.Len() == cur.Len() && next.Count() == cur.Count() {
		return
	}
	s.state.Set(next)
}

// Snapshot returns the latest published state.
func (s *Store) Snapshot() State {
	return s.state.Get()
}

func (s *Store) Total() decimal.Decimal {
	return s.state.Get().Total()
}

// Subscribe calls fn with every published snapshot until cancel is called.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.state.Subscribe(fn)
}
