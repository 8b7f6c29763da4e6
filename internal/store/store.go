// Package store keeps created items in process memory for the lifetime of a
// run. Nothing is written to disk; restarting the program starts empty.
package store

import (
	"sync"

	"rehearsals/internal/model"
)

// Store is an insertion-ordered collection of items. Items are only ever
// added, never removed or replaced, so indices returned to callers stay valid
// for the whole run.
//
// Bubble Tea commands run on their own goroutines, so access is serialized
// with a mutex even though there is logically one interaction in flight.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*model.Item
	order []string
}

func New() *Store {
	return &Store{byID: map[string]*model.Item{}}
}

// Add inserts an item and returns its index in insertion order.
func (s *Store) Add(it *model.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[it.ID] = it
	s.order = append(s.order, it.ID)
	return len(s.order) - 1
}

func (s *Store) Get(id string) (*model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.byID[id]
	return it, ok
}

// At returns the item at index i in insertion order, or nil if out of range.
func (s *Store) At(i int) *model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.order) {
		return nil
	}
	return s.byID[s.order[i]]
}

// List returns the items in insertion order.
func (s *Store) List() []*model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
