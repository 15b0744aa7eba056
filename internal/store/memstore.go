package store

import (
	"errors"
	"sync"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// MemStore is an in-memory Store. Results are copied on save and on read
// so callers can never mutate stored state through a shared pointer. Safe
// for concurrent use.
type MemStore struct {
	mu      sync.Mutex
	results map[string]*simulation.SimulationResult
	order   []string // insertion order for ListResults
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{results: make(map[string]*simulation.SimulationResult)}
}

// SaveResult stores a copy of the result under its ID, overwriting any
// previous result with the same ID.
func (s *MemStore) SaveResult(result *simulation.SimulationResult) error {
	if result == nil {
		return errors.New("result is nil")
	}
	if result.ID == "" {
		return errors.New("result has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.ID]; !exists {
		s.order = append(s.order, result.ID)
	}
	cp := *result
	s.results[result.ID] = &cp
	return nil
}

// GetResult returns a copy of the result for the given ID, or ErrNotFound.
func (s *MemStore) GetResult(id string) (*simulation.SimulationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

// ListResults returns copies of all stored results in insertion order.
func (s *MemStore) ListResults() ([]*simulation.SimulationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*simulation.SimulationResult, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.results[id]
		out = append(out, &cp)
	}
	return out, nil
}

// DeleteResult removes the result for the given ID, or returns ErrNotFound.
func (s *MemStore) DeleteResult(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[id]; !ok {
		return ErrNotFound
	}
	delete(s.results, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
