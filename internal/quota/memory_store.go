package quota

import (
	"context"
	"net/http"
	"sync"
)

// implements Store using in-memory storage, keyed by user ID
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

// creates a new in-memory record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.records[userID]
	if !exists {
		return nil, nil
	}

	// copy so callers cannot mutate stored state
	records := make([]Record, len(stored))
	copy(records, stored)

	return records, nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(records) == 0 {
		delete(s.records, userID)
		return nil
	}

	stored := make([]Record, len(records))
	copy(stored, records)
	s.records[userID] = stored

	return nil
}

// the memory store is shared across requests
func (s *MemoryStore) ForRequest(_ http.ResponseWriter, _ *http.Request) Store {
	return s
}
