package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process [Store].
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) SaveLast(_ context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	rec.Owner = NormalizeOwner(rec.Owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Owner] = rec
	return nil
}

func (s *MemoryStore) Last(_ context.Context, owner string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[NormalizeOwner(owner)]
	if !ok {
		return nil, notFound(owner)
	}
	return &rec, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
