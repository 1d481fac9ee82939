package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"workoutlog/internal/record"
)

// Store is an in-process record.Store. It is not persistent and is only
// suitable for development and tests.
type Store struct {
	mu      sync.RWMutex
	records []record.Record
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, r record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	s.records = append(s.records, r)
	return nil
}

func (s *Store) LoadAll(_ context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return record.ErrNotFound
}
