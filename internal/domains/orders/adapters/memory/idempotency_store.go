package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore provides an in-memory implementation for development and tests.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
}

// NewIdempotencyStore constructs an empty in-memory store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns the stored record for the provided key, or nil when absent.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	out := record
	return &out, nil
}

// Save persists the record or returns the existing record if it matches.
func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[record.Key]; ok {
		out := existing
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return &out, ports.ErrIdempotencyConflict
		}
		return &out, nil
	}

	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	s.records[record.Key] = record
	saved := record
	return &saved, nil
}

// Snapshot copies the stored keys.
func (s *IdempotencyStore) Snapshot() map[string]ports.IdempotencyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]ports.IdempotencyRecord, len(s.records))
	for k, v := range s.records {
		snap[k] = v
	}
	return snap
}

// Restore replaces the stored keys with a snapshot.
func (s *IdempotencyStore) Restore(snap map[string]ports.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]ports.IdempotencyRecord, len(snap))
	for k, v := range snap {
		s.records[k] = v
	}
}
