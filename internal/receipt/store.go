package receipt

import (
	"context"
	"errors"
	"sync"
)

// ErrDuplicateID is returned by Put when the identifier is already taken.
var ErrDuplicateID = errors.New("receipt id already exists")

// Store persists scored receipts under caller-supplied identifiers. Records
// are immutable once stored; there is no update or delete.
type Store interface {
	// Put stores the record under id, failing with ErrDuplicateID when the
	// identifier is already in use. The existence check and the insert are
	// atomic with respect to concurrent callers.
	Put(ctx context.Context, id string, rec ScoredReceipt) error
	// Get returns the record for id, reporting whether it exists.
	Get(ctx context.Context, id string) (ScoredReceipt, bool, error)
}

// MemoryStore is a process-lifetime Store backed by a mutex-guarded map.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts map[string]ScoredReceipt
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{receipts: make(map[string]ScoredReceipt)}
}

// Put implements Store. Check-and-insert happens under a single lock so a
// concurrent reader observes either absence or the complete record.
func (s *MemoryStore) Put(_ context.Context, id string, rec ScoredReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receipts[id]; exists {
		return ErrDuplicateID
	}
	s.receipts[id] = rec
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (ScoredReceipt, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.receipts[id]
	return rec, ok, nil
}

// Len reports the number of stored receipts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}
