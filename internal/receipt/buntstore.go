package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// BuntStore is a Store backed by an in-memory buntdb database. It offers the
// same process-lifetime semantics as MemoryStore while keeping records behind
// a transactional key-value engine.
type BuntStore struct {
	db *buntdb.DB
}

// NewBuntStore opens an in-memory buntdb database.
func NewBuntStore() (*BuntStore, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open buntdb: %w", err)
	}
	return &BuntStore{db: db}, nil
}

// Put implements Store. The existence check and the insert share one write
// transaction.
func (s *BuntStore) Put(_ context.Context, id string, rec ScoredReceipt) error {
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	return s.db.Update(func(tx *buntdb.Tx) error {
		if _, err := tx.Get(id); err == nil {
			return ErrDuplicateID
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		_, _, err := tx.Set(id, string(encoded), nil)
		return err
	})
}

// Get implements Store.
func (s *BuntStore) Get(_ context.Context, id string) (ScoredReceipt, bool, error) {
	var raw string
	err := s.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(id)
		if err != nil {
			return err
		}
		raw = value
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return ScoredReceipt{}, false, nil
	}
	if err != nil {
		return ScoredReceipt{}, false, err
	}
	var rec ScoredReceipt
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return ScoredReceipt{}, false, fmt.Errorf("decode receipt: %w", err)
	}
	return rec, true, nil
}

// Close releases the underlying database.
func (s *BuntStore) Close() error {
	return s.db.Close()
}
