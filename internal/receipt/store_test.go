package receipt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func sampleScored(id string) ScoredReceipt {
	return ScoredReceipt{
		ID: id,
		Receipt: Receipt{
			Retailer:    "Target",
			Total:       3535,
			PurchasedAt: time.Date(2022, time.January, 1, 13, 1, 0, 0, time.UTC),
			Items: []Item{
				{ShortDescription: "Mountain Dew 12PK", Price: 649},
			},
		},
		Points:      28,
		ProcessedAt: time.Date(2022, time.January, 1, 13, 2, 0, 0, time.UTC),
	}
}

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	if _, found, err := store.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("get before put: found=%v err=%v", found, err)
	}

	rec := sampleScored("r1")
	if err := store.Put(ctx, "r1", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := store.Get(ctx, "r1")
	if err != nil || !found {
		t.Fatalf("get after put: found=%v err=%v", found, err)
	}
	if got.Points != rec.Points || got.Receipt.Retailer != rec.Receipt.Retailer {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Receipt.Items) != 1 || got.Receipt.Items[0].Price != 649 {
		t.Fatalf("items did not round trip: %+v", got.Receipt.Items)
	}
	if !got.Receipt.PurchasedAt.Equal(rec.Receipt.PurchasedAt) {
		t.Fatalf("purchase time did not round trip: %v", got.Receipt.PurchasedAt)
	}

	if err := store.Put(ctx, "r1", sampleScored("r1")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestBuntStore(t *testing.T) {
	store, err := NewBuntStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()
	runStoreContract(t, store)
}

func TestMemoryStoreConcurrentPut(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	var dups int
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			// half the writers fight over the same id
			id := "shared"
			if i%2 == 0 {
				id = fmt.Sprintf("unique-%d", i)
			}
			if err := store.Put(ctx, id, sampleScored(id)); errors.Is(err, ErrDuplicateID) {
				mu.Lock()
				dups++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	// exactly one writer wins the shared id
	if dups != writers/2-1 {
		t.Fatalf("expected %d duplicate errors, got %d", writers/2-1, dups)
	}
	if store.Len() != writers/2+1 {
		t.Fatalf("expected %d records, got %d", writers/2+1, store.Len())
	}
}
