package receipt

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/noah-isme/receipt-points/internal/common"
)

func newTestService(store Store) *Service {
	return &Service{Store: store, Logger: zerolog.Nop()}
}

func TestProcessReceiptStoresScoredRecord(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store)

	rec, err := svc.ProcessReceipt(context.Background(), targetReceipt())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected a generated id")
	}
	if rec.Points != 28 {
		t.Fatalf("expected 28 points, got %d", rec.Points)
	}

	stored, found, err := store.Get(context.Background(), rec.ID)
	if err != nil || !found {
		t.Fatalf("stored record missing: found=%v err=%v", found, err)
	}
	if stored.Points != rec.Points || len(stored.Receipt.Items) != 5 {
		t.Fatalf("stored record mismatch: %+v", stored)
	}
}

func TestProcessReceiptParseFailureStoresNothing(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store)

	raw := targetReceipt()
	raw.PurchaseDate = "2022-13-41"
	_, err := svc.ProcessReceipt(context.Background(), raw)
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
	appErr, ok := common.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal AppError, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("nothing should be stored on failure, got %d records", store.Len())
	}
}

func TestProcessReceiptRetriesOnCollision(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Put(context.Background(), "taken", sampleScored("taken")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	ids := []string{"taken", "taken", "fresh"}
	svc := newTestService(store)
	svc.NewID = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	rec, err := svc.ProcessReceipt(context.Background(), targetReceipt())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rec.ID != "fresh" {
		t.Fatalf("expected retry to land on fresh id, got %q", rec.ID)
	}
}

func TestProcessReceiptGivesUpAfterMaxAttempts(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Put(context.Background(), "taken", sampleScored("taken")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	svc := newTestService(store)
	svc.MaxIDAttempts = 3
	svc.NewID = func() string { return "taken" }

	_, err := svc.ProcessReceipt(context.Background(), targetReceipt())
	if err == nil {
		t.Fatal("expected error after exhausting id attempts")
	}
	appErr, ok := common.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal AppError, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store)

	if _, found, err := svc.Lookup(context.Background(), "nope"); err != nil || found {
		t.Fatalf("expected clean not-found, got found=%v err=%v", found, err)
	}

	rec, err := svc.ProcessReceipt(context.Background(), targetReceipt())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got, found, err := svc.Lookup(context.Background(), rec.ID)
	if err != nil || !found {
		t.Fatalf("lookup: found=%v err=%v", found, err)
	}
	if got.Points != rec.Points {
		t.Fatalf("points mismatch: %d vs %d", got.Points, rec.Points)
	}
}
