package receipt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/receipt-points/internal/common"
	"github.com/noah-isme/receipt-points/internal/obs"
)

// DefaultIDAttempts bounds the identifier-collision retry loop.
const DefaultIDAttempts = 5

// Service normalizes, scores and stores submitted receipts.
type Service struct {
	Store  Store
	Logger zerolog.Logger
	// MaxIDAttempts caps identifier regeneration on collision. Zero means
	// DefaultIDAttempts.
	MaxIDAttempts int
	// NewID overrides identifier generation, used by tests to force
	// collisions. Defaults to uuid.NewString.
	NewID func() string
	// Now overrides the processing timestamp in tests.
	Now func() time.Time
}

// ProcessReceipt validates nothing: it assumes the submission already passed
// Validate. It normalizes and scores the receipt, then stores it under a
// fresh identifier, regenerating on collision up to MaxIDAttempts. Nothing is
// persisted unless normalization and scoring both succeeded.
func (s *Service) ProcessReceipt(ctx context.Context, raw RawReceipt) (ScoredReceipt, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		s.observeProcessed("parse_failure")
		s.Logger.Error().Err(err).Msg("normalize receipt")
		return ScoredReceipt{}, common.NewAppError(common.CodeInternal, "failed to process receipt", http.StatusInternalServerError, err)
	}
	rec := ScoredReceipt{
		Receipt:     normalized,
		Points:      Points(normalized),
		ProcessedAt: s.now(),
	}

	attempts := s.MaxIDAttempts
	if attempts <= 0 {
		attempts = DefaultIDAttempts
	}
	for i := 0; i < attempts; i++ {
		rec.ID = s.newID()
		err := s.Store.Put(ctx, rec.ID, rec)
		if err == nil {
			s.observeProcessed("ok")
			if obs.ReceiptPoints != nil {
				obs.ReceiptPoints.Observe(float64(rec.Points))
			}
			s.Logger.Info().
				Str("receipt_id", rec.ID).
				Str("retailer", rec.Receipt.Retailer).
				Int("items", len(rec.Receipt.Items)).
				Int64("points", rec.Points).
				Msg("receipt processed")
			return rec, nil
		}
		if !errors.Is(err, ErrDuplicateID) {
			s.observeProcessed("store_error")
			s.Logger.Error().Err(err).Str("receipt_id", rec.ID).Msg("store receipt")
			return ScoredReceipt{}, common.NewAppError(common.CodeInternal, "failed to store receipt", http.StatusInternalServerError, err)
		}
		if obs.ReceiptIDCollisions != nil {
			obs.ReceiptIDCollisions.Inc()
		}
		s.Logger.Warn().Str("receipt_id", rec.ID).Int("attempt", i+1).Msg("receipt id collision")
	}
	s.observeProcessed("id_exhausted")
	err = fmt.Errorf("exhausted %d identifier attempts", attempts)
	s.Logger.Error().Err(err).Msg("assign receipt id")
	return ScoredReceipt{}, common.NewAppError(common.CodeInternal, "failed to store receipt", http.StatusInternalServerError, err)
}

// Lookup fetches a stored receipt by identifier.
func (s *Service) Lookup(ctx context.Context, id string) (ScoredReceipt, bool, error) {
	rec, found, err := s.Store.Get(ctx, id)
	switch {
	case err != nil:
		s.observeLookup("error")
		s.Logger.Error().Err(err).Str("receipt_id", id).Msg("lookup receipt")
		return ScoredReceipt{}, false, common.NewAppError(common.CodeInternal, "failed to look up receipt", http.StatusInternalServerError, err)
	case !found:
		s.observeLookup("not_found")
		return ScoredReceipt{}, false, nil
	default:
		s.observeLookup("ok")
		return rec, true, nil
	}
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) observeProcessed(result string) {
	if obs.ReceiptsProcessedTotal != nil {
		obs.ReceiptsProcessedTotal.WithLabelValues(result).Inc()
	}
}

func (s *Service) observeLookup(result string) {
	if obs.ReceiptLookupsTotal != nil {
		obs.ReceiptLookupsTotal.WithLabelValues(result).Inc()
	}
}
