package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/tracking"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/repository"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// RawFetcher abstracts the storefront API client so the service is
// testable without a live upstream.
type RawFetcher interface {
	FetchOrder(ctx context.Context, orderID string) (map[string]interface{}, error)
	FetchStoreOrder(ctx context.Context, storeID, orderID string) (map[string]interface{}, error)
	FetchRecentOrders(ctx context.Context, start, end *time.Time) ([]json.RawMessage, error)
}

// Tracker guards the purchase analytics event (at most once per order).
type Tracker interface {
	TrackOnce(ctx context.Context, evt tracking.PurchaseEvent) error
}

// PurchaseArchive persists purchase events consumed back off the bus.
type PurchaseArchive interface {
	SavePurchase(ctx context.Context, evt *tracking.PurchaseEvent) error
}

type Service struct {
	fetcher   RawFetcher
	repo      repository.OrderRepository
	purchases PurchaseArchive
	tracker   Tracker
	idStyle   domain.IDStyle
	log       logger.Logger
}

func NewService(
	fetcher RawFetcher,
	repo repository.OrderRepository,
	purchases PurchaseArchive,
	tracker Tracker,
	idStyle domain.IDStyle,
	log logger.Logger,
) *Service {
	return &Service{
		fetcher:   fetcher,
		repo:      repo,
		purchases: purchases,
		tracker:   tracker,
		idStyle:   idStyle,
		log:       log,
	}
}

// GetConfirmation fetches the raw order, normalizes it and fires the
// purchase-tracking gate. Archiving and tracking are best-effort: the
// confirmation must still come back even when the sinks are down, so
// their failures are logged and swallowed. Fetch errors propagate as
// classified by the client (FetchError / ErrNetwork) with no retry.
func (s *Service) GetConfirmation(ctx context.Context, storeID, orderID string) (*domain.Order, error) {
	var (
		raw map[string]interface{}
		err error
	)
	if storeID != "" {
		raw, err = s.fetcher.FetchStoreOrder(ctx, storeID, orderID)
	} else {
		raw, err = s.fetcher.FetchOrder(ctx, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}

	normalized := domain.Normalize(raw, s.idStyle)
	if normalized.ID == "" {
		// Upstream occasionally omits the id; fall back to the one the
		// caller asked for so the page can still show something.
		normalized.ID = orderID
		normalized.OrderNumber = domain.DisplayNumber(orderID, s.idStyle)
	}

	if err := s.repo.Save(ctx, normalized); err != nil {
		s.log.Warn("archive order failed",
			logger.String("order_id", normalized.ID),
			logger.Error(err),
		)
	}

	if err := s.tracker.TrackOnce(ctx, tracking.EventFromOrder(normalized)); err != nil {
		s.log.Warn("purchase tracking failed",
			logger.String("order_id", normalized.ID),
			logger.Error(err),
		)
	}

	return normalized, nil
}

// SyncRecent pulls recently updated orders from the storefront API,
// normalizes each and archives it. Returns how many were archived.
func (s *Service) SyncRecent(ctx context.Context, start, end *time.Time) (int, error) {
	raws, err := s.fetcher.FetchRecentOrders(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch recent orders: %w", err)
	}

	count := 0
	for _, raw := range raws {
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			s.log.Warn("skip malformed order record", logger.Error(err))
			continue
		}
		if err := s.repo.Save(ctx, domain.Normalize(m, s.idStyle)); err != nil {
			return count, fmt.Errorf("archive order #%d: %w", count, err)
		}
		count++
	}
	return count, nil
}

// HandleTrackedPurchase stores a purchase event consumed from Kafka.
func (s *Service) HandleTrackedPurchase(ctx context.Context, evt *tracking.PurchaseEvent) error {
	if evt == nil {
		return fmt.Errorf("purchase event is nil")
	}
	if err := s.purchases.SavePurchase(ctx, evt); err != nil {
		return fmt.Errorf("save purchase event: %w", err)
	}
	return nil
}
