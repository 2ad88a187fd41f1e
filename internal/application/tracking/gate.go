package tracking

import (
	"context"
	"fmt"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// Store is the persisted set of already-tracked order ids, kept as a
// plain string list under a single key so any key-value backend works.
type Store interface {
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, value []string) error
}

// Publisher is the analytics sink a purchase event is fired into.
type Publisher interface {
	PublishPurchase(ctx context.Context, evt PurchaseEvent) error
}

// Gate fires a purchase event at most once per order id. The set is
// appended to and never pruned.
//
// The read-modify-write on the store is not guarded: two writers racing
// on the same order can double-fire. That matches how the confirmation
// page has always behaved across tabs and is accepted, not fixed here.
type Gate struct {
	store     Store
	publisher Publisher
	key       string
	log       logger.Logger
}

func NewGate(store Store, publisher Publisher, key string, log logger.Logger) *Gate {
	if key == "" {
		key = "tracked_orders"
	}
	return &Gate{
		store:     store,
		publisher: publisher,
		key:       key,
		log:       log,
	}
}

// TrackOnce publishes the event unless its order id is already in the
// tracked set, then records the id. A store read failure fails closed:
// nothing is published, so a flaky backend cannot cause duplicates.
func (g *Gate) TrackOnce(ctx context.Context, evt PurchaseEvent) error {
	if evt.OrderID == "" {
		return fmt.Errorf("order id is empty")
	}

	tracked, err := g.store.Get(ctx, g.key)
	if err != nil {
		return fmt.Errorf("read tracked set: %w", err)
	}

	for _, id := range tracked {
		if id == evt.OrderID {
			g.log.Debug("purchase already tracked", logger.String("order_id", evt.OrderID))
			return nil
		}
	}

	if err := g.publisher.PublishPurchase(ctx, evt); err != nil {
		return fmt.Errorf("publish purchase event: %w", err)
	}

	if err := g.store.Set(ctx, g.key, append(tracked, evt.OrderID)); err != nil {
		return fmt.Errorf("persist tracked set: %w", err)
	}

	g.log.Info("purchase tracked",
		logger.String("order_id", evt.OrderID),
		logger.String("total", evt.Total),
		logger.Int("items", len(evt.Items)),
	)
	return nil
}
