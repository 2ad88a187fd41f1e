package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/tracking"
)

// PurchaseRepository archives purchase events consumed off the bus.
// order_id is the primary key with DO NOTHING on conflict, so a
// double-fired event (the accepted cross-writer gate race) is absorbed
// here instead of duplicating rows.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

func (r *PurchaseRepository) SavePurchase(ctx context.Context, evt *tracking.PurchaseEvent) error {
	if evt == nil {
		return fmt.Errorf("purchase event is nil")
	}

	const query = `
		INSERT INTO purchase_events (order_id, order_number, total, items, fired_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	items, err := json.Marshal(evt.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		evt.OrderID,
		evt.OrderNumber,
		evt.Total,
		items,
		evt.FiredAt,
	)
	return err
}

func (r *PurchaseRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS purchase_events (
			order_id TEXT PRIMARY KEY,
			order_number TEXT NOT NULL,
			total TEXT NOT NULL,
			items JSONB NOT NULL,
			fired_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
