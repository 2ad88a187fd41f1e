package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
)

// OrderRepository archives normalized orders. Timestamps stay TEXT on
// purpose: createdAt is copied verbatim from the upstream record and is
// not guaranteed to parse.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	const query = `
		INSERT INTO normalized_orders
			(id, order_number, created_at, status, total_price, discount_amount,
			 voucher_code, payment_method, tracking_number, items, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE
		SET order_number = EXCLUDED.order_number,
			created_at = EXCLUDED.created_at,
			status = EXCLUDED.status,
			total_price = EXCLUDED.total_price,
			discount_amount = EXCLUDED.discount_amount,
			voucher_code = EXCLUDED.voucher_code,
			payment_method = EXCLUDED.payment_method,
			tracking_number = EXCLUDED.tracking_number,
			items = EXCLUDED.items,
			shipping_address = EXCLUDED.shipping_address;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	var address []byte
	if order.ShippingAddress != nil {
		address, err = json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("encode address: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CreatedAt,
		order.Status,
		order.TotalPrice,
		order.DiscountAmount,
		order.VoucherCode,
		order.PaymentMethod,
		order.TrackingNumber,
		items,
		address,
	)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
		SELECT id, order_number, created_at, status, total_price, discount_amount,
			   voucher_code, payment_method, tracking_number, items, shipping_address
		FROM normalized_orders
		WHERE id = $1;
	`

	var (
		o       domain.Order
		items   []byte
		address []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CreatedAt,
		&o.Status,
		&o.TotalPrice,
		&o.DiscountAmount,
		&o.VoucherCode,
		&o.PaymentMethod,
		&o.TrackingNumber,
		&items,
		&address,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if len(address) > 0 {
		o.ShippingAddress = &domain.Address{}
		if err := json.Unmarshal(address, o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	return &o, nil
}

func (r *OrderRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS normalized_orders (
			id TEXT PRIMARY KEY,
			order_number TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			total_price TEXT NOT NULL,
			discount_amount TEXT NOT NULL,
			voucher_code TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL,
			tracking_number TEXT NOT NULL DEFAULT '',
			items JSONB NOT NULL,
			shipping_address JSONB
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
