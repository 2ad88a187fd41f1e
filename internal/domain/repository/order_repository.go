package repository

import (
	"context"

	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
)

// OrderRepository archives normalized orders.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}
