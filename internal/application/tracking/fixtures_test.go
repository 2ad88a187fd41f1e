package tracking

import (
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
)

func orderFixture() *domain.Order {
	return &domain.Order{
		ID:          "ord_1",
		OrderNumber: "ORD_1",
		TotalPrice:  "109.98",
		Items: []domain.Item{
			{ID: "a", Name: "Bomber Jacket", Price: "49.99", Quantity: 2},
			{ID: "b", Name: "Belt", Price: "10", Quantity: 1},
		},
	}
}
