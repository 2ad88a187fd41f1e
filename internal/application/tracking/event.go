package tracking

import (
	"time"

	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
)

// PurchaseEvent is the analytics payload fired once per confirmed order.
type PurchaseEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Total       string    `json:"total"`
	Items       []Line    `json:"items"`
	FiredAt     time.Time `json:"fired_at"`
}

// Line is one purchased line item inside a PurchaseEvent.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// EventFromOrder builds the purchase event for a normalized order.
func EventFromOrder(o *domain.Order) PurchaseEvent {
	evt := PurchaseEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Total:       o.TotalPrice,
		Items:       make([]Line, 0, len(o.Items)),
		FiredAt:     time.Now().UTC(),
	}
	for _, item := range o.Items {
		evt.Items = append(evt.Items, Line{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return evt
}
