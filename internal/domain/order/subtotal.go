package order

import "strconv"

// Subtotal recomputes the item sum from an already-normalized order.
// This intentionally repeats the reconciliation formula over the
// normalized items rather than the raw ones: the confirmation page has
// always shown a subtotal derived from what it renders, and collapsing
// the two computations would change display behavior if item prices
// ever diverge from product prices.
func Subtotal(o *Order) string {
	if o == nil {
		return "0"
	}
	if len(o.Items) == 0 {
		return o.TotalPrice
	}

	sum := 0.0
	for _, item := range o.Items {
		price, _ := strconv.ParseFloat(item.Price, 64)
		sum += price * float64(item.Quantity)
	}
	return formatNumber(sum)
}
