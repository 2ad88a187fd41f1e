package order

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize converts a raw storefront order record into a display-ready
// Order. It never fails: the upstream API has shipped several shapes for
// the same fields over time, so every field degrades to a documented
// default instead of erroring out. Numeric fields may arrive as strings.
func Normalize(raw map[string]interface{}, style IDStyle) *Order {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	id := stringValue(raw["id"])

	out := &Order{
		ID:                id,
		OrderNumber:       DisplayNumber(id, style),
		CreatedAt:         stringValue(raw["createdAt"]),
		Status:            stringValue(raw["status"]),
		DiscountAmount:    amountString(firstPresent(raw, "discount", "discountAmount")),
		VoucherCode:       stringValue(raw["voucherCode"]),
		PaymentMethod:     stringValue(raw["paymentMethod"]),
		TrackingNumber:    stringValue(raw["trackingNumber"]),
		EstimatedDelivery: stringValue(raw["estimatedDelivery"]),
		ShippedAt:         stringValue(raw["shippedAt"]),
		DeliveredAt:       stringValue(raw["deliveredAt"]),
	}

	if out.Status == "" {
		out.Status = StatusProcessing
	}
	if out.PaymentMethod == "" {
		out.PaymentMethod = DefaultPaymentMethod
	}

	rawItems := sliceValue(raw["orderItems"])
	out.Items = make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		out.Items = append(out.Items, normalizeItem(mapValue(ri)))
	}

	out.TotalPrice = reconcileTotal(raw, rawItems)

	if addr, ok := raw["address"]; ok && addr != nil {
		out.ShippingAddress = normalizeAddress(addr)
	}

	return out
}

// reconcileTotal picks the upstream total when it is present and
// non-zero, and otherwise recomputes it from the line items. The rule
// exists because some producers send orders whose total fields are
// missing or zero even though the items carry real prices.
func reconcileTotal(raw map[string]interface{}, rawItems []interface{}) string {
	candidate := ""
	if v := firstPresent(raw, "total", "totalAmount", "totalPrice"); v != nil {
		candidate = stringValue(v)
	}

	unset := candidate == "" || candidate == "0"
	if !unset {
		if f, err := strconv.ParseFloat(candidate, 64); err == nil && f == 0 {
			unset = true
		}
	}
	if !unset {
		// Upstream total wins even if it disagrees with the item sum.
		return candidate
	}
	if len(rawItems) == 0 {
		return "0"
	}

	sum := 0.0
	for _, ri := range rawItems {
		item := mapValue(ri)
		product := mapValue(item["product"])
		price, _ := strconv.ParseFloat(amountString(product["price"]), 64)
		sum += price * float64(itemQuantity(item))
	}
	return formatNumber(sum)
}

func normalizeItem(item map[string]interface{}) Item {
	product := mapValue(item["product"])

	name := stringValue(product["name"])
	if name == "" {
		name = stringValue(item["name"])
	}
	if name == "" {
		name = "Product"
	}

	out := Item{
		ID:       stringValue(item["id"]),
		Name:     name,
		Price:    amountString(product["price"]),
		Quantity: itemQuantity(item),
		Color:    nestedName(product, "color"),
		Size:     nestedName(product, "size"),
		Images:   []string{resolveImage(item, product)},
	}
	return out
}

// imageExtractor tries one historical image shape and reports whether
// it produced a usable URL.
type imageExtractor func(item, product map[string]interface{}) (string, bool)

// imageExtractors is tried in order; the first non-empty URL wins. The
// order is load-bearing: different upstream producers have shipped each
// of these shapes.
var imageExtractors = []imageExtractor{
	// product.images[0].image.url
	func(_, product map[string]interface{}) (string, bool) {
		first := mapValue(firstElement(product["images"]))
		url := stringValue(mapValue(first["image"])["url"])
		return url, url != ""
	},
	// product.images[0].url
	func(_, product map[string]interface{}) (string, bool) {
		url := stringValue(mapValue(firstElement(product["images"]))["url"])
		return url, url != ""
	},
	// item.images[0].url
	func(item, _ map[string]interface{}) (string, bool) {
		url := stringValue(mapValue(firstElement(item["images"]))["url"])
		return url, url != ""
	},
	// product.images[0] as a bare string
	func(_, product map[string]interface{}) (string, bool) {
		if s, ok := firstElement(product["images"]).(string); ok && s != "" {
			return s, true
		}
		return "", false
	},
}

func resolveImage(item, product map[string]interface{}) string {
	for _, extract := range imageExtractors {
		if url, ok := extract(item, product); ok {
			return url
		}
	}
	return PlaceholderImage
}

func normalizeAddress(v interface{}) *Address {
	if s, ok := v.(string); ok {
		return &Address{Line1: s}
	}
	m := mapValue(v)
	return &Address{
		Line1:      stringValue(m["line1"]),
		Line2:      stringValue(m["line2"]),
		City:       stringValue(m["city"]),
		State:      stringValue(m["state"]),
		PostalCode: stringValue(m["postalCode"]),
		Country:    stringValue(m["country"]),
	}
}

// DisplayNumber derives the human-readable order number from an order
// id: the id itself, or its first 8 characters upper-cased.
func DisplayNumber(id string, style IDStyle) string {
	if id == "" || style == IDStyleFull {
		return id
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return strings.ToUpper(short)
}

// nestedName reads a product attribute that arrives either as a bare
// string or as an object carrying a name field.
func nestedName(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return stringValue(mapValue(m[key])["name"])
}

func itemQuantity(item map[string]interface{}) int {
	if v, ok := item["quantity"]; ok && v != nil {
		var q float64
		switch t := v.(type) {
		case float64:
			q = t
		case int:
			q = float64(t)
		case string:
			q, _ = strconv.ParseFloat(t, 64)
		}
		if q != 0 {
			return int(q)
		}
	}
	return 1
}

/* ================= loose-typing helpers ================= */

func firstPresent(m map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func mapValue(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func sliceValue(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

func firstElement(v interface{}) interface{} {
	if s := sliceValue(v); len(s) > 0 {
		return s[0]
	}
	return nil
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// amountString renders a money field as a decimal string, normalizing
// anything unparsable to "0".
func amountString(v interface{}) string {
	s := strings.TrimSpace(stringValue(v))
	if s == "" {
		return "0"
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "0"
	}
	return s
}

// formatNumber matches the storefront's number rendering: no trailing
// zeros, no exponent for the magnitudes orders actually reach.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
