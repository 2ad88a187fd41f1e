package avro

import (
	"fmt"
	"time"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/tracking"
)

// ToPurchaseEventNative converts a purchase event to the native shape
// goavro expects. Union values must be wrapped as
// map[string]interface{}{"type": value}, nil stays nil.
func ToPurchaseEventNative(evt tracking.PurchaseEvent) map[string]interface{} {
	out := map[string]interface{}{
		"order_id":     evt.OrderID,
		"order_number": optString(evt.OrderNumber),
		"total":        optString(evt.Total),
		"fired_at":     optString(evt.FiredAt.UTC().Format(time.RFC3339Nano)),
	}

	lines := make([]interface{}, 0, len(evt.Items))
	for _, item := range evt.Items {
		lines = append(lines, map[string]interface{}{
			"id":       optString(item.ID),
			"name":     optString(item.Name),
			"price":    optString(item.Price),
			"quantity": map[string]interface{}{"long": int64(item.Quantity)},
		})
	}
	out["items"] = map[string]interface{}{"array": lines}

	return out
}

// FromPurchaseEventNative rebuilds a purchase event from the decoded
// native map, tolerating absent unions the same way the upstream order
// mapping does.
func FromPurchaseEventNative(native map[string]interface{}) (*tracking.PurchaseEvent, error) {
	orderID, _ := native["order_id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("purchase event has no order_id")
	}

	evt := &tracking.PurchaseEvent{
		OrderID:     orderID,
		OrderNumber: unionString(native["order_number"]),
		Total:       unionString(native["total"]),
	}

	if ts := unionString(native["fired_at"]); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			evt.FiredAt = parsed
		}
	}

	if arr, ok := unionValue(native["items"], "array").([]interface{}); ok {
		evt.Items = make([]tracking.Line, 0, len(arr))
		for _, ri := range arr {
			line, ok := ri.(map[string]interface{})
			if !ok {
				continue
			}
			item := tracking.Line{
				ID:    unionString(line["id"]),
				Name:  unionString(line["name"]),
				Price: unionString(line["price"]),
			}
			if q, ok := unionValue(line["quantity"], "long").(int64); ok {
				item.Quantity = int(q)
			}
			evt.Items = append(evt.Items, item)
		}
	}

	return evt, nil
}

func optString(s string) interface{} {
	if s == "" {
		return nil
	}
	return map[string]interface{}{"string": s}
}

func unionValue(v interface{}, typeName string) interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m[typeName]
	}
	return nil
}

func unionString(v interface{}) string {
	if s, ok := unionValue(v, "string").(string); ok {
		return s
	}
	return ""
}
