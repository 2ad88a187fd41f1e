package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeRaw runs input through encoding/json so the test sees the same
// loose types (float64, map[string]interface{}) a real response produces.
func decodeRaw(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestNormalize_RecomputesTotalFromItems(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [
			{"quantity": 2, "product": {"name": "Bomber Jacket", "price": "49.99"}},
			{"quantity": 1, "product": {"name": "Belt", "price": "10"}}
		]
	}`)

	out := Normalize(raw, IDStyleFull)

	assert.Equal(t, "109.98", out.TotalPrice)
	assert.Len(t, out.Items, 2)
}

func TestNormalize_ZeroTotalTreatedAsUnset(t *testing.T) {
	for _, total := range []interface{}{"0", "0.00", float64(0), ""} {
		raw := decodeRaw(t, `{
			"id": "ord_1",
			"orderItems": [{"quantity": 3, "product": {"price": "20"}}]
		}`)
		raw["total"] = total

		out := Normalize(raw, IDStyleFull)
		assert.Equal(t, "60", out.TotalPrice, "total=%v", total)
	}
}

func TestNormalize_TrustsUpstreamTotal(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"total": "150",
		"orderItems": [
			{"quantity": 2, "product": {"price": "49.99"}},
			{"quantity": 1, "product": {"price": "10"}}
		]
	}`)

	out := Normalize(raw, IDStyleFull)

	// Upstream total wins even though the items sum to 109.98.
	assert.Equal(t, "150", out.TotalPrice)
}

func TestNormalize_TotalPriorityOrder(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"total": "30",
		"totalAmount": "40",
		"totalPrice": "50"
	}`)

	assert.Equal(t, "30", Normalize(raw, IDStyleFull).TotalPrice)

	delete(raw, "total")
	assert.Equal(t, "40", Normalize(raw, IDStyleFull).TotalPrice)

	delete(raw, "totalAmount")
	assert.Equal(t, "50", Normalize(raw, IDStyleFull).TotalPrice)
}

func TestNormalize_NoItemsNoTotal(t *testing.T) {
	out := Normalize(decodeRaw(t, `{"id": "ord_1"}`), IDStyleFull)

	assert.Equal(t, "0", out.TotalPrice)
	assert.Empty(t, out.Items)
}

func TestNormalize_Defaults(t *testing.T) {
	out := Normalize(decodeRaw(t, `{"id": "ord_1"}`), IDStyleFull)

	assert.Equal(t, StatusProcessing, out.Status)
	assert.Equal(t, DefaultPaymentMethod, out.PaymentMethod)
	assert.Equal(t, "0", out.DiscountAmount)
	assert.Empty(t, out.VoucherCode)
	assert.Nil(t, out.ShippingAddress)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"status": "shipped",
		"orderItems": [{"quantity": 2, "product": {"price": "5.50", "color": {"name": "Black"}}}]
	}`)

	first := Normalize(raw, IDStyleShort8)
	second := Normalize(raw, IDStyleShort8)

	assert.Equal(t, first, second)
}

func TestNormalize_NilAndEmptyInput(t *testing.T) {
	out := Normalize(nil, IDStyleShort8)

	assert.NotNil(t, out)
	assert.Equal(t, "0", out.TotalPrice)
	assert.Equal(t, StatusProcessing, out.Status)
}

func TestNormalize_OrderNumberStyles(t *testing.T) {
	raw := decodeRaw(t, `{"id": "abcdef123456"}`)

	assert.Equal(t, "abcdef123456", Normalize(raw, IDStyleFull).OrderNumber)
	assert.Equal(t, "ABCDEF12", Normalize(raw, IDStyleShort8).OrderNumber)

	short := decodeRaw(t, `{"id": "ab1"}`)
	assert.Equal(t, "AB1", Normalize(short, IDStyleShort8).OrderNumber)
}

func TestNormalize_ItemMapping(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{
			"id": "item_1",
			"quantity": 2,
			"product": {
				"name": "Varsity Jacket",
				"price": 89.5,
				"color": {"name": "Navy"},
				"size": {"name": "XL"}
			}
		}]
	}`)

	out := Normalize(raw, IDStyleFull)
	require.Len(t, out.Items, 1)

	item := out.Items[0]
	assert.Equal(t, "item_1", item.ID)
	assert.Equal(t, "Varsity Jacket", item.Name)
	assert.Equal(t, "89.5", item.Price)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Navy", item.Color)
	assert.Equal(t, "XL", item.Size)
}

func TestNormalize_ItemDefaults(t *testing.T) {
	raw := decodeRaw(t, `{"id": "ord_1", "orderItems": [{}]}`)

	out := Normalize(raw, IDStyleFull)
	require.Len(t, out.Items, 1)

	item := out.Items[0]
	assert.Equal(t, "Product", item.Name)
	assert.Equal(t, "0", item.Price)
	assert.Equal(t, 1, item.Quantity)
	assert.Empty(t, item.Color)
	assert.Empty(t, item.Size)
	assert.Equal(t, []string{PlaceholderImage}, item.Images)
}

func TestNormalize_UnparsablePriceBecomesZero(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{"quantity": 1, "product": {"price": "call us"}}]
	}`)

	out := Normalize(raw, IDStyleFull)

	assert.Equal(t, "0", out.Items[0].Price)
	assert.Equal(t, "0", out.TotalPrice)
}

func TestNormalize_NoItemsDroppedOrReordered(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [
			{"id": "a", "product": {"name": "First"}},
			"not even an object",
			{"id": "c", "product": {"name": "Third"}}
		]
	}`)

	out := Normalize(raw, IDStyleFull)
	require.Len(t, out.Items, 3)

	assert.Equal(t, "First", out.Items[0].Name)
	assert.Equal(t, "Product", out.Items[1].Name)
	assert.Equal(t, "Third", out.Items[2].Name)
}

func TestNormalize_ImageFallbackOrder(t *testing.T) {
	// Nested product image shape wins over the item-level shape.
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{
			"images": [{"url": "b"}],
			"product": {"images": [{"image": {"url": "a"}}]}
		}]
	}`)
	assert.Equal(t, []string{"a"}, Normalize(raw, IDStyleFull).Items[0].Images)

	raw = decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{
			"images": [{"url": "b"}],
			"product": {"images": [{"url": "flat"}]}
		}]
	}`)
	assert.Equal(t, []string{"flat"}, Normalize(raw, IDStyleFull).Items[0].Images)

	raw = decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{"images": [{"url": "b"}], "product": {}}]
	}`)
	assert.Equal(t, []string{"b"}, Normalize(raw, IDStyleFull).Items[0].Images)

	raw = decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{"product": {"images": ["bare-string.jpg"]}}]
	}`)
	assert.Equal(t, []string{"bare-string.jpg"}, Normalize(raw, IDStyleFull).Items[0].Images)
}

func TestNormalize_ShippingAddress(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"address": {
			"line1": "1 Jacket Way",
			"city": "Austin",
			"state": "TX",
			"postalCode": "73301",
			"country": "US"
		}
	}`)

	out := Normalize(raw, IDStyleFull)
	require.NotNil(t, out.ShippingAddress)
	assert.Equal(t, "1 Jacket Way", out.ShippingAddress.Line1)
	assert.Equal(t, "Austin", out.ShippingAddress.City)

	// A plain string address still surfaces instead of being dropped.
	raw = decodeRaw(t, `{"id": "ord_1", "address": "1 Jacket Way, Austin TX"}`)
	out = Normalize(raw, IDStyleFull)
	require.NotNil(t, out.ShippingAddress)
	assert.Equal(t, "1 Jacket Way, Austin TX", out.ShippingAddress.Line1)
}

func TestNormalize_NumericTotalAsNumber(t *testing.T) {
	raw := decodeRaw(t, `{"id": "ord_1", "totalAmount": 199.99}`)

	assert.Equal(t, "199.99", Normalize(raw, IDStyleFull).TotalPrice)
}

func TestNormalize_ZeroQuantityDefaultsToOne(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": "ord_1",
		"orderItems": [{"quantity": 0, "product": {"price": "25"}}]
	}`)

	out := Normalize(raw, IDStyleFull)

	assert.Equal(t, 1, out.Items[0].Quantity)
	assert.Equal(t, "25", out.TotalPrice)
}
