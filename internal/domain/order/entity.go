package order

// Order lifecycle labels as rendered on the confirmation page.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Defaults applied when the upstream record is missing a field.
const (
	DefaultPaymentMethod = "Credit Card"
	PlaceholderImage     = "/images/product-placeholder.jpg"
)

// Order is the display-ready order produced by Normalize. All money
// fields are decimal strings, matching what the storefront renders.
type Order struct {
	ID                string   `json:"id"`
	OrderNumber       string   `json:"orderNumber"`
	CreatedAt         string   `json:"createdAt,omitempty"`
	Status            string   `json:"status"`
	TotalPrice        string   `json:"totalPrice"`
	DiscountAmount    string   `json:"discountAmount"`
	VoucherCode       string   `json:"voucherCode,omitempty"`
	PaymentMethod     string   `json:"paymentMethod"`
	TrackingNumber    string   `json:"trackingNumber,omitempty"`
	EstimatedDelivery string   `json:"estimatedDelivery,omitempty"`
	ShippedAt         string   `json:"shippedAt,omitempty"`
	DeliveredAt       string   `json:"deliveredAt,omitempty"`
	Items             []Item   `json:"items"`
	ShippingAddress   *Address `json:"shippingAddress,omitempty"`
}

// Item is a normalized order line. Price is always numeric-parseable;
// unparsable or missing source prices become "0".
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Quantity int      `json:"quantity"`
	Color    string   `json:"color,omitempty"`
	Size     string   `json:"size,omitempty"`
	Images   []string `json:"images"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// IDStyle selects how the display order number is derived from the raw
// order id. The two styles coexist upstream, so the choice is a policy
// knob rather than a hardcoded rule.
type IDStyle string

const (
	IDStyleFull   IDStyle = "full"
	IDStyleShort8 IDStyle = "short8"
)

// ParseIDStyle maps a config string to an IDStyle, defaulting to short8.
func ParseIDStyle(s string) IDStyle {
	if s == string(IDStyleFull) {
		return IDStyleFull
	}
	return IDStyleShort8
}
