package models

// Checkout states returned by GET /api/checkout
const (
	CheckoutStateReady = "ready"
	CheckoutStateEmpty = "empty"
)

// CheckoutSummaryResponse represents the checkout summary screen
// When no outfit was handed off, State is "empty" and Message tells the user to build one first.
type CheckoutSummaryResponse struct {
	State          string            `json:"state"`
	Message        string            `json:"message,omitempty"`
	Avatar         *BaseAvatarConfig `json:"avatar,omitempty"`
	Items          []AppliedItem     `json:"items"`
	Total          float64           `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
}

// AddToCartResponse represents the response for POST /api/checkout/cart and /api/checkout/buy-now
type AddToCartResponse struct {
	Added int        `json:"added"`
	Cart  []CartLine `json:"cart"`
	Next  string     `json:"next,omitempty"`
}
