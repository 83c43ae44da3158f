package models

// CartLine represents a product line in a user's cart
type CartLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Qty       int     `json:"qty"`
}

// CartResponse represents the response for GET /api/cart
// Example response:
// {
//   "lines": [
//     {"productId": "p-1", "title": "Red Dress", "price": 49.99, "imageUrl": "https://...", "qty": 2}
//   ],
//   "total": 99.98,
//   "totalFormatted": "$99.98"
// }
type CartResponse struct {
	Lines          []CartLine `json:"lines"`
	Total          float64    `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
}

// UpdateCartQtyRequest represents the request body for PUT /api/cart/{productId}
// Example: {"qty": 3}
type UpdateCartQtyRequest struct {
	Qty int `json:"qty"`
}
