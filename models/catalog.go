package models

// CatalogItem represents a single product returned by the product search provider.
// It is normalized at the provider boundary and never mutated afterwards.
type CatalogItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	GenderTag string  `json:"genderTag,omitempty"` // "male", "female", "unisex" or empty
}

// ProductSearchResponse represents the response for GET /api/products/search
// Example response:
// {
//   "query": "jacket",
//   "products": [
//     {"id": "p-101", "title": "Women's Denim Jacket", "price": 59.9, "imageUrl": "https://..."}
//   ]
// }
type ProductSearchResponse struct {
	Query    string        `json:"query"`
	Products []CatalogItem `json:"products"`
}
