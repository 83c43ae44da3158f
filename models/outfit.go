package models

// BodyRegion is the body zone an applied item occupies
type BodyRegion string

const (
	RegionTop       BodyRegion = "Top"
	RegionBottom    BodyRegion = "Bottom"
	RegionDress     BodyRegion = "Dress"
	RegionOuterwear BodyRegion = "Outerwear"
	RegionShoes     BodyRegion = "Shoes"
	RegionAccessory BodyRegion = "Accessory"
)

// AllRegions lists every region in draw-table order
var AllRegions = []BodyRegion{
	RegionTop,
	RegionBottom,
	RegionDress,
	RegionOuterwear,
	RegionShoes,
	RegionAccessory,
}

// IsExclusive reports whether the region admits at most one occupant.
// Only accessories accumulate.
func (r BodyRegion) IsExclusive() bool {
	return r != RegionAccessory
}

// Position is expressed as percentage coordinates of the avatar canvas
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AppliedItem represents one catalog product currently placed on the avatar
type AppliedItem struct {
	InstanceID string      `json:"instanceId"`
	Region     BodyRegion  `json:"region"`
	Glyph      string      `json:"glyph"`
	Item       CatalogItem `json:"item"`
	Position   Position    `json:"position"`
	Scale      float64     `json:"scale"`
	Layer      int         `json:"layer"`
}

// OutfitPayload is the write-once, read-once handoff from the builder to checkout
// Example:
// {
//   "avatar": {"id": "7b0c...", "ageGroup": "adult", "gender": "female", ...},
//   "items": [
//     {
//       "instanceId": "e3a1...",
//       "region": "Dress",
//       "glyph": "👗",
//       "item": {"id": "p-1", "title": "Red Dress", "price": 49.99, "imageUrl": "https://..."},
//       "position": {"x": 50, "y": 45},
//       "scale": 1.4,
//       "layer": 1
//     }
//   ]
// }
type OutfitPayload struct {
	Avatar BaseAvatarConfig `json:"avatar"`
	Items  []AppliedItem    `json:"items"`
}

// ApplyItemRequest represents the request body for POST /api/outfit/items.
// Item is decoded loosely so any upstream product shape can be posted back.
type ApplyItemRequest struct {
	Item map[string]any `json:"item"`
}

// MoveItemRequest represents the request body for PATCH /api/outfit/items/{id}
// Example: {"position": {"x": 40, "y": 30}, "scale": 1.2}
type MoveItemRequest struct {
	Position Position `json:"position"`
	Scale    float64  `json:"scale"`
}

// OutfitStateResponse represents the response for GET /api/outfit
type OutfitStateResponse struct {
	Avatar         *BaseAvatarConfig `json:"avatar"`
	Items          []AppliedItem     `json:"items"`
	Total          float64           `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
}

// FinalizeResponse represents the response for POST /api/outfit/finalize
type FinalizeResponse struct {
	Payload   OutfitPayload `json:"payload"`
	ItemCount int           `json:"itemCount"`
	Next      string        `json:"next"`
}
