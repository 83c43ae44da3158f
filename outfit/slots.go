package outfit

import (
	"sort"

	"github.com/google/uuid"

	"outfit-studio/models"
	"outfit-studio/utils"
)

// anchor is the default placement of a region on the avatar canvas (percent coordinates)
type anchor struct {
	Position models.Position
	Scale    float64
}

var regionAnchors = map[models.BodyRegion]anchor{
	models.RegionTop:       {Position: models.Position{X: 50, Y: 35}, Scale: 1.0},
	models.RegionOuterwear: {Position: models.Position{X: 50, Y: 35}, Scale: 1.1},
	models.RegionDress:     {Position: models.Position{X: 50, Y: 45}, Scale: 1.4},
	models.RegionBottom:    {Position: models.Position{X: 50, Y: 55}, Scale: 1.0},
	models.RegionShoes:     {Position: models.Position{X: 50, Y: 85}, Scale: 0.8},
	models.RegionAccessory: {Position: models.Position{X: 72, Y: 25}, Scale: 0.6},
}

const (
	minScale = 0.2
	maxScale = 3.0
)

// Slots is the live collection of applied items for one avatar session.
// For every exclusive region it holds at most one item.
// Slots is not safe for concurrent use.
type Slots struct {
	items     []models.AppliedItem
	lastLayer int
	newID     func() string
}

// NewSlots creates an empty outfit
func NewSlots() *Slots {
	return &Slots{newID: uuid.NewString}
}

// Apply classifies the item and places it on the avatar.
// An exclusive region drops its previous occupant; accessories accumulate.
func (s *Slots) Apply(item models.CatalogItem) models.AppliedItem {
	class := ClassifyWithGender(item.Title, item.GenderTag)

	if class.Region.IsExclusive() {
		kept := s.items[:0]
		for _, existing := range s.items {
			if existing.Region != class.Region {
				kept = append(kept, existing)
			}
		}
		s.items = kept
	}

	s.lastLayer++
	position, scale := s.defaultPlacement(class.Region)
	applied := models.AppliedItem{
		InstanceID: s.nextID(),
		Region:     class.Region,
		Glyph:      class.Glyph,
		Item:       item,
		Position:   position,
		Scale:      scale,
		Layer:      s.lastLayer,
	}
	s.items = append(s.items, applied)
	return applied
}

func (s *Slots) nextID() string {
	if s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

// defaultPlacement returns the region anchor; accessories fan out left and right
// and take the first fan slot no other accessory sits on.
func (s *Slots) defaultPlacement(region models.BodyRegion) (models.Position, float64) {
	a := regionAnchors[region]
	if region != models.RegionAccessory {
		return a.Position, a.Scale
	}

	taken := make(map[models.Position]bool)
	for _, existing := range s.items {
		if existing.Region == models.RegionAccessory {
			taken[existing.Position] = true
		}
	}

	// n accessories leave at least one of the first n+1 slots free
	n := len(taken)
	for slot := 0; slot < n; slot++ {
		if pos := accessorySlot(a.Position, slot); !taken[pos] {
			return pos, a.Scale
		}
	}
	return accessorySlot(a.Position, n), a.Scale
}

// accessorySlot alternates right and left of the anchor, stepping down every pair
func accessorySlot(base models.Position, slot int) models.Position {
	pos := base
	if slot%2 == 1 {
		pos.X = 100 - pos.X
	}
	pos.Y = clampPercent(pos.Y + float64(slot/2)*8)
	return pos
}

// Remove deletes the applied item with the given instance id. Unknown ids are ignored.
func (s *Slots) Remove(instanceID string) {
	for i, existing := range s.items {
		if existing.InstanceID == instanceID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Move repositions and rescales an applied item.
// Returns false when the instance is not on the avatar.
func (s *Slots) Move(instanceID string, position models.Position, scale float64) (models.AppliedItem, bool) {
	for i := range s.items {
		if s.items[i].InstanceID != instanceID {
			continue
		}
		s.items[i].Position = models.Position{X: clampPercent(position.X), Y: clampPercent(position.Y)}
		if scale > 0 {
			s.items[i].Scale = clampScale(scale)
		}
		return s.items[i], true
	}
	return models.AppliedItem{}, false
}

// List returns a snapshot of the applied items in draw order (layer ascending)
func (s *Slots) List() []models.AppliedItem {
	out := make([]models.AppliedItem, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

// Len returns the number of applied items
func (s *Slots) Len() int {
	return len(s.items)
}

// TotalPrice sums the prices of all applied items.
// Malformed prices count as 0 so the total is never NaN.
func (s *Slots) TotalPrice() float64 {
	return TotalPrice(s.items)
}

// TotalCents is TotalPrice in integer cents
func (s *Slots) TotalCents() int64 {
	return TotalCents(s.items)
}

// TotalCents sums item prices in integer cents
func TotalCents(items []models.AppliedItem) int64 {
	var total int64
	for _, applied := range items {
		total += utils.ToCents(applied.Item.Price)
	}
	return total
}

// TotalPrice sums item prices, normalizing malformed ones to 0
func TotalPrice(items []models.AppliedItem) float64 {
	return utils.FromCents(TotalCents(items))
}


func clampPercent(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampScale(v float64) float64 {
	if v < minScale {
		return minScale
	}
	if v > maxScale {
		return maxScale
	}
	return v
}
