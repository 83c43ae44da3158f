package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"outfit-studio/models"
	"outfit-studio/outfit"
	"outfit-studio/utils"
)

// ErrHandoffMissing means the checkout screen was opened without a finalized outfit.
// It is a normal navigational state, not a fault.
var ErrHandoffMissing = errors.New("no outfit has been handed off: build an outfit first")

// CartStore is the persistent cart the summary writes into
type CartStore interface {
	// UpsertLines inserts each product with qty 1, or increments qty by one when it is
	// already present. On error no line has changed.
	UpsertLines(ctx context.Context, userID string, lines []models.CartLine) error
	ListLines(ctx context.Context, userID string) ([]models.CartLine, error)
}

// Summary is the read-only view of a finalized outfit on the checkout screen
type Summary struct {
	payload models.OutfitPayload
}

// Load builds a summary from the handed-off payload
func Load(payload *models.OutfitPayload) (*Summary, error) {
	if payload == nil {
		return nil, ErrHandoffMissing
	}
	items := make([]models.AppliedItem, len(payload.Items))
	copy(items, payload.Items)
	return &Summary{payload: models.OutfitPayload{Avatar: payload.Avatar, Items: items}}, nil
}

// Avatar returns the base avatar of the outfit
func (s *Summary) Avatar() models.BaseAvatarConfig {
	return s.payload.Avatar
}

// Items returns the applied items in draw order
func (s *Summary) Items() []models.AppliedItem {
	items := make([]models.AppliedItem, len(s.payload.Items))
	copy(items, s.payload.Items)
	return items
}

// Total returns the aggregate price, never NaN
func (s *Summary) Total() float64 {
	return outfit.TotalPrice(s.payload.Items)
}

// TotalFormatted returns the aggregate price for display
func (s *Summary) TotalFormatted() string {
	return utils.FormatUSD(outfit.TotalCents(s.payload.Items))
}

// Response renders the summary for the checkout screen
func (s *Summary) Response() models.CheckoutSummaryResponse {
	avatar := s.Avatar()
	return models.CheckoutSummaryResponse{
		State:          models.CheckoutStateReady,
		Avatar:         &avatar,
		Items:          s.Items(),
		Total:          s.Total(),
		TotalFormatted: s.TotalFormatted(),
	}
}

// EmptyResponse renders the "build an outfit first" state
func EmptyResponse() models.CheckoutSummaryResponse {
	return models.CheckoutSummaryResponse{
		State:          models.CheckoutStateEmpty,
		Message:        "Build an outfit in the avatar builder first.",
		Items:          []models.AppliedItem{},
		TotalFormatted: utils.FormatUSD(0),
	}
}

// AddAllToCart upserts every applied item into the user's cart keyed by product id.
// The upsert is all-or-nothing, so a failed call can be retried without double counting.
// Returns the number of lines written and the resulting cart.
func (s *Summary) AddAllToCart(ctx context.Context, userID string, store CartStore) (int, []models.CartLine, error) {
	log.Printf("🛒 AddAllToCart: user=%s, items=%d", userID, len(s.payload.Items))

	lines := make([]models.CartLine, 0, len(s.payload.Items))
	for _, applied := range s.payload.Items {
		lines = append(lines, models.CartLine{
			ProductID: applied.Item.ID,
			Title:     applied.Item.Title,
			Price:     utils.FromCents(utils.ToCents(applied.Item.Price)),
			ImageURL:  applied.Item.ImageURL,
			Qty:       1,
		})
	}

	if err := store.UpsertLines(ctx, userID, lines); err != nil {
		log.Printf("❌ AddAllToCart: Error upserting %d lines: %v", len(lines), err)
		return 0, nil, fmt.Errorf("failed to add outfit to cart: %w", err)
	}

	cart, err := store.ListLines(ctx, userID)
	if err != nil {
		return len(lines), nil, fmt.Errorf("failed to read cart: %w", err)
	}

	log.Printf("✅ AddAllToCart: Added %d items for user=%s, cart now has %d lines", len(lines), userID, len(cart))
	return len(lines), cart, nil
}
