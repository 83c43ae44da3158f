package controller

import (
	"errors"
	"log"
	"net/http"

	"outfit-studio/checkout"
	"outfit-studio/models"
	"outfit-studio/service"
)

// CheckoutController handles HTTP requests for the checkout screen
type CheckoutController struct {
	sessions  *service.SessionStore
	cartStore checkout.CartStore
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(sessions *service.SessionStore, cartStore checkout.CartStore) *CheckoutController {
	return &CheckoutController{
		sessions:  sessions,
		cartStore: cartStore,
	}
}

// GetCheckout handles GET /api/checkout
// Consumes the tab's outfit handoff. Without one the response is the "empty" state, not an error.
func (c *CheckoutController) GetCheckout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCheckout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	tabID := tabSessionID(r)
	summary, err := checkout.Load(c.sessions.TakeHandoff(tabID))
	if err == nil {
		c.sessions.PutSummary(tabID, summary)
		log.Printf("✅ GetCheckout: Loaded %d items for tab=%s", len(summary.Items()), tabID)
		writeJSON(w, http.StatusOK, summary.Response())
		return
	}
	if !errors.Is(err, checkout.ErrHandoffMissing) {
		log.Printf("❌ GetCheckout: Error loading handoff: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load checkout")
		return
	}

	// A reload after the handoff was read keeps showing the loaded outfit
	if loaded := c.sessions.Summary(tabID); loaded != nil {
		writeJSON(w, http.StatusOK, loaded.Response())
		return
	}

	log.Printf("⚠️  GetCheckout: No outfit handed off for tab=%s", tabID)
	writeJSON(w, http.StatusOK, checkout.EmptyResponse())
}

// AddToCart handles POST /api/checkout/cart
// Adds every item of the loaded outfit to the user's cart
func (c *CheckoutController) AddToCart(w http.ResponseWriter, r *http.Request) {
	c.addAll(w, r, "AddToCart", "")
}

// BuyNow handles POST /api/checkout/buy-now
// Same as AddToCart, then points the client at the cart
func (c *CheckoutController) BuyNow(w http.ResponseWriter, r *http.Request) {
	c.addAll(w, r, "BuyNow", "/cart")
}

func (c *CheckoutController) addAll(w http.ResponseWriter, r *http.Request, op string, next string) {
	log.Printf("📥 %s: Received %s request to %s", op, r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ %s: Method not allowed: %s", op, r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary := c.sessions.Summary(tabSessionID(r))
	if summary == nil {
		log.Printf("⚠️  %s: No outfit loaded for checkout", op)
		writeError(w, http.StatusConflict, "Build an outfit in the avatar builder first.")
		return
	}

	added, cart, err := summary.AddAllToCart(r.Context(), user.ID, c.cartStore)
	if err != nil {
		log.Printf("❌ %s: Error adding outfit to cart: %v", op, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to update cart", Retryable: true})
		return
	}

	log.Printf("✅ %s: Added %d items for user=%s", op, added, user.ID)
	writeJSON(w, http.StatusOK, models.AddToCartResponse{
		Added: added,
		Cart:  cart,
		Next:  next,
	})
}
