package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"outfit-studio/models"
	"outfit-studio/repository"
	"outfit-studio/utils"
)

// CartController handles HTTP requests for the cart screen
type CartController struct {
	repository repository.CartRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(repo repository.CartRepositoryInterface) *CartController {
	return &CartController{
		repository: repo,
	}
}

// GetCart handles GET /api/cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCart: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	lines, err := c.repository.ListLines(r.Context(), user.ID)
	if err != nil {
		log.Printf("❌ GetCart: Error listing cart for user=%s: %v", user.ID, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to load cart", Retryable: true})
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(lines))
}

// UpdateQty handles PUT /api/cart/{productId}
// A quantity of 0 removes the line
func (c *CartController) UpdateQty(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(r.PathValue("productId"))
	log.Printf("📥 UpdateQty: product_id=%s", productID)

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdateCartQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateQty: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Qty < 0 {
		log.Printf("❌ UpdateQty: Invalid qty: %d", req.Qty)
		writeError(w, http.StatusBadRequest, "qty cannot be negative")
		return
	}

	if _, err := c.repository.SetQty(r.Context(), user.ID, productID, req.Qty); err != nil {
		c.writeCartError(w, "UpdateQty", productID, err)
		return
	}

	c.respondWithCart(w, r, "UpdateQty", user.ID)
}

// RemoveLine handles DELETE /api/cart/{productId}
func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(r.PathValue("productId"))
	log.Printf("📥 RemoveLine: product_id=%s", productID)

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := c.repository.RemoveLine(r.Context(), user.ID, productID); err != nil {
		c.writeCartError(w, "RemoveLine", productID, err)
		return
	}

	c.respondWithCart(w, r, "RemoveLine", user.ID)
}

func (c *CartController) respondWithCart(w http.ResponseWriter, r *http.Request, op string, userID string) {
	lines, err := c.repository.ListLines(r.Context(), userID)
	if err != nil {
		log.Printf("❌ %s: Error listing cart for user=%s: %v", op, userID, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to load cart", Retryable: true})
		return
	}
	log.Printf("✅ %s: Cart for user=%s has %d lines", op, userID, len(lines))
	writeJSON(w, http.StatusOK, cartResponse(lines))
}

func (c *CartController) writeCartError(w http.ResponseWriter, op string, productID string, err error) {
	if errors.Is(err, repository.ErrCartLineNotFound) {
		log.Printf("⚠️  %s: product_id=%s is not in the cart", op, productID)
		writeError(w, http.StatusNotFound, "product is not in the cart")
		return
	}
	log.Printf("❌ %s: Error updating product_id=%s: %v", op, productID, err)
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to update cart", Retryable: true})
}

func cartResponse(lines []models.CartLine) models.CartResponse {
	if lines == nil {
		lines = []models.CartLine{}
	}
	var cents int64
	for _, line := range lines {
		cents += utils.ToCents(line.Price) * int64(line.Qty)
	}
	return models.CartResponse{
		Lines:          lines,
		Total:          utils.FromCents(cents),
		TotalFormatted: utils.FormatUSD(cents),
	}
}
