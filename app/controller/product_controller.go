package controller

import (
	"log"
	"net/http"
	"strings"

	"outfit-studio/models"
	"outfit-studio/service"
	"outfit-studio/utils"
)

// ProductController handles HTTP requests for catalog search
type ProductController struct {
	productService service.ProductServiceInterface
}

// NewProductController creates a new ProductController
func NewProductController(productService service.ProductServiceInterface) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// Search handles GET /api/products/search?query=...&gender=...
// gender is optional; items tagged for another gender are hidden
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Search: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ Search: Method not allowed: %s", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		log.Printf("❌ Search: query parameter is required")
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	gender := r.URL.Query().Get("gender")
	if gender != "" {
		gender = utils.MapGender(gender)
		if gender == "" {
			log.Printf("❌ Search: Invalid gender: %s", r.URL.Query().Get("gender"))
			writeError(w, http.StatusBadRequest, "gender must be male, female or other")
			return
		}
	}

	log.Printf("🔍 Search: query=%q, gender=%q", query, gender)

	products, err := c.productService.Search(r.Context(), query, gender)
	if err != nil {
		log.Printf("❌ Search: Error searching products: %v", err)
		writeServiceError(w, err, "Failed to search products")
		return
	}

	log.Printf("✅ Search: Found %d products for query=%q", len(products), query)
	writeJSON(w, http.StatusOK, models.ProductSearchResponse{
		Query:    query,
		Products: products,
	})
}
