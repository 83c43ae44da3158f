package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"outfit-studio/models"
	"outfit-studio/utils"
)

const maxSearchBody = 4 << 20

// ProductService queries the external product search API
// Implements ProductServiceInterface
type ProductService struct {
	baseURL string
	client  *http.Client
	group   singleflight.Group
}

// NewProductService creates a new ProductService
func NewProductService(baseURL string, client *http.Client) *ProductService {
	return &ProductService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Ensure ProductService implements ProductServiceInterface
var _ ProductServiceInterface = (*ProductService)(nil)

// Search handles GET {baseURL}/products/search?query=...
// Identical queries already in flight share one upstream request. The shared
// request is detached from the callers' cancellation and bounded by the client
// timeout; a caller that gives up returns its own ctx.Err().
func (s *ProductService) Search(ctx context.Context, query string, gender string) ([]models.CatalogItem, error) {
	query = strings.TrimSpace(query)
	key := strings.ToLower(query)

	fetchCtx := context.WithoutCancel(ctx)
	resultCh := s.group.DoChan(key, func() (any, error) {
		return s.fetch(fetchCtx, query)
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		log.Printf("⚠️  Search: Caller gave up on query=%q: %v", query, ctx.Err())
		return nil, ctx.Err()
	case result = <-resultCh:
	}
	if result.Err != nil {
		return nil, result.Err
	}
	if result.Shared {
		log.Printf("🔁 Search: Reused in-flight request for query=%q", query)
	}

	items := filterByGender(result.Val.([]models.CatalogItem), gender)
	log.Printf("✓ Search: query=%q gender=%q -> %d products", query, gender, len(items))
	return items, nil
}

func (s *ProductService) fetch(ctx context.Context, query string) ([]models.CatalogItem, error) {
	searchURL := fmt.Sprintf("%s/products/search?query=%s", s.baseURL, url.QueryEscape(query))
	log.Printf("🔍 Search: GET %s", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("❌ Search: Request failed: %v", err)
		return nil, &UpstreamError{Op: "product search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Search: Upstream returned status %d", resp.StatusCode)
		return nil, &UpstreamError{Op: "product search", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return nil, &UpstreamError{Op: "product search", Err: fmt.Errorf("failed to read body: %w", err)}
	}

	rawProducts, err := decodeProducts(body)
	if err != nil {
		log.Printf("❌ Search: Invalid response body: %v", err)
		return nil, &UpstreamError{Op: "product search", Err: err}
	}

	items := make([]models.CatalogItem, 0, len(rawProducts))
	for _, raw := range rawProducts {
		item, ok := NormalizeCatalogItem(raw)
		if !ok {
			log.Printf("⚠️  Search: Skipping product without id: %v", raw)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeProducts accepts {"products": [...]} and {"data": {"products": [...]}}
func decodeProducts(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Products []map[string]any `json:"products"`
		Data     *struct {
			Products []map[string]any `json:"products"`
		} `json:"data"`
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	if envelope.Products == nil && envelope.Data != nil {
		return envelope.Data.Products, nil
	}
	return envelope.Products, nil
}

// NormalizeCatalogItem maps any upstream product shape onto CatalogItem.
// Returns false when the product has no usable id.
func NormalizeCatalogItem(raw map[string]any) (models.CatalogItem, bool) {
	id := firstString(raw, "id", "product_id", "productId", "asin", "sku")
	if id == "" {
		return models.CatalogItem{}, false
	}

	title := firstString(raw, "title", "name", "product_title", "productTitle")
	if title == "" {
		title = "Untitled item"
	}

	priceRaw := firstValue(raw, "price", "product_price", "salePrice", "sale_price")
	if nested, ok := priceRaw.(map[string]any); ok {
		priceRaw = firstValue(nested, "value", "current", "amount")
	}
	price, ok := utils.NormalizePrice(priceRaw)
	if !ok {
		log.Printf("⚠️  NormalizeCatalogItem: Malformed price for product id=%s (%v), using 0", id, priceRaw)
	}

	imageURL := firstString(raw, "imageUrl", "image_url", "image", "thumbnail", "product_photo", "imageURL")
	if strings.HasPrefix(imageURL, "//") {
		imageURL = "https:" + imageURL
	}

	return models.CatalogItem{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Price:     price,
		ImageURL:  imageURL,
		GenderTag: utils.MapGenderTag(firstString(raw, "genderTag", "gender", "gender_tag")),
	}, true
}

func firstValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, exists := raw[key]; exists && value != nil {
			return value
		}
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// filterByGender hides products tagged for another gender; untagged and unisex products stay
func filterByGender(items []models.CatalogItem, gender string) []models.CatalogItem {
	wanted := utils.MapGender(gender)
	if wanted == "" || wanted == models.GenderOther {
		return items
	}

	filtered := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.GenderTag == "" || item.GenderTag == "unisex" || item.GenderTag == wanted {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
