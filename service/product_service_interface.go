package service

import (
	"context"

	"outfit-studio/models"
)

// ProductServiceInterface defines the contract for product search operations
type ProductServiceInterface interface {
	// Search queries the product provider and returns normalized catalog items.
	// gender filters out items tagged for another gender; "" disables filtering.
	Search(ctx context.Context, query string, gender string) ([]models.CatalogItem, error)
}
