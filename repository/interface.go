package repository

import (
	"context"

	"outfit-studio/models"
)

// CartRepositoryInterface defines the contract for cart persistence operations
type CartRepositoryInterface interface {
	UpsertLine(ctx context.Context, userID string, line models.CartLine) (*models.CartLine, error)
	// UpsertLines applies UpsertLine to every line atomically
	UpsertLines(ctx context.Context, userID string, lines []models.CartLine) error
	ListLines(ctx context.Context, userID string) ([]models.CartLine, error)
	SetQty(ctx context.Context, userID string, productID string, qty int) (*models.CartLine, error)
	RemoveLine(ctx context.Context, userID string, productID string) error
}
