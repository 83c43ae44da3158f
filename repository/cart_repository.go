package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"outfit-studio/models"
)

// ErrCartLineNotFound is returned when the product is not in the user's cart
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository handles database operations for cart lines
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(database *sql.DB) *CartRepository {
	return &CartRepository{db: database}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const queryUpsertLine = `
	INSERT INTO cart_items (user_id, product_id, title, price, image_url, qty)
	VALUES ($1, $2, $3, $4, $5, 1)
	ON CONFLICT (user_id, product_id)
	DO UPDATE SET
		qty = cart_items.qty + 1,
		updated_at = CURRENT_TIMESTAMP
	RETURNING product_id, title, price, image_url, qty
`

// UpsertLine adds a product to the cart, creating it with qty 1 if it doesn't exist
// If the product is already in the cart, only qty is incremented by one
func (r *CartRepository) UpsertLine(ctx context.Context, userID string, line models.CartLine) (*models.CartLine, error) {
	log.Printf("🛒 UpsertLine: user_id=%s, product_id=%s", userID, line.ProductID)

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user_id cannot be empty")
	}

	result, err := upsertLine(ctx, r.db, userID, line)
	if err != nil {
		return nil, err
	}

	log.Printf("✓ UpsertLine: product_id=%s qty=%d", result.ProductID, result.Qty)
	return result, nil
}

// UpsertLines upserts every line in one transaction: either all quantities change or none do
func (r *CartRepository) UpsertLines(ctx context.Context, userID string, lines []models.CartLine) error {
	log.Printf("🛒 UpsertLines: user_id=%s, lines=%d", userID, len(lines))

	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user_id cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpsertLines: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, line := range lines {
		if _, err := upsertLine(ctx, tx, userID, line); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpsertLines: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit cart lines: %w", err)
	}

	log.Printf("✅ UpsertLines: user_id=%s, %d lines upserted", userID, len(lines))
	return nil
}

func upsertLine(ctx context.Context, q rowQuerier, userID string, line models.CartLine) (*models.CartLine, error) {
	if strings.TrimSpace(line.ProductID) == "" {
		return nil, fmt.Errorf("product_id cannot be empty")
	}

	var result models.CartLine
	err := q.QueryRowContext(ctx, queryUpsertLine, userID, line.ProductID, line.Title, line.Price, line.ImageURL).Scan(
		&result.ProductID,
		&result.Title,
		&result.Price,
		&result.ImageURL,
		&result.Qty,
	)
	if err != nil {
		log.Printf("❌ UpsertLine: Error upserting product_id=%s: %v", line.ProductID, err)
		return nil, fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return &result, nil
}

// ListLines retrieves all cart lines of a user, oldest first
func (r *CartRepository) ListLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	query := `
		SELECT product_id, title, price, image_url, qty
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at ASC, product_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ ListLines: Error querying cart: %v", err)
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ProductID, &line.Title, &line.Price, &line.ImageURL, &line.Qty); err != nil {
			log.Printf("❌ ListLines: Error scanning cart line: %v", err)
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ ListLines: Error iterating cart: %v", err)
		return nil, fmt.Errorf("failed to iterate cart: %w", err)
	}

	log.Printf("🔍 ListLines: user_id=%s has %d lines", userID, len(lines))
	return lines, nil
}

// SetQty sets the quantity of a cart line; qty <= 0 removes the line
func (r *CartRepository) SetQty(ctx context.Context, userID string, productID string, qty int) (*models.CartLine, error) {
	if qty <= 0 {
		return nil, r.RemoveLine(ctx, userID, productID)
	}

	query := `
		UPDATE cart_items
		SET qty = $3, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND product_id = $2
		RETURNING product_id, title, price, image_url, qty
	`

	var line models.CartLine
	err := r.db.QueryRowContext(ctx, query, userID, productID, qty).Scan(
		&line.ProductID,
		&line.Title,
		&line.Price,
		&line.ImageURL,
		&line.Qty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartLineNotFound
		}
		log.Printf("❌ SetQty: Error updating cart line: %v", err)
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}

	log.Printf("✅ SetQty: user_id=%s product_id=%s qty=%d", userID, productID, line.Qty)
	return &line, nil
}

// RemoveLine deletes a product from the user's cart
func (r *CartRepository) RemoveLine(ctx context.Context, userID string, productID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		log.Printf("❌ RemoveLine: Error deleting cart line: %v", err)
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}

	log.Printf("✅ RemoveLine: user_id=%s product_id=%s", userID, productID)
	return nil
}
