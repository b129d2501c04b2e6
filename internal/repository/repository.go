package repository

import (
	"context"

	"catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves every product, restricted to an exact category match
	// when category is non-empty. Rows come back in database order.
	List(ctx context.Context, category string) ([]model.Product, error)

	// Create inserts a product and returns the id assigned by the database.
	Create(ctx context.Context, product *model.Product) (int64, error)
}
