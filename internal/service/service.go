package service

import (
	"context"

	"catalog/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves products, filtered by exact category when category is non-empty.
	List(ctx context.Context, category string) ([]model.Product, error)

	// Create validates req, stores a new product and returns its id.
	Create(ctx context.Context, req *model.CreateProductRequest) (int64, error)
}
