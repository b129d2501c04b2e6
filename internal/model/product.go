package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item as stored in the products table.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// ProductResponse is the wire shape of a listed product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// ToResponse converts a stored product to its wire shape.
func (p Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
	}
}

// NewProductResponses converts products, never returning nil so an empty
// listing encodes as [].
func NewProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToResponse())
	}
	return out
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
}

// CreateProductResponse is returned after a product is created.
type CreateProductResponse struct {
	ID int64 `json:"id"`
}
