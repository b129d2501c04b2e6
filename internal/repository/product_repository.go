package repository

import (
	"context"
	"fmt"
	"time"

	"catalog/internal/database"
	"catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Prices cross the driver boundary as text so the DECIMAL(10,2) value is
// never routed through a float.
const (
	listProductsQuery = `
		SELECT id, name, COALESCE(description, ''), price::text, COALESCE(category, ''), created_at
		FROM products
	`
	listProductsByCategoryQuery = listProductsQuery + `WHERE category = $1`

	insertProductQuery = `
		INSERT INTO products (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     database.Connector
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.Connector, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves all products, optionally filtered by category.
func (r *productRepository) List(ctx context.Context, category string) ([]model.Product, error) {
	query, args := listProductsQuery, []any{}
	if category != "" {
		query, args = listProductsByCategoryQuery, []any{category}
	}

	products := []model.Product{}
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to query products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				p         model.Product
				price     string
				createdAt *time.Time
			)
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category, &createdAt); err != nil {
				return fmt.Errorf("failed to scan product: %w", err)
			}
			if p.Price, err = decimal.NewFromString(price); err != nil {
				return fmt.Errorf("failed to parse price of product %d: %w", p.ID, err)
			}
			if createdAt != nil {
				p.CreatedAt = *createdAt
			}
			products = append(products, p)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating products: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to list products")
		return nil, err
	}

	return products, nil
}

// Create inserts a new product row.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (int64, error) {
	var id int64
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, insertProductQuery,
			product.Name,
			product.Description,
			product.Price.String(),
			product.Category,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return 0, err
	}

	product.ID = id
	r.logger.Debug().Int64("product_id", id).Msg("product created")

	return id, nil
}
