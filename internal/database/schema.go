package database

import (
	"context"
	"fmt"
)

const productsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10, 2) NOT NULL,
		category VARCHAR(100),
		created_at TIMESTAMP DEFAULT NOW()
	)
`

// EnsureSchema creates the products table if it does not exist.
func EnsureSchema(ctx context.Context, c Connector) error {
	return c.WithConn(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, productsSchema); err != nil {
			return fmt.Errorf("failed to create products table: %w", err)
		}
		return nil
	})
}
