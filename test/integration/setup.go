package integration

import (
	"context"
	"testing"
	"time"

	"catalog/internal/database"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	DB        database.Connector
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL test container and creates the products table.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := database.NewDirectConnector(connStr, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connector: %v", err)
	}
	t.Cleanup(db.Close)

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		DB:        db,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, db database.Connector) {
	t.Helper()

	products := []struct {
		name     string
		price    string
		category string
	}{
		{"Test Product 1", "10.00", "Category A"},
		{"Test Product 2", "20.00", "Category B"},
		{"Test Product 3", "30.00", "Category A"},
		{"Test Product 4", "40.00", "Category C"},
		{"Test Product 5", "50.00", "Category B"},
	}

	ctx := context.Background()
	err := db.WithConn(ctx, func(q database.Querier) error {
		for _, p := range products {
			if _, err := q.Exec(ctx,
				"INSERT INTO products (name, price, category) VALUES ($1, $2::numeric, $3)",
				p.name, p.price, p.category,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
}

// CountProducts returns the number of rows in the products table.
func CountProducts(t *testing.T, db database.Connector) int {
	t.Helper()

	var count int
	ctx := context.Background()
	err := db.WithConn(ctx, func(q database.Querier) error {
		return q.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	})
	if err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	return count
}

// CleanupDB removes all products and resets the id sequence.
func CleanupDB(t *testing.T, db database.Connector) {
	t.Helper()

	ctx := context.Background()
	err := db.WithConn(ctx, func(q database.Querier) error {
		_, err := q.Exec(ctx, "TRUNCATE products RESTART IDENTITY")
		return err
	})
	if err != nil {
		t.Logf("failed to clean products table: %v", err)
	}
}
