package integration

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kart-pricing/internal/coupon"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool against the mapped container port
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(12, 2) NOT NULL CHECK (price >= 0),
			category VARCHAR(100) NOT NULL,
			eligible_for_discount BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS quotes (
			id UUID PRIMARY KEY,
			buyer_id VARCHAR(50) NOT NULL,
			buyer_member BOOLEAN NOT NULL,
			subtotal DECIMAL(12, 2) NOT NULL,
			eligible_subtotal DECIMAL(12, 2) NOT NULL,
			non_eligible_subtotal DECIMAL(12, 2) NOT NULL,
			total_discount DECIMAL(12, 2) NOT NULL,
			final_total DECIMAL(12, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS quote_lines (
			id UUID PRIMARY KEY,
			quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(12, 2) NOT NULL,
			line_subtotal DECIMAL(12, 2) NOT NULL,
			eligible_for_discount BOOLEAN NOT NULL,
			discount DECIMAL(12, 2) NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS quote_discounts (
			id UUID PRIMARY KEY,
			quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind VARCHAR(50) NOT NULL,
			coupon_code VARCHAR(50) NOT NULL DEFAULT '',
			description VARCHAR(255) NOT NULL,
			amount DECIMAL(12, 2) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_quote_lines_quote_id ON quote_lines(quote_id);
		CREATE INDEX IF NOT EXISTS idx_quote_lines_product_id ON quote_lines(product_id);
		CREATE INDEX IF NOT EXISTS idx_quote_discounts_quote_id ON quote_discounts(quote_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		price    string
		category string
		eligible bool
	}{
		{"P001", "Test Product 1", "100.00", "Category A", true},
		{"P002", "Test Product 2", "200.00", "Category B", true},
		{"P003", "Test Product 3", "30.00", "Category A", true},
		{"P004", "Gift Card", "40.00", "Vouchers", false},
		{"P005", "Warranty", "50.00", "Services", false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, category, eligible_for_discount) VALUES ($1, $2, $3, $4, $5)",
			p.id, p.name, p.price, p.category, p.eligible,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// WriteCouponFile writes coupon definitions as a gzipped JSON-lines file and
// returns its path.
func WriteCouponFile(t *testing.T, dir, name string, defs []coupon.Definition) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create coupon file: %v", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, def := range defs {
		if err := encoder.Encode(def); err != nil {
			t.Fatalf("failed to write coupon definition: %v", err)
		}
	}

	return path
}

// TestCouponDefinitions returns the coupon set the integration tests run with.
func TestCouponDefinitions() []coupon.Definition {
	return []coupon.Definition{
		{Code: "SAVE10PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.90")},
		{Code: "SAVE02PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.98")},
		{Code: "SPEND100SAVE15", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("100"), Amount: decimal.RequireFromString("15")},
		{Code: "SPEND250SAVE50", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("250"), Amount: decimal.RequireFromString("50")},
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"quote_discounts", "quote_lines", "quotes", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
