package repository

import (
	"context"

	"kart-pricing/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product catalogue access.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// QuoteRepository defines the interface for persisting priced quotes.
type QuoteRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateQuote inserts a new quote within the provided transaction.
	CreateQuote(ctx context.Context, tx pgx.Tx, quote *model.Quote) error

	// CreateQuoteLines inserts the quote's lines within the provided transaction.
	CreateQuoteLines(ctx context.Context, tx pgx.Tx, lines []model.QuoteLine) error

	// CreateQuoteDiscounts inserts the quote's ordered discount breakdown
	// within the provided transaction.
	CreateQuoteDiscounts(ctx context.Context, tx pgx.Tx, discounts []model.QuoteDiscount) error

	// GetByID retrieves a quote by its ID along with its lines and discounts.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, []model.QuoteLine, []model.QuoteDiscount, error)
}
