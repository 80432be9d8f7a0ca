package service

import (
	"context"

	"kart-pricing/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product catalogue access.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// QuoteService defines operations for pricing and retrieving order quotes.
type QuoteService interface {
	// PriceQuote prices an order, persists the resulting quote and returns
	// the full discount breakdown.
	PriceQuote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error)

	// GetByID retrieves a previously persisted quote with its breakdown.
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteResponse, error)
}
