package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kart-pricing/internal/coupon"
	"kart-pricing/internal/model"
	"kart-pricing/internal/pricing"
	"kart-pricing/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// quoteService implements QuoteService.
type quoteService struct {
	quoteRepo   repository.QuoteRepository
	productRepo repository.ProductRepository
	coupons     coupon.Store
	logger      zerolog.Logger
}

// NewQuoteService creates a new quote service.
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	productRepo repository.ProductRepository,
	coupons coupon.Store,
	logger zerolog.Logger,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		coupons:     coupons,
		logger:      logger.With().Str("service", "quote").Logger(),
	}
}

// PriceQuote prices an order, persists the resulting quote and returns the
// full discount breakdown.
func (s *quoteService) PriceQuote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	// Validate request shape before touching any collaborator.
	if err := s.validateQuoteRequest(req); err != nil {
		return nil, err
	}

	// Resolve products and check every requested ID exists.
	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(productIDs)).Msg("failed to resolve products")
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	productsByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	for _, id := range productIDs {
		if _, ok := productsByID[id]; !ok {
			s.logger.Warn().Str("product_id", id).Msg("unknown product in quote request")
			return nil, model.ErrProductNotFound
		}
	}

	// Resolve coupon codes into validated pricing coupons.
	coupons, err := s.coupons.Resolve(ctx, req.CouponCodes)
	if err != nil {
		s.logger.Warn().
			Strs("coupon_codes", req.CouponCodes).
			Err(err).
			Msg("coupon resolution failed")
		return nil, err
	}

	// Build the pricing entities from the resolved catalogue data.
	lines := make([]pricing.LineItem, len(req.Items))
	for i, item := range req.Items {
		product := productsByID[item.ProductID]
		line, err := pricing.NewLineItem(product.ID, product.Price, item.Quantity, product.Eligible)
		if err != nil {
			// Catalogue data failed entity validation; the catalogue is the
			// source of truth, so this is an internal defect, not user input.
			s.logger.Error().Err(err).Str("product_id", product.ID).Msg("catalogue product failed pricing validation")
			return nil, fmt.Errorf("invalid catalogue product %s: %w", product.ID, err)
		}
		lines[i] = line
	}

	result, err := pricing.Calculate(lines, pricing.NewBuyer(req.Buyer.ID, req.Buyer.Member), coupons)
	if err != nil {
		var invariant *pricing.InvariantViolation
		if errors.As(err, &invariant) {
			s.logger.Error().
				Err(err).
				Str("buyer_id", req.Buyer.ID).
				Str("check", invariant.Check).
				Msg("pricing invariant violated")
			return nil, fmt.Errorf("pricing failed: %w", err)
		}
		s.logger.Warn().Err(err).Msg("pricing rejected input")
		return nil, err
	}

	// Persist the quote with its breakdown in one transaction.
	now := time.Now()
	quote := &model.Quote{
		ID:                  uuid.New(),
		BuyerID:             req.Buyer.ID,
		BuyerMember:         req.Buyer.Member,
		Subtotal:            result.Subtotal,
		EligibleSubtotal:    result.EligibleSubtotal,
		NonEligibleSubtotal: result.NonEligibleSubtotal,
		TotalDiscount:       result.TotalDiscount,
		FinalTotal:          result.FinalTotal,
		CreatedAt:           now,
	}

	quoteLines := make([]model.QuoteLine, len(result.Lines))
	for i, entry := range result.Lines {
		quoteLines[i] = model.QuoteLine{
			ID:           uuid.New(),
			QuoteID:      quote.ID,
			Position:     i,
			ProductID:    entry.ID,
			Quantity:     entry.Quantity,
			UnitPrice:    entry.UnitPrice,
			LineSubtotal: entry.Subtotal,
			Eligible:     entry.Eligible,
			Discount:     entry.Discount,
		}
	}

	quoteDiscounts := make([]model.QuoteDiscount, len(result.Discounts))
	for i, applied := range result.Discounts {
		quoteDiscounts[i] = model.QuoteDiscount{
			ID:          uuid.New(),
			QuoteID:     quote.ID,
			Position:    i,
			Kind:        string(applied.Kind),
			CouponCode:  applied.CouponID,
			Description: applied.Description,
			Amount:      applied.Amount,
		}
	}

	tx, err := s.quoteRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.quoteRepo.CreateQuote(ctx, tx, quote); err != nil {
		s.logger.Error().Err(err).Str("quote_id", quote.ID.String()).Msg("failed to save quote")
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	if err = s.quoteRepo.CreateQuoteLines(ctx, tx, quoteLines); err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", quote.ID.String()).
			Int("line_count", len(quoteLines)).
			Msg("failed to save quote lines")
		return nil, fmt.Errorf("failed to save quote lines: %w", err)
	}

	if err = s.quoteRepo.CreateQuoteDiscounts(ctx, tx, quoteDiscounts); err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", quote.ID.String()).
			Int("discount_count", len(quoteDiscounts)).
			Msg("failed to save quote discounts")
		return nil, fmt.Errorf("failed to save quote discounts: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("quote_id", quote.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info().
		Str("quote_id", quote.ID.String()).
		Str("buyer_id", quote.BuyerID).
		Int("line_count", len(quoteLines)).
		Int("discount_count", len(quoteDiscounts)).
		Str("final_total", quote.FinalTotal.String()).
		Msg("quote priced successfully")

	return buildQuoteResponse(quote, quoteLines, quoteDiscounts), nil
}

// GetByID retrieves a previously persisted quote with its breakdown.
func (s *quoteService) GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteResponse, error) {
	quote, lines, discounts, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to get quote")
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote == nil {
		s.logger.Debug().Str("quote_id", id.String()).Msg("quote not found")
		return nil, nil
	}

	return buildQuoteResponse(quote, lines, discounts), nil
}

// validateQuoteRequest validates the quote request shape.
func (s *quoteService) validateQuoteRequest(req *model.QuoteRequest) error {
	if req == nil {
		return fmt.Errorf("quote request is nil")
	}

	if req.Buyer.ID == "" {
		return model.ErrInvalidBuyer
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("quote must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// buildQuoteResponse assembles the response payload from persisted records.
func buildQuoteResponse(quote *model.Quote, lines []model.QuoteLine, discounts []model.QuoteDiscount) *model.QuoteResponse {
	return &model.QuoteResponse{
		ID:                  quote.ID,
		Buyer:               model.BuyerRequest{ID: quote.BuyerID, Member: quote.BuyerMember},
		Lines:               lines,
		Subtotal:            quote.Subtotal,
		EligibleSubtotal:    quote.EligibleSubtotal,
		NonEligibleSubtotal: quote.NonEligibleSubtotal,
		Discounts:           discounts,
		TotalDiscount:       quote.TotalDiscount,
		FinalTotal:          quote.FinalTotal,
		CreatedAt:           quote.CreatedAt,
	}
}
