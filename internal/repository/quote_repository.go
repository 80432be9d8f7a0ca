package repository

import (
	"context"
	"fmt"

	"kart-pricing/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// quoteRepository implements the QuoteRepository interface using PostgreSQL.
type quoteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewQuoteRepository creates a new PostgreSQL-backed quote repository.
func NewQuoteRepository(pool *pgxpool.Pool, logger zerolog.Logger) QuoteRepository {
	return &quoteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "quote").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *quoteRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateQuote inserts a new quote within the provided transaction.
func (r *quoteRepository) CreateQuote(ctx context.Context, tx pgx.Tx, quote *model.Quote) error {
	query := `
		INSERT INTO quotes (
			id, buyer_id, buyer_member, subtotal, eligible_subtotal,
			non_eligible_subtotal, total_discount, final_total, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		quote.ID,
		quote.BuyerID,
		quote.BuyerMember,
		quote.Subtotal,
		quote.EligibleSubtotal,
		quote.NonEligibleSubtotal,
		quote.TotalDiscount,
		quote.FinalTotal,
		quote.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("quote_id", quote.ID.String()).
			Msg("failed to create quote")
		return fmt.Errorf("failed to create quote: %w", err)
	}

	r.logger.Debug().
		Str("quote_id", quote.ID.String()).
		Msg("quote created successfully")

	return nil
}

// CreateQuoteLines inserts the quote's lines within the provided transaction.
func (r *quoteRepository) CreateQuoteLines(ctx context.Context, tx pgx.Tx, lines []model.QuoteLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO quote_lines (
			id, quote_id, position, product_id, quantity, unit_price,
			line_subtotal, eligible_for_discount, discount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.ID,
			line.QuoteID,
			line.Position,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			line.LineSubtotal,
			line.Eligible,
			line.Discount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("quote_id", lines[i].QuoteID.String()).
				Str("product_id", lines[i].ProductID).
				Msg("failed to create quote line")
			return fmt.Errorf("failed to create quote line: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(lines)).
		Msg("quote lines created successfully")

	return nil
}

// CreateQuoteDiscounts inserts the quote's ordered discount breakdown within
// the provided transaction.
func (r *quoteRepository) CreateQuoteDiscounts(ctx context.Context, tx pgx.Tx, discounts []model.QuoteDiscount) error {
	if len(discounts) == 0 {
		return nil
	}

	query := `
		INSERT INTO quote_discounts (
			id, quote_id, position, kind, coupon_code, description, amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, discount := range discounts {
		batch.Queue(query,
			discount.ID,
			discount.QuoteID,
			discount.Position,
			discount.Kind,
			discount.CouponCode,
			discount.Description,
			discount.Amount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(discounts); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("quote_id", discounts[i].QuoteID.String()).
				Str("kind", discounts[i].Kind).
				Msg("failed to create quote discount")
			return fmt.Errorf("failed to create quote discount: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(discounts)).
		Msg("quote discounts created successfully")

	return nil
}

// GetByID retrieves a quote by its ID along with its lines and discounts.
func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, []model.QuoteLine, []model.QuoteDiscount, error) {
	quoteQuery := `
		SELECT id, buyer_id, buyer_member, subtotal, eligible_subtotal,
		       non_eligible_subtotal, total_discount, final_total, created_at
		FROM quotes
		WHERE id = $1
	`

	var quote model.Quote
	err := r.pool.QueryRow(ctx, quoteQuery, id).Scan(
		&quote.ID,
		&quote.BuyerID,
		&quote.BuyerMember,
		&quote.Subtotal,
		&quote.EligibleSubtotal,
		&quote.NonEligibleSubtotal,
		&quote.TotalDiscount,
		&quote.FinalTotal,
		&quote.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("quote_id", id.String()).Msg("quote not found")
			return nil, nil, nil, nil
		}
		r.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to query quote")
		return nil, nil, nil, fmt.Errorf("failed to query quote: %w", err)
	}

	linesQuery := `
		SELECT id, quote_id, position, product_id, quantity, unit_price,
		       line_subtotal, eligible_for_discount, discount
		FROM quote_lines
		WHERE quote_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, linesQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("quote_id", id.String()).
			Msg("failed to query quote lines")
		return nil, nil, nil, fmt.Errorf("failed to query quote lines: %w", err)
	}
	defer rows.Close()

	var lines []model.QuoteLine
	for rows.Next() {
		var line model.QuoteLine
		err := rows.Scan(
			&line.ID,
			&line.QuoteID,
			&line.Position,
			&line.ProductID,
			&line.Quantity,
			&line.UnitPrice,
			&line.LineSubtotal,
			&line.Eligible,
			&line.Discount,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan quote line row")
			return nil, nil, nil, fmt.Errorf("failed to scan quote line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating quote line rows")
		return nil, nil, nil, fmt.Errorf("error iterating quote lines: %w", err)
	}

	discountsQuery := `
		SELECT id, quote_id, position, kind, coupon_code, description, amount
		FROM quote_discounts
		WHERE quote_id = $1
		ORDER BY position
	`

	discountRows, err := r.pool.Query(ctx, discountsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("quote_id", id.String()).
			Msg("failed to query quote discounts")
		return nil, nil, nil, fmt.Errorf("failed to query quote discounts: %w", err)
	}
	defer discountRows.Close()

	var discounts []model.QuoteDiscount
	for discountRows.Next() {
		var discount model.QuoteDiscount
		err := discountRows.Scan(
			&discount.ID,
			&discount.QuoteID,
			&discount.Position,
			&discount.Kind,
			&discount.CouponCode,
			&discount.Description,
			&discount.Amount,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan quote discount row")
			return nil, nil, nil, fmt.Errorf("failed to scan quote discount: %w", err)
		}
		discounts = append(discounts, discount)
	}

	if err := discountRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating quote discount rows")
		return nil, nil, nil, fmt.Errorf("error iterating quote discounts: %w", err)
	}

	return &quote, lines, discounts, nil
}
