package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a persisted pricing calculation for one order.
type Quote struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	BuyerID             string          `json:"buyerId" db:"buyer_id"`
	BuyerMember         bool            `json:"buyerMember" db:"buyer_member"`
	Subtotal            decimal.Decimal `json:"subtotal" db:"subtotal"`
	EligibleSubtotal    decimal.Decimal `json:"eligibleSubtotal" db:"eligible_subtotal"`
	NonEligibleSubtotal decimal.Decimal `json:"nonEligibleSubtotal" db:"non_eligible_subtotal"`
	TotalDiscount       decimal.Decimal `json:"totalDiscount" db:"total_discount"`
	FinalTotal          decimal.Decimal `json:"finalTotal" db:"final_total"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
}

// QuoteLine is one priced line of a quote, with its share of the discount.
type QuoteLine struct {
	ID           uuid.UUID       `json:"-" db:"id"`
	QuoteID      uuid.UUID       `json:"-" db:"quote_id"`
	Position     int             `json:"-" db:"position"`
	ProductID    string          `json:"productId" db:"product_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice" db:"unit_price"`
	LineSubtotal decimal.Decimal `json:"lineSubtotal" db:"line_subtotal"`
	Eligible     bool            `json:"eligibleForDiscount" db:"eligible_for_discount"`
	Discount     decimal.Decimal `json:"discount" db:"discount"`
}

// QuoteDiscount is one applied discount in a quote's ordered breakdown.
type QuoteDiscount struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	QuoteID     uuid.UUID       `json:"-" db:"quote_id"`
	Position    int             `json:"-" db:"position"`
	Kind        string          `json:"kind" db:"kind"`
	CouponCode  string          `json:"couponCode,omitempty" db:"coupon_code"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
}

// QuoteRequest represents the request payload for pricing an order.
type QuoteRequest struct {
	Buyer       BuyerRequest       `json:"buyer"`
	Items       []QuoteItemRequest `json:"items"`
	CouponCodes []string           `json:"couponCodes,omitempty"`
}

// BuyerRequest carries the already-resolved buyer identity and membership.
type BuyerRequest struct {
	ID     string `json:"id"`
	Member bool   `json:"member"`
}

// QuoteItemRequest represents a single item in a quote request.
type QuoteItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// QuoteResponse represents the response payload for a priced quote.
type QuoteResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Buyer               BuyerRequest    `json:"buyer"`
	Lines               []QuoteLine     `json:"lines"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	EligibleSubtotal    decimal.Decimal `json:"eligibleSubtotal"`
	NonEligibleSubtotal decimal.Decimal `json:"nonEligibleSubtotal"`
	Discounts           []QuoteDiscount `json:"discounts"`
	TotalDiscount       decimal.Decimal `json:"totalDiscount"`
	FinalTotal          decimal.Decimal `json:"finalTotal"`
	CreatedAt           time.Time       `json:"createdAt"`
}
