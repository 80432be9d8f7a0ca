package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue with its resolved unit price
// and whether it participates in discount promotions.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	Eligible  bool            `json:"eligibleForDiscount" db:"eligible_for_discount"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
