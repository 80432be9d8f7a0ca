package coupon

import (
	"context"

	"kart-pricing/internal/pricing"

	"github.com/shopspring/decimal"
)

// Definition is one coupon definition as stored in the coupon files.
// Percentage coupons carry a rate, the fraction of the eligible amount still
// payable (0.9 means 10% off). Flat threshold coupons carry a threshold and
// an amount. The unused fields stay zero.
type Definition struct {
	Code      string          `json:"code"`
	Kind      string          `json:"kind"`
	Rate      decimal.Decimal `json:"rate,omitempty"`
	Threshold decimal.Decimal `json:"threshold,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
}

// Coupon kind values accepted in coupon files.
const (
	KindPercentage    = "percentage"
	KindFlatThreshold = "flat_threshold"
)

// ToCoupon converts a definition into a validated pricing coupon. A
// definition carrying fields of the other kind is rejected rather than
// silently truncated.
func (d Definition) ToCoupon() (pricing.Coupon, error) {
	switch d.Kind {
	case KindPercentage:
		if !d.Threshold.IsZero() || !d.Amount.IsZero() {
			return pricing.Coupon{}, &pricing.ValidationError{
				EntityID: d.Code,
				Field:    "kind",
				Message:  "percentage coupon must not carry threshold or amount",
			}
		}
		return pricing.NewPercentageCoupon(d.Code, d.Rate)
	case KindFlatThreshold:
		if !d.Rate.IsZero() {
			return pricing.Coupon{}, &pricing.ValidationError{
				EntityID: d.Code,
				Field:    "kind",
				Message:  "flat threshold coupon must not carry a rate",
			}
		}
		return pricing.NewFlatThresholdCoupon(d.Code, d.Threshold, d.Amount)
	default:
		return pricing.Coupon{}, &pricing.ValidationError{
			EntityID: d.Code,
			Field:    "kind",
			Message:  "unknown coupon kind",
		}
	}
}

// Store resolves coupon codes into validated pricing coupons.
type Store interface {
	// Resolve maps each code to its definition. Unknown codes fail with
	// model.ErrUnknownCoupon.
	Resolve(ctx context.Context, codes []string) ([]pricing.Coupon, error)

	// Close releases resources held by the store.
	Close() error
}

// Catalog holds coupon definitions keyed by code for fast lookup.
type Catalog interface {
	// Get returns the definition for a code, if present.
	Get(code string) (Definition, bool)

	// Size returns the number of definitions in the catalog.
	Size() int
}

// Loader defines the interface for loading coupon definition files.
type Loader interface {
	// Load reads a gzipped JSON-lines coupon file and returns a Catalog.
	Load(ctx context.Context, filePath string) (Catalog, error)
}
