package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// exclusiveDiscount is the outcome of the exclusive stage: at most one of
// the membership discount and the best percentage coupon.
type exclusiveDiscount struct {
	kind        DiscountKind
	couponID    string
	description string
	amount      decimal.Decimal
}

var one = decimal.NewFromInt(1)

// selectExclusive picks whichever of {membership saving, best percentage
// coupon saving} is larger and applies it to the eligible subtotal. On an
// exact tie the coupon wins. A zero amount means neither applies.
func selectExclusive(eligible decimal.Decimal, buyer Buyer, coupons []Coupon) exclusiveDiscount {
	memberSaving := decimal.Zero
	if buyer.Member {
		memberSaving = eligible.Mul(one.Sub(memberPayRate))
	}

	best, bestSaving := bestPercentageCoupon(eligible, coupons)

	switch {
	case best != nil && bestSaving.GreaterThanOrEqual(memberSaving) && bestSaving.Sign() > 0:
		offPercent := one.Sub(best.Rate).Mul(decimal.NewFromInt(100))
		return exclusiveDiscount{
			kind:        DiscountPercentageCoupon,
			couponID:    best.ID,
			description: fmt.Sprintf("coupon %s: %s%% off eligible items", best.ID, offPercent.String()),
			amount:      bestSaving,
		}
	case memberSaving.Sign() > 0:
		return exclusiveDiscount{
			kind:        DiscountMembership,
			description: "member discount: 5% off eligible items",
			amount:      memberSaving,
		}
	default:
		return exclusiveDiscount{amount: decimal.Zero}
	}
}

// bestPercentageCoupon returns the percentage coupon with the greatest
// saving against the eligible subtotal. Ties are broken by the smallest
// coupon ID so repeated calls always pick the same candidate.
func bestPercentageCoupon(eligible decimal.Decimal, coupons []Coupon) (*Coupon, decimal.Decimal) {
	var best *Coupon
	bestSaving := decimal.Zero

	for i := range coupons {
		c := &coupons[i]
		if c.Kind != KindPercentage {
			continue
		}
		saving := eligible.Mul(one.Sub(c.Rate))
		switch {
		case best == nil,
			saving.GreaterThan(bestSaving),
			saving.Equal(bestSaving) && c.ID < best.ID:
			best = c
			bestSaving = saving
		}
	}

	return best, bestSaving
}
