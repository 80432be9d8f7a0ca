package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// applyFlatCoupons evaluates every flat threshold coupon against the fixed
// base amount left after the exclusive stage. Coupons are applied in
// ascending threshold order (ties by coupon ID) and every one whose
// threshold is within the base qualifies; qualification never looks at the
// running remainder, so multiple coupons stack. The accumulated discount is
// clamped so it never drives the eligible remainder below zero.
func applyFlatCoupons(base decimal.Decimal, coupons []Coupon) ([]AppliedDiscount, decimal.Decimal) {
	flats := make([]Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Kind == KindFlatThreshold {
			flats = append(flats, c)
		}
	}

	sort.Slice(flats, func(i, j int) bool {
		if !flats[i].Threshold.Equal(flats[j].Threshold) {
			return flats[i].Threshold.LessThan(flats[j].Threshold)
		}
		return flats[i].ID < flats[j].ID
	})

	var applied []AppliedDiscount
	total := decimal.Zero
	remaining := base

	for _, c := range flats {
		if base.LessThan(c.Threshold) {
			continue
		}

		amount := c.Amount
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		if amount.Sign() <= 0 {
			continue
		}

		applied = append(applied, AppliedDiscount{
			Kind:        DiscountFlatCoupon,
			CouponID:    c.ID,
			Description: fmt.Sprintf("coupon %s: spend %s save %s", c.ID, c.Threshold.String(), c.Amount.String()),
			Amount:      amount,
		})
		total = total.Add(amount)
		remaining = remaining.Sub(amount)
	}

	return applied, total
}
