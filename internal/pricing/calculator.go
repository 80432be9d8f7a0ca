package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the currency precision applied once to reported amounts.
const moneyPlaces = 2

// Calculate computes the final payable amount for an order. It is a pure
// function of its inputs: validation happens before any arithmetic and the
// first invalid entity aborts the whole calculation with a *ValidationError.
// A failed internal post-condition surfaces as *InvariantViolation.
//
// Intermediate sums are kept at full precision; every reported amount is
// rounded to currency precision exactly once during result assembly.
func Calculate(lines []LineItem, buyer Buyer, coupons []Coupon) (*Result, error) {
	for _, line := range lines {
		if err := line.validate(); err != nil {
			return nil, err
		}
	}
	for _, c := range coupons {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}

	subtotal, eligible, nonEligible := splitSubtotals(lines)

	exclusive := selectExclusive(eligible, buyer, coupons)
	eligibleAfterExclusive := eligible.Sub(exclusive.amount)

	flatDiscounts, flatTotal := applyFlatCoupons(eligibleAfterExclusive, coupons)

	totalDiscount := exclusive.amount.Add(flatTotal)
	finalTotal := subtotal.Sub(totalDiscount)

	// Post-conditions: the stages may never discount more than the eligible
	// portion. A violation is a defect in the selector or stacking engine,
	// not a caller error.
	if totalDiscount.GreaterThan(eligible) {
		return nil, &InvariantViolation{
			Check:  "discount_within_eligible",
			Detail: fmt.Sprintf("total discount %s exceeds eligible subtotal %s", totalDiscount, eligible),
		}
	}
	if finalTotal.LessThan(nonEligible) {
		return nil, &InvariantViolation{
			Check:  "final_total_floor",
			Detail: fmt.Sprintf("final total %s fell below non-eligible subtotal %s", finalTotal, nonEligible),
		}
	}

	return assembleResult(lines, subtotal, eligible, nonEligible, exclusive, flatDiscounts, totalDiscount), nil
}

// assembleResult builds the immutable result in a single pass, rounding each
// reported amount to currency precision. TotalDiscount is recomputed as the
// sum of the rounded discount entries so the breakdown reconciles exactly
// with the totals, and FinalTotal is derived from the rounded figures.
func assembleResult(
	lines []LineItem,
	subtotal, eligible, nonEligible decimal.Decimal,
	exclusive exclusiveDiscount,
	flatDiscounts []AppliedDiscount,
	exactTotalDiscount decimal.Decimal,
) *Result {
	discounts := make([]AppliedDiscount, 0, len(flatDiscounts)+1)
	if exclusive.amount.Sign() > 0 {
		discounts = append(discounts, AppliedDiscount{
			Kind:        exclusive.kind,
			CouponID:    exclusive.couponID,
			Description: exclusive.description,
			Amount:      exclusive.amount.Round(moneyPlaces),
		})
	}
	for _, d := range flatDiscounts {
		d.Amount = d.Amount.Round(moneyPlaces)
		discounts = append(discounts, d)
	}

	totalDiscount := decimal.Zero
	for _, d := range discounts {
		totalDiscount = totalDiscount.Add(d.Amount)
	}

	roundedSubtotal := subtotal.Round(moneyPlaces)

	entries := make([]LineEntry, len(lines))
	for i, line := range lines {
		lineSubtotal := line.Subtotal()
		attributed := decimal.Zero
		// Attribute the total discount across eligible lines in proportion
		// to their subtotals.
		if line.Eligible && eligible.Sign() > 0 {
			attributed = lineSubtotal.Mul(exactTotalDiscount).Div(eligible).Round(moneyPlaces)
		}
		entries[i] = LineEntry{
			ID:        line.ID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Eligible:  line.Eligible,
			Subtotal:  lineSubtotal.Round(moneyPlaces),
			Discount:  attributed,
		}
	}

	return &Result{
		Lines:               entries,
		Subtotal:            roundedSubtotal,
		EligibleSubtotal:    eligible.Round(moneyPlaces),
		NonEligibleSubtotal: nonEligible.Round(moneyPlaces),
		Discounts:           discounts,
		TotalDiscount:       totalDiscount,
		FinalTotal:          roundedSubtotal.Sub(totalDiscount),
	}
}
