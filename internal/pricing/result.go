package pricing

import "github.com/shopspring/decimal"

// DiscountKind identifies which stage produced an applied discount.
type DiscountKind string

const (
	// DiscountMembership is the fixed 5% member benefit (exclusive stage).
	DiscountMembership DiscountKind = "membership"
	// DiscountPercentageCoupon is the winning percentage coupon (exclusive stage).
	DiscountPercentageCoupon DiscountKind = "percentage_coupon"
	// DiscountFlatCoupon is a stacked flat threshold coupon.
	DiscountFlatCoupon DiscountKind = "flat_coupon"
)

// AppliedDiscount is one entry in the ordered discount breakdown.
type AppliedDiscount struct {
	Kind        DiscountKind
	CouponID    string // empty for the membership discount
	Description string
	Amount      decimal.Decimal
}

// LineEntry echoes an input line with its subtotal and the share of the
// total discount attributed to it.
type LineEntry struct {
	ID        string
	UnitPrice decimal.Decimal
	Quantity  int
	Eligible  bool
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
}

// Result is the immutable outcome of a pricing calculation. All monetary
// fields are rounded to currency precision (2 fractional digits, half-up);
// TotalDiscount is the sum of the Discounts entries so the breakdown always
// reconciles with the totals.
type Result struct {
	Lines               []LineEntry
	Subtotal            decimal.Decimal
	EligibleSubtotal    decimal.Decimal
	NonEligibleSubtotal decimal.Decimal
	Discounts           []AppliedDiscount
	TotalDiscount       decimal.Decimal
	FinalTotal          decimal.Decimal
}
