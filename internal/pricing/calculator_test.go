package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, id, price string, qty int, eligible bool) LineItem {
	t.Helper()
	li, err := NewLineItem(id, d(price), qty, eligible)
	require.NoError(t, err)
	return li
}

func assertMoney(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(expected)), "expected %s, got %s", expected, got)
}

func TestCalculate_MemberNoCoupons(t *testing.T) {
	lines := []LineItem{mustLine(t, "P001", "100", 1, true)}

	result, err := Calculate(lines, NewBuyer("U001", true), nil)
	require.NoError(t, err)

	require.Len(t, result.Discounts, 1)
	assert.Equal(t, DiscountMembership, result.Discounts[0].Kind)
	assertMoney(t, "5.00", result.TotalDiscount)
	assertMoney(t, "95.00", result.FinalTotal)
}

func TestCalculate_PercentageCouponNonMember(t *testing.T) {
	lines := []LineItem{mustLine(t, "P001", "100", 1, true)}
	coupons := []Coupon{mustPercentage(t, "C001", "0.90")}

	result, err := Calculate(lines, NewBuyer("U001", false), coupons)
	require.NoError(t, err)

	assertMoney(t, "10.00", result.TotalDiscount)
	assertMoney(t, "90.00", result.FinalTotal)
}

func TestCalculate_CouponBeatsMembership(t *testing.T) {
	lines := []LineItem{mustLine(t, "P001", "100", 1, true)}
	coupons := []Coupon{mustPercentage(t, "C001", "0.80")}

	result, err := Calculate(lines, NewBuyer("U001", true), coupons)
	require.NoError(t, err)

	require.Len(t, result.Discounts, 1)
	assert.Equal(t, DiscountPercentageCoupon, result.Discounts[0].Kind)
	assertMoney(t, "20.00", result.TotalDiscount)
	assertMoney(t, "80.00", result.FinalTotal)
}

func TestCalculate_FlatCouponsStack(t *testing.T) {
	lines := []LineItem{mustLine(t, "P001", "250", 1, true)}
	coupons := []Coupon{
		mustFlat(t, "C001", "100", "10"),
		mustFlat(t, "C002", "200", "30"),
	}

	result, err := Calculate(lines, NewBuyer("U001", false), coupons)
	require.NoError(t, err)

	require.Len(t, result.Discounts, 2)
	assertMoney(t, "40.00", result.TotalDiscount)
	assertMoney(t, "210.00", result.FinalTotal)
}

func TestCalculate_MixedKindsWithNonEligibleLine(t *testing.T) {
	lines := []LineItem{
		mustLine(t, "P001", "100", 1, false),
		mustLine(t, "P002", "300", 1, true),
	}
	coupons := []Coupon{
		mustPercentage(t, "C001", "0.90"),
		mustFlat(t, "C002", "250", "20"),
	}

	result, err := Calculate(lines, NewBuyer("U001", false), coupons)
	require.NoError(t, err)

	assertMoney(t, "400.00", result.Subtotal)
	assertMoney(t, "300.00", result.EligibleSubtotal)
	assertMoney(t, "100.00", result.NonEligibleSubtotal)
	// Exclusive stage saves 30, leaving 270 >= 250 so the flat coupon stacks.
	require.Len(t, result.Discounts, 2)
	assertMoney(t, "30.00", result.Discounts[0].Amount)
	assertMoney(t, "20.00", result.Discounts[1].Amount)
	assertMoney(t, "50.00", result.TotalDiscount)
	assertMoney(t, "350.00", result.FinalTotal)
}

func TestCalculate_FailsFastOnInvalidEntity(t *testing.T) {
	lines := []LineItem{
		{ID: "P001", UnitPrice: d("10"), Quantity: 1, Eligible: true},
		{ID: "P002", UnitPrice: d("-1"), Quantity: 1, Eligible: true},
	}

	result, err := Calculate(lines, NewBuyer("U001", false), nil)
	require.Error(t, err)
	assert.Nil(t, result, "no partial result on validation failure")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "P002", verr.EntityID)
}

func TestCalculate_InvalidCouponRejected(t *testing.T) {
	lines := []LineItem{mustLine(t, "P001", "100", 1, true)}
	coupons := []Coupon{{ID: "C001", Kind: KindPercentage, Rate: d("1.5")}}

	_, err := Calculate(lines, NewBuyer("U001", false), coupons)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "C001", verr.EntityID)
	assert.Equal(t, "rate", verr.Field)
}

func TestCalculate_EmptyOrder(t *testing.T) {
	result, err := Calculate(nil, NewBuyer("U001", true), []Coupon{mustFlat(t, "C001", "0", "10")})
	require.NoError(t, err)

	assertMoney(t, "0.00", result.Subtotal)
	assertMoney(t, "0.00", result.TotalDiscount)
	assertMoney(t, "0.00", result.FinalTotal)
	assert.Empty(t, result.Discounts)
}

func TestCalculate_Deterministic(t *testing.T) {
	lines := []LineItem{
		mustLine(t, "P001", "59.99", 3, true),
		mustLine(t, "P002", "12.50", 2, false),
	}
	coupons := []Coupon{
		mustPercentage(t, "C002", "0.9"),
		mustPercentage(t, "C001", "0.9"),
		mustFlat(t, "C003", "100", "15"),
	}
	buyer := NewBuyer("U001", true)

	first, err := Calculate(lines, buyer, coupons)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Calculate(lines, buyer, coupons)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculate_EligibilityIsolation(t *testing.T) {
	// Toggling one line's eligibility only moves its subtotal between the
	// eligible and non-eligible buckets; the other line's pricing holds.
	base := []LineItem{
		mustLine(t, "P001", "100", 1, true),
		mustLine(t, "P002", "50", 1, true),
	}
	toggled := []LineItem{
		mustLine(t, "P001", "100", 1, true),
		mustLine(t, "P002", "50", 1, false),
	}

	buyer := NewBuyer("U001", true)

	before, err := Calculate(base, buyer, nil)
	require.NoError(t, err)
	after, err := Calculate(toggled, buyer, nil)
	require.NoError(t, err)

	assertMoney(t, "150.00", before.Subtotal)
	assertMoney(t, "150.00", after.Subtotal)
	assertMoney(t, "150.00", before.EligibleSubtotal)
	assertMoney(t, "100.00", after.EligibleSubtotal)
	assertMoney(t, "50.00", after.NonEligibleSubtotal)
	// Membership saving tracks the eligible subtotal only.
	assertMoney(t, "7.50", before.TotalDiscount)
	assertMoney(t, "5.00", after.TotalDiscount)
}

func TestCalculate_FinalTotalNeverBelowNonEligible(t *testing.T) {
	lines := []LineItem{
		mustLine(t, "P001", "30", 1, true),
		mustLine(t, "P002", "100", 1, false),
	}
	// Flat discounts far exceeding the eligible amount get clamped.
	coupons := []Coupon{
		mustFlat(t, "C001", "0", "500"),
		mustFlat(t, "C002", "10", "500"),
	}

	result, err := Calculate(lines, NewBuyer("U001", false), coupons)
	require.NoError(t, err)

	assertMoney(t, "30.00", result.TotalDiscount)
	assertMoney(t, "100.00", result.FinalTotal)
	assert.True(t, result.FinalTotal.GreaterThanOrEqual(result.NonEligibleSubtotal))
}

func TestCalculate_LineDiscountAttribution(t *testing.T) {
	lines := []LineItem{
		mustLine(t, "P001", "100", 1, true),
		mustLine(t, "P002", "300", 1, true),
		mustLine(t, "P003", "50", 1, false),
	}
	coupons := []Coupon{mustPercentage(t, "C001", "0.9")}

	result, err := Calculate(lines, NewBuyer("U001", false), coupons)
	require.NoError(t, err)

	// 40 total discount split 1:3 across the eligible lines.
	assertMoney(t, "10.00", result.Lines[0].Discount)
	assertMoney(t, "30.00", result.Lines[1].Discount)
	assertMoney(t, "0.00", result.Lines[2].Discount)
}

func TestCalculate_BreakdownReconciles(t *testing.T) {
	lines := []LineItem{
		mustLine(t, "P001", "33.33", 1, true),
		mustLine(t, "P002", "19.99", 2, true),
	}
	coupons := []Coupon{
		mustPercentage(t, "C001", "0.85"),
		mustFlat(t, "C002", "50", "5"),
	}

	result, err := Calculate(lines, NewBuyer("U001", true), coupons)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, disc := range result.Discounts {
		sum = sum.Add(disc.Amount)
	}
	assert.True(t, sum.Equal(result.TotalDiscount), "discount entries must sum to the total")
	assert.True(t, result.Subtotal.Sub(result.TotalDiscount).Equal(result.FinalTotal))
}
