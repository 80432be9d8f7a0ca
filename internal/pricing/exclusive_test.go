package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPercentage(t *testing.T, id, rate string) Coupon {
	t.Helper()
	c, err := NewPercentageCoupon(id, d(rate))
	require.NoError(t, err)
	return c
}

func TestSelectExclusive_MembershipOnly(t *testing.T) {
	got := selectExclusive(d("100"), NewBuyer("U001", true), nil)

	assert.Equal(t, DiscountMembership, got.kind)
	assert.True(t, got.amount.Equal(d("5")), "expected 5, got %s", got.amount)
}

func TestSelectExclusive_CouponOnly(t *testing.T) {
	coupons := []Coupon{mustPercentage(t, "C001", "0.9")}
	got := selectExclusive(d("100"), NewBuyer("U001", false), coupons)

	assert.Equal(t, DiscountPercentageCoupon, got.kind)
	assert.Equal(t, "C001", got.couponID)
	assert.True(t, got.amount.Equal(d("10")))
}

func TestSelectExclusive_CouponBeatsMembership(t *testing.T) {
	coupons := []Coupon{mustPercentage(t, "C001", "0.8")}
	got := selectExclusive(d("100"), NewBuyer("U001", true), coupons)

	assert.Equal(t, DiscountPercentageCoupon, got.kind)
	assert.True(t, got.amount.Equal(d("20")))
}

func TestSelectExclusive_MembershipBeatsWeakCoupon(t *testing.T) {
	// 2% off coupon loses to the 5% membership discount.
	coupons := []Coupon{mustPercentage(t, "C001", "0.98")}
	got := selectExclusive(d("100"), NewBuyer("U001", true), coupons)

	assert.Equal(t, DiscountMembership, got.kind)
	assert.True(t, got.amount.Equal(d("5")))
}

func TestSelectExclusive_TiePrefersCoupon(t *testing.T) {
	// 5% coupon ties the membership saving exactly; the coupon wins.
	coupons := []Coupon{mustPercentage(t, "C001", "0.95")}
	got := selectExclusive(d("100"), NewBuyer("U001", true), coupons)

	assert.Equal(t, DiscountPercentageCoupon, got.kind)
	assert.Equal(t, "C001", got.couponID)
}

func TestSelectExclusive_BestOfSeveralCoupons(t *testing.T) {
	coupons := []Coupon{
		mustPercentage(t, "C003", "0.95"),
		mustPercentage(t, "C001", "0.85"),
		mustPercentage(t, "C002", "0.90"),
	}
	got := selectExclusive(d("100"), NewBuyer("U001", false), coupons)

	assert.Equal(t, "C001", got.couponID)
	assert.True(t, got.amount.Equal(d("15")))
}

func TestSelectExclusive_EqualCouponsPickSmallestID(t *testing.T) {
	coupons := []Coupon{
		mustPercentage(t, "C009", "0.9"),
		mustPercentage(t, "C002", "0.9"),
		mustPercentage(t, "C005", "0.9"),
	}
	got := selectExclusive(d("100"), NewBuyer("U001", false), coupons)

	assert.Equal(t, "C002", got.couponID)
}

func TestSelectExclusive_NothingApplies(t *testing.T) {
	got := selectExclusive(d("100"), NewBuyer("U001", false), nil)
	assert.True(t, got.amount.IsZero())

	// Zero eligible amount yields zero savings all around.
	got = selectExclusive(d("0"), NewBuyer("U001", true), []Coupon{mustPercentage(t, "C001", "0.5")})
	assert.True(t, got.amount.IsZero())
}
