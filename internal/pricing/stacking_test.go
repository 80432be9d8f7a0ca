package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFlat(t *testing.T, id, threshold, amount string) Coupon {
	t.Helper()
	c, err := NewFlatThresholdCoupon(id, d(threshold), d(amount))
	require.NoError(t, err)
	return c
}

func TestApplyFlatCoupons_AllQualifyAndStack(t *testing.T) {
	coupons := []Coupon{
		mustFlat(t, "C002", "200", "30"),
		mustFlat(t, "C001", "100", "10"),
	}

	applied, total := applyFlatCoupons(d("250"), coupons)

	require.Len(t, applied, 2)
	// Ascending threshold order.
	assert.Equal(t, "C001", applied[0].CouponID)
	assert.Equal(t, "C002", applied[1].CouponID)
	assert.True(t, total.Equal(d("40")))
}

func TestApplyFlatCoupons_ThresholdGating(t *testing.T) {
	coupons := []Coupon{
		mustFlat(t, "C001", "100", "10"),
		mustFlat(t, "C002", "300", "50"),
	}

	applied, total := applyFlatCoupons(d("250"), coupons)

	require.Len(t, applied, 1)
	assert.Equal(t, "C001", applied[0].CouponID)
	assert.True(t, total.Equal(d("10")))
}

func TestApplyFlatCoupons_FixedBaseNotRunningRemainder(t *testing.T) {
	// Both thresholds are tested against the same 250 base; applying the
	// first coupon does not disqualify the second even though the running
	// remainder drops below its threshold.
	coupons := []Coupon{
		mustFlat(t, "C001", "100", "60"),
		mustFlat(t, "C002", "240", "30"),
	}

	applied, total := applyFlatCoupons(d("250"), coupons)

	require.Len(t, applied, 2)
	assert.True(t, total.Equal(d("90")))
}

func TestApplyFlatCoupons_ClampAtZeroRemainder(t *testing.T) {
	coupons := []Coupon{
		mustFlat(t, "C001", "10", "40"),
		mustFlat(t, "C002", "20", "40"),
	}

	applied, total := applyFlatCoupons(d("50"), coupons)

	require.Len(t, applied, 2)
	assert.True(t, applied[0].Amount.Equal(d("40")))
	// Second coupon qualifies but only 10 of its 40 can apply.
	assert.True(t, applied[1].Amount.Equal(d("10")))
	assert.True(t, total.Equal(d("50")))
}

func TestApplyFlatCoupons_ExhaustedBaseContributesNothing(t *testing.T) {
	coupons := []Coupon{
		mustFlat(t, "C001", "0", "50"),
		mustFlat(t, "C002", "10", "25"),
	}

	applied, total := applyFlatCoupons(d("50"), coupons)

	// The second coupon qualifies but the remainder is already zero, so it
	// never shows up in the breakdown.
	require.Len(t, applied, 1)
	assert.Equal(t, "C001", applied[0].CouponID)
	assert.True(t, total.Equal(d("50")))
}

func TestApplyFlatCoupons_ThresholdTieBrokenByID(t *testing.T) {
	coupons := []Coupon{
		mustFlat(t, "C005", "100", "5"),
		mustFlat(t, "C001", "100", "5"),
	}

	applied, _ := applyFlatCoupons(d("200"), coupons)

	require.Len(t, applied, 2)
	assert.Equal(t, "C001", applied[0].CouponID)
	assert.Equal(t, "C005", applied[1].CouponID)
}

func TestApplyFlatCoupons_IgnoresOtherKinds(t *testing.T) {
	coupons := []Coupon{mustPercentage(t, "C001", "0.9")}

	applied, total := applyFlatCoupons(d("100"), coupons)

	assert.Empty(t, applied)
	assert.True(t, total.IsZero())
}
