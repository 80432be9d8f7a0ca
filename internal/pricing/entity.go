package pricing

import "github.com/shopspring/decimal"

// memberPayRate is the fraction of the eligible amount a member pays
// before coupons (0.95 means a fixed 5% membership discount).
var memberPayRate = decimal.RequireFromString("0.95")

// CouponKind identifies the discount strategy a coupon carries.
type CouponKind string

const (
	// KindPercentage pays a fraction of the eligible amount (rate 0.9 means 10% off).
	KindPercentage CouponKind = "percentage"
	// KindFlatThreshold grants a flat discount once the eligible amount reaches a threshold.
	KindFlatThreshold CouponKind = "flat_threshold"
)

// LineItem is a purchased line with an already-resolved unit price.
type LineItem struct {
	ID        string
	UnitPrice decimal.Decimal
	Quantity  int
	Eligible  bool
}

// NewLineItem constructs a validated line item.
func NewLineItem(id string, unitPrice decimal.Decimal, quantity int, eligible bool) (LineItem, error) {
	li := LineItem{
		ID:        id,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Eligible:  eligible,
	}
	if err := li.validate(); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

func (li LineItem) validate() error {
	if li.UnitPrice.IsNegative() {
		return newValidationError(li.ID, "unitPrice", "unit price must not be negative")
	}
	if li.Quantity < 1 {
		return newValidationError(li.ID, "quantity", "quantity must be at least 1")
	}
	return nil
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Buyer is the purchasing customer with resolved membership status.
type Buyer struct {
	ID     string
	Member bool
}

// NewBuyer constructs a buyer.
func NewBuyer(id string, member bool) Buyer {
	return Buyer{ID: id, Member: member}
}

// Coupon is a closed tagged union over the two supported kinds. A coupon
// carries exactly the fields its kind requires; use the kind-specific
// constructors to obtain a valid value.
type Coupon struct {
	ID   string
	Kind CouponKind

	// Rate is the payable fraction of the eligible amount. Percentage only.
	Rate decimal.Decimal

	// Threshold and Amount define "spend at least Threshold, save Amount".
	// FlatThreshold only.
	Threshold decimal.Decimal
	Amount    decimal.Decimal
}

// NewPercentageCoupon constructs a percentage coupon. The rate is the
// fraction still payable and must lie in (0, 1].
func NewPercentageCoupon(id string, rate decimal.Decimal) (Coupon, error) {
	c := Coupon{ID: id, Kind: KindPercentage, Rate: rate}
	if err := c.validate(); err != nil {
		return Coupon{}, err
	}
	return c, nil
}

// NewFlatThresholdCoupon constructs a flat "spend threshold, save amount" coupon.
func NewFlatThresholdCoupon(id string, threshold, amount decimal.Decimal) (Coupon, error) {
	c := Coupon{ID: id, Kind: KindFlatThreshold, Threshold: threshold, Amount: amount}
	if err := c.validate(); err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (c Coupon) validate() error {
	switch c.Kind {
	case KindPercentage:
		// A zero rate also covers the "missing required field" case, since an
		// unset decimal is indistinguishable from an explicit zero.
		if c.Rate.Sign() <= 0 || c.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return newValidationError(c.ID, "rate", "rate must be in (0, 1]")
		}
		if !c.Threshold.IsZero() || !c.Amount.IsZero() {
			return newValidationError(c.ID, "kind", "percentage coupon must not carry threshold or amount")
		}
	case KindFlatThreshold:
		if c.Threshold.IsNegative() {
			return newValidationError(c.ID, "threshold", "threshold must not be negative")
		}
		if c.Amount.IsNegative() {
			return newValidationError(c.ID, "amount", "amount must not be negative")
		}
		if !c.Rate.IsZero() {
			return newValidationError(c.ID, "kind", "flat threshold coupon must not carry a rate")
		}
	default:
		return newValidationError(c.ID, "kind", "unknown coupon kind")
	}
	return nil
}
