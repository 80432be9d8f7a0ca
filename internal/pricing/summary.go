package pricing

import (
	"fmt"
	"strings"
)

// Summary renders a calculation result as a human-readable breakdown.
// It is a thin presentation helper; callers are free to format the
// structured Result themselves instead.
func Summary(r *Result) string {
	var b strings.Builder

	divider := strings.Repeat("=", 50)
	b.WriteString(divider + "\n")
	b.WriteString("Order breakdown\n")
	b.WriteString(divider + "\n")

	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%s: %s x %d = %s", line.ID, line.UnitPrice.StringFixed(2), line.Quantity, line.Subtotal.StringFixed(2))
		if !line.Eligible {
			b.WriteString(" (not eligible for discounts)")
		}
		b.WriteString("\n")
		if line.Discount.Sign() > 0 {
			fmt.Fprintf(&b, "  discount share: -%s\n", line.Discount.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\nsubtotal:              %s\n", r.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "eligible subtotal:     %s\n", r.EligibleSubtotal.StringFixed(2))
	fmt.Fprintf(&b, "non-eligible subtotal: %s\n", r.NonEligibleSubtotal.StringFixed(2))

	if len(r.Discounts) > 0 {
		b.WriteString("\ndiscounts applied:\n")
		for _, d := range r.Discounts {
			fmt.Fprintf(&b, "  %s: -%s\n", d.Description, d.Amount.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\ntotal discount: %s\n", r.TotalDiscount.StringFixed(2))
	fmt.Fprintf(&b, "final total:    %s\n", r.FinalTotal.StringFixed(2))
	b.WriteString(divider + "\n")

	return b.String()
}
