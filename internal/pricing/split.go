package pricing

import "github.com/shopspring/decimal"

// splitSubtotals partitions the line totals into the discount-eligible and
// non-eligible portions. It is total over already-validated lines.
func splitSubtotals(lines []LineItem) (subtotal, eligible, nonEligible decimal.Decimal) {
	subtotal = decimal.Zero
	eligible = decimal.Zero
	nonEligible = decimal.Zero

	for _, line := range lines {
		lineSubtotal := line.Subtotal()
		subtotal = subtotal.Add(lineSubtotal)
		if line.Eligible {
			eligible = eligible.Add(lineSubtotal)
		} else {
			nonEligible = nonEligible.Add(lineSubtotal)
		}
	}

	return subtotal, eligible, nonEligible
}
