package billing

import "github.com/shopspring/decimal"

// ApplyPayment returns the amount still due after recording a payment.
// The result is clamped to [0, total]; the second return reports whether
// clamping happened so the caller can log the inconsistency. Amount due
// never increases and never exceeds the invoice total.
func ApplyPayment(total, amountDue, payment decimal.Decimal) (decimal.Decimal, bool) {
	remaining := amountDue.Sub(payment)

	clamped := false
	if remaining.IsNegative() {
		remaining = decimal.Zero
		clamped = true
	}
	if remaining.GreaterThan(total) {
		remaining = total
		clamped = true
	}
	return remaining, clamped
}

// StatusAfterPayment derives the stored status once a payment brings the
// amount due to remaining: paid when the balance is cleared, otherwise
// partially paid.
func StatusAfterPayment(remaining decimal.Decimal) Status {
	if remaining.IsZero() {
		return StatusPaid
	}
	return StatusPartiallyPaid
}
