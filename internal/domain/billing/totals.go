// Package billing holds the invoice domain logic: line-item totals,
// payment-terms resolution, status derivation and edit-buffer diffing.
// Everything here is pure computation; persistence and transport live in
// the infrastructure and interface layers.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line is a single billable row as seen by the totals calculator.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Totals is the breakdown displayed on an invoice.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

var oneHundred = decimal.NewFromInt(100)

// ParseAmount coerces a form-supplied numeric string to a decimal.
// Blank or malformed input degrades to zero rather than failing; negative
// values pass through unclamped so credit-note style lines keep working.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputeTotals derives the invoice totals from the given lines and rates.
//
//	subtotal = sum(quantity * unit_price)
//	discount = subtotal * discountPercent/100
//	tax      = (subtotal - discount) * taxRate/100
//	total    = subtotal - discount + tax
//
// Lines whose description is empty after trimming are ignored. The function
// is pure and idempotent; callers re-run it whenever any input changes.
func ComputeTotals(lines []Line, discountPercent, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		if strings.TrimSpace(l.Description) == "" {
			continue
		}
		subtotal = subtotal.Add(l.Quantity.Mul(l.UnitPrice))
	}

	discount := subtotal.Mul(discountPercent).Div(oneHundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Div(oneHundred)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}
