package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "10", "10"},
		{"decimal", "49.95", "49.95"},
		{"whitespace trimmed", "  12.5  ", "12.5"},
		{"empty degrades to zero", "", "0"},
		{"garbage degrades to zero", "abc", "0"},
		{"partial number degrades to zero", "12x", "0"},
		{"negative passes through", "-3", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name            string
		lines           []Line
		discountPercent string
		taxRate         string
		wantSubtotal    string
		wantDiscount    string
		wantTax         string
		wantTotal       string
	}{
		{
			name:            "empty invoice",
			lines:           nil,
			discountPercent: "0",
			taxRate:         "0",
			wantSubtotal:    "0",
			wantDiscount:    "0",
			wantTax:         "0",
			wantTotal:       "0",
		},
		{
			name: "single line no rates",
			lines: []Line{
				{Description: "Consulting", Quantity: dec("2"), UnitPrice: dec("150")},
			},
			discountPercent: "0",
			taxRate:         "0",
			wantSubtotal:    "300",
			wantDiscount:    "0",
			wantTax:         "0",
			wantTotal:       "300",
		},
		{
			name: "discount and tax",
			lines: []Line{
				{Description: "Design", Quantity: dec("10"), UnitPrice: dec("50")},
			},
			discountPercent: "10",
			taxRate:         "8",
			wantSubtotal:    "500",
			wantDiscount:    "50",
			wantTax:         "36",
			wantTotal:       "486",
		},
		{
			name: "blank description skipped",
			lines: []Line{
				{Description: "Hosting", Quantity: dec("1"), UnitPrice: dec("20")},
				{Description: "   ", Quantity: dec("99"), UnitPrice: dec("99")},
			},
			discountPercent: "0",
			taxRate:         "0",
			wantSubtotal:    "20",
			wantDiscount:    "0",
			wantTax:         "0",
			wantTotal:       "20",
		},
		{
			name: "negative line passes through unclamped",
			lines: []Line{
				{Description: "Service", Quantity: dec("1"), UnitPrice: dec("100")},
				{Description: "Credit", Quantity: dec("1"), UnitPrice: dec("-30")},
			},
			discountPercent: "0",
			taxRate:         "0",
			wantSubtotal:    "70",
			wantDiscount:    "0",
			wantTax:         "0",
			wantTotal:       "70",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, dec(tt.discountPercent), dec(tt.taxRate))

			if !got.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if !got.Discount.Equal(dec(tt.wantDiscount)) {
				t.Errorf("Discount = %s, want %s", got.Discount, tt.wantDiscount)
			}
			if !got.Tax.Equal(dec(tt.wantTax)) {
				t.Errorf("Tax = %s, want %s", got.Tax, tt.wantTax)
			}
			if !got.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestComputeTotals_Identity(t *testing.T) {
	lines := []Line{
		{Description: "A", Quantity: dec("3"), UnitPrice: dec("19.99")},
		{Description: "B", Quantity: dec("1.5"), UnitPrice: dec("80")},
	}

	got := ComputeTotals(lines, dec("12.5"), dec("7"))

	// total == subtotal - discount + tax, exactly
	want := got.Subtotal.Sub(got.Discount).Add(got.Tax)
	if !got.Total.Equal(want) {
		t.Errorf("Total = %s, want subtotal-discount+tax = %s", got.Total, want)
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	lines := []Line{
		{Description: "A", Quantity: dec("7"), UnitPrice: dec("13.37")},
	}

	first := ComputeTotals(lines, dec("5"), dec("19"))
	second := ComputeTotals(lines, dec("5"), dec("19"))

	if !first.Total.Equal(second.Total) || !first.Subtotal.Equal(second.Subtotal) ||
		!first.Discount.Equal(second.Discount) || !first.Tax.Equal(second.Tax) {
		t.Errorf("recomputation diverged: first %+v, second %+v", first, second)
	}
}

func TestComputeTotals_ZeroRatesEqualsSubtotal(t *testing.T) {
	lines := []Line{
		{Description: "A", Quantity: dec("4"), UnitPrice: dec("25")},
		{Description: "B", Quantity: dec("2"), UnitPrice: dec("75.50")},
	}

	got := ComputeTotals(lines, decimal.Zero, decimal.Zero)
	if !got.Total.Equal(got.Subtotal) {
		t.Errorf("Total = %s, want subtotal %s when rates are zero", got.Total, got.Subtotal)
	}
}
