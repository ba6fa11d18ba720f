package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

// LineItem is a billable entry on an invoice. An ID of zero marks a
// transient item that has not been persisted yet.
type LineItem struct {
	ID          int64           `json:"id,omitempty"`
	InvoiceID   int64           `json:"-"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
}

// Amount returns quantity times unit price for the line.
func (li *LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Invoice represents an invoice with its derived totals. Status holds the
// stored lifecycle status; the overdue display state is derived per read
// via billing.EffectiveStatus and never written back.
type Invoice struct {
	ID            int64           `json:"id"`
	OwnerID       int64           `json:"-"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      int64           `json:"client_id"`
	ProjectID     int64           `json:"project_id,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	PaymentTerms  billing.Terms   `json:"payment_terms"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DiscountPct   decimal.Decimal `json:"discount_percent"`
	Status        billing.Status  `json:"status"`
	Notes         string          `json:"notes,omitempty"`

	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	AmountDue decimal.Decimal `json:"amount_due"`

	PaidDate  *time.Time `json:"paid_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Items []*LineItem `json:"items"`

	// Enrichment for API responses.
	ClientName string     `json:"client_name,omitempty"`
	Payments   []*Payment `json:"payments,omitempty"`
}

// Lines converts the invoice items into calculator lines.
func (inv *Invoice) Lines() []billing.Line {
	lines := make([]billing.Line, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, billing.Line{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return lines
}

// Payment is a payment recorded against an invoice.
type Payment struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Note      string          `json:"note,omitempty"`
}
