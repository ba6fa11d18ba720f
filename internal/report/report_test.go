package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            1,
		InvoiceNumber: "INV-2024-0001",
		ClientName:    "Acme Studio",
		IssueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:        billing.StatusSent,
		TaxRate:       decimal.NewFromInt(8),
		DiscountPct:   decimal.NewFromInt(10),
		Subtotal:      decimal.NewFromInt(500),
		Discount:      decimal.NewFromInt(50),
		Tax:           decimal.NewFromInt(36),
		Total:         decimal.NewFromInt(486),
		AmountDue:     decimal.NewFromInt(486),
		Notes:         "Payment via bank transfer",
		Items: []*entity.LineItem{
			{ID: 1, Description: "Design", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

func TestReporter_InvoicePDF(t *testing.T) {
	r := NewReporter("Test Co", zap.NewNop())

	pdf, err := r.InvoicePDF(sampleInvoice())
	require.NoError(t, err)

	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReporter_InvoiceRegister(t *testing.T) {
	r := NewReporter("Test Co", zap.NewNop())

	register, err := r.InvoiceRegister([]*entity.Invoice{sampleInvoice()})
	require.NoError(t, err)

	// xlsx is a zip archive
	require.True(t, len(register) > 4)
	assert.Equal(t, "PK", string(register[:2]))
}

func TestReporter_InvoiceRegister_Empty(t *testing.T) {
	r := NewReporter("Test Co", zap.NewNop())

	register, err := r.InvoiceRegister(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, register)
}
