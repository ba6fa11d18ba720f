package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Auckfmine/client-portal/internal/config"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
	"github.com/Auckfmine/client-portal/internal/domain/workflow"
)

const testOwner = int64(7)

func testInvoiceConfig() config.InvoiceConfig {
	return config.InvoiceConfig{
		NumberPrefix: "INV",
		DefaultTerms: "net_30",
		SyncTimeout:  time.Second,
	}
}

func newTestInvoiceService(
	invoiceRepo *mockInvoiceRepo,
	itemRepo *mockItemRepo,
	paymentRepo *mockPaymentRepo,
	clientRepo *mockClientRepo,
) *invoiceServiceImpl {
	svc := NewInvoiceService(
		invoiceRepo, itemRepo, paymentRepo, clientRepo,
		&mockActivityRepo{}, &mockTxManager{}, testInvoiceConfig(), &mockLogger{},
	)
	return svc.(*invoiceServiceImpl)
}

func sentInvoice(total, due string) *entity.Invoice {
	return &entity.Invoice{
		ID:            1,
		OwnerID:       testOwner,
		InvoiceNumber: "INV-2024-0001",
		ClientID:      1,
		Status:        billing.StatusSent,
		Total:         decimal.RequireFromString(total),
		AmountDue:     decimal.RequireFromString(due),
	}
}

func TestInvoiceService_Create(t *testing.T) {
	invoiceRepo := &mockInvoiceRepo{
		countForOwnerFunc: func(ctx context.Context, ownerID int64) (int, error) {
			return 2, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	inv, err := svc.Create(context.Background(), testOwner, InvoiceInput{
		ClientID:        1,
		IssueDate:       "2024-01-01",
		PaymentTerms:    "net_30",
		TaxRate:         "8",
		DiscountPercent: "10",
		Items: []ItemInput{
			{Description: "Design", Quantity: "10", UnitPrice: "50"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-0003", inv.InvoiceNumber)
	assert.Equal(t, "2024-01-31", billing.FormatDate(inv.DueDate))
	assert.Equal(t, billing.StatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("500")))
	assert.True(t, inv.Discount.Equal(decimal.RequireFromString("50")))
	assert.True(t, inv.Tax.Equal(decimal.RequireFromString("36")))
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("486")))
	assert.True(t, inv.AmountDue.Equal(inv.Total))
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 0, inv.Items[0].Position)
}

func TestInvoiceService_Create_UnknownClient(t *testing.T) {
	clientRepo := &mockClientRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Client, error) {
			return nil, nil
		},
	}
	svc := newTestInvoiceService(&mockInvoiceRepo{}, &mockItemRepo{}, &mockPaymentRepo{}, clientRepo)

	_, err := svc.Create(context.Background(), testOwner, InvoiceInput{ClientID: 99})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_Create_DefaultTerms(t *testing.T) {
	svc := newTestInvoiceService(&mockInvoiceRepo{}, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	inv, err := svc.Create(context.Background(), testOwner, InvoiceInput{
		ClientID:  1,
		IssueDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.TermsNet30, inv.PaymentTerms)
	assert.Equal(t, "2024-03-31", billing.FormatDate(inv.DueDate))
}

func TestInvoiceService_RecordPayment_Partial(t *testing.T) {
	inv := sentInvoice("486", "486")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	paymentRepo := &mockPaymentRepo{}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, paymentRepo, &mockClientRepo{})

	got, err := svc.RecordPayment(context.Background(), testOwner, 1, PaymentInput{Amount: "200"})
	require.NoError(t, err)

	assert.Equal(t, billing.StatusPartiallyPaid, got.Status)
	assert.True(t, got.AmountDue.Equal(decimal.RequireFromString("286")))
	assert.Nil(t, got.PaidDate)
}

func TestInvoiceService_RecordPayment_ClearsBalance(t *testing.T) {
	inv := sentInvoice("486", "286")
	inv.Status = billing.StatusPartiallyPaid
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	got, err := svc.RecordPayment(context.Background(), testOwner, 1, PaymentInput{Amount: "286"})
	require.NoError(t, err)

	assert.Equal(t, billing.StatusPaid, got.Status)
	assert.True(t, got.AmountDue.IsZero())
	require.NotNil(t, got.PaidDate)
}

func TestInvoiceService_RecordPayment_OverpaymentClamps(t *testing.T) {
	inv := sentInvoice("486", "486")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	got, err := svc.RecordPayment(context.Background(), testOwner, 1, PaymentInput{Amount: "600"})
	require.NoError(t, err)

	assert.Equal(t, billing.StatusPaid, got.Status)
	assert.True(t, got.AmountDue.IsZero())
}

func TestInvoiceService_RecordPayment_DraftRejected(t *testing.T) {
	inv := sentInvoice("486", "486")
	inv.Status = billing.StatusDraft
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.RecordPayment(context.Background(), testOwner, 1, PaymentInput{Amount: "100"})
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestInvoiceService_RecordPayment_NonPositiveAmount(t *testing.T) {
	inv := sentInvoice("486", "486")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	for _, amount := range []string{"0", "-50", "abc", ""} {
		_, err := svc.RecordPayment(context.Background(), testOwner, 1, PaymentInput{Amount: amount})
		assert.ErrorIs(t, err, ErrValidation, "amount %q", amount)
	}
}

func TestInvoiceService_Send(t *testing.T) {
	inv := sentInvoice("486", "486")
	inv.Status = billing.StatusDraft
	var storedStatus billing.Status
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
		updateStatusFunc: func(ctx context.Context, id int64, status billing.Status, paidDate *time.Time) error {
			storedStatus = status
			return nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	got, err := svc.Send(context.Background(), testOwner, 1)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusSent, got.Status)
	assert.Equal(t, billing.StatusSent, storedStatus)
}

func TestInvoiceService_Cancel_TerminalRejected(t *testing.T) {
	for _, status := range []billing.Status{billing.StatusPaid, billing.StatusCancelled} {
		inv := sentInvoice("486", "0")
		inv.Status = status
		invoiceRepo := &mockInvoiceRepo{
			getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
				return inv, nil
			},
		}
		svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

		_, err := svc.Cancel(context.Background(), testOwner, 1)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition, "status %s", status)
	}
}

func TestInvoiceService_Delete_WithPaymentsRejected(t *testing.T) {
	inv := sentInvoice("486", "286")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		countByInvoiceFunc: func(ctx context.Context, invoiceID int64) (int, error) {
			return 1, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, paymentRepo, &mockClientRepo{})

	err := svc.Delete(context.Background(), testOwner, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_List_OverdueDerived(t *testing.T) {
	past := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	future := time.Now().AddDate(1, 0, 0)

	overdueSent := sentInvoice("100", "100")
	overdueSent.ID = 1
	overdueSent.DueDate = past

	paidPastDue := sentInvoice("100", "0")
	paidPastDue.ID = 2
	paidPastDue.Status = billing.StatusPaid
	paidPastDue.DueDate = past

	sentFuture := sentInvoice("100", "100")
	sentFuture.ID = 3
	sentFuture.DueDate = future

	invoiceRepo := &mockInvoiceRepo{
		listFunc: func(ctx context.Context, ownerID int64, status billing.Status) ([]*entity.Invoice, error) {
			return []*entity.Invoice{overdueSent, paidPastDue, sentFuture}, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	got, err := svc.List(context.Background(), testOwner, "overdue")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestInvoiceService_List_UnknownFilter(t *testing.T) {
	svc := newTestInvoiceService(&mockInvoiceRepo{}, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.List(context.Background(), testOwner, "bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func persistedLineItems() []*entity.LineItem {
	return []*entity.LineItem{
		{ID: 1, InvoiceID: 1, Description: "Design", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50), Position: 0},
		{ID: 2, InvoiceID: 1, Description: "Development", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(80), Position: 1},
	}
}

func TestInvoiceService_SyncItems_PlanOrder(t *testing.T) {
	inv := sentInvoice("900", "900")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}

	var ops []string
	itemRepo := &mockItemRepo{
		listByInvoiceFunc: func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
			return persistedLineItems(), nil
		},
		updateFunc: func(ctx context.Context, item *entity.LineItem) error {
			ops = append(ops, "update:"+item.Description)
			return nil
		},
		createFunc: func(ctx context.Context, item *entity.LineItem) error {
			ops = append(ops, "create:"+item.Description)
			item.ID = 3
			return nil
		},
		deleteFunc: func(ctx context.Context, id int64) error {
			ops = append(ops, "delete")
			return nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, itemRepo, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.SyncItems(context.Background(), testOwner, 1, []ItemInput{
		{ID: 1, Description: "Design v2", Quantity: "12", UnitPrice: "50"},
		{Description: "QA", Quantity: "4", UnitPrice: "60"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"update:Design v2", "create:QA", "delete"}, ops)
}

func TestInvoiceService_SyncItems_PartialFailure(t *testing.T) {
	inv := sentInvoice("900", "900")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}

	itemRepo := &mockItemRepo{
		listByInvoiceFunc: func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
			return persistedLineItems(), nil
		},
		createFunc: func(ctx context.Context, item *entity.LineItem) error {
			return errors.New("disk full")
		},
	}
	svc := newTestInvoiceService(invoiceRepo, itemRepo, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.SyncItems(context.Background(), testOwner, 1, []ItemInput{
		{ID: 1, Description: "Design v2", Quantity: "12", UnitPrice: "50"},
		{Description: "QA", Quantity: "4", UnitPrice: "60"},
	})
	require.Error(t, err)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Len(t, syncErr.Applied, 1)
	assert.Equal(t, billing.OpUpdate, syncErr.Applied[0].Kind)
	require.Len(t, syncErr.Failed, 2)
	assert.Equal(t, billing.OpCreate, syncErr.Failed[0].Kind)
	assert.Equal(t, billing.OpDelete, syncErr.Failed[1].Kind)
}

func TestInvoiceService_SyncItems_ReentrantSaveRejected(t *testing.T) {
	svc := newTestInvoiceService(&mockInvoiceRepo{}, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	require.True(t, svc.saves.acquire(1))
	defer svc.saves.release(1)

	_, err := svc.SyncItems(context.Background(), testOwner, 1, nil)
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestInvoiceService_SyncItems_ForeignItemRejected(t *testing.T) {
	inv := sentInvoice("900", "900")
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	itemRepo := &mockItemRepo{
		listByInvoiceFunc: func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
			return persistedLineItems(), nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, itemRepo, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.SyncItems(context.Background(), testOwner, 1, []ItemInput{
		{ID: 42, Description: "Smuggled", Quantity: "1", UnitPrice: "1"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_SyncItems_TerminalRejected(t *testing.T) {
	inv := sentInvoice("900", "0")
	inv.Status = billing.StatusPaid
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.SyncItems(context.Background(), testOwner, 1, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_Duplicate(t *testing.T) {
	paidAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	source := sentInvoice("486", "0")
	source.Status = billing.StatusPaid
	source.PaymentTerms = billing.TermsNet30
	source.PaidDate = &paidAt

	var createdInvoices int
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return source, nil
		},
		countForOwnerFunc: func(ctx context.Context, ownerID int64) (int, error) {
			return 7, nil
		},
		createFunc: func(ctx context.Context, invoice *entity.Invoice) error {
			createdInvoices++
			invoice.ID = 2
			return nil
		},
	}
	itemRepo := &mockItemRepo{
		listByInvoiceFunc: func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
			return persistedLineItems(), nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, itemRepo, &mockPaymentRepo{}, &mockClientRepo{})
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }

	dup, err := svc.Duplicate(context.Background(), testOwner, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, createdInvoices)
	assert.Equal(t, "INV-2024-0008", dup.InvoiceNumber)
	assert.Equal(t, billing.StatusDraft, dup.Status)
	assert.Equal(t, "2024-06-15", billing.FormatDate(dup.IssueDate))
	assert.Equal(t, "2024-07-15", billing.FormatDate(dup.DueDate))
	assert.True(t, dup.AmountDue.Equal(dup.Total))
	assert.Nil(t, dup.PaidDate)
	assert.Len(t, dup.Items, 2)
}

func TestInvoiceService_Update_RecomputesTotals(t *testing.T) {
	inv := sentInvoice("500", "500")
	inv.TaxRate = decimal.Zero
	inv.DiscountPct = decimal.Zero

	var stored *entity.Invoice
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
		updateFunc: func(ctx context.Context, invoice *entity.Invoice) error {
			stored = invoice
			return nil
		},
	}
	itemRepo := &mockItemRepo{
		listByInvoiceFunc: func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
			return []*entity.LineItem{
				{ID: 1, Description: "Design", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
			}, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, itemRepo, &mockPaymentRepo{}, &mockClientRepo{})

	got, err := svc.Update(context.Background(), testOwner, 1, InvoiceInput{
		TaxRate:         "8",
		DiscountPercent: "10",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.True(t, got.Total.Equal(decimal.RequireFromString("486")))
	assert.True(t, got.AmountDue.Equal(decimal.RequireFromString("486")))
}

func TestInvoiceService_Update_TerminalRejected(t *testing.T) {
	inv := sentInvoice("486", "0")
	inv.Status = billing.StatusCancelled
	invoiceRepo := &mockInvoiceRepo{
		getByIDFunc: func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
			return inv, nil
		},
	}
	svc := newTestInvoiceService(invoiceRepo, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.Update(context.Background(), testOwner, 1, InvoiceInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInvoiceService_Get_NotFound(t *testing.T) {
	svc := newTestInvoiceService(&mockInvoiceRepo{}, &mockItemRepo{}, &mockPaymentRepo{}, &mockClientRepo{})

	_, err := svc.Get(context.Background(), testOwner, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
