package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/config"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
	"github.com/Auckfmine/client-portal/internal/domain/workflow"
)

// ItemInput is one line item as submitted from the edit buffer. Amounts
// arrive as strings; blank or malformed values coerce to zero.
type ItemInput struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// InvoiceInput carries the writable invoice header fields plus, on
// creation, the initial line items.
type InvoiceInput struct {
	ClientID        int64       `json:"client_id"`
	ProjectID       int64       `json:"project_id"`
	IssueDate       string      `json:"issue_date"`
	DueDate         string      `json:"due_date"`
	PaymentTerms    string      `json:"payment_terms"`
	TaxRate         string      `json:"tax_rate"`
	DiscountPercent string      `json:"discount_percent"`
	Notes           string      `json:"notes"`
	Items           []ItemInput `json:"items"`
}

// PaymentInput carries a payment to record against an invoice.
type PaymentInput struct {
	Amount string `json:"amount"`
	Note   string `json:"note"`
}

// InvoiceService manages the invoice lifecycle
type InvoiceService interface {
	Create(ctx context.Context, ownerID int64, input InvoiceInput) (*entity.Invoice, error)
	Get(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	List(ctx context.Context, ownerID int64, statusFilter string) ([]*entity.Invoice, error)
	Update(ctx context.Context, ownerID, id int64, input InvoiceInput) (*entity.Invoice, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Send(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	Cancel(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	Duplicate(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	RecordPayment(ctx context.Context, ownerID, id int64, input PaymentInput) (*entity.Invoice, error)
	SyncItems(ctx context.Context, ownerID, id int64, items []ItemInput) (*entity.Invoice, error)
}

// saveGuard tracks invoices with an item synchronization in flight so a
// reentrant save cannot interleave with a running plan.
type saveGuard struct {
	mu     sync.Mutex
	active map[int64]bool
}

func newSaveGuard() *saveGuard {
	return &saveGuard{active: make(map[int64]bool)}
}

func (g *saveGuard) acquire(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[id] {
		return false
	}
	g.active[id] = true
	return true
}

func (g *saveGuard) release(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}

type invoiceServiceImpl struct {
	invoiceRepo  port.InvoiceRepository
	itemRepo     port.ItemRepository
	paymentRepo  port.PaymentRepository
	clientRepo   port.ClientRepository
	activityRepo port.ActivityRepository
	txManager    port.TransactionManager
	cfg          config.InvoiceConfig
	logger       Logger

	saves *saveGuard
	now   func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	itemRepo port.ItemRepository,
	paymentRepo port.PaymentRepository,
	clientRepo port.ClientRepository,
	activityRepo port.ActivityRepository,
	txManager port.TransactionManager,
	cfg config.InvoiceConfig,
	logger Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		invoiceRepo:  invoiceRepo,
		itemRepo:     itemRepo,
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		cfg:          cfg,
		logger:       logger,
		saves:        newSaveGuard(),
		now:          time.Now,
	}
}

// Create creates a draft invoice with a freshly generated number
func (s *invoiceServiceImpl) Create(ctx context.Context, ownerID int64, input InvoiceInput) (*entity.Invoice, error) {
	if input.ClientID == 0 {
		return nil, validationError("client is required")
	}
	client, err := s.clientRepo.GetByID(ctx, ownerID, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, validationError("client %d does not exist", input.ClientID)
	}

	terms := billing.Terms(input.PaymentTerms)
	if input.PaymentTerms == "" {
		terms = billing.Terms(s.cfg.DefaultTerms)
	}
	if !terms.IsValid() {
		return nil, validationError("unknown payment terms %q", input.PaymentTerms)
	}

	issueDate, err := billing.ParseDate(input.IssueDate)
	if err != nil {
		return nil, validationError("invalid issue date %q", input.IssueDate)
	}
	dueDate, err := billing.ParseDate(input.DueDate)
	if err != nil {
		return nil, validationError("invalid due date %q", input.DueDate)
	}
	dueDate = billing.ResolveDueDate(terms, issueDate, dueDate)

	number, err := s.nextNumber(ctx, ownerID, issueDate)
	if err != nil {
		return nil, err
	}

	items := itemsFromInput(input.Items)
	totals := billing.ComputeTotals(itemLines(items), billing.ParseAmount(input.DiscountPercent), billing.ParseAmount(input.TaxRate))

	invoice := &entity.Invoice{
		OwnerID:       ownerID,
		InvoiceNumber: number,
		ClientID:      input.ClientID,
		ProjectID:     input.ProjectID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		PaymentTerms:  terms,
		TaxRate:       billing.ParseAmount(input.TaxRate),
		DiscountPct:   billing.ParseAmount(input.DiscountPercent),
		Status:        billing.StatusDraft,
		Notes:         input.Notes,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		AmountDue:     totals.Total,
		Items:         items,
		ClientName:    client.Name,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		for pos, item := range invoice.Items {
			item.InvoiceID = invoice.ID
			item.Position = pos
			if err := s.itemRepo.Create(txCtx, item); err != nil {
				return fmt.Errorf("create item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create invoice", "error", err, "owner_id", ownerID)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionCreated, invoice.InvoiceNumber, "")
	s.logger.Info("Invoice created", "id", invoice.ID, "number", invoice.InvoiceNumber)
	return invoice, nil
}

// nextNumber generates the next invoice number for the owner:
// <prefix>-<year>-<per-owner sequence, zero padded to four digits>.
func (s *invoiceServiceImpl) nextNumber(ctx context.Context, ownerID int64, issueDate time.Time) (string, error) {
	count, err := s.invoiceRepo.CountForOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("count invoices: %w", err)
	}
	year := issueDate.Year()
	if issueDate.IsZero() {
		year = s.now().Year()
	}
	return fmt.Sprintf("%s-%d-%04d", s.cfg.NumberPrefix, year, count+1), nil
}

// Get retrieves an invoice with its items and payments
func (s *invoiceServiceImpl) Get(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}

	items, err := s.itemRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.LineItem{}
	}
	invoice.Items = items

	payments, err := s.paymentRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Payments = payments

	return invoice, nil
}

// List retrieves invoices for an owner. The overdue filter is derived per
// read; every other filter matches the stored status.
func (s *invoiceServiceImpl) List(ctx context.Context, ownerID int64, statusFilter string) ([]*entity.Invoice, error) {
	if statusFilter == string(billing.StatusOverdue) {
		all, err := s.invoiceRepo.List(ctx, ownerID, "")
		if err != nil {
			return nil, err
		}
		now := s.now()
		overdue := make([]*entity.Invoice, 0, len(all))
		for _, inv := range all {
			if billing.IsOverdue(inv.Status, inv.DueDate, now) {
				overdue = append(overdue, inv)
			}
		}
		return overdue, nil
	}

	status := billing.Status(statusFilter)
	if statusFilter != "" && !status.IsValid() {
		return nil, validationError("unknown status filter %q", statusFilter)
	}
	return s.invoiceRepo.List(ctx, ownerID, status)
}

// Update rewrites the invoice header and recomputes totals from the
// persisted items under the new rates. Terminal invoices are immutable.
func (s *invoiceServiceImpl) Update(ctx context.Context, ownerID, id int64, input InvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if invoice.Status.IsTerminal() {
		return nil, validationError("invoice %s is %s and cannot be edited", invoice.InvoiceNumber, invoice.Status)
	}

	if input.ClientID != 0 && input.ClientID != invoice.ClientID {
		client, err := s.clientRepo.GetByID(ctx, ownerID, input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, validationError("client %d does not exist", input.ClientID)
		}
		invoice.ClientID = input.ClientID
		invoice.ClientName = client.Name
	}

	if input.PaymentTerms != "" {
		terms := billing.Terms(input.PaymentTerms)
		if !terms.IsValid() {
			return nil, validationError("unknown payment terms %q", input.PaymentTerms)
		}
		invoice.PaymentTerms = terms
	}

	issueDate, err := billing.ParseDate(input.IssueDate)
	if err != nil {
		return nil, validationError("invalid issue date %q", input.IssueDate)
	}
	dueDate, err := billing.ParseDate(input.DueDate)
	if err != nil {
		return nil, validationError("invalid due date %q", input.DueDate)
	}
	if !issueDate.IsZero() {
		invoice.IssueDate = issueDate
	}
	if !dueDate.IsZero() {
		invoice.DueDate = dueDate
	}
	invoice.DueDate = billing.ResolveDueDate(invoice.PaymentTerms, invoice.IssueDate, invoice.DueDate)

	invoice.ProjectID = input.ProjectID
	invoice.Notes = input.Notes
	invoice.TaxRate = billing.ParseAmount(input.TaxRate)
	invoice.DiscountPct = billing.ParseAmount(input.DiscountPercent)

	if err := s.refreshTotals(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to update invoice", "error", err, "id", id)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionUpdated, invoice.InvoiceNumber, "")
	return invoice, nil
}

// refreshTotals recomputes the derived totals from the persisted items and
// re-derives the amount due from the payments already absorbed. A derived
// amount outside [0, total] is clamped and logged, never propagated.
func (s *invoiceServiceImpl) refreshTotals(ctx context.Context, invoice *entity.Invoice) error {
	items, err := s.itemRepo.ListByInvoice(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*entity.LineItem{}
	}
	invoice.Items = items

	totals := billing.ComputeTotals(invoice.Lines(), invoice.DiscountPct, invoice.TaxRate)
	paidSoFar := invoice.Total.Sub(invoice.AmountDue)

	due, clamped := billing.ApplyPayment(totals.Total, totals.Total, paidSoFar)
	if clamped {
		s.logger.Error("Amount due clamped during totals refresh",
			"invoice_id", invoice.ID, "total", totals.Total.String(), "paid", paidSoFar.String())
	}

	invoice.Subtotal = totals.Subtotal
	invoice.Discount = totals.Discount
	invoice.Tax = totals.Tax
	invoice.Total = totals.Total
	invoice.AmountDue = due
	return nil
}

// Delete deletes an invoice. Invoices with recorded payments are kept for
// the audit trail and cannot be deleted.
func (s *invoiceServiceImpl) Delete(ctx context.Context, ownerID, id int64) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return ErrNotFound
	}

	paymentCount, err := s.paymentRepo.CountByInvoice(ctx, id)
	if err != nil {
		return err
	}
	if paymentCount > 0 {
		return validationError("invoice %s has recorded payments", invoice.InvoiceNumber)
	}

	if err := s.invoiceRepo.Delete(ctx, ownerID, id); err != nil {
		s.logger.Error("Failed to delete invoice", "error", err, "id", id)
		return err
	}

	s.recordActivity(ctx, ownerID, entity.ActionDeleted, invoice.InvoiceNumber, "")
	return nil
}

// Send moves a draft invoice to sent
func (s *invoiceServiceImpl) Send(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}

	machine := workflow.NewInvoiceMachine(invoice.Status, func() bool { return false })
	if err := machine.Fire(ctx, workflow.TriggerSend); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, machine.State(), nil); err != nil {
		s.logger.Error("Failed to send invoice", "error", err, "id", id)
		return nil, err
	}
	invoice.Status = machine.State()

	s.recordActivity(ctx, ownerID, entity.ActionSent, invoice.InvoiceNumber, "")
	s.logger.Info("Invoice sent", "id", id, "number", invoice.InvoiceNumber)
	return invoice, nil
}

// Cancel voids a non-terminal invoice
func (s *invoiceServiceImpl) Cancel(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}

	machine := workflow.NewInvoiceMachine(invoice.Status, func() bool { return false })
	if err := machine.Fire(ctx, workflow.TriggerCancel); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, machine.State(), nil); err != nil {
		s.logger.Error("Failed to cancel invoice", "error", err, "id", id)
		return nil, err
	}
	invoice.Status = machine.State()

	s.recordActivity(ctx, ownerID, entity.ActionCancelled, invoice.InvoiceNumber, "")
	return invoice, nil
}

// Duplicate creates a fresh draft copy of an invoice with a new number,
// today's issue date and no payment history
func (s *invoiceServiceImpl) Duplicate(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	source, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	issueDate := billing.MidnightUTC(s.now())
	number, err := s.nextNumber(ctx, ownerID, issueDate)
	if err != nil {
		return nil, err
	}

	copyInv := &entity.Invoice{
		OwnerID:       ownerID,
		InvoiceNumber: number,
		ClientID:      source.ClientID,
		ProjectID:     source.ProjectID,
		IssueDate:     issueDate,
		DueDate:       billing.ResolveDueDate(source.PaymentTerms, issueDate, source.DueDate),
		PaymentTerms:  source.PaymentTerms,
		TaxRate:       source.TaxRate,
		DiscountPct:   source.DiscountPct,
		Status:        billing.StatusDraft,
		Notes:         source.Notes,
		Subtotal:      source.Subtotal,
		Discount:      source.Discount,
		Tax:           source.Tax,
		Total:         source.Total,
		AmountDue:     source.Total,
		ClientName:    source.ClientName,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, copyInv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		for pos, item := range source.Items {
			dup := &entity.LineItem{
				InvoiceID:   copyInv.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Position:    pos,
			}
			if err := s.itemRepo.Create(txCtx, dup); err != nil {
				return fmt.Errorf("create item: %w", err)
			}
			copyInv.Items = append(copyInv.Items, dup)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to duplicate invoice", "error", err, "source_id", id)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionCreated, copyInv.InvoiceNumber, "duplicated from "+source.InvoiceNumber)
	return copyInv, nil
}

// RecordPayment records a payment, re-derives the amount due and advances
// the lifecycle machine
func (s *invoiceServiceImpl) RecordPayment(ctx context.Context, ownerID, id int64, input PaymentInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}

	amount := billing.ParseAmount(input.Amount)
	if !amount.IsPositive() {
		return nil, validationError("payment amount must be positive")
	}

	remaining, clamped := billing.ApplyPayment(invoice.Total, invoice.AmountDue, amount)
	if clamped {
		s.logger.Error("Payment clamped to invoice bounds",
			"invoice_id", id, "amount", amount.String(), "amount_due", invoice.AmountDue.String())
	}

	machine := workflow.NewInvoiceMachine(invoice.Status, func() bool { return remaining.IsZero() })
	if err := machine.Fire(ctx, workflow.TriggerRecordPayment); err != nil {
		return nil, err
	}
	newStatus := machine.State()

	paidAt := s.now()
	payment := &entity.Payment{
		InvoiceID: id,
		Amount:    amount,
		PaidAt:    paidAt,
		Note:      input.Note,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		invoice.AmountDue = remaining
		invoice.Status = newStatus
		if newStatus == billing.StatusPaid {
			invoice.PaidDate = &paidAt
		}
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record payment", "error", err, "invoice_id", id)
		return nil, err
	}

	action := entity.ActionUpdated
	if newStatus == billing.StatusPaid {
		action = entity.ActionPaid
	}
	s.recordActivity(ctx, ownerID, action, invoice.InvoiceNumber, "payment of "+amount.String())
	s.logger.Info("Payment recorded",
		"invoice_id", id, "amount", amount.String(), "status", newStatus.String())
	return invoice, nil
}

// SyncItems reconciles the submitted edit buffer against the persisted
// items and applies the resulting plan one operation at a time. Each
// operation runs under its own deadline; on failure the remaining
// operations are skipped, totals are recomputed from whatever was applied,
// and a SyncError reports both halves of the plan.
func (s *invoiceServiceImpl) SyncItems(ctx context.Context, ownerID, id int64, items []ItemInput) (*entity.Invoice, error) {
	if !s.saves.acquire(id) {
		return nil, ErrSyncInProgress
	}
	defer s.saves.release(id)

	invoice, err := s.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if invoice.Status.IsTerminal() {
		return nil, validationError("invoice %s is %s and cannot be edited", invoice.InvoiceNumber, invoice.Status)
	}

	persisted, err := s.itemRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	persistedIDs := make(map[int64]bool, len(persisted))
	persistedItems := make([]billing.Item, 0, len(persisted))
	for _, it := range persisted {
		persistedIDs[it.ID] = true
		persistedItems = append(persistedItems, billing.Item{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	edited := make([]billing.Item, 0, len(items))
	for _, in := range items {
		if in.ID != 0 && !persistedIDs[in.ID] {
			return nil, validationError("item %d does not belong to invoice %s", in.ID, invoice.InvoiceNumber)
		}
		edited = append(edited, billing.Item{
			ID:          in.ID,
			Description: in.Description,
			Quantity:    billing.ParseAmount(in.Quantity),
			UnitPrice:   billing.ParseAmount(in.UnitPrice),
		})
	}

	plan := billing.DiffItems(persistedItems, edited)

	applied := make([]billing.Op, 0, len(plan))
	var opErr error
	position := 0
	for i, op := range plan {
		if err := s.applyOp(ctx, id, op, position); err != nil {
			opErr = &SyncError{Applied: applied, Failed: plan[i:], Err: err}
			break
		}
		if op.Kind != billing.OpDelete {
			position++
		}
		applied = append(applied, op)
	}

	// Totals track whatever the items now are, even after a partial
	// failure, so the stored invoice never disagrees with its items.
	if err := s.refreshTotals(ctx, invoice); err != nil {
		s.logger.Error("Failed to refresh totals after sync", "error", err, "invoice_id", id)
		if opErr == nil {
			opErr = err
		}
	} else if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to store refreshed totals", "error", err, "invoice_id", id)
		if opErr == nil {
			opErr = err
		}
	}

	if opErr != nil {
		s.logger.Error("Item sync failed", "error", opErr, "invoice_id", id,
			"applied", len(applied), "planned", len(plan))
		return nil, opErr
	}

	s.recordActivity(ctx, ownerID, entity.ActionUpdated, invoice.InvoiceNumber,
		fmt.Sprintf("%d item operations", len(plan)))
	return invoice, nil
}

// applyOp executes a single plan operation under the configured per-op
// deadline. The operation finishes before the next one starts.
func (s *invoiceServiceImpl) applyOp(ctx context.Context, invoiceID int64, op billing.Op, position int) error {
	opCtx, cancel := context.WithTimeout(ctx, s.cfg.SyncTimeout)
	defer cancel()

	switch op.Kind {
	case billing.OpCreate:
		item := &entity.LineItem{
			InvoiceID:   invoiceID,
			Description: op.Item.Description,
			Quantity:    op.Item.Quantity,
			UnitPrice:   op.Item.UnitPrice,
			Position:    position,
		}
		return s.itemRepo.Create(opCtx, item)
	case billing.OpUpdate:
		item := &entity.LineItem{
			ID:          op.Item.ID,
			InvoiceID:   invoiceID,
			Description: op.Item.Description,
			Quantity:    op.Item.Quantity,
			UnitPrice:   op.Item.UnitPrice,
			Position:    position,
		}
		return s.itemRepo.Update(opCtx, item)
	case billing.OpDelete:
		return s.itemRepo.Delete(opCtx, op.Item.ID)
	default:
		return fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

func itemsFromInput(inputs []ItemInput) []*entity.LineItem {
	items := make([]*entity.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, &entity.LineItem{
			Description: in.Description,
			Quantity:    billing.ParseAmount(in.Quantity),
			UnitPrice:   billing.ParseAmount(in.UnitPrice),
		})
	}
	return items
}

func itemLines(items []*entity.LineItem) []billing.Line {
	lines := make([]billing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, billing.Line{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return lines
}

func (s *invoiceServiceImpl) recordActivity(ctx context.Context, userID int64, action, invoiceNumber, details string) {
	activity := &entity.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: "invoice",
		EntityName: invoiceNumber,
		Details:    details,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to record activity", "error", err, "entity_type", "invoice")
	}
}
