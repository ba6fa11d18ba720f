package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// InvoiceRepository implements port.InvoiceRepository
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

// Create creates a new invoice record
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (owner_id, invoice_number, client_id, project_id, issue_date, due_date,
			payment_terms, tax_rate, discount_percent, status, notes,
			subtotal, discount, tax, total, amount_due, paid_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var projectID sql.NullInt64
	if invoice.ProjectID != 0 {
		projectID = sql.NullInt64{Int64: invoice.ProjectID, Valid: true}
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		invoice.OwnerID,
		invoice.InvoiceNumber,
		invoice.ClientID,
		projectID,
		nullTime(invoice.IssueDate),
		nullTime(invoice.DueDate),
		string(invoice.PaymentTerms),
		invoice.TaxRate.String(),
		invoice.DiscountPct.String(),
		string(invoice.Status),
		invoice.Notes,
		invoice.Subtotal.String(),
		invoice.Discount.String(),
		invoice.Tax.String(),
		invoice.Total.String(),
		invoice.AmountDue.String(),
		invoice.PaidDate,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	invoice.ID = id
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

const invoiceColumns = `i.id, i.owner_id, i.invoice_number, i.client_id, i.project_id,
	i.issue_date, i.due_date, i.payment_terms, i.tax_rate, i.discount_percent, i.status, i.notes,
	i.subtotal, i.discount, i.tax, i.total, i.amount_due, i.paid_date, i.created_at, i.updated_at,
	c.name`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	var projectID sql.NullInt64
	var issueDate, dueDate, paidDate sql.NullTime
	var terms, status string
	var taxRate, discountPct, subtotal, discount, tax, total, amountDue sql.NullString
	var notes, clientName sql.NullString

	err := row.Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.InvoiceNumber,
		&inv.ClientID,
		&projectID,
		&issueDate,
		&dueDate,
		&terms,
		&taxRate,
		&discountPct,
		&status,
		&notes,
		&subtotal,
		&discount,
		&tax,
		&total,
		&amountDue,
		&paidDate,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&clientName,
	)
	if err != nil {
		return nil, err
	}

	inv.ProjectID = projectID.Int64
	if issueDate.Valid {
		inv.IssueDate = issueDate.Time
	}
	if dueDate.Valid {
		inv.DueDate = dueDate.Time
	}
	if paidDate.Valid {
		inv.PaidDate = &paidDate.Time
	}
	inv.PaymentTerms = billing.Terms(terms)
	inv.Status = billing.Status(status)
	inv.Notes = notes.String
	inv.TaxRate = scanDecimal(taxRate)
	inv.DiscountPct = scanDecimal(discountPct)
	inv.Subtotal = scanDecimal(subtotal)
	inv.Discount = scanDecimal(discount)
	inv.Tax = scanDecimal(tax)
	inv.Total = scanDecimal(total)
	inv.AmountDue = scanDecimal(amountDue)
	inv.ClientName = clientName.String
	inv.Items = []*entity.LineItem{}
	return &inv, nil
}

// GetByID retrieves an invoice owned by ownerID, without its items
func (r *InvoiceRepository) GetByID(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.id = ? AND i.owner_id = ?
	`

	invoice, err := scanInvoice(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get invoice by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// List retrieves invoices for an owner, optionally filtered by stored status
func (r *InvoiceRepository) List(ctx context.Context, ownerID int64, status billing.Status) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.owner_id = ?
	`
	args := []interface{}{ownerID}
	if status != "" {
		query += ` AND i.status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// Update updates an invoice record, including recomputed totals
func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = ?, project_id = ?, issue_date = ?, due_date = ?, payment_terms = ?,
			tax_rate = ?, discount_percent = ?, status = ?, notes = ?,
			subtotal = ?, discount = ?, tax = ?, total = ?, amount_due = ?, paid_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND owner_id = ?
	`

	var projectID sql.NullInt64
	if invoice.ProjectID != 0 {
		projectID = sql.NullInt64{Int64: invoice.ProjectID, Valid: true}
	}

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		invoice.ClientID,
		projectID,
		nullTime(invoice.IssueDate),
		nullTime(invoice.DueDate),
		string(invoice.PaymentTerms),
		invoice.TaxRate.String(),
		invoice.DiscountPct.String(),
		string(invoice.Status),
		invoice.Notes,
		invoice.Subtotal.String(),
		invoice.Discount.String(),
		invoice.Tax.String(),
		invoice.Total.String(),
		invoice.AmountDue.String(),
		invoice.PaidDate,
		invoice.ID,
		invoice.OwnerID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", invoice.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

// UpdateStatus updates only the stored status and, when given, the paid date
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status billing.Status, paidDate *time.Time) error {
	query := `
		UPDATE invoices
		SET status = ?, paid_date = COALESCE(?, paid_date), updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, string(status), paidDate, id)
	if err != nil {
		r.logger.Error("Failed to update invoice status",
			zap.Int64("id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	return nil
}

// Delete deletes an invoice owned by ownerID; items and payments cascade
func (r *InvoiceRepository) Delete(ctx context.Context, ownerID, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM invoices WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// CountForOwner returns the number of invoices an owner has ever created.
// Used for invoice number generation.
func (r *InvoiceRepository) CountForOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// SumByStatuses sums invoice totals across the given stored statuses
func (r *InvoiceRepository) SumByStatuses(ctx context.Context, ownerID int64, statuses []billing.Status) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	placeholders := strings.Repeat("?,", len(statuses))
	placeholders = placeholders[:len(placeholders)-1]
	args := []interface{}{ownerID}
	for _, s := range statuses {
		args = append(args, string(s))
	}

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT total FROM invoices WHERE owner_id = ? AND status IN (`+placeholders+`)`, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum invoices: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var total sql.NullString
		if err := rows.Scan(&total); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan total: %w", err)
		}
		sum = sum.Add(scanDecimal(total))
	}
	return sum, rows.Err()
}

// MonthlyPaidRevenue groups paid invoice totals by month since the cutoff
func (r *InvoiceRepository) MonthlyPaidRevenue(ctx context.Context, ownerID int64, since time.Time) ([]port.MonthRevenue, error) {
	query := `
		SELECT strftime('%Y-%m', paid_date) AS month, total
		FROM invoices
		WHERE owner_id = ? AND status = ? AND paid_date IS NOT NULL AND paid_date >= ?
		ORDER BY month
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query,
		ownerID, string(billing.StatusPaid), since)
	if err != nil {
		r.logger.Error("Failed to query monthly revenue", zap.Error(err))
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[string]decimal.Decimal)
	var order []string
	for rows.Next() {
		var month string
		var total sql.NullString
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		if _, ok := byMonth[month]; !ok {
			order = append(order, month)
		}
		byMonth[month] = byMonth[month].Add(scanDecimal(total))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]port.MonthRevenue, 0, len(order))
	for _, m := range order {
		result = append(result, port.MonthRevenue{Month: m, Revenue: byMonth[m]})
	}
	return result, nil
}

// Verify interface compliance
var _ port.InvoiceRepository = (*InvoiceRepository)(nil)
