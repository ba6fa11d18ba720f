package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// Create records a payment against an invoice
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `INSERT INTO payments (invoice_id, amount, paid_at, note) VALUES (?, ?, ?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		payment.InvoiceID,
		payment.Amount.String(),
		payment.PaidAt,
		payment.Note,
	)
	if err != nil {
		r.logger.Error("Failed to create payment", zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	payment.ID = id
	return nil
}

// ListByInvoice retrieves all payments for an invoice, newest first
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, paid_at, note
		FROM payments
		WHERE invoice_id = ?
		ORDER BY paid_at DESC, id DESC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, invoiceID)
	if err != nil {
		r.logger.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var amount, note sql.NullString
		if err := rows.Scan(&p.ID, &p.InvoiceID, &amount, &p.PaidAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount = scanDecimal(amount)
		p.Note = note.String
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// CountByInvoice returns how many payments have been recorded for an invoice
func (r *PaymentRepository) CountByInvoice(ctx context.Context, invoiceID int64) (int, error) {
	var count int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE invoice_id = ?`, invoiceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

// Verify interface compliance
var _ port.PaymentRepository = (*PaymentRepository)(nil)
