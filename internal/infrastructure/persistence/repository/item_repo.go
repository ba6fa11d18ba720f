package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ItemRepository implements port.ItemRepository
type ItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewItemRepository creates a new line item repository
func NewItemRepository(db *sql.DB, logger *zap.Logger) port.ItemRepository {
	return &ItemRepository{db: db, logger: logger}
}

// Create inserts a new line item
func (r *ItemRepository) Create(ctx context.Context, item *entity.LineItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, position)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.InvoiceID,
		item.Description,
		item.Quantity.String(),
		item.UnitPrice.String(),
		item.Position,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice item", zap.Error(err))
		return fmt.Errorf("failed to create invoice item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	item.ID = id
	return nil
}

// Update rewrites an existing line item
func (r *ItemRepository) Update(ctx context.Context, item *entity.LineItem) error {
	query := `
		UPDATE invoice_items
		SET description = ?, quantity = ?, unit_price = ?, position = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.Description,
		item.Quantity.String(),
		item.UnitPrice.String(),
		item.Position,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice item", zap.Int64("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice item: %w", err)
	}
	return nil
}

// Delete removes a line item
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM invoice_items WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete invoice item", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete invoice item: %w", err)
	}
	return nil
}

// ListByInvoice retrieves all items for an invoice in position order
func (r *ItemRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, position
		FROM invoice_items
		WHERE invoice_id = ?
		ORDER BY position, id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, invoiceID)
	if err != nil {
		r.logger.Error("Failed to list invoice items", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*entity.LineItem
	for rows.Next() {
		var item entity.LineItem
		var quantity, unitPrice sql.NullString
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description,
			&quantity, &unitPrice, &item.Position); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		item.Quantity = scanDecimal(quantity)
		item.UnitPrice = scanDecimal(unitPrice)
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Verify interface compliance
var _ port.ItemRepository = (*ItemRepository)(nil)
