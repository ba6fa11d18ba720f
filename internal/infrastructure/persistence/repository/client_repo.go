package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ClientRepository implements port.ClientRepository
type ClientRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB, logger *zap.Logger) port.ClientRepository {
	return &ClientRepository{db: db, logger: logger}
}

// Create creates a new client record
func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (owner_id, name, email, phone, company, address, notes, avatar_color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		client.OwnerID,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.Address,
		client.Notes,
		client.AvatarColor,
	)
	if err != nil {
		r.logger.Error("Failed to create client", zap.Error(err))
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	client.ID = id
	return nil
}

const clientColumns = `id, owner_id, name, email, phone, company, address, notes, avatar_color, created_at`

func scanClient(row interface{ Scan(...interface{}) error }) (*entity.Client, error) {
	var c entity.Client
	var phone, company, address, notes sql.NullString

	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Email,
		&phone,
		&company,
		&address,
		&notes,
		&c.AvatarColor,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.Company = company.String
	c.Address = address.String
	c.Notes = notes.String
	c.TotalRevenue = decimal.Zero
	return &c, nil
}

// GetByID retrieves a client owned by ownerID
func (r *ClientRepository) GetByID(ctx context.Context, ownerID, id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ? AND owner_id = ?`

	client, err := scanClient(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get client by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// List retrieves all clients for an owner
func (r *ClientRepository) List(ctx context.Context, ownerID int64) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE owner_id = ? ORDER BY name`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to list clients", zap.Error(err))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

// Update updates a client record
func (r *ClientRepository) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, company = ?, address = ?, notes = ?, avatar_color = ?
		WHERE id = ? AND owner_id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.Address,
		client.Notes,
		client.AvatarColor,
		client.ID,
		client.OwnerID,
	)
	if err != nil {
		r.logger.Error("Failed to update client", zap.Int64("id", client.ID), zap.Error(err))
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Delete deletes a client owned by ownerID
func (r *ClientRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM clients WHERE id = ? AND owner_id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete client", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// Count returns the number of clients for an owner
func (r *ClientRepository) Count(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

// CountProjects returns the number of projects attached to a client
func (r *ClientRepository) CountProjects(ctx context.Context, clientID int64) (int, error) {
	var count int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE client_id = ?`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// PaidRevenue returns the sum of paid invoice totals for a client
func (r *ClientRepository) PaidRevenue(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT total FROM invoices WHERE client_id = ? AND status = ?`,
		clientID, string(billing.StatusPaid))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query paid revenue: %w", err)
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

// Verify interface compliance
var _ port.ClientRepository = (*ClientRepository)(nil)
