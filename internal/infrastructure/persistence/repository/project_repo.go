package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ProjectRepository implements port.ProjectRepository
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) port.ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// Create creates a new project record
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (owner_id, client_id, name, description, status, budget, spent, deadline, progress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var clientID sql.NullInt64
	if project.ClientID != 0 {
		clientID = sql.NullInt64{Int64: project.ClientID, Valid: true}
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		project.OwnerID,
		clientID,
		project.Name,
		project.Description,
		project.Status,
		project.Budget.String(),
		project.Spent.String(),
		project.Deadline,
		project.Progress,
	)
	if err != nil {
		r.logger.Error("Failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	project.ID = id
	return nil
}

const projectColumns = `id, owner_id, client_id, name, description, status, budget, spent, deadline, progress, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*entity.Project, error) {
	var p entity.Project
	var clientID sql.NullInt64
	var description sql.NullString
	var budget, spent sql.NullString
	var deadline sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&clientID,
		&p.Name,
		&description,
		&p.Status,
		&budget,
		&spent,
		&deadline,
		&p.Progress,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ClientID = clientID.Int64
	p.Description = description.String
	p.Budget = scanDecimal(budget)
	p.Spent = scanDecimal(spent)
	if deadline.Valid {
		p.Deadline = &deadline.Time
	}
	p.Tasks = []*entity.Task{}
	return &p, nil
}

// GetByID retrieves a project owned by ownerID
func (r *ProjectRepository) GetByID(ctx context.Context, ownerID, id int64) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND owner_id = ?`

	project, err := scanProject(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// List retrieves projects for an owner, optionally filtered by status
func (r *ProjectRepository) List(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = ?`
	args := []interface{}{ownerID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Update updates a project record
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects
		SET client_id = ?, name = ?, description = ?, status = ?, budget = ?, spent = ?,
			deadline = ?, progress = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND owner_id = ?
	`

	var clientID sql.NullInt64
	if project.ClientID != 0 {
		clientID = sql.NullInt64{Int64: project.ClientID, Valid: true}
	}

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		clientID,
		project.Name,
		project.Description,
		project.Status,
		project.Budget.String(),
		project.Spent.String(),
		project.Deadline,
		project.Progress,
		project.ID,
		project.OwnerID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int64("id", project.ID), zap.Error(err))
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// UpdateProgress updates only the progress percentage of a project
func (r *ProjectRepository) UpdateProgress(ctx context.Context, id int64, progress int) error {
	query := `UPDATE projects SET progress = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, progress, id)
	if err != nil {
		r.logger.Error("Failed to update project progress", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update project progress: %w", err)
	}
	return nil
}

// Delete deletes a project owned by ownerID
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM projects WHERE id = ? AND owner_id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// CountByStatus returns project counts grouped by status
func (r *ProjectRepository) CountByStatus(ctx context.Context, ownerID int64) (map[string]int, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT status, COUNT(*) FROM projects WHERE owner_id = ? GROUP BY status`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Verify interface compliance
var _ port.ProjectRepository = (*ProjectRepository)(nil)
