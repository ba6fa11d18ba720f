package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// TaskRepository implements port.TaskRepository
type TaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) port.TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// Create creates a new task record
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (project_id, title, description, status, priority, due_date,
			estimated_hours, actual_hours, position, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.EstimatedHours,
		task.ActualHours,
		task.Position,
		task.Completed,
	)
	if err != nil {
		r.logger.Error("Failed to create task", zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = id
	return nil
}

const taskColumns = `t.id, t.project_id, t.title, t.description, t.status, t.priority, t.due_date,
	t.estimated_hours, t.actual_hours, t.position, t.completed, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (*entity.Task, error) {
	var t entity.Task
	var description sql.NullString
	var dueDate sql.NullTime
	var estimated sql.NullFloat64

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&description,
		&t.Status,
		&t.Priority,
		&dueDate,
		&estimated,
		&t.ActualHours,
		&t.Position,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	t.EstimatedHours = estimated.Float64
	return &t, nil
}

// GetForOwner retrieves a task whose project belongs to ownerID
func (r *TaskRepository) GetForOwner(ctx context.Context, ownerID, id int64) (*entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND p.owner_id = ?
	`

	task, err := scanTask(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListByProject retrieves all tasks for a project in position order
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.project_id = ?
		ORDER BY t.position, t.id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update updates a task record
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
			estimated_hours = ?, actual_hours = ?, position = ?, completed = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.EstimatedHours,
		task.ActualHours,
		task.Position,
		task.Completed,
		task.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int64("id", task.ID), zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete deletes a task record
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.TaskRepository = (*TaskRepository)(nil)
