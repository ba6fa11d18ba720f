package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ActivityRepository implements port.ActivityRepository
type ActivityRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB, logger *zap.Logger) port.ActivityRepository {
	return &ActivityRepository{db: db, logger: logger}
}

// Create appends an entry to the activity feed
func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (user_id, action, entity_type, entity_name, details)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		activity.UserID,
		activity.Action,
		activity.EntityType,
		activity.EntityName,
		activity.Details,
	)
	if err != nil {
		r.logger.Error("Failed to create activity", zap.Error(err))
		return fmt.Errorf("failed to create activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	activity.ID = id
	return nil
}

// ListRecent retrieves the most recent activity entries for a user
func (r *ActivityRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*entity.Activity, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_name, details, created_at
		FROM activities
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list activities", zap.Error(err))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var details sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.EntityType,
			&a.EntityName, &details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Details = details.String
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// Verify interface compliance
var _ port.ActivityRepository = (*ActivityRepository)(nil)
