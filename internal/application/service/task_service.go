package service

import (
	"context"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// TaskInput carries the writable task fields.
type TaskInput struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Position       int     `json:"position"`
}

// TaskService manages tasks inside projects
type TaskService interface {
	Create(ctx context.Context, ownerID, projectID int64, input TaskInput) (*entity.Task, error)
	Toggle(ctx context.Context, ownerID, id int64) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type taskServiceImpl struct {
	taskRepo     port.TaskRepository
	projectRepo  port.ProjectRepository
	activityRepo port.ActivityRepository
	logger       Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo port.TaskRepository,
	projectRepo port.ProjectRepository,
	activityRepo port.ActivityRepository,
	logger Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create creates a task inside a project owned by ownerID
func (s *taskServiceImpl) Create(ctx context.Context, ownerID, projectID int64, input TaskInput) (*entity.Task, error) {
	if input.Title == "" {
		return nil, validationError("task title is required")
	}

	project, err := s.projectRepo.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}

	dueDate, err := billing.ParseDate(input.DueDate)
	if err != nil {
		return nil, validationError("invalid due date %q", input.DueDate)
	}

	task := &entity.Task{
		ProjectID:      projectID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         entity.TaskStatusTodo,
		Priority:       priority,
		EstimatedHours: input.EstimatedHours,
		Position:       input.Position,
	}
	if !dueDate.IsZero() {
		task.DueDate = &dueDate
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("Failed to create task", "error", err, "project_id", projectID)
		return nil, err
	}

	if err := s.recomputeProgress(ctx, projectID); err != nil {
		s.logger.Error("Failed to recompute project progress", "error", err, "project_id", projectID)
	}

	s.recordActivity(ctx, ownerID, entity.ActionCreated, "task", task.Title)
	return task, nil
}

// Toggle flips a task's completion flag and recomputes the owning
// project's progress percentage
func (s *taskServiceImpl) Toggle(ctx context.Context, ownerID, id int64) (*entity.Task, error) {
	task, err := s.taskRepo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	task.Completed = !task.Completed
	if task.Completed {
		task.Status = entity.TaskStatusCompleted
	} else {
		task.Status = entity.TaskStatusTodo
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to toggle task", "error", err, "id", id)
		return nil, err
	}

	if err := s.recomputeProgress(ctx, task.ProjectID); err != nil {
		s.logger.Error("Failed to recompute project progress", "error", err, "project_id", task.ProjectID)
	}

	s.recordActivity(ctx, ownerID, entity.ActionUpdated, "task", task.Title)
	return task, nil
}

// Delete deletes a task and recomputes the owning project's progress
func (s *taskServiceImpl) Delete(ctx context.Context, ownerID, id int64) error {
	task, err := s.taskRepo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete task", "error", err, "id", id)
		return err
	}

	if err := s.recomputeProgress(ctx, task.ProjectID); err != nil {
		s.logger.Error("Failed to recompute project progress", "error", err, "project_id", task.ProjectID)
	}

	s.recordActivity(ctx, ownerID, entity.ActionDeleted, "task", task.Title)
	return nil
}

// recomputeProgress sets project progress to completed/total * 100,
// truncated to an integer. A project with no tasks has zero progress.
func (s *taskServiceImpl) recomputeProgress(ctx context.Context, projectID int64) error {
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	progress := 0
	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Completed {
				completed++
			}
		}
		progress = completed * 100 / len(tasks)
	}

	return s.projectRepo.UpdateProgress(ctx, projectID, progress)
}

func (s *taskServiceImpl) recordActivity(ctx context.Context, userID int64, action, entityType, entityName string) {
	activity := &entity.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityName: entityName,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to record activity", "error", err, "entity_type", entityType)
	}
}
