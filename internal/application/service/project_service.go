package service

import (
	"context"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ProjectInput carries the writable project fields. Monetary amounts
// arrive as strings and are coerced the same way invoice amounts are.
type ProjectInput struct {
	ClientID    int64  `json:"client_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Budget      string `json:"budget"`
	Spent       string `json:"spent"`
	Deadline    string `json:"deadline"`
	Progress    int    `json:"progress"`
}

// ProjectService manages projects
type ProjectService interface {
	Create(ctx context.Context, ownerID int64, input ProjectInput) (*entity.Project, error)
	Get(ctx context.Context, ownerID, id int64) (*entity.Project, error)
	List(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error)
	Update(ctx context.Context, ownerID, id int64, input ProjectInput) (*entity.Project, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type projectServiceImpl struct {
	projectRepo  port.ProjectRepository
	clientRepo   port.ClientRepository
	taskRepo     port.TaskRepository
	activityRepo port.ActivityRepository
	logger       Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo port.ProjectRepository,
	clientRepo port.ClientRepository,
	taskRepo port.TaskRepository,
	activityRepo port.ActivityRepository,
	logger Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create creates a new project
func (s *projectServiceImpl) Create(ctx context.Context, ownerID int64, input ProjectInput) (*entity.Project, error) {
	if input.Name == "" {
		return nil, validationError("project name is required")
	}

	status := input.Status
	if status == "" {
		status = entity.ProjectStatusPlanning
	}
	if !entity.ValidProjectStatus(status) {
		return nil, validationError("unknown project status %q", status)
	}

	if input.ClientID != 0 {
		client, err := s.clientRepo.GetByID(ctx, ownerID, input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, validationError("client %d does not exist", input.ClientID)
		}
	}

	deadline, err := billing.ParseDate(input.Deadline)
	if err != nil {
		return nil, validationError("invalid deadline %q", input.Deadline)
	}

	project := &entity.Project{
		OwnerID:     ownerID,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Budget:      billing.ParseAmount(input.Budget),
		Spent:       billing.ParseAmount(input.Spent),
		Progress:    clampProgress(input.Progress),
		Tasks:       []*entity.Task{},
	}
	if !deadline.IsZero() {
		project.Deadline = &deadline
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.logger.Error("Failed to create project", "error", err)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionCreated, "project", project.Name)
	s.logger.Info("Project created", "id", project.ID, "owner_id", ownerID)
	s.enrich(ctx, project)
	return project, nil
}

// Get retrieves a project with its tasks and client name
func (s *projectServiceImpl) Get(ctx context.Context, ownerID, id int64) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	s.enrich(ctx, project)
	return project, nil
}

// List retrieves projects for an owner, optionally filtered by status
func (s *projectServiceImpl) List(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error) {
	if status != "" && !entity.ValidProjectStatus(status) {
		return nil, validationError("unknown project status %q", status)
	}

	projects, err := s.projectRepo.List(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		s.enrich(ctx, p)
	}
	return projects, nil
}

// enrich fills tasks and the client name. Enrichment failures degrade to
// empty values rather than failing the read.
func (s *projectServiceImpl) enrich(ctx context.Context, project *entity.Project) {
	tasks, err := s.taskRepo.ListByProject(ctx, project.ID)
	if err != nil {
		s.logger.Error("Failed to load project tasks", "error", err, "project_id", project.ID)
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}
	project.Tasks = tasks

	if project.ClientID != 0 {
		client, err := s.clientRepo.GetByID(ctx, project.OwnerID, project.ClientID)
		if err != nil {
			s.logger.Error("Failed to load project client", "error", err, "project_id", project.ID)
		}
		if client != nil {
			project.ClientName = client.Name
		}
	}
}

// Update updates a project
func (s *projectServiceImpl) Update(ctx context.Context, ownerID, id int64, input ProjectInput) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if input.Name == "" {
		return nil, validationError("project name is required")
	}
	if input.Status != "" && !entity.ValidProjectStatus(input.Status) {
		return nil, validationError("unknown project status %q", input.Status)
	}

	deadline, err := billing.ParseDate(input.Deadline)
	if err != nil {
		return nil, validationError("invalid deadline %q", input.Deadline)
	}

	project.ClientID = input.ClientID
	project.Name = input.Name
	project.Description = input.Description
	if input.Status != "" {
		project.Status = input.Status
	}
	project.Budget = billing.ParseAmount(input.Budget)
	project.Spent = billing.ParseAmount(input.Spent)
	project.Progress = clampProgress(input.Progress)
	if deadline.IsZero() {
		project.Deadline = nil
	} else {
		project.Deadline = &deadline
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		s.logger.Error("Failed to update project", "error", err, "id", id)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionUpdated, "project", project.Name)
	s.enrich(ctx, project)
	return project, nil
}

// Delete deletes a project; its tasks cascade
func (s *projectServiceImpl) Delete(ctx context.Context, ownerID, id int64) error {
	project, err := s.projectRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.projectRepo.Delete(ctx, ownerID, id); err != nil {
		s.logger.Error("Failed to delete project", "error", err, "id", id)
		return err
	}

	s.recordActivity(ctx, ownerID, entity.ActionDeleted, "project", project.Name)
	return nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (s *projectServiceImpl) recordActivity(ctx context.Context, userID int64, action, entityType, entityName string) {
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
