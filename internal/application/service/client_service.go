package service

import (
	"context"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ClientInput carries the writable client fields.
type ClientInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
	AvatarColor string `json:"avatar_color"`
}

// ClientService manages clients
type ClientService interface {
	Create(ctx context.Context, ownerID int64, input ClientInput) (*entity.Client, error)
	Get(ctx context.Context, ownerID, id int64) (*entity.Client, error)
	List(ctx context.Context, ownerID int64) ([]*entity.Client, error)
	Update(ctx context.Context, ownerID, id int64, input ClientInput) (*entity.Client, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type clientServiceImpl struct {
	clientRepo   port.ClientRepository
	activityRepo port.ActivityRepository
	logger       Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo port.ClientRepository, activityRepo port.ActivityRepository, logger Logger) ClientService {
	return &clientServiceImpl{
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create creates a new client
func (s *clientServiceImpl) Create(ctx context.Context, ownerID int64, input ClientInput) (*entity.Client, error) {
	if input.Name == "" {
		return nil, validationError("client name is required")
	}
	if input.Email == "" {
		return nil, validationError("client email is required")
	}

	color := input.AvatarColor
	if color == "" {
		color = entity.DefaultAvatarColor
	}

	client := &entity.Client{
		OwnerID:     ownerID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Company:     input.Company,
		Address:     input.Address,
		Notes:       input.Notes,
		AvatarColor: color,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		s.logger.Error("Failed to create client", "error", err)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionCreated, "client", client.Name)
	s.logger.Info("Client created", "id", client.ID, "owner_id", ownerID)
	return client, nil
}

// Get retrieves a client with its aggregates
func (s *clientServiceImpl) Get(ctx context.Context, ownerID, id int64) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	s.enrich(ctx, client)
	return client, nil
}

// List retrieves all clients for an owner, each with its aggregates
func (s *clientServiceImpl) List(ctx context.Context, ownerID int64) ([]*entity.Client, error) {
	clients, err := s.clientRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		s.enrich(ctx, c)
	}
	return clients, nil
}

// enrich fills the per-read aggregates. Aggregate failures degrade to
// zero values rather than failing the read.
func (s *clientServiceImpl) enrich(ctx context.Context, client *entity.Client) {
	count, err := s.clientRepo.CountProjects(ctx, client.ID)
	if err != nil {
		s.logger.Error("Failed to count client projects", "error", err, "client_id", client.ID)
	}
	client.ProjectCount = count

	revenue, err := s.clientRepo.PaidRevenue(ctx, client.ID)
	if err != nil {
		s.logger.Error("Failed to sum client revenue", "error", err, "client_id", client.ID)
	}
	client.TotalRevenue = revenue
}

// Update updates a client
func (s *clientServiceImpl) Update(ctx context.Context, ownerID, id int64, input ClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	if input.Name == "" {
		return nil, validationError("client name is required")
	}
	if input.Email == "" {
		return nil, validationError("client email is required")
	}

	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.Company = input.Company
	client.Address = input.Address
	client.Notes = input.Notes
	if input.AvatarColor != "" {
		client.AvatarColor = input.AvatarColor
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		s.logger.Error("Failed to update client", "error", err, "id", id)
		return nil, err
	}

	s.recordActivity(ctx, ownerID, entity.ActionUpdated, "client", client.Name)
	s.enrich(ctx, client)
	return client, nil
}

// Delete deletes a client
func (s *clientServiceImpl) Delete(ctx context.Context, ownerID, id int64) error {
	client, err := s.clientRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrNotFound
	}

	if err := s.clientRepo.Delete(ctx, ownerID, id); err != nil {
		s.logger.Error("Failed to delete client", "error", err, "id", id)
		return err
	}

	s.recordActivity(ctx, ownerID, entity.ActionDeleted, "client", client.Name)
	return nil
}

func (s *clientServiceImpl) recordActivity(ctx context.Context, userID int64, action, entityType, entityName string) {
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
