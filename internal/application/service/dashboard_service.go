package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

const recentActivityLimit = 10

// DashboardStats is the aggregate snapshot behind the dashboard view.
type DashboardStats struct {
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	PendingAmount  decimal.Decimal     `json:"pending_amount"`
	ActiveProjects int                 `json:"active_projects"`
	ClientCount    int                 `json:"client_count"`
	MonthlyRevenue []port.MonthRevenue `json:"monthly_revenue"`
	ProjectStatus  map[string]int      `json:"project_status"`
	RecentActivity []*entity.Activity  `json:"recent_activity"`
}

// DashboardService computes the dashboard aggregates
type DashboardService interface {
	Stats(ctx context.Context, ownerID int64) (*DashboardStats, error)
}

type dashboardServiceImpl struct {
	invoiceRepo  port.InvoiceRepository
	projectRepo  port.ProjectRepository
	clientRepo   port.ClientRepository
	activityRepo port.ActivityRepository
	logger       Logger
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	invoiceRepo port.InvoiceRepository,
	projectRepo port.ProjectRepository,
	clientRepo port.ClientRepository,
	activityRepo port.ActivityRepository,
	logger Logger,
) DashboardService {
	return &dashboardServiceImpl{
		invoiceRepo:  invoiceRepo,
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Stats assembles the dashboard snapshot. Revenue comes from real paid
// invoices; months without revenue still appear with a zero value.
func (s *dashboardServiceImpl) Stats(ctx context.Context, ownerID int64) (*DashboardStats, error) {
	totalRevenue, err := s.invoiceRepo.SumByStatuses(ctx, ownerID, []billing.Status{billing.StatusPaid})
	if err != nil {
		s.logger.Error("Failed to sum paid revenue", "error", err, "owner_id", ownerID)
		return nil, err
	}

	pending, err := s.invoiceRepo.SumByStatuses(ctx, ownerID,
		[]billing.Status{billing.StatusDraft, billing.StatusSent, billing.StatusPartiallyPaid})
	if err != nil {
		s.logger.Error("Failed to sum pending amount", "error", err, "owner_id", ownerID)
		return nil, err
	}

	projectStatus, err := s.projectRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	clientCount, err := s.clientRepo.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	monthly, err := s.monthlyRevenue(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListRecent(ctx, ownerID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*entity.Activity{}
	}

	return &DashboardStats{
		TotalRevenue:   totalRevenue,
		PendingAmount:  pending,
		ActiveProjects: projectStatus[entity.ProjectStatusInProgress],
		ClientCount:    clientCount,
		MonthlyRevenue: monthly,
		ProjectStatus:  projectStatus,
		RecentActivity: activities,
	}, nil
}

// monthlyRevenue returns the trailing six calendar months of paid invoice
// revenue, zero filled for months without payments.
func (s *dashboardServiceImpl) monthlyRevenue(ctx context.Context, ownerID int64) ([]port.MonthRevenue, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	revenue, err := s.invoiceRepo.MonthlyPaidRevenue(ctx, ownerID, start)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]decimal.Decimal, len(revenue))
	for _, m := range revenue {
		byMonth[m.Month] = m.Revenue
	}

	months := make([]port.MonthRevenue, 0, 6)
	for i := 0; i < 6; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		months = append(months, port.MonthRevenue{Month: key, Revenue: byMonth[key]})
	}
	return months, nil
}
