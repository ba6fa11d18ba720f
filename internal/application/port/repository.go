// Package port defines the persistence interfaces the application layer
// depends on. Implementations live under internal/infrastructure.
package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// ClientRepository defines persistence operations for Client
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, ownerID, id int64) (*entity.Client, error)
	List(ctx context.Context, ownerID int64) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, ownerID, id int64) error
	Count(ctx context.Context, ownerID int64) (int, error)
	CountProjects(ctx context.Context, clientID int64) (int, error)
	PaidRevenue(ctx context.Context, clientID int64) (decimal.Decimal, error)
}

// ProjectRepository defines persistence operations for Project
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, ownerID, id int64) (*entity.Project, error)
	List(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	UpdateProgress(ctx context.Context, id int64, progress int) error
	Delete(ctx context.Context, ownerID, id int64) error
	CountByStatus(ctx context.Context, ownerID int64) (map[string]int, error)
}

// TaskRepository defines persistence operations for Task
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetForOwner(ctx context.Context, ownerID, id int64) (*entity.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id int64) error
}

// MonthRevenue is one month of paid invoice revenue.
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// InvoiceRepository defines persistence operations for Invoice
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	List(ctx context.Context, ownerID int64, status billing.Status) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id int64, status billing.Status, paidDate *time.Time) error
	Delete(ctx context.Context, ownerID, id int64) error
	CountForOwner(ctx context.Context, ownerID int64) (int, error)
	SumByStatuses(ctx context.Context, ownerID int64, statuses []billing.Status) (decimal.Decimal, error)
	MonthlyPaidRevenue(ctx context.Context, ownerID int64, since time.Time) ([]MonthRevenue, error)
}

// ItemRepository defines persistence operations for LineItem
type ItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, id int64) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error)
}

// PaymentRepository defines persistence operations for Payment
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Payment, error)
	CountByInvoice(ctx context.Context, invoiceID int64) (int, error)
}

// ActivityRepository defines persistence operations for Activity
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]*entity.Activity, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	// WithTransaction executes fn within a transaction. The transaction is
	// carried in the context; repository calls made with that context join it.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
