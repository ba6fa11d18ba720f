package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Auckfmine/client-portal/internal/application/port"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockTxManager struct{}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockClientRepo struct {
	createFunc        func(ctx context.Context, client *entity.Client) error
	getByIDFunc       func(ctx context.Context, ownerID, id int64) (*entity.Client, error)
	listFunc          func(ctx context.Context, ownerID int64) ([]*entity.Client, error)
	updateFunc        func(ctx context.Context, client *entity.Client) error
	deleteFunc        func(ctx context.Context, ownerID, id int64) error
	countFunc         func(ctx context.Context, ownerID int64) (int, error)
	countProjectsFunc func(ctx context.Context, clientID int64) (int, error)
	paidRevenueFunc   func(ctx context.Context, clientID int64) (decimal.Decimal, error)
}

func (m *mockClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, client)
	}
	client.ID = 1
	return nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, ownerID, id int64) (*entity.Client, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, ownerID, id)
	}
	return &entity.Client{ID: id, OwnerID: ownerID, Name: "Acme Studio", Email: "hello@acme.example"}, nil
}

func (m *mockClientRepo) List(ctx context.Context, ownerID int64) ([]*entity.Client, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockClientRepo) Update(ctx context.Context, client *entity.Client) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, client)
	}
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, ownerID, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return nil
}

func (m *mockClientRepo) Count(ctx context.Context, ownerID int64) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockClientRepo) CountProjects(ctx context.Context, clientID int64) (int, error) {
	if m.countProjectsFunc != nil {
		return m.countProjectsFunc(ctx, clientID)
	}
	return 0, nil
}

func (m *mockClientRepo) PaidRevenue(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	if m.paidRevenueFunc != nil {
		return m.paidRevenueFunc(ctx, clientID)
	}
	return decimal.Zero, nil
}

type mockProjectRepo struct {
	createFunc         func(ctx context.Context, project *entity.Project) error
	getByIDFunc        func(ctx context.Context, ownerID, id int64) (*entity.Project, error)
	listFunc           func(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error)
	updateFunc         func(ctx context.Context, project *entity.Project) error
	updateProgressFunc func(ctx context.Context, id int64, progress int) error
	deleteFunc         func(ctx context.Context, ownerID, id int64) error
	countByStatusFunc  func(ctx context.Context, ownerID int64) (map[string]int, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	project.ID = 1
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, ownerID, id int64) (*entity.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, ownerID, id)
	}
	return &entity.Project{ID: id, OwnerID: ownerID, Name: "Website Redesign"}, nil
}

func (m *mockProjectRepo) List(ctx context.Context, ownerID int64, status string) ([]*entity.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, status)
	}
	return nil, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) UpdateProgress(ctx context.Context, id int64, progress int) error {
	if m.updateProgressFunc != nil {
		return m.updateProgressFunc(ctx, id, progress)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, ownerID, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return nil
}

func (m *mockProjectRepo) CountByStatus(ctx context.Context, ownerID int64) (map[string]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx, ownerID)
	}
	return map[string]int{}, nil
}

type mockTaskRepo struct {
	createFunc        func(ctx context.Context, task *entity.Task) error
	getForOwnerFunc   func(ctx context.Context, ownerID, id int64) (*entity.Task, error)
	listByProjectFunc func(ctx context.Context, projectID int64) ([]*entity.Task, error)
	updateFunc        func(ctx context.Context, task *entity.Task) error
	deleteFunc        func(ctx context.Context, id int64) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	task.ID = 1
	return nil
}

func (m *mockTaskRepo) GetForOwner(ctx context.Context, ownerID, id int64) (*entity.Task, error) {
	if m.getForOwnerFunc != nil {
		return m.getForOwnerFunc(ctx, ownerID, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*entity.Task, error) {
	if m.listByProjectFunc != nil {
		return m.listByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockInvoiceRepo struct {
	createFunc             func(ctx context.Context, invoice *entity.Invoice) error
	getByIDFunc            func(ctx context.Context, ownerID, id int64) (*entity.Invoice, error)
	listFunc               func(ctx context.Context, ownerID int64, status billing.Status) ([]*entity.Invoice, error)
	updateFunc             func(ctx context.Context, invoice *entity.Invoice) error
	updateStatusFunc       func(ctx context.Context, id int64, status billing.Status, paidDate *time.Time) error
	deleteFunc             func(ctx context.Context, ownerID, id int64) error
	countForOwnerFunc      func(ctx context.Context, ownerID int64) (int, error)
	sumByStatusesFunc      func(ctx context.Context, ownerID int64, statuses []billing.Status) (decimal.Decimal, error)
	monthlyPaidRevenueFunc func(ctx context.Context, ownerID int64, since time.Time) ([]port.MonthRevenue, error)
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, invoice)
	}
	invoice.ID = 1
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, ownerID, id int64) (*entity.Invoice, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, ownerID, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) List(ctx context.Context, ownerID int64, status billing.Status) ([]*entity.Invoice, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, status)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepo) UpdateStatus(ctx context.Context, id int64, status billing.Status, paidDate *time.Time) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, paidDate)
	}
	return nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, ownerID, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return nil
}

func (m *mockInvoiceRepo) CountForOwner(ctx context.Context, ownerID int64) (int, error) {
	if m.countForOwnerFunc != nil {
		return m.countForOwnerFunc(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockInvoiceRepo) SumByStatuses(ctx context.Context, ownerID int64, statuses []billing.Status) (decimal.Decimal, error) {
	if m.sumByStatusesFunc != nil {
		return m.sumByStatusesFunc(ctx, ownerID, statuses)
	}
	return decimal.Zero, nil
}

func (m *mockInvoiceRepo) MonthlyPaidRevenue(ctx context.Context, ownerID int64, since time.Time) ([]port.MonthRevenue, error) {
	if m.monthlyPaidRevenueFunc != nil {
		return m.monthlyPaidRevenueFunc(ctx, ownerID, since)
	}
	return nil, nil
}

type mockItemRepo struct {
	createFunc        func(ctx context.Context, item *entity.LineItem) error
	updateFunc        func(ctx context.Context, item *entity.LineItem) error
	deleteFunc        func(ctx context.Context, id int64) error
	listByInvoiceFunc func(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item *entity.LineItem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	item.ID = 100
	return nil
}

func (m *mockItemRepo) Update(ctx context.Context, item *entity.LineItem) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockItemRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.LineItem, error) {
	if m.listByInvoiceFunc != nil {
		return m.listByInvoiceFunc(ctx, invoiceID)
	}
	return nil, nil
}

type mockPaymentRepo struct {
	createFunc         func(ctx context.Context, payment *entity.Payment) error
	listByInvoiceFunc  func(ctx context.Context, invoiceID int64) ([]*entity.Payment, error)
	countByInvoiceFunc func(ctx context.Context, invoiceID int64) (int, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	payment.ID = 1
	return nil
}

func (m *mockPaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Payment, error) {
	if m.listByInvoiceFunc != nil {
		return m.listByInvoiceFunc(ctx, invoiceID)
	}
	return nil, nil
}

func (m *mockPaymentRepo) CountByInvoice(ctx context.Context, invoiceID int64) (int, error) {
	if m.countByInvoiceFunc != nil {
		return m.countByInvoiceFunc(ctx, invoiceID)
	}
	return 0, nil
}

type mockActivityRepo struct {
	createFunc     func(ctx context.Context, activity *entity.Activity) error
	listRecentFunc func(ctx context.Context, userID int64, limit int) ([]*entity.Activity, error)

	recorded []*entity.Activity
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *entity.Activity) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, activity)
	}
	m.recorded = append(m.recorded, activity)
	return nil
}

func (m *mockActivityRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]*entity.Activity, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, userID, limit)
	}
	return nil, nil
}

// Interface compliance for the mocks
var (
	_ port.ClientRepository   = (*mockClientRepo)(nil)
	_ port.ProjectRepository  = (*mockProjectRepo)(nil)
	_ port.TaskRepository     = (*mockTaskRepo)(nil)
	_ port.InvoiceRepository  = (*mockInvoiceRepo)(nil)
	_ port.ItemRepository     = (*mockItemRepo)(nil)
	_ port.PaymentRepository  = (*mockPaymentRepo)(nil)
	_ port.ActivityRepository = (*mockActivityRepo)(nil)
	_ port.TransactionManager = (*mockTxManager)(nil)
)
