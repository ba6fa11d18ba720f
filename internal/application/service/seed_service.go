package service

import (
	"context"
	"time"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

// SeedService populates an owner's workspace with demo data
type SeedService interface {
	Seed(ctx context.Context, ownerID int64) error
}

type seedServiceImpl struct {
	clients  ClientService
	projects ProjectService
	tasks    TaskService
	invoices InvoiceService
	logger   Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(
	clients ClientService,
	projects ProjectService,
	tasks TaskService,
	invoices InvoiceService,
	logger Logger,
) SeedService {
	return &seedServiceImpl{
		clients:  clients,
		projects: projects,
		tasks:    tasks,
		invoices: invoices,
		logger:   logger,
	}
}

// Seed creates a small demo workspace: two clients, two projects with
// tasks, and two invoices, one of which is sent and partially paid.
func (s *seedServiceImpl) Seed(ctx context.Context, ownerID int64) error {
	acme, err := s.clients.Create(ctx, ownerID, ClientInput{
		Name:    "Acme Studio",
		Email:   "hello@acmestudio.example",
		Company: "Acme Studio LLC",
		Phone:   "+1 555 0100",
	})
	if err != nil {
		return err
	}

	northwind, err := s.clients.Create(ctx, ownerID, ClientInput{
		Name:        "Northwind Labs",
		Email:       "ops@northwindlabs.example",
		Company:     "Northwind Labs Inc",
		AvatarColor: "#6366F1",
	})
	if err != nil {
		return err
	}

	today := time.Now().UTC()
	deadline := billing.FormatDate(today.AddDate(0, 1, 0))

	site, err := s.projects.Create(ctx, ownerID, ProjectInput{
		ClientID:    acme.ID,
		Name:        "Website Redesign",
		Description: "Marketing site refresh with new brand assets",
		Status:      "in_progress",
		Budget:      "12000",
		Spent:       "4500",
		Deadline:    deadline,
	})
	if err != nil {
		return err
	}

	if _, err := s.projects.Create(ctx, ownerID, ProjectInput{
		ClientID: northwind.ID,
		Name:     "Mobile App MVP",
		Status:   "planning",
		Budget:   "30000",
	}); err != nil {
		return err
	}

	taskTitles := []string{"Wireframes", "Design system", "Homepage build", "Launch checklist"}
	var firstTask int64
	for i, title := range taskTitles {
		task, err := s.tasks.Create(ctx, ownerID, site.ID, TaskInput{
			Title:    title,
			Priority: "high",
			Position: i,
		})
		if err != nil {
			return err
		}
		if i == 0 {
			firstTask = task.ID
		}
	}
	if _, err := s.tasks.Toggle(ctx, ownerID, firstTask); err != nil {
		return err
	}

	issue := billing.FormatDate(today.AddDate(0, 0, -10))
	invoice, err := s.invoices.Create(ctx, ownerID, InvoiceInput{
		ClientID:     acme.ID,
		ProjectID:    site.ID,
		IssueDate:    issue,
		PaymentTerms: string(billing.TermsNet30),
		TaxRate:      "8",
		DiscountPercent: "10",
		Items: []ItemInput{
			{Description: "Design", Quantity: "10", UnitPrice: "50"},
			{Description: "Development", Quantity: "20", UnitPrice: "75"},
		},
	})
	if err != nil {
		return err
	}

	if _, err := s.invoices.Send(ctx, ownerID, invoice.ID); err != nil {
		return err
	}
	if _, err := s.invoices.RecordPayment(ctx, ownerID, invoice.ID, PaymentInput{
		Amount: "500",
		Note:   "deposit",
	}); err != nil {
		return err
	}

	if _, err := s.invoices.Create(ctx, ownerID, InvoiceInput{
		ClientID:     northwind.ID,
		IssueDate:    billing.FormatDate(today),
		PaymentTerms: string(billing.TermsDueOnReceipt),
		Items: []ItemInput{
			{Description: "Discovery workshop", Quantity: "1", UnitPrice: "1500"},
		},
	}); err != nil {
		return err
	}

	s.logger.Info("Demo data seeded", "owner_id", ownerID)
	return nil
}
