package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Auckfmine/client-portal/internal/application/service"
	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
	"github.com/Auckfmine/client-portal/internal/domain/workflow"
	"github.com/Auckfmine/client-portal/internal/report"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	clientService    service.ClientService
	projectService   service.ProjectService
	taskService      service.TaskService
	invoiceService   service.InvoiceService
	dashboardService service.DashboardService
	seedService      service.SeedService
	reporter         *report.Reporter
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	clientService service.ClientService,
	projectService service.ProjectService,
	taskService service.TaskService,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
	seedService service.SeedService,
	reporter *report.Reporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		clientService:    clientService,
		projectService:   projectService,
		taskService:      taskService,
		invoiceService:   invoiceService,
		dashboardService: dashboardService,
		seedService:      seedService,
		reporter:         reporter,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// InvoiceResponse decorates an invoice with its derived display status.
// The stored status is never rewritten; the effective status and badge are
// recomputed on every response.
type InvoiceResponse struct {
	*entity.Invoice
	EffectiveStatus billing.Status `json:"effective_status"`
	Badge           billing.Badge  `json:"badge"`
}

func invoiceView(inv *entity.Invoice) InvoiceResponse {
	eff := billing.EffectiveStatus(inv.Status, inv.DueDate, time.Now())
	return InvoiceResponse{
		Invoice:         inv,
		EffectiveStatus: eff,
		Badge:           billing.BadgeFor(eff),
	}
}

func invoiceViews(invoices []*entity.Invoice) []InvoiceResponse {
	views := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, invoiceView(inv))
	}
	return views
}

// syncOpView is the wire shape of one item-sync plan operation.
type syncOpView struct {
	Kind        string `json:"kind"`
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
}

func syncOpViews(ops []billing.Op) []syncOpView {
	views := make([]syncOpView, 0, len(ops))
	for _, op := range ops {
		views = append(views, syncOpView{
			Kind:        string(op.Kind),
			ID:          op.Item.ID,
			Description: op.Item.Description,
		})
	}
	return views
}

// ownerID returns the authenticated user id set by the identity middleware.
func ownerID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var syncErr *service.SyncError
	switch {
	case errors.As(err, &syncErr):
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   syncErr.Error(),
			Data: gin.H{
				"applied": syncOpViews(syncErr.Applied),
				"failed":  syncOpViews(syncErr.Failed),
			},
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "not found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrSyncInProgress):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrGuardFailed):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	ok(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// ListClients handles GET /api/clients
func (h *Handlers) ListClients(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, clients)
}

// CreateClient handles POST /api/clients
func (h *Handlers) CreateClient(c *gin.Context) {
	var input service.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), ownerID(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, client)
}

// GetClient handles GET /api/clients/:id
func (h *Handlers) GetClient(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, client)
}

// UpdateClient handles PUT /api/clients/:id
func (h *Handlers) UpdateClient(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var input service.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), ownerID(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, client)
}

// DeleteClient handles DELETE /api/clients/:id
func (h *Handlers) DeleteClient(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}

// ListProjects handles GET /api/projects
func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), ownerID(c), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, projects)
}

// CreateProject handles POST /api/projects
func (h *Handlers) CreateProject(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), ownerID(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, project)
}

// GetProject handles GET /api/projects/:id
func (h *Handlers) GetProject(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, project)
}

// UpdateProject handles PUT /api/projects/:id
func (h *Handlers) UpdateProject(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), ownerID(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, project)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *Handlers) DeleteProject(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}

// CreateTask handles POST /api/projects/:id/tasks
func (h *Handlers) CreateTask(c *gin.Context) {
	projectID, valid := pathID(c)
	if !valid {
		return
	}

	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), ownerID(c), projectID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, task)
}

// ToggleTask handles PUT /api/tasks/:id/toggle
func (h *Handlers) ToggleTask(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	task, err := h.taskService.Toggle(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handlers) DeleteTask(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context(), ownerID(c), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceViews(invoices))
}

// CreateInvoice handles POST /api/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), ownerID(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, invoiceView(invoice))
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// UpdateInvoice handles PUT /api/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), ownerID(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// DeleteInvoice handles DELETE /api/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": id})
}

// SyncItemsRequest carries the full edit buffer for an invoice save.
type SyncItemsRequest struct {
	Items []service.ItemInput `json:"items"`
}

// SyncInvoiceItems handles PUT /api/invoices/:id/items
func (h *Handlers) SyncInvoiceItems(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var req SyncItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.SyncItems(c.Request.Context(), ownerID(c), id, req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// RecordPayment handles POST /api/invoices/:id/payment
func (h *Handlers) RecordPayment(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), ownerID(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// SendInvoice handles POST /api/invoices/:id/send
func (h *Handlers) SendInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// CancelInvoice handles POST /api/invoices/:id/cancel
func (h *Handlers) CancelInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, invoiceView(invoice))
}

// DuplicateInvoice handles POST /api/invoices/:id/duplicate
func (h *Handlers) DuplicateInvoice(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	invoice, err := h.invoiceService.Duplicate(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, invoiceView(invoice))
}

// InvoicePDF handles GET /api/invoices/:id/pdf
func (h *Handlers) InvoicePDF(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pdf, err := h.reporter.InvoicePDF(invoice)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+invoice.InvoiceNumber+`.pdf`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportInvoices handles GET /api/invoices/export
func (h *Handlers) ExportInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context(), ownerID(c), "")
	if err != nil {
		h.respondError(c, err)
		return
	}

	register, err := h.reporter.InvoiceRegister(invoices)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=invoices.xlsx`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", register)
}

// Dashboard handles GET /api/dashboard
func (h *Handlers) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, stats)
}

// Seed handles POST /api/seed
func (h *Handlers) Seed(c *gin.Context) {
	if err := h.seedService.Seed(c.Request.Context(), ownerID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	created(c, gin.H{"seeded": true})
}
