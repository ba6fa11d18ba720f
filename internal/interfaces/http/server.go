// Package http provides the HTTP adapter for the application layer. It is
// a thin translation layer between gin requests and application services.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Auckfmine/client-portal/internal/application/service"
	"github.com/Auckfmine/client-portal/internal/report"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "user_id"

// userIDHeader carries the authenticated user id, injected by the
// upstream auth proxy.
const userIDHeader = "X-User-ID"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP server adapter
type Server struct {
	config           ServerConfig
	httpServer       *http.Server
	router           *gin.Engine
	clientService    service.ClientService
	projectService   service.ProjectService
	taskService      service.TaskService
	invoiceService   service.InvoiceService
	dashboardService service.DashboardService
	seedService      service.SeedService
	reporter         *report.Reporter
	logger           Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	clientService service.ClientService,
	projectService service.ProjectService,
	taskService service.TaskService,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
	seedService service.SeedService,
	reporter *report.Reporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:           config,
		router:           gin.New(),
		clientService:    clientService,
		projectService:   projectService,
		taskService:      taskService,
		invoiceService:   invoiceService,
		dashboardService: dashboardService,
		seedService:      seedService,
		reporter:         reporter,
		logger:           logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// identityMiddleware resolves the authenticated user from the X-User-ID
// header. Authentication itself happens upstream; a missing or malformed
// header is rejected here.
func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing " + userIDHeader + " header",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid " + userIDHeader + " header",
			})
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(
		s.clientService,
		s.projectService,
		s.taskService,
		s.invoiceService,
		s.dashboardService,
		s.seedService,
		s.reporter,
		s.logger,
	)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// API routes
	api := s.router.Group("/api")
	api.Use(s.identityMiddleware())
	{
		// Clients
		api.GET("/clients", handlers.ListClients)
		api.POST("/clients", handlers.CreateClient)
		api.GET("/clients/:id", handlers.GetClient)
		api.PUT("/clients/:id", handlers.UpdateClient)
		api.DELETE("/clients/:id", handlers.DeleteClient)

		// Projects
		api.GET("/projects", handlers.ListProjects)
		api.POST("/projects", handlers.CreateProject)
		api.GET("/projects/:id", handlers.GetProject)
		api.PUT("/projects/:id", handlers.UpdateProject)
		api.DELETE("/projects/:id", handlers.DeleteProject)
		api.POST("/projects/:id/tasks", handlers.CreateTask)

		// Tasks
		api.PUT("/tasks/:id/toggle", handlers.ToggleTask)
		api.DELETE("/tasks/:id", handlers.DeleteTask)

		// Invoices
		api.GET("/invoices", handlers.ListInvoices)
		api.POST("/invoices", handlers.CreateInvoice)
		api.GET("/invoices/export", handlers.ExportInvoices)
		api.GET("/invoices/:id", handlers.GetInvoice)
		api.PUT("/invoices/:id", handlers.UpdateInvoice)
		api.DELETE("/invoices/:id", handlers.DeleteInvoice)
		api.PUT("/invoices/:id/items", handlers.SyncInvoiceItems)
		api.POST("/invoices/:id/payment", handlers.RecordPayment)
		api.POST("/invoices/:id/send", handlers.SendInvoice)
		api.POST("/invoices/:id/cancel", handlers.CancelInvoice)
		api.POST("/invoices/:id/duplicate", handlers.DuplicateInvoice)
		api.GET("/invoices/:id/pdf", handlers.InvoicePDF)

		// Dashboard and demo data
		api.GET("/dashboard", handlers.Dashboard)
		api.POST("/seed", handlers.Seed)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
