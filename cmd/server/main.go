package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/application/service"
	"github.com/Auckfmine/client-portal/internal/config"
	httpserver "github.com/Auckfmine/client-portal/internal/interfaces/http"
	"github.com/Auckfmine/client-portal/internal/infrastructure/persistence/repository"
	"github.com/Auckfmine/client-portal/internal/infrastructure/persistence/sqlite"
	"github.com/Auckfmine/client-portal/internal/report"
	"github.com/Auckfmine/client-portal/pkg/database"
	"github.com/Auckfmine/client-portal/pkg/utils"
)

func main() {
	// Load .env if present; real env vars win
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting client portal backend",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create export directory", zap.Error(err))
	}

	// Repositories
	txManager := sqlite.NewDB(db.DB, logger)
	clientRepo := repository.NewClientRepository(db.DB, logger)
	projectRepo := repository.NewProjectRepository(db.DB, logger)
	taskRepo := repository.NewTaskRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	itemRepo := repository.NewItemRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	activityRepo := repository.NewActivityRepository(db.DB, logger)

	// Services
	sugar := utils.NewSugar(logger)
	clientService := service.NewClientService(clientRepo, activityRepo, sugar)
	projectService := service.NewProjectService(projectRepo, clientRepo, taskRepo, activityRepo, sugar)
	taskService := service.NewTaskService(taskRepo, projectRepo, activityRepo, sugar)
	invoiceService := service.NewInvoiceService(
		invoiceRepo, itemRepo, paymentRepo, clientRepo, activityRepo,
		txManager, cfg.Invoice, sugar)
	dashboardService := service.NewDashboardService(invoiceRepo, projectRepo, clientRepo, activityRepo, sugar)
	seedService := service.NewSeedService(clientService, projectService, taskService, invoiceService, sugar)

	reporter := report.NewReporter(cfg.Report.CompanyName, logger)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		clientService,
		projectService,
		taskService,
		invoiceService,
		dashboardService,
		seedService,
		reporter,
		sugar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
