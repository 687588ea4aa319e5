package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/shivam-core/vantage/internal/budget"
	"github.com/shivam-core/vantage/internal/classifier"
	"github.com/shivam-core/vantage/internal/config"
	"github.com/shivam-core/vantage/internal/expense"
	httpserver "github.com/shivam-core/vantage/internal/interfaces/http"
	"github.com/shivam-core/vantage/internal/parser"
	"github.com/shivam-core/vantage/internal/receipt"
	"github.com/shivam-core/vantage/internal/report"
	"github.com/shivam-core/vantage/internal/repository"
	"github.com/shivam-core/vantage/pkg/database"
	"github.com/shivam-core/vantage/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
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

	logger.Info("Starting Vantage expense tracker",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create data directory", zap.Error(err))
		}
	}

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	expenseRepo := repository.NewExpenseRepository(db.DB, logger)
	budgetRepo := repository.NewBudgetRepository(db.DB, logger)

	// Select the classifier backend
	var cls classifier.Classifier
	switch cfg.Classifier.Provider {
	case "openai":
		cls = classifier.NewOpenAI(classifier.Config{
			APIKey:      cfg.Classifier.APIKey,
			Model:       cfg.Classifier.Model,
			Temperature: cfg.Classifier.Temperature,
			Timeout:     cfg.Classifier.Timeout,
		}, logger)
		logger.Info("Classifier enabled", zap.String("model", cfg.Classifier.Model))
	default:
		cls = &classifier.Disabled{}
		logger.Info("Classifier disabled, using local parsing only")
	}

	// Wire services
	processor := expense.NewProcessor(parser.New(), cls, logger)
	expenseService := expense.NewService(processor, expenseRepo, logger)
	budgetManager := budget.NewManager(budgetRepo, expenseRepo, logger)
	receiptExtractor := receipt.NewExtractor(logger)
	reportBuilder := report.NewExcelBuilder(cfg.Currency.Code, logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, expenseService, budgetManager, receiptExtractor, reportBuilder, logger)

	// Run until interrupted
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
