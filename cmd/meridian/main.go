package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/accounting/ledger"
	"github.com/meridian-erp/meridian-erp/internal/accounting/reports"
	"github.com/meridian-erp/meridian-erp/internal/app"
	"github.com/meridian-erp/meridian-erp/internal/banking"
	"github.com/meridian-erp/meridian-erp/internal/hr/payrates"
	"github.com/meridian-erp/meridian-erp/internal/hr/sickdays"
	"github.com/meridian-erp/meridian-erp/internal/observability"
	"github.com/meridian-erp/meridian-erp/internal/platform/cache"
	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/sales/customers"
	"github.com/meridian-erp/meridian-erp/internal/shared"
	"github.com/meridian-erp/meridian-erp/internal/warehouse"
	"github.com/meridian-erp/meridian-erp/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	validate := validator.New()
	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(reports.NewRepository(pool), reportCache)

	accountService := accounts.NewService(accounts.NewRepository(pool))
	journalService := journals.NewService(journals.NewRepository(pool), auditLogger, reportCache)
	ledgerService := ledger.NewService(ledger.NewRepository(pool))
	bankingService := banking.NewService(banking.NewRepository(pool), auditLogger)
	warehouseService := warehouse.NewService(warehouse.NewRepository(pool))
	payRateService := payrates.NewService(payrates.NewRepository(pool))
	sickDayService := sickdays.NewService(sickdays.NewRepository(pool))
	customerService := customers.NewService(customers.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AccountsHandler:  accounts.NewHandler(logger, accountService, validate),
		JournalsHandler:  journals.NewHandler(logger, journalService, validate),
		LedgerHandler:    ledger.NewHandler(logger, ledgerService),
		ReportsHandler:   reports.NewHandler(logger, reportService),
		BankingHandler:   banking.NewHandler(logger, bankingService, validate),
		WarehouseHandler: warehouse.NewHandler(logger, warehouseService, validate),
		PayRatesHandler:  payrates.NewHandler(logger, payRateService, validate),
		SickDaysHandler:  sickdays.NewHandler(logger, sickDayService, validate),
		CustomersHandler: customers.NewHandler(logger, customerService, validate),
		JobsHandler:      jobs.NewHTTPHandler(logger, jobsClient),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
