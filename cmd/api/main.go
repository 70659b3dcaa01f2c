package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xxz807/cargofin/internal/finance/adapter/repo"
	"github.com/xxz807/cargofin/internal/finance/api"
	"github.com/xxz807/cargofin/internal/finance/service"
	"github.com/xxz807/cargofin/internal/platform/config"
	"github.com/xxz807/cargofin/internal/platform/database"
	"github.com/xxz807/cargofin/internal/platform/logger"
	"github.com/xxz807/cargofin/internal/platform/server"
)

func main() {
	// 1. 加载配置 (.env 可选)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env: %s", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	// 2. 初始化基础设施 (Infra)
	// Logger
	appLogger, err := logger.NewLogger(cfg.Server.Mode, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Error creating logger: %s", err)
	}
	defer appLogger.Sync()

	// Database
	db, err := database.NewPostgresDB(database.Options{
		DSN:          cfg.Database.DSN,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		LogSQL:       cfg.Database.LogSQL,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Database init failed", zap.Error(err))
	}

	// 3. 依赖注入 (Wiring)
	// -- Finance Module --
	shipmentRepo := repo.NewShipmentRepo(db)
	expenseRepo := repo.NewExpenseRepo(db)
	rateRepo := repo.NewRateRepo(db)
	financeSvc := service.NewFinanceService(appLogger, shipmentRepo, expenseRepo, rateRepo, cfg.ServiceOptions())
	financeHandler := api.NewFinanceHandler(financeSvc, appLogger)

	// 4. 初始化 Server (Gateway)
	srv := server.NewServer(
		appLogger,
		cfg.Server.Port,
		cfg.Server.Mode,
		financeHandler,
	)

	// 5. 启动服务, 收到信号后优雅停机
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server startup failed", zap.Error(err))
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
