package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"goodstrack/internal/config"
	"goodstrack/internal/infrastructure/blob"
	"goodstrack/internal/infrastructure/logger"
	"goodstrack/internal/infrastructure/mysql"
	"goodstrack/internal/order"
	"goodstrack/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.EnsureSchema(db); err != nil {
			zapLogger.Fatal("creating schema", zap.Error(err))
		}
	}
	if cfg.Database.SeedSampleData {
		if err := mysql.SeedSampleOrders(db); err != nil {
			zapLogger.Fatal("seeding sample data", zap.Error(err))
		}
	}

	blobStore, err := blob.NewFilesystemStore(cfg.Storage.UploadsDir)
	if err != nil {
		zapLogger.Fatal("creating blob store", zap.Error(err))
	}

	orderCtrl := order.NewModule(db, blobStore, cfg, zapLogger)

	router := server.NewRouter(orderCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
