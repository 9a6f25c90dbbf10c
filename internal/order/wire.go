package order

import (
	"database/sql"

	"go.uber.org/zap"

	"goodstrack/internal/config"
	"goodstrack/internal/order/controller"
	"goodstrack/internal/order/repository"
	"goodstrack/internal/order/service"
)

func NewModule(db *sql.DB, blobs service.BlobStore, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	photoRepo := repository.NewMySQLPhotoRepository(db)

	lifecycleSvc := service.NewLifecycleService(orderRepo, logger)
	photoSvc := service.NewPhotoIngestionService(
		lifecycleSvc,
		photoRepo,
		blobs,
		logger,
		cfg.Storage.MaxUploadBytes,
	)

	return controller.NewOrderController(lifecycleSvc, photoSvc, logger)
}
