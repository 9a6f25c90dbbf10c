package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goodstrack/internal/domain"
	"goodstrack/internal/errors"
)

// OrderResolver is the slice of the lifecycle service photo ingestion
// needs: looking up the target order for the closed-order guard.
type OrderResolver interface {
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
}

type PhotoRepository interface {
	Insert(ctx context.Context, photo *domain.Photo) (uint, error)
}

// BlobStore is durable byte storage addressed by a generated key.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// PhotoIngestionService validates uploaded images and persists them as a
// blob plus a metadata record. The blob write always precedes the metadata
// insert, so a crash in between can leave an orphaned blob but never a
// record pointing at missing bytes.
type PhotoIngestionService struct {
	orders   OrderResolver
	photos   PhotoRepository
	blobs    BlobStore
	logger   *zap.Logger
	maxBytes int64
}

func NewPhotoIngestionService(
	orders OrderResolver,
	photos PhotoRepository,
	blobs BlobStore,
	logger *zap.Logger,
	maxBytes int64,
) *PhotoIngestionService {
	return &PhotoIngestionService{
		orders:   orders,
		photos:   photos,
		blobs:    blobs,
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// Ingest validates the declared file name and base64 payload against the
// order and stores the photo. Validation runs entirely before the blob
// write, so a rejected upload has no side effects.
func (s *PhotoIngestionService) Ingest(ctx context.Context, orderID uint, fileName, encodedData string) (*domain.Photo, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsClosed {
		return nil, errors.NewInvalidTransitionError("cannot add photos to a closed order", "closed")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedPhotoExtensions[ext] {
		return nil, errors.NewUnsupportedMediaTypeError(
			fmt.Sprintf("file type %q is not an accepted image format", ext), ext)
	}

	if len(encodedData)%4 != 0 {
		return nil, errors.NewMalformedEncodingError("image data is not valid base64")
	}
	raw, err := base64.StdEncoding.DecodeString(encodedData)
	if err != nil {
		return nil, errors.NewMalformedEncodingError("image data is not valid base64")
	}

	if int64(len(raw)) > s.maxBytes {
		return nil, errors.NewPayloadTooLargeError(int64(len(raw)), s.maxBytes)
	}

	// The key embeds the order id and a random token; nothing from the
	// declared name beyond its validated extension.
	key := fmt.Sprintf("%d/%s%s", orderID, uuid.New().String(), ext)

	if err := s.blobs.Save(ctx, key, raw); err != nil {
		s.logger.Error("blob write failed",
			zap.Uint("orderId", orderID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, errors.NewStorageError("failed to store photo", err)
	}

	photo := &domain.Photo{
		OrderID:    orderID,
		FileName:   fileName,
		StorageKey: key,
		UploadDate: time.Now(),
	}

	id, err := s.photos.Insert(ctx, photo)
	if err != nil {
		s.logger.Error("photo metadata insert failed",
			zap.Uint("orderId", orderID),
			zap.String("key", key),
			zap.Error(err),
		)
		// Best-effort cleanup so the failed upload does not strand a blob.
		if cleanupErr := s.blobs.Delete(ctx, key); cleanupErr != nil {
			s.logger.Error("orphaned blob cleanup failed",
				zap.String("key", key),
				zap.Error(cleanupErr),
			)
		}
		return nil, errors.NewStorageError("failed to record photo", err)
	}
	photo.ID = id

	s.logger.Info("photo ingested",
		zap.Uint("orderId", orderID),
		zap.Uint("photoId", photo.ID),
		zap.String("fileName", photo.FileName),
		zap.String("key", key),
		zap.Int("size", len(raw)),
	)

	return photo, nil
}
