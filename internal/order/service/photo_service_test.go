package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goodstrack/internal/domain"
	apperrors "goodstrack/internal/errors"
)

const testMaxUploadBytes = 10 * 1024 * 1024

type mockOrderResolver struct {
	GetByIDFunc func(ctx context.Context, id uint) (*domain.Order, error)
}

func (m *mockOrderResolver) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockPhotoRepository struct {
	InsertFunc func(ctx context.Context, photo *domain.Photo) (uint, error)
}

func (m *mockPhotoRepository) Insert(ctx context.Context, photo *domain.Photo) (uint, error) {
	return m.InsertFunc(ctx, photo)
}

type mockBlobStore struct {
	SaveFunc   func(ctx context.Context, key string, data []byte) error
	DeleteFunc func(ctx context.Context, key string) error

	saved   []string
	deleted []string
}

func (m *mockBlobStore) Save(ctx context.Context, key string, data []byte) error {
	m.saved = append(m.saved, key)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, data)
	}
	return nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func openOrderResolver() *mockOrderResolver {
	return &mockOrderResolver{
		GetByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Barcode: "123456789", Status: domain.OrderStatusPending}, nil
		},
	}
}

func acceptingPhotoRepo() *mockPhotoRepository {
	return &mockPhotoRepository{
		InsertFunc: func(ctx context.Context, photo *domain.Photo) (uint, error) {
			return 1, nil
		},
	}
}

func newTestPhotoService(orders OrderResolver, photos PhotoRepository, blobs BlobStore) *PhotoIngestionService {
	return NewPhotoIngestionService(orders, photos, blobs, zap.NewNop(), testMaxUploadBytes)
}

func encodePayload(size int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, size))
}

// Tests

func TestIngest_AcceptsJpegUnderLimit(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	photo, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(1024))

	require.NoError(t, err)
	assert.Equal(t, uint(1), photo.ID)
	assert.Equal(t, uint(7), photo.OrderID)
	assert.Equal(t, "photo.jpg", photo.FileName)
	assert.WithinDuration(t, time.Now(), photo.UploadDate, time.Second)

	require.Len(t, blobs.saved, 1)
	assert.Equal(t, blobs.saved[0], photo.StorageKey)
	assert.True(t, strings.HasPrefix(photo.StorageKey, "7/"), "key must be namespaced by order id")
	assert.True(t, strings.HasSuffix(photo.StorageKey, ".jpg"))
	assert.NotContains(t, photo.StorageKey, "photo", "key must not reuse the declared name")
}

func TestIngest_UppercaseExtensionAccepted(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	photo, err := svc.Ingest(context.Background(), 7, "SCAN.PNG", encodePayload(16))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(photo.StorageKey, ".png"))
}

func TestIngest_OrderNotFound(t *testing.T) {
	orders := &mockOrderResolver{
		GetByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
		},
	}
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(orders, acceptingPhotoRepo(), blobs)

	_, err := svc.Ingest(context.Background(), 42, "photo.jpg", encodePayload(16))

	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Empty(t, blobs.saved)
}

func TestIngest_ClosedOrderRejectedBeforeBlobWrite(t *testing.T) {
	orders := &mockOrderResolver{
		GetByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, IsClosed: true, Status: domain.OrderStatusClosed}, nil
		},
	}
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(orders, acceptingPhotoRepo(), blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))

	require.Error(t, err)
	ite, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "closed", ite.Reason)
	assert.Empty(t, blobs.saved, "closed guard must fire before any blob write")
}

func TestIngest_RejectsUnsupportedExtension(t *testing.T) {
	cases := []string{"virus.exe", "notes.txt", "archive.tar.gz", "noextension"}

	for _, fileName := range cases {
		t.Run(fileName, func(t *testing.T) {
			blobs := &mockBlobStore{}
			svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

			_, err := svc.Ingest(context.Background(), 7, fileName, encodePayload(16))

			require.Error(t, err)
			_, ok := apperrors.IsUnsupportedMediaTypeError(err)
			assert.True(t, ok)
			assert.Empty(t, blobs.saved)
		})
	}
}

func TestIngest_RejectsOversizedPayload(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(12*1024*1024))

	require.Error(t, err)
	ple, ok := apperrors.IsPayloadTooLargeError(err)
	require.True(t, ok)
	assert.Equal(t, int64(12*1024*1024), ple.Size)
	assert.Equal(t, int64(testMaxUploadBytes), ple.Limit)
	assert.Empty(t, blobs.saved)
}

func TestIngest_RejectsNonMultipleOfFourEncoding(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", "abcde")

	require.Error(t, err)
	_, ok := apperrors.IsMalformedEncodingError(err)
	assert.True(t, ok)
	assert.Empty(t, blobs.saved)
}

func TestIngest_RejectsInvalidBase64(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", "!!!!&&&&")

	require.Error(t, err)
	_, ok := apperrors.IsMalformedEncodingError(err)
	assert.True(t, ok)
	assert.Empty(t, blobs.saved)
}

func TestIngest_BlobFailureLeavesNoMetadata(t *testing.T) {
	insertCalled := false
	photos := &mockPhotoRepository{
		InsertFunc: func(ctx context.Context, photo *domain.Photo) (uint, error) {
			insertCalled = true
			return 1, nil
		},
	}
	blobs := &mockBlobStore{
		SaveFunc: func(ctx context.Context, key string, data []byte) error {
			return errors.New("disk full")
		},
	}
	svc := newTestPhotoService(openOrderResolver(), photos, blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))

	require.Error(t, err)
	_, ok := apperrors.IsStorageError(err)
	assert.True(t, ok)
	assert.False(t, insertCalled, "no metadata record without a confirmed blob write")
}

func TestIngest_MetadataFailureCleansUpBlob(t *testing.T) {
	photos := &mockPhotoRepository{
		InsertFunc: func(ctx context.Context, photo *domain.Photo) (uint, error) {
			return 0, errors.New("connection lost")
		},
	}
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), photos, blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))

	require.Error(t, err)
	_, ok := apperrors.IsStorageError(err)
	assert.True(t, ok)
	require.Len(t, blobs.saved, 1)
	require.Len(t, blobs.deleted, 1)
	assert.Equal(t, blobs.saved[0], blobs.deleted[0], "orphaned blob must be cleaned up")
}

func TestIngest_CleanupFailureStillReportsStorageError(t *testing.T) {
	photos := &mockPhotoRepository{
		InsertFunc: func(ctx context.Context, photo *domain.Photo) (uint, error) {
			return 0, errors.New("connection lost")
		},
	}
	blobs := &mockBlobStore{
		DeleteFunc: func(ctx context.Context, key string) error {
			return errors.New("delete failed too")
		},
	}
	svc := newTestPhotoService(openOrderResolver(), photos, blobs)

	_, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))

	require.Error(t, err)
	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, "failed to record photo", se.Message)
}

func TestIngest_UniqueKeysForSameOrder(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := newTestPhotoService(openOrderResolver(), acceptingPhotoRepo(), blobs)

	first, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), 7, "photo.jpg", encodePayload(16))
	require.NoError(t, err)

	assert.NotEqual(t, first.StorageKey, second.StorageKey)
}
