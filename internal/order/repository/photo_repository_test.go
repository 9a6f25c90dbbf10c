package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodstrack/internal/domain"
	"goodstrack/internal/testutil"
)

func TestPhotoRepository_InsertAndFindByOrderID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	photoRepo := NewMySQLPhotoRepository(db)

	order := insertTestOrder(t, orderRepo, "123456789")

	uploadDate := time.Now().Truncate(time.Second)
	keys := []string{"k1.jpg", "k2.jpg", "k3.jpg"}
	for _, key := range keys {
		id, err := photoRepo.Insert(context.Background(), &domain.Photo{
			OrderID:    order.ID,
			FileName:   "photo.jpg",
			StorageKey: key,
			UploadDate: uploadDate,
		})
		require.NoError(t, err)
		assert.NotZero(t, id)
	}

	photos, err := photoRepo.FindByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	// Insertion order is preserved.
	for i, photo := range photos {
		assert.Equal(t, keys[i], photo.StorageKey)
		assert.Equal(t, order.ID, photo.OrderID)
	}
}

func TestPhotoRepository_FindByOrderID_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	photoRepo := NewMySQLPhotoRepository(db)

	photos, err := photoRepo.FindByOrderID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, photos)
}
