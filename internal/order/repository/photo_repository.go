package repository

import (
	"context"
	"database/sql"
	"fmt"

	"goodstrack/internal/domain"
)

type MySQLPhotoRepository struct {
	db *sql.DB
}

func NewMySQLPhotoRepository(db *sql.DB) *MySQLPhotoRepository {
	return &MySQLPhotoRepository{db: db}
}

func (r *MySQLPhotoRepository) Insert(ctx context.Context, photo *domain.Photo) (uint, error) {
	query := `
		INSERT INTO OrderPhotos (orderId, fileName, storageKey, uploadDate)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		photo.OrderID, photo.FileName, photo.StorageKey, photo.UploadDate,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted photo id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLPhotoRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.Photo, error) {
	query := `
		SELECT id, orderId, fileName, storageKey, uploadDate
		FROM OrderPhotos
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying photos for order %d: %w", orderID, err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.OrderID, &photo.FileName, &photo.StorageKey, &photo.UploadDate); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photos: %w", err)
	}

	return photos, nil
}
