package mysql

import (
	"database/sql"
	"fmt"
	"time"
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS Orders (
	id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	barcode VARCHAR(64) NOT NULL,
	description TEXT NOT NULL,
	supplierName VARCHAR(255) NULL,
	orderDate DATETIME NOT NULL,
	arrivalDate DATETIME NULL,
	completionDate DATETIME NULL,
	isClosed BOOLEAN NOT NULL DEFAULT FALSE,
	status VARCHAR(16) NOT NULL DEFAULT 'Pending',
	version BIGINT NOT NULL DEFAULT 0,
	UNIQUE KEY uq_orders_barcode (barcode)
)`

const createOrderPhotosTable = `
CREATE TABLE IF NOT EXISTS OrderPhotos (
	id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	orderId INT UNSIGNED NOT NULL,
	fileName VARCHAR(255) NOT NULL,
	storageKey VARCHAR(255) NOT NULL,
	uploadDate DATETIME NOT NULL,
	CONSTRAINT fk_orderphotos_order FOREIGN KEY (orderId)
		REFERENCES Orders(id) ON DELETE CASCADE
)`

// EnsureSchema creates the tables if they do not exist. Safe to call on
// every startup.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(createOrdersTable); err != nil {
		return fmt.Errorf("creating Orders table: %w", err)
	}
	if _, err := db.Exec(createOrderPhotosTable); err != nil {
		return fmt.Errorf("creating OrderPhotos table: %w", err)
	}
	return nil
}

// SeedSampleOrders inserts a handful of sample orders for manual testing
// with the scanner app. No-op when the Orders table already has rows.
func SeedSampleOrders(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM Orders`).Scan(&count); err != nil {
		return fmt.Errorf("counting orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	samples := []struct {
		barcode     string
		description string
		supplier    string
		orderDate   time.Time
		arrival     *time.Time
	}{
		{"123456789", "Office Supplies - Box of Pens", "Office Depot", now.AddDate(0, 0, -5), nil},
		{"987654321", "Computer Equipment - Laptop", "Tech Solutions Inc", now.AddDate(0, 0, -3), nil},
		{"555666777", "Furniture - Office Chairs (Set of 5)", "Furniture Plus", now.AddDate(0, 0, -7), timePtr(now.AddDate(0, 0, -2))},
	}

	for _, s := range samples {
		status := "Pending"
		if s.arrival != nil {
			status = "Arrived"
		}
		_, err := db.Exec(`
			INSERT INTO Orders (barcode, description, supplierName, orderDate, arrivalDate, status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.barcode, s.description, s.supplier, s.orderDate, s.arrival, status,
		)
		if err != nil {
			return fmt.Errorf("seeding order %s: %w", s.barcode, err)
		}
	}

	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
