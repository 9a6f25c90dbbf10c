package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL
// instance on localhost:3306 with a database named 'goodstrack_test';
// tests are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/goodstrack_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the tables the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrders := `
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

	createPhotos := `
	CREATE TABLE IF NOT EXISTS OrderPhotos (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		fileName VARCHAR(255) NOT NULL,
		storageKey VARCHAR(255) NOT NULL,
		uploadDate DATETIME NOT NULL,
		CONSTRAINT fk_orderphotos_order FOREIGN KEY (orderId)
			REFERENCES Orders(id) ON DELETE CASCADE
	)`

	if _, err := db.Exec(createOrders); err != nil {
		t.Fatalf("failed to create Orders table: %v", err)
	}
	if _, err := db.Exec(createPhotos); err != nil {
		t.Fatalf("failed to create OrderPhotos table: %v", err)
	}
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderPhotos", "Orders"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
