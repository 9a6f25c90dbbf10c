package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"goodstrack/internal/domain"
	"goodstrack/internal/errors"
)

const mysqlDuplicateEntry = 1062

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, barcode, description, supplierName, orderDate,
	arrivalDate, completionDate, isClosed, status, version`

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ?`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	if err := r.loadPhotos(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *MySQLOrderRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE barcode = ?`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, barcode))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with barcode %s not found", barcode))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by barcode: %w", err)
	}

	if err := r.loadPhotos(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders ORDER BY id`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	for i := range orders {
		if err := r.loadPhotos(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// Insert stores a new order and returns its assigned id. A duplicate
// barcode surfaces as a ConflictError via the unique index.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (barcode, description, supplierName, orderDate,
			arrivalDate, completionDate, isClosed, status, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.Barcode, order.Description, order.SupplierName, order.OrderDate,
		order.ArrivalDate, order.CompletionDate, order.IsClosed, order.Status,
		order.Version,
	)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == mysqlDuplicateEntry {
			return 0, errors.NewConflictError(fmt.Sprintf("order with barcode %s already exists", order.Barcode))
		}
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint(id), nil
}

// Update persists the order's mutable fields with an optimistic version
// check. A concurrent writer that committed first leaves zero affected
// rows, reported as a ConflictError; a missing row is a NotFoundError.
// On success the order's Version is advanced to the stored value.
func (r *MySQLOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE Orders
		SET arrivalDate = ?, completionDate = ?, isClosed = ?, status = ?, version = version + 1
		WHERE id = ? AND version = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ArrivalDate, order.CompletionDate, order.IsClosed, order.Status,
		order.ID, order.Version,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkErr := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM Orders WHERE id = ?)`, order.ID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("checking order existence: %w", checkErr)
		}
		if !exists {
			return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", order.ID))
		}
		return errors.NewConflictError(fmt.Sprintf("order %d was modified concurrently", order.ID))
	}

	order.Version++
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MySQLOrderRepository) scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.Barcode, &order.Description, &order.SupplierName,
		&order.OrderDate, &order.ArrivalDate, &order.CompletionDate,
		&order.IsClosed, &order.Status, &order.Version,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MySQLOrderRepository) loadPhotos(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, orderId, fileName, storageKey, uploadDate
		FROM OrderPhotos
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("querying photos for order %d: %w", order.ID, err)
	}
	defer rows.Close()

	order.Photos = []domain.Photo{}
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.OrderID, &photo.FileName, &photo.StorageKey, &photo.UploadDate); err != nil {
			return fmt.Errorf("scanning photo: %w", err)
		}
		order.Photos = append(order.Photos, photo)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating photos: %w", err)
	}

	return nil
}
