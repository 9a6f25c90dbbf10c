package domain

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusArrived   = "Arrived"
	OrderStatusCompleted = "Completed"
	OrderStatusClosed    = "Closed"
)

type Order struct {
	ID             uint
	Barcode        string
	Description    string
	SupplierName   *string
	OrderDate      time.Time
	ArrivalDate    *time.Time
	CompletionDate *time.Time
	IsClosed       bool
	Status         string
	// Version backs the optimistic concurrency check on updates.
	Version int64
	Photos  []Photo
}

// DeriveStatus computes the status from (ArrivalDate, CompletionDate,
// IsClosed). Closed wins over everything; Completed over Arrived.
func (o *Order) DeriveStatus() string {
	switch {
	case o.IsClosed:
		return OrderStatusClosed
	case o.CompletionDate != nil:
		return OrderStatusCompleted
	case o.ArrivalDate != nil:
		return OrderStatusArrived
	default:
		return OrderStatusPending
	}
}

// RefreshStatus recomputes the denormalized Status field. Every write path
// calls this so Status can never drift from the underlying dates and flag.
func (o *Order) RefreshStatus() {
	o.Status = o.DeriveStatus()
}
