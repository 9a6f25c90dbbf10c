package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"goodstrack/internal/domain"
	"goodstrack/internal/errors"
)

// OrderRepository is the narrow persistence contract the lifecycle service
// depends on. Implementations return NotFoundError for missing orders and
// ConflictError when an update loses an optimistic-version race.
type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByBarcode(ctx context.Context, barcode string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	Insert(ctx context.Context, order *domain.Order) (uint, error)
	Update(ctx context.Context, order *domain.Order) error
}

// LifecycleService enforces the order state machine
// Pending -> Arrived -> Completed, with Closed as the terminal state
// reachable from any of them. Transitions on the same order id are
// serialized by a keyed lock; each transition is a single
// read-modify-write against the repository.
type LifecycleService struct {
	orderRepo OrderRepository
	logger    *zap.Logger
	locks     *keyedLock
}

func NewLifecycleService(orderRepo OrderRepository, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		orderRepo: orderRepo,
		logger:    logger,
		locks:     newKeyedLock(),
	}
}

// Create registers a new order in status Pending. The barcode must be
// unique; the repository reports a duplicate as a ConflictError.
func (s *LifecycleService) Create(ctx context.Context, barcode, description string, supplierName *string) (*domain.Order, error) {
	order := &domain.Order{
		Barcode:      barcode,
		Description:  description,
		SupplierName: supplierName,
		OrderDate:    time.Now(),
	}
	order.RefreshStatus()

	id, err := s.orderRepo.Insert(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.Photos = []domain.Photo{}

	s.logger.Info("order created",
		zap.Uint("orderId", order.ID),
		zap.String("barcode", order.Barcode),
	)

	return order, nil
}

func (s *LifecycleService) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *LifecycleService) GetByBarcode(ctx context.Context, barcode string) (*domain.Order, error) {
	return s.orderRepo.FindByBarcode(ctx, barcode)
}

func (s *LifecycleService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

// ReportArrival stamps the arrival time. Only the closed guard applies:
// reporting arrival on an already-arrived order is accepted and overwrites
// the previous timestamp, which is the supported correction path for a
// mis-scanned arrival.
func (s *LifecycleService) ReportArrival(ctx context.Context, id uint) (*domain.Order, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsClosed {
		return nil, errors.NewInvalidTransitionError("cannot modify a closed order", "closed")
	}

	now := time.Now()
	order.ArrivalDate = &now
	order.RefreshStatus()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order arrival reported",
		zap.Uint("orderId", order.ID),
		zap.Time("arrivalDate", now),
	)

	return order, nil
}

// ReportCompletion stamps the completion time. Requires a recorded arrival,
// which keeps the invariant that a completion date implies an arrival date.
func (s *LifecycleService) ReportCompletion(ctx context.Context, id uint) (*domain.Order, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsClosed {
		return nil, errors.NewInvalidTransitionError("cannot modify a closed order", "closed")
	}

	if order.ArrivalDate == nil {
		return nil, errors.NewInvalidTransitionError("cannot complete an order that hasn't arrived yet", "not arrived")
	}

	now := time.Now()
	order.CompletionDate = &now
	order.RefreshStatus()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order completion reported",
		zap.Uint("orderId", order.ID),
		zap.Time("completionDate", now),
	)

	return order, nil
}

// CloseOrder marks the order closed. Closing is terminal and allowed from
// any non-closed state, so an order can be closed straight from Pending as
// the cancellation path.
func (s *LifecycleService) CloseOrder(ctx context.Context, id uint) (*domain.Order, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsClosed {
		return nil, errors.NewInvalidTransitionError("order is already closed", "already closed")
	}

	order.IsClosed = true
	order.RefreshStatus()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order closed", zap.Uint("orderId", order.ID))

	return order, nil
}
