package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"goodstrack/internal/domain"
	"goodstrack/internal/dto"
	apperrors "goodstrack/internal/errors"
)

type LifecycleService interface {
	Create(ctx context.Context, barcode, description string, supplierName *string) (*domain.Order, error)
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ReportArrival(ctx context.Context, id uint) (*domain.Order, error)
	ReportCompletion(ctx context.Context, id uint) (*domain.Order, error)
	CloseOrder(ctx context.Context, id uint) (*domain.Order, error)
}

type PhotoIngestionService interface {
	Ingest(ctx context.Context, orderID uint, fileName, encodedData string) (*domain.Photo, error)
}

type OrderController struct {
	lifecycle LifecycleService
	photos    PhotoIngestionService
	logger    *zap.Logger
}

func NewOrderController(lifecycle LifecycleService, photos PhotoIngestionService, logger *zap.Logger) *OrderController {
	return &OrderController{
		lifecycle: lifecycle,
		photos:    photos,
		logger:    logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Barcode) == "" {
		c.writeError(w, http.StatusBadRequest, "barcode is required")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	order, err := c.lifecycle.Create(r.Context(), req.Barcode, req.Description, req.SupplierName)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	orders, err := c.lifecycle.ListAll(r.Context())
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseOrderID(w, r, logger)
	if !ok {
		return
	}

	order, err := c.lifecycle.GetByID(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) GetOrderByBarcode(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	barcode := chi.URLParam(r, "barcode")

	order, err := c.lifecycle.GetByBarcode(r.Context(), barcode)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) ReportArrival(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseOrderID(w, r, logger)
	if !ok {
		return
	}

	order, err := c.lifecycle.ReportArrival(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ArrivalResponse{
		Message:     "Arrival reported successfully",
		ArrivalDate: *order.ArrivalDate,
	})
}

func (c *OrderController) ReportCompletion(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseOrderID(w, r, logger)
	if !ok {
		return
	}

	order, err := c.lifecycle.ReportCompletion(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.CompletionResponse{
		Message:        "Completion reported successfully",
		CompletionDate: *order.CompletionDate,
	})
}

func (c *OrderController) CloseOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseOrderID(w, r, logger)
	if !ok {
		return
	}

	if _, err := c.lifecycle.CloseOrder(r.Context(), id); err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.CloseResponse{
		Message: "Order closed successfully",
	})
}

func (c *OrderController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.parseOrderID(w, r, logger)
	if !ok {
		return
	}

	var req dto.UploadPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if req.FileName == "" {
		c.writeError(w, http.StatusBadRequest, "fileName is required")
		return
	}

	photo, err := c.photos.Ingest(r.Context(), id, req.FileName, req.Data)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UploadPhotoResponse{
		Message:    "Photo uploaded successfully",
		PhotoID:    photo.ID,
		FileName:   photo.FileName,
		UploadDate: photo.UploadDate,
	})
}

func (c *OrderController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		logger.Warn("invalid order id in path", zap.String("id", idStr))
		c.writeError(w, http.StatusBadRequest, "order id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Storage failures are logged with full detail but surfaced generically.
func (c *OrderController) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := apperrors.IsUnsupportedMediaTypeError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := apperrors.IsPayloadTooLargeError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := apperrors.IsMalformedEncodingError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, err.Error())
		return
	}

	if se, ok := apperrors.IsStorageError(err); ok {
		logger.Error("storage failure", zap.Error(se))
		c.writeError(w, http.StatusInternalServerError, se.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func toOrderResponse(order *domain.Order) dto.OrderResponse {
	photos := make([]dto.PhotoResponse, len(order.Photos))
	for i, p := range order.Photos {
		photos[i] = dto.PhotoResponse{
			ID:         p.ID,
			FileName:   p.FileName,
			UploadDate: p.UploadDate,
		}
	}

	return dto.OrderResponse{
		ID:             order.ID,
		Barcode:        order.Barcode,
		Description:    order.Description,
		SupplierName:   order.SupplierName,
		OrderDate:      order.OrderDate,
		ArrivalDate:    order.ArrivalDate,
		CompletionDate: order.CompletionDate,
		IsClosed:       order.IsClosed,
		Status:         order.Status,
		Photos:         photos,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, errorResponse{Message: message})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
