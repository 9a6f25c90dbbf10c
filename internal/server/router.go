package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"goodstrack/internal/order/controller"
)

func NewRouter(orderCtrl *controller.OrderController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderCtrl.ListOrders)
		r.Post("/", orderCtrl.CreateOrder)
		r.Get("/barcode/{barcode}", orderCtrl.GetOrderByBarcode)
		r.Get("/{id}", orderCtrl.GetOrder)
		r.Post("/{id}/arrival", orderCtrl.ReportArrival)
		r.Post("/{id}/completion", orderCtrl.ReportCompletion)
		r.Post("/{id}/close", orderCtrl.CloseOrder)
		r.Post("/{id}/photos", orderCtrl.UploadPhoto)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
