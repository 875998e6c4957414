package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
	"github.com/Humanoid-1/Web-backend/pkg/middleware"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreatePaymentOrderRequest struct {
	TotalAmount float64 `json:"total_amount" validate:"gt=0"`
}

// OrderHandler serves checkout orders.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

func (h *OrderHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in service.SaveOrderInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	o, err := h.service.Save(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, o)
}

func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Mine(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin := middleware.RoleFromContext(ctx) == middleware.RoleAdmin
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	o, err := h.service.Get(ctx, id.String(), middleware.UserIDFromContext(ctx), admin)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), id.String(), req.Status)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, o)
}

// PaymentHandler creates gateway orders and verifies payments.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	o, err := h.service.CreateOrder(r.Context(), req.TotalAmount)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, o)
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var in service.VerifyInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Verify(r.Context(), in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Payment verified successfully")
}
