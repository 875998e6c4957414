package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/repository"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// OrderItemInput is one purchased product as the checkout sends it.
type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// SaveOrderInput is a completed checkout.
type SaveOrderInput struct {
	Products        []OrderItemInput `json:"products"`
	ShippingAddress json.RawMessage  `json:"shipping_address"`
	ItemsPrice      float64          `json:"items_price"`
	ShippingPrice   float64          `json:"shipping_price"`
	TotalAmount     float64          `json:"total_amount"`
	PaymentID       string           `json:"payment_id"`
	PaymentMethod   string           `json:"payment_method"`
}

func hasAddress(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null" && s != "{}" && s != `""`
}

// OrderService records paid orders.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, producer: producer, logger: logger}
}

// Save stores an order paid through the gateway.
func (s *OrderService) Save(ctx context.Context, userID string, in SaveOrderInput) (*domain.Order, error) {
	switch {
	case len(in.Products) == 0:
		return nil, apperrors.InvalidInput("products are required")
	case !hasAddress(in.ShippingAddress):
		return nil, apperrors.InvalidInput("shipping address is required")
	case strings.TrimSpace(in.PaymentID) == "":
		return nil, apperrors.InvalidInput("payment id is required")
	}

	items := make([]domain.OrderItem, len(in.Products))
	for i, p := range in.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = strings.TrimSpace(p.Brand + " " + p.Model)
		}
		qty := p.Quantity
		if qty <= 0 {
			qty = 1
		}
		items[i] = domain.OrderItem{
			ProductID: p.ProductID,
			Name:      name,
			Model:     p.Model,
			Category:  p.Category,
			Quantity:  qty,
			Price:     p.Price,
		}
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = domain.DefaultPaymentMethod
	}

	now := time.Now().UTC()
	o := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		ItemsPrice:      in.ItemsPrice,
		ShippingPrice:   in.ShippingPrice,
		TotalAmount:     in.TotalAmount,
		PaymentID:       strings.TrimSpace(in.PaymentID),
		PaymentMethod:   method,
		Status:          domain.OrderStatusPending,
		IsPaid:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.producer.OrderCreated(ctx, o)

	s.logger.InfoContext(ctx, "order saved",
		slog.String("order_id", o.ID),
		slog.String("payment_id", o.PaymentID),
		slog.Int("items", len(items)),
	)
	return o, nil
}

// Mine lists the user's orders newest first.
func (s *OrderService) Mine(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns an order visible to the caller: its owner or an admin. Other
// callers get not found.
func (s *OrderService) Get(ctx context.Context, id, userID string, admin bool) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !admin && o.UserID != userID {
		return nil, apperrors.NotFound("order", id)
	}
	return o, nil
}

// UpdateStatus moves an order to status.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput("status must be one of: " + strings.Join(domain.OrderStatuses(), ", "))
	}

	o, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	s.producer.OrderStatusChanged(ctx, o)

	s.logger.InfoContext(ctx, "order status updated", slog.String("order_id", id), slog.String("status", status))
	return o, nil
}
