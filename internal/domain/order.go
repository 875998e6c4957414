package domain

import (
	"encoding/json"
	"time"
)

// Order statuses.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// DefaultPaymentMethod is recorded when a client does not name one.
const DefaultPaymentMethod = "Razorpay"

// OrderStatuses lists valid order statuses.
func OrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
}

// IsValidOrderStatus reports whether s is an order status.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a paid checkout.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Items           []OrderItem     `json:"products"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	ItemsPrice      float64         `json:"items_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TotalAmount     float64         `json:"total_amount"`
	PaymentID       string          `json:"payment_id"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"is_paid"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is one purchased product.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Model     string  `json:"model,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PaymentOrder is a gateway order created before checkout.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
