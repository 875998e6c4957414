// Package mock is a payment.Provider that never leaves the process.
package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/payment"
)

// Provider creates orders locally. Intended for development and tests.
type Provider struct{}

// NewProvider creates a mock provider.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "mock" }

// CreateOrder always succeeds with a generated order id.
func (p *Provider) CreateOrder(_ context.Context, in *payment.OrderInput) (*domain.PaymentOrder, error) {
	return &domain.PaymentOrder{
		ID:       "order_mock_" + uuid.NewString(),
		Amount:   in.Amount,
		Currency: in.Currency,
		Receipt:  in.Receipt,
		Status:   "created",
	}, nil
}
