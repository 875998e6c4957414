package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/payment"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// PaymentCurrency is the currency of every gateway order.
const PaymentCurrency = "INR"

// PaymentService creates gateway orders and verifies checkout signatures.
type PaymentService struct {
	provider payment.Provider
	secret   string
	logger   *slog.Logger
	now      func() time.Time
}

func NewPaymentService(provider payment.Provider, secret string, logger *slog.Logger) *PaymentService {
	return &PaymentService{provider: provider, secret: secret, logger: logger, now: time.Now}
}

// CreateOrder registers totalAmount rupees with the gateway, in paise.
func (s *PaymentService) CreateOrder(ctx context.Context, totalAmount float64) (*domain.PaymentOrder, error) {
	if !(totalAmount > 0) || math.IsInf(totalAmount, 0) {
		return nil, apperrors.InvalidInput("invalid total amount")
	}

	in := &payment.OrderInput{
		Amount:   int64(math.Round(totalAmount * 100)),
		Currency: PaymentCurrency,
		Receipt:  fmt.Sprintf("receipt_%d", s.now().UnixMilli()),
	}
	o, err := s.provider.CreateOrder(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s create order: %w", s.provider.Name(), err)
	}

	s.logger.InfoContext(ctx, "payment order created",
		slog.String("provider", s.provider.Name()),
		slog.String("order_id", o.ID),
		slog.Int64("amount", o.Amount),
	)
	return o, nil
}

// VerifyInput is what the gateway's checkout returns to the client.
type VerifyInput struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// ErrSignatureMismatch is returned for a payment whose signature does not verify.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// Verify checks the checkout signature.
func (s *PaymentService) Verify(ctx context.Context, in VerifyInput) error {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return apperrors.InvalidInput("order id, payment id and signature are required")
	}
	if !payment.Verify(in.OrderID, in.PaymentID, in.Signature, s.secret) {
		s.logger.WarnContext(ctx, "payment signature mismatch", slog.String("order_id", in.OrderID))
		return &apperrors.AppError{
			Code:    "PAYMENT_VERIFICATION_FAILED",
			Message: "payment verification failed",
			Status:  http.StatusBadRequest,
			Err:     ErrSignatureMismatch,
		}
	}
	return nil
}
