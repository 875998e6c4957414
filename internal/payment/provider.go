// Package payment creates gateway orders and verifies checkout signatures.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/Humanoid-1/Web-backend/internal/domain"
)

// OrderInput describes a gateway order. Amount is in the smallest currency
// unit (paise for INR).
type OrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
}

// Provider is a payment gateway.
type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, in *OrderInput) (*domain.PaymentOrder, error)
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under secret, the
// signature a gateway hands the client after a successful checkout.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches orderID and paymentID.
func Verify(orderID, paymentID, signature, secret string) bool {
	want := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(want), []byte(signature))
}
