// Package razorpay is a payment.Provider for the Razorpay orders API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/payment"
	"github.com/Humanoid-1/Web-backend/pkg/httpclient"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.razorpay.com/v1"

// Config holds API credentials.
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
}

// Provider calls Razorpay through a circuit breaker.
type Provider struct {
	client *httpclient.CircuitBreakerClient
	cfg    Config
	logger *slog.Logger
}

// NewProvider creates a provider. An empty BaseURL selects DefaultBaseURL.
func NewProvider(client *httpclient.CircuitBreakerClient, cfg Config, logger *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Provider{client: client, cfg: cfg, logger: logger}
}

func (p *Provider) Name() string { return "razorpay" }

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway.
func (p *Provider) CreateOrder(ctx context.Context, in *payment.OrderInput) (*domain.PaymentOrder, error) {
	body, err := json.Marshal(orderRequest{Amount: in.Amount, Currency: in.Currency, Receipt: in.Receipt})
	if err != nil {
		return nil, fmt.Errorf("marshal razorpay order: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build razorpay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.cfg.KeyID, p.cfg.KeySecret)

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "razorpay")
	}
	defer func() { _ = resp.Body.Close() }()

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode razorpay order: %w", err)
	}

	p.logger.InfoContext(ctx, "razorpay order created",
		slog.String("order_id", out.ID),
		slog.String("receipt", out.Receipt),
		slog.Int64("amount", out.Amount),
	)

	return &domain.PaymentOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
		Status:   out.Status,
	}, nil
}
