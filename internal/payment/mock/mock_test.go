package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/payment"
)

var _ payment.Provider = (*Provider)(nil)

func TestCreateOrder(t *testing.T) {
	got, err := NewProvider().CreateOrder(context.Background(), &payment.OrderInput{Amount: 100, Currency: "INR", Receipt: "r"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ID, "order_mock_"))
	assert.Equal(t, int64(100), got.Amount)
	assert.Equal(t, "created", got.Status)
}
