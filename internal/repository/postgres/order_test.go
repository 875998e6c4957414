package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

var orderCols = []string{
	"id", "user_id", "items", "shipping_address", "items_price", "shipping_price", "total_amount",
	"payment_id", "payment_method", "status", "is_paid", "created_at", "updated_at",
}

func sampleOrder() domain.Order {
	return domain.Order{
		ID:              "o1",
		UserID:          "u1",
		Items:           []domain.OrderItem{{ProductID: "l1", Name: "Dell XPS", Quantity: 1, Price: 1200}},
		ShippingAddress: json.RawMessage(`{"city":"Pune"}`),
		TotalAmount:     1200,
		PaymentID:       "pay_1",
		PaymentMethod:   domain.DefaultPaymentMethod,
		Status:          domain.OrderStatusPending,
		IsPaid:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func orderRow(o domain.Order) []any {
	items, _ := json.Marshal(o.Items)
	return []any{
		o.ID, o.UserID, items, []byte(o.ShippingAddress), o.ItemsPrice, o.ShippingPrice, o.TotalAmount,
		o.PaymentID, o.PaymentMethod, o.Status, o.IsPaid, o.CreatedAt, o.UpdatedAt,
	}
}

func TestOrderRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	o := sampleOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(orderRow(o)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), &o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	o := sampleOrder()

	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs("o1").
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(orderRow(o)...))

	got, err := repo.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, o.Items, got.Items)
	assert.JSONEq(t, `{"city":"Pune"}`, string(got.ShippingAddress))
}

func TestOrderRepository_UpdateStatusMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs("o9", domain.OrderStatusShipped).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), "o9", domain.OrderStatusShipped)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	o := sampleOrder()

	mock.ExpectQuery("FROM orders WHERE user_id").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(orderCols).AddRow(orderRow(o)...))

	orders, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pay_1", orders[0].PaymentID)
}
