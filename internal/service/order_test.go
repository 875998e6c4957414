package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	"github.com/Humanoid-1/Web-backend/internal/payment"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

func validOrderInput() SaveOrderInput {
	return SaveOrderInput{
		Products: []OrderItemInput{
			{ProductID: "l1", Brand: "Dell", Model: "XPS", Price: 1000},
			{ProductID: "a1", Name: "Pods", Quantity: 2, Price: 50},
		},
		ShippingAddress: json.RawMessage(`{"flat":"12B"}`),
		ItemsPrice:      1100,
		TotalAmount:     1100,
		PaymentID:       "pay_123",
	}
}

func TestSaveOrder(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub := &recordingPublisher{}
	svc := NewOrderService(repo, event.NewProducer(pub, newTestLogger()), newTestLogger())

	o, err := svc.Save(context.Background(), "u1", validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.True(t, o.IsPaid)
	assert.Equal(t, domain.DefaultPaymentMethod, o.PaymentMethod)
	assert.Equal(t, "Dell XPS", o.Items[0].Name)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, 2, o.Items[1].Quantity)
	assert.Equal(t, []string{event.TopicOrderCreated}, pub.topics)
}

func TestSaveOrder_Validation(t *testing.T) {
	svc := NewOrderService(new(mockOrderRepository), nil, newTestLogger())

	noProducts := validOrderInput()
	noProducts.Products = nil
	noAddress := validOrderInput()
	noAddress.ShippingAddress = json.RawMessage(`null`)
	noPayment := validOrderInput()
	noPayment.PaymentID = " "

	for name, in := range map[string]SaveOrderInput{"products": noProducts, "address": noAddress, "payment": noPayment} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), "u1", in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestGetOrder_OwnerOrAdmin(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(&domain.Order{ID: "o1", UserID: "u1"}, nil)
	svc := NewOrderService(repo, nil, newTestLogger())

	_, err := svc.Get(context.Background(), "o1", "u1", false)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "o1", "admin", true)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "o1", "u2", false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("UpdateStatus", mock.Anything, "o1", domain.OrderStatusShipped).
		Return(&domain.Order{ID: "o1", Status: domain.OrderStatusShipped}, nil)
	svc := NewOrderService(repo, nil, newTestLogger())

	o, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, o.Status)

	_, err = svc.UpdateStatus(context.Background(), "o1", "Lost")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestPaymentCreateOrder(t *testing.T) {
	prov := new(mockProvider)
	prov.On("CreateOrder", mock.Anything, &payment.OrderInput{Amount: 129999, Currency: "INR", Receipt: "receipt_1700000000000"}).
		Return(&domain.PaymentOrder{ID: "order_1", Amount: 129999, Currency: "INR"}, nil)

	svc := NewPaymentService(prov, "secret", newTestLogger())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	o, err := svc.CreateOrder(context.Background(), 1299.99)
	require.NoError(t, err)
	assert.Equal(t, "order_1", o.ID)
	prov.AssertExpectations(t)
}

func TestPaymentCreateOrder_InvalidAmount(t *testing.T) {
	svc := NewPaymentService(new(mockProvider), "secret", newTestLogger())
	for _, amt := range []float64{0, -5} {
		_, err := svc.CreateOrder(context.Background(), amt)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestPaymentCreateOrder_ProviderError(t *testing.T) {
	prov := new(mockProvider)
	prov.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("gateway down"))

	_, err := NewPaymentService(prov, "secret", newTestLogger()).CreateOrder(context.Background(), 10)
	assert.ErrorContains(t, err, "gateway down")
}

func TestPaymentVerify(t *testing.T) {
	svc := NewPaymentService(new(mockProvider), "secret", newTestLogger())
	sig := payment.Sign("order_1", "pay_1", "secret")

	require.NoError(t, svc.Verify(context.Background(), VerifyInput{OrderID: "order_1", PaymentID: "pay_1", Signature: sig}))

	err := svc.Verify(context.Background(), VerifyInput{OrderID: "order_1", PaymentID: "pay_2", Signature: sig})
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	err = svc.Verify(context.Background(), VerifyInput{OrderID: "order_1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
