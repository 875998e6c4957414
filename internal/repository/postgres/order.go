package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/pkg/database"
	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

const orderColumns = `id, user_id, items, shipping_address, items_price, shipping_price, total_amount,
	payment_id, payment_method, status, is_paid, created_at, updated_at`

// OrderRepository implements repository.OrderRepository. Items and the
// shipping address are stored as JSONB.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		items []byte
		addr  []byte
	)
	if err := row.Scan(
		&o.ID, &o.UserID, &items, &addr, &o.ItemsPrice, &o.ShippingPrice, &o.TotalAmount,
		&o.PaymentID, &o.PaymentMethod, &o.Status, &o.IsPaid, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	o.ShippingAddress = json.RawMessage(addr)
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (err error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	ctx, end := database.TraceQuery(ctx, "orders.Create", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		o.ID, o.UserID, items, []byte(o.ShippingAddress), o.ItemsPrice, o.ShippingPrice, o.TotalAmount,
		o.PaymentID, o.PaymentMethod, o.Status, o.IsPaid, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("order", "payment_id", o.PaymentID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (_ *domain.Order, err error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "orders.GetByID", query)
	defer func() { end(err) }()

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) (_ []domain.Order, err error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`
	ctx, end := database.TraceQuery(ctx, "orders.ListByUser", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (_ *domain.Order, err error) {
	const query = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + orderColumns
	ctx, end := database.TraceQuery(ctx, "orders.UpdateStatus", query)
	defer func() { end(err) }()

	o, err := scanOrder(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}
