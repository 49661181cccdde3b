package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) UpdateOrderProjection(ctx context.Context, event entity.Event) error {
	switch e := event.(type) {
	case entity.OrderPlaced:
		return r.insertOrder(ctx, e.Order)
	case entity.OrderConfirmed:
		_, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $2 WHERE id = $1", e.OrderID, entity.OrderStatusConfirmed)
		if err != nil {
			return fmt.Errorf("failed to confirm order: %w", err)
		}
		return nil
	case entity.OrderDeleted:
		if _, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", e.OrderID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported projection event: %s", event.EventType())
	}
}

func (r *orderRepository) insertOrder(ctx context.Context, o entity.Order) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Idempotency check
	var inserted bool
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (id, user_id, payment_id, final_amount, customer, status, ordered_at, ordered_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING RETURNING true`,
		o.ID, o.UserID, o.PaymentID, o.FinalAmount, customer, entity.OrderStatusPlaced, o.OrderedAt, o.OrderedTime,
	).Scan(&inserted)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range o.Products {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, image, title, price, quantity) VALUES ($1, $2, $3, $4, $5, $6)",
			o.ID, item.ID, item.Image, item.Title, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]entity.Order, error) {
	return r.queryOrders(ctx, "")
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return r.queryOrders(ctx, "WHERE user_id = $1", userID)
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	orders, err := r.queryOrders(ctx, "WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, repository.ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) queryOrders(ctx context.Context, where string, args ...any) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, payment_id, final_amount, customer, status, ordered_at, ordered_time FROM orders "+where+" ORDER BY ordered_at DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		var (
			o        entity.Order
			customer []byte
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.PaymentID, &o.FinalAmount, &customer, &o.Status, &o.OrderedAt, &o.OrderedTime); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(customer, &o.Customer); err != nil {
			return nil, fmt.Errorf("failed to decode customer for order %s: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	// Fetch items for each order
	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_id, image, title, price, quantity FROM order_items WHERE order_id = $1 ORDER BY id",
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	o.Products = []entity.OrderProduct{}
	for rows.Next() {
		var item entity.OrderProduct
		if err := rows.Scan(&item.ID, &item.Image, &item.Title, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Products = append(o.Products, item)
	}
	return rows.Err()
}
