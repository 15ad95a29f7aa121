package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/domain"
)

// OrderRepo reads placed orders for dispatch.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// GetDispatchInfo - order, customer and pickup store of an order. The store is taken
// from the order's first item. Returns (nil, nil) for unknown orders or orders
// without items.
func (r *OrderRepo) GetDispatchInfo(ctx context.Context, orderID int64) (*domain.OrderDispatchInfo, error) {
	var o domain.OrderDispatchInfo
	err := r.db.QueryRow(ctx, `
        SELECT o.id, o.customer_id, u.name, COALESCE(u.phone, ''), o.total_amount, o.status,
               o.shipping_address, o.latitude, o.longitude, o.created_at,
               s.id, s.name, s.phone, s.address, s.store_type, s.latitude, s.longitude
        FROM orders o
        JOIN users u ON u.id = o.customer_id
        JOIN LATERAL (
            SELECT oi.store_id FROM order_items oi WHERE oi.order_id = o.id ORDER BY oi.id LIMIT 1
        ) first_item ON TRUE
        JOIN stores s ON s.id = first_item.store_id
        WHERE o.id = $1
    `, orderID).Scan(
		&o.OrderID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.Latitude, &o.Longitude, &o.CreatedAt,
		&o.Store.ID, &o.Store.Name, &o.Store.Phone, &o.Store.Address, &o.Store.Type,
		&o.Store.Latitude, &o.Store.Longitude,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispatch info of order %d: %w", orderID, err)
	}
	return &o, nil
}
