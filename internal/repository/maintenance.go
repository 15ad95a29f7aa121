package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaintenanceRepo performs bulk resets. Children are always deleted before parents.
type MaintenanceRepo struct{ db *pgxpool.Pool }

// NewMaintenanceRepo creates a new MaintenanceRepo.
func NewMaintenanceRepo(db *pgxpool.Pool) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

type deleteStep struct {
	table string
	sql   string
}

var storeResetSteps = []deleteStep{
	{"order_tracking", `DELETE FROM order_tracking WHERE delivery_id IN (SELECT id FROM deliveries WHERE store_id = $1)`},
	{"notifications", `DELETE FROM notifications WHERE delivery_id IN (SELECT id FROM deliveries WHERE store_id = $1)`},
	{"deliveries", `DELETE FROM deliveries WHERE store_id = $1`},
	{"order_items", `DELETE FROM order_items WHERE store_id = $1 OR product_id IN (SELECT id FROM products WHERE store_id = $1)`},
	{"cart_items", `DELETE FROM cart_items WHERE product_id IN (SELECT id FROM products WHERE store_id = $1)`},
	{"wishlist_items", `DELETE FROM wishlist_items WHERE product_id IN (SELECT id FROM products WHERE store_id = $1)`},
	{"reviews", `DELETE FROM reviews WHERE product_id IN (SELECT id FROM products WHERE store_id = $1)`},
	{"products", `DELETE FROM products WHERE store_id = $1`},
	{"stores", `DELETE FROM stores WHERE id = $1`},
}

var systemResetSteps = []deleteStep{
	{"order_tracking", `DELETE FROM order_tracking`},
	{"notifications", `DELETE FROM notifications`},
	{"deliveries", `DELETE FROM deliveries`},
	{"order_items", `DELETE FROM order_items`},
	{"orders", `DELETE FROM orders`},
	{"cart_items", `DELETE FROM cart_items`},
	{"wishlist_items", `DELETE FROM wishlist_items`},
	{"reviews", `DELETE FROM reviews`},
	{"products", `DELETE FROM products`},
	{"stores", `DELETE FROM stores`},
}

// ResetStoreData - deletes a store with its products and every row depending on
// them. Returns deleted row counts per table; found is false for unknown stores.
func (r *MaintenanceRepo) ResetStoreData(ctx context.Context, storeID int64) (counts map[string]int64, found bool, err error) {
	counts = make(map[string]int64, len(storeResetSteps))
	err = inTx(ctx, r.db, func(tx pgx.Tx) error {
		return runSteps(ctx, tx, storeResetSteps, counts, storeID)
	})
	if err != nil {
		return nil, false, fmt.Errorf("reset store %d: %w", storeID, err)
	}
	return counts, counts["stores"] > 0, nil
}

// ResetAllSystemData - deletes all marketplace activity and catalog data. Users,
// delivery partners and the zone table are kept.
func (r *MaintenanceRepo) ResetAllSystemData(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(systemResetSteps))
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		return runSteps(ctx, tx, systemResetSteps, counts)
	})
	if err != nil {
		return nil, fmt.Errorf("reset system data: %w", err)
	}
	return counts, nil
}

func runSteps(ctx context.Context, tx pgx.Tx, steps []deleteStep, counts map[string]int64, args ...any) error {
	for _, s := range steps {
		ct, err := tx.Exec(ctx, s.sql, args...)
		if err != nil {
			return fmt.Errorf("delete %s: %w", s.table, err)
		}
		counts[s.table] = ct.RowsAffected()
	}
	return nil
}
